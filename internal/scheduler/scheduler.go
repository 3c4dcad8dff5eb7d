// Package scheduler runs periodic housekeeping for the learner store.
package scheduler

import (
	"errors"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/go-co-op/gocron"
)

// Sweeper drops learner contexts idle for longer than ttl.
type Sweeper interface {
	Sweep(now time.Time, ttl time.Duration) int
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	sweeper   Sweeper
	interval  time.Duration
	idle      time.Duration
	now       func() time.Time
	log       *logger.Logger
}

func New(sweeper Sweeper, interval, idle time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sweeper:   sweeper,
		interval:  interval,
		idle:      idle,
		now:       time.Now,
		log:       logger.Default().WithPrefix("scheduler"),
	}
}

// Start schedules the idle sweep and returns without blocking.
func (s *Scheduler) Start() error {
	if s.interval <= 0 || s.idle <= 0 {
		return errors.New("sweep interval and idle timeout must be positive")
	}
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.RunNow); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	s.log.Info("idle sweep every %v (idle after %v)", s.interval, s.idle)
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow performs one sweep and returns how many contexts were dropped.
func (s *Scheduler) RunNow() int {
	n := s.sweeper.Sweep(s.now(), s.idle)
	s.log.Debug("sweep removed %d learners", n)
	return n
}
