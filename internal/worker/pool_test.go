package worker_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcJob struct {
	name string
	run  func(context.Context) error
}

func (j funcJob) Name() string                  { return j.name }
func (j funcJob) Run(ctx context.Context) error { return j.run(ctx) }

func TestPool_RunsJobs(t *testing.T) {
	p := worker.NewPool(2, 8)
	p.Start(context.Background())

	var ran atomic.Int32
	for i := 0; i < 5; i++ {
		require.NoError(t, p.Submit(funcJob{name: "count", run: func(context.Context) error {
			ran.Add(1)
			return nil
		}}))
	}
	p.Stop()

	assert.Equal(t, int32(5), ran.Load(), "queued jobs drain before Stop returns")
}

func TestPool_SubmitNeverBlocks(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())

	started := make(chan struct{})
	release := make(chan struct{})
	require.NoError(t, p.Submit(funcJob{name: "block", run: func(context.Context) error {
		close(started)
		<-release
		return nil
	}}))
	<-started

	noop := funcJob{name: "noop", run: func(context.Context) error { return nil }}
	require.NoError(t, p.Submit(noop))
	assert.Equal(t, 1, p.QueueSize())

	done := make(chan error, 1)
	go func() { done <- p.Submit(noop) }()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, worker.ErrQueueFull)
	case <-time.After(time.Second):
		t.Fatal("Submit blocked on a full queue")
	}

	close(release)
	p.Stop()
}

func TestPool_SubmitAfterStop(t *testing.T) {
	p := worker.NewPool(1, 1)
	p.Start(context.Background())
	p.Stop()
	p.Stop()

	err := p.Submit(funcJob{name: "late", run: func(context.Context) error { return nil }})
	assert.ErrorIs(t, err, worker.ErrPoolStopped)
}

func TestNewPool_Defaults(t *testing.T) {
	p := worker.NewPool(0, 0)
	p.Start(context.Background())
	defer p.Stop()
	assert.Equal(t, 0, p.QueueSize())
}
