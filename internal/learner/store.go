package learner

import (
	"sync"
	"time"

	"github.com/aziyat1977/Inter-1.1/internal/logger"
	"github.com/google/uuid"
)

// Store keeps learner contexts in memory keyed by id. Nothing survives a
// restart.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	opts    []Option
	now     func() time.Time
	newID   func() string
	log     *logger.Logger
}

type storeEntry struct {
	ctx      *Context
	lastSeen time.Time
}

type StoreOption func(*Store)

// WithContextOptions applies opts to every context the store creates.
func WithContextOptions(opts ...Option) StoreOption {
	return func(s *Store) { s.opts = append(s.opts, opts...) }
}

func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		entries: make(map[string]*storeEntry),
		now:     time.Now,
		newID:   uuid.NewString,
		log:     logger.Default().WithPrefix("learners"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the context for id and marks it as seen.
func (s *Store) Get(id string) (*Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	s.touch(e)
	return e.ctx, true
}

// GetOrCreate returns the context for id, creating a new one under a fresh id
// when id is empty or unknown. The bool reports whether it was created.
func (s *Store) GetOrCreate(id string) (*Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok && id != "" {
		s.touch(e)
		return e.ctx, false
	}
	lc := New(s.newID(), s.opts...)
	e := &storeEntry{ctx: lc}
	s.entries[lc.ID()] = e
	s.touch(e)
	s.log.Debug("created learner %s (%d active)", lc.ID(), len(s.entries))
	return lc, true
}

func (s *Store) touch(e *storeEntry) {
	now := s.now()
	e.lastSeen = now
	e.ctx.RecordActivity(now)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Each calls fn for every live context. fn must not call back into the store.
func (s *Store) Each(fn func(*Context)) {
	s.mu.Lock()
	ctxs := make([]*Context, 0, len(s.entries))
	for _, e := range s.entries {
		ctxs = append(ctxs, e.ctx)
	}
	s.mu.Unlock()
	for _, lc := range ctxs {
		fn(lc)
	}
}

// Sweep closes and drops contexts not seen within ttl of now. It returns how
// many were removed.
func (s *Store) Sweep(now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	var idle []*Context
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > ttl {
			idle = append(idle, e.ctx)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, lc := range idle {
		lc.Close()
	}
	if len(idle) > 0 {
		s.log.Info("swept %d idle learners", len(idle))
	}
	return len(idle)
}

// CloseAll tears down every context; used at shutdown.
func (s *Store) CloseAll() {
	s.mu.Lock()
	entries := s.entries
	s.entries = make(map[string]*storeEntry)
	s.mu.Unlock()
	for _, e := range entries {
		e.ctx.Close()
	}
}
