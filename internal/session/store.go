package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store holds open pages by id. Pages untouched for longer than the TTL are
// dropped by Sweep.
type Store struct {
	opts   Options
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu    sync.Mutex
	pages map[string]*entry
}

type entry struct {
	page     *Page
	lastSeen time.Time
}

func NewStore(opts Options, ttl time.Duration) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		opts:   opts,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
		pages:  map[string]*entry{},
	}
}

// New opens a fresh page with a random id.
func (s *Store) New() *Page {
	p := NewPage(uuid.New().String(), s.opts)
	s.mu.Lock()
	s.pages[p.ID] = &entry{page: p, lastSeen: s.now()}
	s.mu.Unlock()
	return p
}

// Get returns the page with id and marks it as seen. The second result is
// false when the page is unknown or expired.
func (s *Store) Get(id string) (*Page, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.touchLocked(id)
	if !ok {
		return nil, false
	}
	return e.page, true
}

// Touch marks the page with id as seen, keeping it open for another TTL.
// It reports false once the page is unknown or expired.
func (s *Store) Touch(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.touchLocked(id)
	return ok
}

func (s *Store) touchLocked(id string) (*entry, bool) {
	e, ok := s.pages[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(e.lastSeen) > s.ttl {
		delete(s.pages, id)
		return nil, false
	}
	e.lastSeen = now
	return e, true
}

// Len reports the number of open pages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pages)
}

// Sweep drops expired pages and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.pages {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.pages, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Info("expired idle pages", "removed", n, "open", s.Len())
			}
		}
	}
}
