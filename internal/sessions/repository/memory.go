package repository

import (
	"context"
	"sync"
	"time"

	sessionserrors "lashstudio/internal/sessions/errors"
)

type memoryEntry struct {
	rec       *Record
	expiresAt time.Time
}

type memorySessionRepository struct {
	mu       sync.Mutex
	entries  map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// MemorySessionRepository keeps sessions in process memory. Every write
// extends the entry's lifetime by ttl; a background sweeper drops expired
// entries until Stop is called.
type MemorySessionRepository interface {
	SessionRepository
	Stop()
}

func NewMemorySessionRepository(ttl time.Duration) MemorySessionRepository {
	return newMemorySessionRepository(ttl, time.Now, true)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time, sweep bool) *memorySessionRepository {
	r := &memorySessionRepository{
		entries: make(map[string]*memoryEntry),
		ttl:     ttl,
		now:     now,
		stopCh:  make(chan struct{}),
	}
	if sweep {
		go r.sweeper()
	}
	return r
}

func (r *memorySessionRepository) sweeper() {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.stopCh:
			return
		}
	}
}

func (r *memorySessionRepository) sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, e := range r.entries {
		if !now.Before(e.expiresAt) {
			delete(r.entries, id)
			removed++
		}
	}
	return removed
}

func (r *memorySessionRepository) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *memorySessionRepository) Create(ctx context.Context, rec *Record) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.entries[rec.ID]; ok && now.Before(e.expiresAt) {
		return sessionserrors.ErrConflict
	}

	rec.Revision = 1
	rec.CreatedAt = now.UTC()
	rec.UpdatedAt = rec.CreatedAt
	r.entries[rec.ID] = &memoryEntry{rec: rec.Clone(), expiresAt: now.Add(r.ttl)}
	return nil
}

func (r *memorySessionRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, sessionserrors.ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.entries, id)
		return nil, sessionserrors.ErrExpired
	}
	return e.rec.Clone(), nil
}

func (r *memorySessionRepository) Update(ctx context.Context, rec *Record) error {
	if err := validateID(rec.ID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	e, ok := r.entries[rec.ID]
	if !ok {
		return sessionserrors.ErrNotFound
	}
	if !now.Before(e.expiresAt) {
		delete(r.entries, rec.ID)
		return sessionserrors.ErrExpired
	}
	if e.rec.Revision != rec.Revision {
		return sessionserrors.ErrConflict
	}

	rec.Revision++
	rec.CreatedAt = e.rec.CreatedAt
	rec.UpdatedAt = now.UTC()
	e.rec = rec.Clone()
	e.expiresAt = now.Add(r.ttl)
	return nil
}

func (r *memorySessionRepository) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return sessionserrors.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *memorySessionRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
