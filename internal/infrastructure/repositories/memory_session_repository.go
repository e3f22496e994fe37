package repositories

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"mannequin/internal/domain"
	domainrepos "mannequin/internal/domain/repositories"
	"mannequin/internal/infra"
)

type sessionEntry[T any] struct {
	value    T
	lastSeen time.Time
}

// MemorySessionRepository keeps sessions in process memory. Reads refresh a
// session's last-seen time.
type MemorySessionRepository[T any] struct {
	sessions map[domainrepos.SessionID]*sessionEntry[T]
	mu       sync.Mutex
	now      func() time.Time
}

func NewMemorySessionRepository[T any]() *MemorySessionRepository[T] {
	return &MemorySessionRepository[T]{
		sessions: make(map[domainrepos.SessionID]*sessionEntry[T]),
		now:      time.Now,
	}
}

var _ domainrepos.SessionRepository[io.Closer] = (*MemorySessionRepository[io.Closer])(nil)

func (r *MemorySessionRepository[T]) Save(ctx context.Context, id domainrepos.SessionID, session T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = &sessionEntry[T]{value: session, lastSeen: r.now()}
	return nil
}

func (r *MemorySessionRepository[T]) FindByID(ctx context.Context, id domainrepos.SessionID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.sessions[id]
	if !exists {
		var zero T
		return zero, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	entry.lastSeen = r.now()
	return entry.value, nil
}

func (r *MemorySessionRepository[T]) Delete(ctx context.Context, id domainrepos.SessionID) error {
	r.mu.Lock()
	entry, exists := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	closeSession(entry.value)
	return nil
}

func (r *MemorySessionRepository[T]) DeleteIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var evicted []T
	for id, entry := range r.sessions {
		if entry.lastSeen.Before(cutoff) {
			evicted = append(evicted, entry.value)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, session := range evicted {
		closeSession(session)
	}
	return len(evicted)
}

func (r *MemorySessionRepository[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func closeSession(session any) {
	if c, ok := session.(io.Closer); ok {
		_ = c.Close()
	}
}

// SweepIdle evicts idle sessions every interval until ctx is done.
func SweepIdle[T any](ctx context.Context, repo domainrepos.SessionRepository[T], interval, maxIdle time.Duration, logger *infra.Logger) {
	if logger == nil {
		logger = infra.NopLogger()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := repo.DeleteIdle(ctx, maxIdle); n > 0 {
				logger.Info().Int("evicted", n).Msg("idle sessions evicted")
			}
		}
	}
}
