package repositories

import (
	"context"
	"time"
)

type SessionID string

// SessionRepository keeps one value per browser session in process memory.
type SessionRepository[T any] interface {
	Save(ctx context.Context, id SessionID, session T) error
	FindByID(ctx context.Context, id SessionID) (T, error)
	Delete(ctx context.Context, id SessionID) error
	// DeleteIdle removes sessions untouched for longer than maxIdle and returns how many went away.
	DeleteIdle(ctx context.Context, maxIdle time.Duration) int
}
