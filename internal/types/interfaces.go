package types

import (
	"context"
	"time"
)

// ProjectStore persists projects. Implementations return ErrCodeNotFoundProject
// for unknown ids and ErrCodeConflictConcurrent when Put observes a stale Version.
type ProjectStore interface {
	Get(ctx context.Context, id string) (*Project, error)
	// Put inserts or updates p. It succeeds only if the stored version equals
	// p.Version (zero for a new project) and increments p.Version on success.
	Put(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]ProjectSummary, error)
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }
