package storage

import (
	"context"
	"time"
)

// SessionRecord is one signed-in browser session.
type SessionRecord struct {
	ID string
	// Token is the backend bearer token.
	Token string
	// UserJSON is the user object serialized as JSON.
	UserJSON     []byte
	Role         string
	RefreshToken string
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// SessionStore persists browser sessions keyed by opaque session ID.
type SessionStore interface {
	GetSession(ctx context.Context, id string) (SessionRecord, bool, error)
	PutSession(ctx context.Context, record SessionRecord) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
