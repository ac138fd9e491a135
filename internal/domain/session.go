package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is a server-side login session referenced by the session cookie.
type Session struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	ExpiresAt time.Time `gorm:"not null" json:"expiresAt"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
}

// SessionRepository defines the data access interface for login sessions.
type SessionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Session, error)
	// GetActiveByID returns the session only when it is active and not expired.
	GetActiveByID(ctx context.Context, id uuid.UUID) (*Session, error)
	// Invalidate deactivates a session. Unknown or already-inactive sessions are a no-op.
	Invalidate(ctx context.Context, id uuid.UUID) error
}
