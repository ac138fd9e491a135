package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// sessionRepository implements domain.SessionRepository on the generic repository.
type sessionRepository struct {
	*pkg.Repository[domain.Session]
}

// NewSessionRepository creates a SessionRepository backed by the given GORM database.
func NewSessionRepository(db *gorm.DB) domain.SessionRepository {
	return &sessionRepository{
		Repository: pkg.NewRepository[domain.Session](db, pkg.Sortable()),
	}
}

// Create persists a new active session for the user, expiring after ttl.
func (r *sessionRepository) Create(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*domain.Session, error) {
	session := &domain.Session{
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
		IsActive:  true,
	}
	if err := r.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveByID returns the session only when it is active and not expired.
func (r *sessionRepository) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	var session domain.Session
	err := r.DB().WithContext(ctx).
		Where("id = ? AND is_active = ? AND expires_at > ?", id, true, time.Now().UTC()).
		First(&session).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return &session, nil
}

// Invalidate deactivates a session. An unknown or already-inactive session is
// a no-op, so logout is idempotent.
func (r *sessionRepository) Invalidate(ctx context.Context, id uuid.UUID) error {
	session, err := r.GetActiveByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil
		}
		return err
	}

	session.IsActive = false
	return r.Save(ctx, session)
}
