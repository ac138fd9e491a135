package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// Sortable columns and unique constraints for the User entity.
var (
	sortableFields = pkg.Sortable("email", "username")

	uniqueConstraints = []pkg.UniqueConstraint{
		{
			Name:    "idx_users_email",
			Columns: []string{"users.email"},
			Message: "email is already in use",
		},
		{
			Name:    "idx_users_username",
			Columns: []string{"users.username"},
			Message: "username is already taken",
		},
	}
)

// userRepository implements domain.UserRepository on the generic repository.
type userRepository struct {
	*pkg.Repository[domain.User]
}

// NewUserRepository creates a UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{
		Repository: pkg.NewRepository[domain.User](db, sortableFields, uniqueConstraints...),
	}
}

// GetByEmail retrieves a user by email. Emails are stored lowercased.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.GetByField(ctx, "email", email)
}

// GetByUsername retrieves a user by username. Usernames are stored lowercased.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.GetByField(ctx, "username", username)
}
