package domain

import (
	"context"

	"github.com/google/uuid"
)

// User represents a registered user. Email and username are stored lowercased
// and must be unique; UsernameDisplay keeps the casing chosen at registration.
type User struct {
	BaseModel
	Email           string `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Username        string `gorm:"size:30;not null;uniqueIndex:idx_users_username" json:"username"`
	UsernameDisplay string `gorm:"size:30;not null" json:"usernameDisplay"`
	HashedPassword  string `gorm:"size:255;not null" json:"-"`
	IsPrivate       bool   `gorm:"not null;default:false" json:"isPrivate"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
	Count(ctx context.Context) (int64, error)
}

// UserService defines the business logic interface for users. The
// username-scoped reads take the viewing user (nil for anonymous callers) and
// enforce the privacy rule: a private profile is visible only to itself.
type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	SetPrivacy(ctx context.Context, id uuid.UUID, isPrivate bool) (*User, error)
	GetPhotosByUsername(ctx context.Context, viewer *User, username string, sort SortSpec, page PageRequest) (*PageResult[SummitPhoto], error)
	GetPhotoLocationsByUsername(ctx context.Context, viewer *User, username string) ([]SummitPhotoLocation, error)
	GetPhotoDatesByUsername(ctx context.Context, viewer *User, username string) ([]SummitPhotoDate, error)
	CountSummitedPeaksByUsername(ctx context.Context, viewer *User, username string) (int64, error)
}
