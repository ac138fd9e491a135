package user

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// userService implements domain.UserService. It aggregates the user's photos
// and summit stats, applying the profile privacy rule in one place.
type userService struct {
	users  domain.UserRepository
	photos domain.PhotoRepository
	peaks  domain.PeakRepository
}

// NewUserService creates a new UserService with the given repositories.
func NewUserService(users domain.UserRepository, photos domain.PhotoRepository, peaks domain.PeakRepository) domain.UserService {
	return &userService{
		users:  users,
		photos: photos,
		peaks:  peaks,
	}
}

// GetByID retrieves a user by ID.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username, case-insensitively.
func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, strings.ToLower(username))
}

// SetPrivacy updates the user's profile visibility.
func (s *userService) SetPrivacy(ctx context.Context, id uuid.UUID, isPrivate bool) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsPrivate = isPrivate
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPhotosByUsername returns one page of the user's photos.
func (s *userService) GetPhotosByUsername(ctx context.Context, viewer *domain.User, username string, sort domain.SortSpec, page domain.PageRequest) (*domain.PageResult[domain.SummitPhoto], error) {
	target, err := s.visibleUser(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	return s.photos.GetByOwner(ctx, target.ID, sort, page)
}

// GetPhotoLocationsByUsername returns the positions of the user's geotagged photos.
func (s *userService) GetPhotoLocationsByUsername(ctx context.Context, viewer *domain.User, username string) ([]domain.SummitPhotoLocation, error) {
	target, err := s.visibleUser(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	return s.photos.GetLocationsByOwner(ctx, target.ID)
}

// GetPhotoDatesByUsername returns the capture dates of the user's photos.
func (s *userService) GetPhotoDatesByUsername(ctx context.Context, viewer *domain.User, username string) ([]domain.SummitPhotoDate, error) {
	target, err := s.visibleUser(ctx, viewer, username)
	if err != nil {
		return nil, err
	}
	return s.photos.GetDatesByOwner(ctx, target.ID)
}

// CountSummitedPeaksByUsername counts distinct peaks in the user's photos.
func (s *userService) CountSummitedPeaksByUsername(ctx context.Context, viewer *domain.User, username string) (int64, error) {
	target, err := s.visibleUser(ctx, viewer, username)
	if err != nil {
		return 0, err
	}
	return s.peaks.CountSummitedBy(ctx, target.ID)
}

// visibleUser resolves the username and enforces the privacy rule: private
// profiles are visible only to themselves.
func (s *userService) visibleUser(ctx context.Context, viewer *domain.User, username string) (*domain.User, error) {
	target, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.IsPrivate && (viewer == nil || viewer.ID != target.ID) {
		return nil, domain.ErrForbidden
	}
	return target, nil
}
