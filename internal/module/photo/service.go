package photo

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/storage"
)

// photoService implements domain.PhotoService.
type photoService struct {
	photos  domain.PhotoRepository
	users   domain.UserRepository
	store   storage.Storage
	weather domain.WeatherService
}

// NewPhotoService creates a new PhotoService. weather may be nil when no
// weather API is configured; uploads then skip weather recording.
func NewPhotoService(photos domain.PhotoRepository, users domain.UserRepository, store storage.Storage, weather domain.WeatherService) domain.PhotoService {
	return &photoService{
		photos:  photos,
		users:   users,
		store:   store,
		weather: weather,
	}
}

// Upload stores the file under a server-generated name, persists the photo
// row, then records the weather when the photo is dated and geotagged.
func (s *photoService) Upload(ctx context.Context, photo *domain.SummitPhoto, upload domain.PhotoUpload) error {
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return domain.NewAppError(domain.CodeValidation, "only image uploads are accepted", nil)
	}
	if (photo.Latitude == nil) != (photo.Longitude == nil) {
		return domain.NewAppError(domain.CodeValidation, "latitude and longitude must be set together", nil)
	}

	photo.FileName = storedFileName(upload.OriginalName)
	photo.UploadedAt = time.Now().UTC()

	if err := s.store.Save(ctx, photo.FileName, upload.Content, upload.Size, upload.ContentType); err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to store file", err)
	}

	if err := s.photos.Save(ctx, photo); err != nil {
		// Don't leave an orphaned file behind the failed row.
		if derr := s.store.Delete(ctx, photo.FileName); derr != nil {
			slog.Warn("orphaned upload cleanup failed",
				slog.String("file", photo.FileName),
				slog.Any("error", derr))
		}
		return err
	}

	if s.weather != nil && photo.CapturedAt != nil && photo.Latitude != nil && photo.Longitude != nil {
		if _, err := s.weather.RecordForPhoto(ctx, photo); err != nil {
			slog.Warn("weather recording failed",
				slog.String("photo_id", photo.ID.String()),
				slog.Any("error", err))
		}
	}
	return nil
}

// GetByID returns the photo. Photos of private profiles are visible only to
// their owner.
func (s *photoService) GetByID(ctx context.Context, viewer *domain.User, id uuid.UUID) (*domain.SummitPhoto, error) {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, photo.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.IsPrivate && (viewer == nil || viewer.ID != owner.ID) {
		return nil, domain.ErrForbidden
	}
	return photo, nil
}

// Delete removes the photo's file and row. Only the owner may delete; the
// file goes first so a failed row delete never leaves a dangling file.
func (s *photoService) Delete(ctx context.Context, owner *domain.User, id uuid.UUID) error {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if photo.OwnerID != owner.ID {
		return domain.ErrForbidden
	}

	if err := s.store.Delete(ctx, photo.FileName); err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to delete file", err)
	}
	return s.photos.Delete(ctx, photo)
}

// storedFileName builds the server-side file name: a fresh uuid keeping the
// original extension, lowercased.
func storedFileName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}
