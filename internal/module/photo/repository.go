package photo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

var sortableFields = pkg.Sortable("captured_at", "uploaded_at")

// photoRepository implements domain.PhotoRepository on the generic repository.
type photoRepository struct {
	*pkg.Repository[domain.SummitPhoto]
}

// NewPhotoRepository creates a PhotoRepository backed by the given GORM database.
func NewPhotoRepository(db *gorm.DB) domain.PhotoRepository {
	return &photoRepository{
		Repository: pkg.NewRepository[domain.SummitPhoto](db, sortableFields),
	}
}

// GetByID retrieves a photo with its peak preloaded.
func (r *photoRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.SummitPhoto, error) {
	var photo domain.SummitPhoto
	err := r.DB().WithContext(ctx).
		Preload("Peak").
		First(&photo, "id = ?", id).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return &photo, nil
}

// GetByOwner returns one page of the owner's photos with peaks preloaded,
// ordered by the requested sort (store-native order when none is given).
func (r *photoRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID, sort domain.SortSpec, page domain.PageRequest) (*domain.PageResult[domain.SummitPhoto], error) {
	base := r.DB().WithContext(ctx).
		Model(&domain.SummitPhoto{}).
		Preload("Peak").
		Where("owner_id = ?", ownerID)

	result, err := pkg.Paginate[domain.SummitPhoto](base, page, pkg.Sort(sort, r.Sortable()))
	if err != nil {
		return nil, r.MapError(err)
	}
	return result, nil
}

// GetLocationsByOwner returns the positions of the owner's geotagged photos.
func (r *photoRepository) GetLocationsByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.SummitPhotoLocation, error) {
	locations := []domain.SummitPhotoLocation{}
	err := r.DB().WithContext(ctx).
		Model(&domain.SummitPhoto{}).
		Select("id, latitude, longitude, altitude").
		Where("owner_id = ?", ownerID).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Find(&locations).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return locations, nil
}

// GetDatesByOwner returns the capture dates of the owner's dated photos.
func (r *photoRepository) GetDatesByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.SummitPhotoDate, error) {
	dates := []domain.SummitPhotoDate{}
	err := r.DB().WithContext(ctx).
		Model(&domain.SummitPhoto{}).
		Select("id, captured_at").
		Where("owner_id = ?", ownerID).
		Where("captured_at IS NOT NULL").
		Find(&dates).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return dates, nil
}
