package mountainrange

import (
	"context"

	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

var (
	sortableFields = pkg.Sortable("name")

	uniqueConstraints = []pkg.UniqueConstraint{
		{
			Name:    "idx_mountain_ranges_name",
			Columns: []string{"mountain_ranges.name"},
			Message: "mountain range already exists",
		},
	}
)

// rangeRepository implements domain.MountainRangeRepository.
type rangeRepository struct {
	*pkg.Repository[domain.MountainRange]
}

// NewRangeRepository creates a MountainRangeRepository backed by the given
// GORM database.
func NewRangeRepository(db *gorm.DB) domain.MountainRangeRepository {
	return &rangeRepository{
		Repository: pkg.NewRepository[domain.MountainRange](db, sortableFields, uniqueConstraints...),
	}
}

// GetByName retrieves a range by its exact name.
func (r *rangeRepository) GetByName(ctx context.Context, name string) (*domain.MountainRange, error) {
	return r.GetByField(ctx, "name", name)
}
