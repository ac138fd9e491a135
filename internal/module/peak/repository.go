package peak

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

// Sortable columns and unique constraints for the Peak entity.
var (
	sortableFields = pkg.Sortable("name", "elevation")

	uniqueConstraints = []pkg.UniqueConstraint{
		{
			Name:    "idx_peaks_natural_key",
			Columns: []string{"peaks.name", "peaks.elevation", "peaks.mountain_range_id"},
			Message: "peak with this name and elevation already exists in the mountain range",
		},
	}
)

// peakRepository implements domain.PeakRepository on top of the generic
// repository, adding the filtered listing and the geospatial queries.
type peakRepository struct {
	*pkg.Repository[domain.Peak]
}

// NewPeakRepository creates a PeakRepository backed by the given GORM database.
func NewPeakRepository(db *gorm.DB) domain.PeakRepository {
	return &peakRepository{
		Repository: pkg.NewRepository[domain.Peak](db, sortableFields, uniqueConstraints...),
	}
}

// GetByID retrieves a peak with its mountain range loaded.
func (r *peakRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Peak, error) {
	var peak domain.Peak
	err := r.DB().WithContext(ctx).
		Preload("MountainRange").
		First(&peak, "id = ?", id).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return &peak, nil
}

// GetAll returns all peaks with their mountain ranges, ordered by the
// requested sort.
func (r *peakRepository) GetAll(ctx context.Context, sort domain.SortSpec) ([]domain.Peak, error) {
	var peaks []domain.Peak
	err := r.DB().WithContext(ctx).
		Preload("MountainRange").
		Scopes(pkg.Sort(sort, r.Sortable())).
		Find(&peaks).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return peaks, nil
}

// GetByNaturalKey looks a peak up by the (name, elevation, mountain range)
// tuple that upstream ingestion uses to decide insert-vs-update.
func (r *peakRepository) GetByNaturalKey(ctx context.Context, name string, elevation int, rangeID uuid.UUID) (*domain.Peak, error) {
	return r.GetByFields(ctx, map[string]any{
		"name":              name,
		"elevation":         elevation,
		"mountain_range_id": rangeID,
	})
}

// GetAllWithoutLocation returns peaks that have not been geocoded yet.
func (r *peakRepository) GetAllWithoutLocation(ctx context.Context) ([]domain.Peak, error) {
	var peaks []domain.Peak
	err := r.DB().WithContext(ctx).
		Where("latitude IS NULL OR longitude IS NULL").
		Find(&peaks).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return peaks, nil
}

// nameContains matches peaks whose name contains filter, case-insensitively.
// Both sides are folded in Go: the stored side through the name_folded column,
// the filter here. SQLite's lower() only folds ASCII, so folding in SQL would
// miss names like "Śnieżka".
func nameContains(filter string) clause.Expression {
	return clause.Like{
		Column: clause.Column{Table: "peaks", Name: "name_folded"},
		Value:  "%" + strings.ToLower(filter) + "%",
	}
}

// Search returns peaks whose name contains nameFilter (case-insensitive),
// ordered per the sort spec and capped at limit. No pagination: this backs
// typeahead lookups, so a total count is not needed.
func (r *peakRepository) Search(ctx context.Context, sort domain.SortSpec, nameFilter string, limit int) ([]domain.Peak, error) {
	q := r.DB().WithContext(ctx).Preload("MountainRange")
	if nameFilter != "" {
		q = q.Where(nameContains(nameFilter))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var peaks []domain.Peak
	if err := q.Scopes(pkg.Sort(sort, r.Sortable())).Find(&peaks).Error; err != nil {
		return nil, r.MapError(err)
	}
	return peaks, nil
}

// FindNearby computes the geodesic distance from (lat, lng) to every geocoded
// peak in the store, optionally restricts to maxDistance meters and to names
// containing nameFilter, and returns up to limit peaks by ascending distance.
// The identifier is an explicit secondary sort key so equidistant peaks come
// back in the same order on every engine.
func (r *peakRepository) FindNearby(ctx context.Context, lat, lng float64, maxDistance *float64, nameFilter string, limit int) ([]domain.PeakWithDistance, error) {
	db := r.DB().WithContext(ctx)

	q := db.Model(&domain.Peak{}).
		Select("peaks.*, (?) AS distance", pkg.DistanceMeters(db, lat, lng)).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL")

	if maxDistance != nil {
		q = q.Where(pkg.WithinDistance(db, lat, lng, *maxDistance))
	}
	if nameFilter != "" {
		q = q.Where(nameContains(nameFilter))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []domain.PeakWithDistance
	if err := q.Order("distance asc, id asc").Find(&results).Error; err != nil {
		return nil, r.MapError(err)
	}
	if len(results) == 0 {
		return []domain.PeakWithDistance{}, nil
	}

	if err := r.attachMountainRanges(ctx, results); err != nil {
		return nil, err
	}
	return results, nil
}

// attachMountainRanges loads the ranges of the returned peaks in one query.
// The distance scan bypasses association preloading, so it is done by hand.
func (r *peakRepository) attachMountainRanges(ctx context.Context, results []domain.PeakWithDistance) error {
	idSet := make(map[uuid.UUID]struct{}, len(results))
	ids := make([]uuid.UUID, 0, len(results))
	for i := range results {
		id := results[i].Peak.MountainRangeID
		if _, seen := idSet[id]; !seen {
			idSet[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	var ranges []domain.MountainRange
	if err := r.DB().WithContext(ctx).Where("id IN ?", ids).Find(&ranges).Error; err != nil {
		return r.MapError(err)
	}

	byID := make(map[uuid.UUID]domain.MountainRange, len(ranges))
	for _, mr := range ranges {
		byID[mr.ID] = mr
	}
	for i := range results {
		if mr, ok := byID[results[i].Peak.MountainRangeID]; ok {
			mr := mr
			results[i].Peak.MountainRange = &mr
		}
	}
	return nil
}

// CountSummitedBy counts distinct peaks appearing in the user's summit photos.
func (r *peakRepository) CountSummitedBy(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).
		Model(&domain.Peak{}).
		Distinct("peaks.id").
		Joins("JOIN summit_photos ON summit_photos.peak_id = peaks.id").
		Where("summit_photos.owner_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, r.MapError(err)
	}
	return count, nil
}
