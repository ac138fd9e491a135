package peak

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

const defaultNearbyLimit = 5

// peakService implements domain.PeakService.
type peakService struct {
	repo domain.PeakRepository
}

// NewPeakService creates a new PeakService with the given repository.
func NewPeakService(repo domain.PeakRepository) domain.PeakService {
	return &peakService{repo: repo}
}

// GetByID retrieves a peak by ID.
func (s *peakService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Peak, error) {
	return s.repo.GetByID(ctx, id)
}

// Search lists peaks filtered by name substring and ordered per the sort spec.
func (s *peakService) Search(ctx context.Context, sort domain.SortSpec, nameFilter string, limit int) ([]domain.Peak, error) {
	return s.repo.Search(ctx, sort, nameFilter, limit)
}

// FindNearby validates the query point and delegates the ranked distance
// query to the repository. An empty candidate set is an empty list, never an
// error.
func (s *peakService) FindNearby(ctx context.Context, lat, lng float64, maxDistance *float64, nameFilter string, limit int) ([]domain.PeakWithDistance, error) {
	if lat < -90 || lat > 90 {
		return nil, domain.NewAppError(domain.CodeValidation, "lat must be between -90 and 90", nil)
	}
	if lng < -180 || lng > 180 {
		return nil, domain.NewAppError(domain.CodeValidation, "lng must be between -180 and 180", nil)
	}
	if maxDistance != nil && *maxDistance < 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "maxDistance must not be negative", nil)
	}
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	return s.repo.FindNearby(ctx, lat, lng, maxDistance, nameFilter, limit)
}

// Count returns the total number of peaks.
func (s *peakService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// CountSummitedBy returns how many distinct peaks the user has summit photos of.
func (s *peakService) CountSummitedBy(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountSummitedBy(ctx, userID)
}
