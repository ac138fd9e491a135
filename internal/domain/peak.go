package domain

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Peak is a mountain peak. Location is a WGS84 point held as a nullable
// latitude/longitude pair; peaks not yet geocoded have neither set.
// The triple (name, elevation, mountain_range_id) is the natural key used by
// data ingestion to decide insert-vs-update.
//
// NameFolded shadows Name lowercased in Go. SQLite's built-in lower() folds
// ASCII only, so case-insensitive matching on names like "Śnieżka" has to
// compare against a fold computed application-side; keeping it in a column
// lets every dialect match with a plain LIKE.
type Peak struct {
	BaseModel
	Name            string         `gorm:"size:255;not null;uniqueIndex:idx_peaks_natural_key" json:"name"`
	NameFolded      string         `gorm:"size:255;not null" json:"-"`
	Elevation       int            `gorm:"not null;uniqueIndex:idx_peaks_natural_key" json:"elevation"`
	Latitude        *float64       `json:"latitude"`
	Longitude       *float64       `json:"longitude"`
	MountainRangeID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_peaks_natural_key" json:"mountainRangeId"`
	MountainRange   *MountainRange `gorm:"foreignKey:MountainRangeID" json:"mountainRange,omitempty"`
}

// BeforeSave keeps the folded name in sync with the name on every write.
func (p *Peak) BeforeSave(tx *gorm.DB) error {
	p.NameFolded = strings.ToLower(p.Name)
	return nil
}

// HasLocation reports whether the peak has been geocoded.
func (p *Peak) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// PeakWithDistance pairs a peak with its computed geodesic distance in meters
// from a query point. Produced only by nearest-peak searches; never stored.
type PeakWithDistance struct {
	Peak     Peak    `gorm:"embedded" json:"peak"`
	Distance float64 `json:"distance"`
}

// PeakRepository defines the data access interface for peaks.
type PeakRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Peak, error)
	GetAll(ctx context.Context, sort SortSpec) ([]Peak, error)
	GetByNaturalKey(ctx context.Context, name string, elevation int, rangeID uuid.UUID) (*Peak, error)
	GetAllWithoutLocation(ctx context.Context) ([]Peak, error)
	// Search is a typeahead-style listing: case-insensitive substring match on
	// name, sorted per spec, capped at limit. No pagination, no total count.
	Search(ctx context.Context, sort SortSpec, nameFilter string, limit int) ([]Peak, error)
	// FindNearby returns peaks ranked by ascending geodesic distance from
	// (lat, lng), optionally restricted to maxDistance meters and to names
	// containing nameFilter. Peaks without a location are excluded.
	FindNearby(ctx context.Context, lat, lng float64, maxDistance *float64, nameFilter string, limit int) ([]PeakWithDistance, error)
	Save(ctx context.Context, peak *Peak) error
	SaveAll(ctx context.Context, peaks []*Peak) error
	Delete(ctx context.Context, peak *Peak) error
	Count(ctx context.Context) (int64, error)
	// CountSummitedBy counts distinct peaks appearing in the user's summit photos.
	CountSummitedBy(ctx context.Context, userID uuid.UUID) (int64, error)
}

// PeakService defines the business logic interface for peaks.
type PeakService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Peak, error)
	Search(ctx context.Context, sort SortSpec, nameFilter string, limit int) ([]Peak, error)
	FindNearby(ctx context.Context, lat, lng float64, maxDistance *float64, nameFilter string, limit int) ([]PeakWithDistance, error)
	Count(ctx context.Context) (int64, error)
	CountSummitedBy(ctx context.Context, userID uuid.UUID) (int64, error)
}
