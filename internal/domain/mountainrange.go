package domain

import "context"

// MountainRange groups peaks; a range may have zero or more peaks.
type MountainRange struct {
	BaseModel
	Name string `gorm:"size:255;not null;uniqueIndex:idx_mountain_ranges_name" json:"name"`
}

// MountainRangeRepository defines the data access interface for mountain ranges.
type MountainRangeRepository interface {
	GetByName(ctx context.Context, name string) (*MountainRange, error)
	GetAll(ctx context.Context, sort SortSpec) ([]MountainRange, error)
	Save(ctx context.Context, r *MountainRange) error
	Count(ctx context.Context) (int64, error)
}
