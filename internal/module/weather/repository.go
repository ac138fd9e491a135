package weather

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/pkg"
)

var conditionConstraints = []pkg.UniqueConstraint{
	{
		Name:    "idx_weather_conditions_api_id",
		Columns: []string{"weather_conditions.api_id"},
		Message: "weather condition already exists",
	},
}

// conditionRepository implements domain.WeatherConditionRepository.
type conditionRepository struct {
	*pkg.Repository[domain.WeatherCondition]
}

// NewConditionRepository creates a WeatherConditionRepository backed by the
// given GORM database.
func NewConditionRepository(db *gorm.DB) domain.WeatherConditionRepository {
	return &conditionRepository{
		Repository: pkg.NewRepository[domain.WeatherCondition](db, pkg.Sortable(), conditionConstraints...),
	}
}

// GetByAPIID retrieves a condition by the weather API's condition id.
func (r *conditionRepository) GetByAPIID(ctx context.Context, apiID int) (*domain.WeatherCondition, error) {
	return r.GetByField(ctx, "api_id", apiID)
}

// recordRepository implements domain.WeatherRecordRepository.
type recordRepository struct {
	*pkg.Repository[domain.WeatherRecord]
}

// NewRecordRepository creates a WeatherRecordRepository backed by the given
// GORM database.
func NewRecordRepository(db *gorm.DB) domain.WeatherRecordRepository {
	return &recordRepository{
		Repository: pkg.NewRepository[domain.WeatherRecord](db, pkg.Sortable()),
	}
}

// GetByPhotoID retrieves the weather record stored for a photo, with its
// conditions preloaded.
func (r *recordRepository) GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*domain.WeatherRecord, error) {
	var rec domain.WeatherRecord
	err := r.DB().WithContext(ctx).
		Preload("Conditions").
		Where("photo_id = ?", photoID).
		First(&rec).Error
	if err != nil {
		return nil, r.MapError(err)
	}
	return &rec, nil
}
