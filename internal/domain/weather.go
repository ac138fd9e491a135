package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WeatherCondition is one weather condition group as reported by the weather
// API (Rain, Snow, Clear, ...). Conditions are deduplicated by the API's own
// condition id.
type WeatherCondition struct {
	BaseModel
	APIID       int    `gorm:"column:api_id;not null;uniqueIndex:idx_weather_conditions_api_id" json:"apiId"`
	Main        string `gorm:"size:50" json:"main"`
	Description string `gorm:"size:255" json:"description"`
	Icon        string `gorm:"size:10" json:"icon"`
}

// WeatherRecord is the historical weather snapshot stored for a summit photo.
type WeatherRecord struct {
	BaseModel
	PhotoID uuid.UUID `gorm:"type:uuid;not null;index" json:"photoId"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`

	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feelsLike"`
	DewPoint  float64 `json:"dewPoint"`

	Pressure   int `json:"pressure"`
	Humidity   int `json:"humidity"`
	Clouds     int `json:"clouds"`
	Visibility int `json:"visibility"`

	WindSpeed float64 `json:"windSpeed"`
	WindDeg   int     `json:"windDeg"`

	Rain *float64 `json:"rain"`
	Snow *float64 `json:"snow"`

	Conditions []WeatherCondition `gorm:"many2many:weather_record_conditions" json:"conditions"`
}

// WeatherConditionRepository defines the data access interface for weather conditions.
type WeatherConditionRepository interface {
	GetByAPIID(ctx context.Context, apiID int) (*WeatherCondition, error)
	Save(ctx context.Context, c *WeatherCondition) error
}

// WeatherRecordRepository defines the data access interface for weather records.
type WeatherRecordRepository interface {
	GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*WeatherRecord, error)
	Save(ctx context.Context, rec *WeatherRecord) error
}

// WeatherService fetches historical weather for summit photos and stores it.
type WeatherService interface {
	// RecordForPhoto fetches the weather at the photo's capture time and
	// position and stores it under the photo's id. Returns ErrValidation when
	// the photo has no capture time or no position.
	RecordForPhoto(ctx context.Context, photo *SummitPhoto) (*WeatherRecord, error)
	GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*WeatherRecord, error)
}
