package weather

import (
	"context"

	"github.com/google/uuid"

	"github.com/Dawstr8/peek-a-peak/internal/domain"
)

// weatherService implements domain.WeatherService.
type weatherService struct {
	client     Client
	conditions domain.WeatherConditionRepository
	records    domain.WeatherRecordRepository
}

// NewWeatherService creates a new WeatherService.
func NewWeatherService(client Client, conditions domain.WeatherConditionRepository, records domain.WeatherRecordRepository) domain.WeatherService {
	return &weatherService{
		client:     client,
		conditions: conditions,
		records:    records,
	}
}

// RecordForPhoto fetches the weather at the photo's capture time and position
// and stores it under the photo's id.
func (s *weatherService) RecordForPhoto(ctx context.Context, photo *domain.SummitPhoto) (*domain.WeatherRecord, error) {
	if photo.CapturedAt == nil {
		return nil, domain.NewAppError(domain.CodeValidation, "photo has no capture time", nil)
	}
	if photo.Latitude == nil || photo.Longitude == nil {
		return nil, domain.NewAppError(domain.CodeValidation, "photo has no position", nil)
	}

	obs, err := s.client.Timemachine(ctx, *photo.Latitude, *photo.Longitude, *photo.CapturedAt)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to fetch weather", err)
	}

	conditions, err := s.resolveConditions(ctx, obs.Conditions)
	if err != nil {
		return nil, err
	}

	rec := &domain.WeatherRecord{
		PhotoID:    photo.ID,
		Sunrise:    obs.Sunrise,
		Sunset:     obs.Sunset,
		Temp:       obs.Temp,
		FeelsLike:  obs.FeelsLike,
		DewPoint:   obs.DewPoint,
		Pressure:   obs.Pressure,
		Humidity:   obs.Humidity,
		Clouds:     obs.Clouds,
		Visibility: obs.Visibility,
		WindSpeed:  obs.WindSpeed,
		WindDeg:    obs.WindDeg,
		Rain:       obs.Rain,
		Snow:       obs.Snow,
		Conditions: conditions,
	}
	if err := s.records.Save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// resolveConditions maps observed conditions to stored rows, creating any the
// store has not seen yet. Conditions are shared across records, keyed by the
// weather API's condition id.
func (s *weatherService) resolveConditions(ctx context.Context, observed []ObservedCondition) ([]domain.WeatherCondition, error) {
	conditions := make([]domain.WeatherCondition, 0, len(observed))
	for _, oc := range observed {
		existing, err := s.conditions.GetByAPIID(ctx, oc.ID)
		if err == nil {
			conditions = append(conditions, *existing)
			continue
		}
		if !domain.IsNotFound(err) {
			return nil, err
		}

		cond := &domain.WeatherCondition{
			APIID:       oc.ID,
			Main:        oc.Main,
			Description: oc.Description,
			Icon:        oc.Icon,
		}
		if err := s.conditions.Save(ctx, cond); err != nil {
			// Another upload may have stored it between the lookup and the
			// insert; re-read on duplicate.
			if domain.IsAlreadyExists(err) {
				if existing, rerr := s.conditions.GetByAPIID(ctx, oc.ID); rerr == nil {
					conditions = append(conditions, *existing)
					continue
				}
			}
			return nil, err
		}
		conditions = append(conditions, *cond)
	}
	return conditions, nil
}

// GetByPhotoID returns the weather record stored for a photo.
func (s *weatherService) GetByPhotoID(ctx context.Context, photoID uuid.UUID) (*domain.WeatherRecord, error) {
	return s.records.GetByPhotoID(ctx, photoID)
}
