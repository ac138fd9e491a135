package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/3.0/onecall/timemachine"

// Observation is one historical weather data point as returned by the
// OpenWeatherMap One Call timemachine endpoint, already unwrapped.
type Observation struct {
	Sunrise    time.Time
	Sunset     time.Time
	Temp       float64
	FeelsLike  float64
	DewPoint   float64
	Pressure   int
	Humidity   int
	Clouds     int
	Visibility int
	WindSpeed  float64
	WindDeg    int
	Rain       *float64
	Snow       *float64
	Conditions []ObservedCondition
}

// ObservedCondition is one condition group within an observation.
type ObservedCondition struct {
	ID          int
	Main        string
	Description string
	Icon        string
}

// Client fetches historical weather observations.
type Client interface {
	Timemachine(ctx context.Context, lat, lng float64, at time.Time) (*Observation, error)
}

// HTTPClient calls the OpenWeatherMap One Call timemachine API.
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewHTTPClient creates a weather client. An empty baseURL picks the
// production endpoint.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// timemachineResponse mirrors the wire format of the timemachine endpoint.
type timemachineResponse struct {
	Data []struct {
		Sunrise    int64   `json:"sunrise"`
		Sunset     int64   `json:"sunset"`
		Temp       float64 `json:"temp"`
		FeelsLike  float64 `json:"feels_like"`
		DewPoint   float64 `json:"dew_point"`
		Pressure   int     `json:"pressure"`
		Humidity   int     `json:"humidity"`
		Clouds     int     `json:"clouds"`
		Visibility int     `json:"visibility"`
		WindSpeed  float64 `json:"wind_speed"`
		WindDeg    int     `json:"wind_deg"`
		Rain       *struct {
			OneHour float64 `json:"1h"`
		} `json:"rain"`
		Snow *struct {
			OneHour float64 `json:"1h"`
		} `json:"snow"`
		Weather []struct {
			ID          int    `json:"id"`
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"data"`
}

// Timemachine fetches the weather at the given position and moment.
func (c *HTTPClient) Timemachine(ctx context.Context, lat, lng float64, at time.Time) (*Observation, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("dt", strconv.FormatInt(at.Unix(), 10))
	params.Set("units", "metric")
	params.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var body timemachineResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}
	if len(body.Data) == 0 {
		return nil, fmt.Errorf("weather API returned no data points")
	}

	d := body.Data[0]
	obs := &Observation{
		Sunrise:    time.Unix(d.Sunrise, 0).UTC(),
		Sunset:     time.Unix(d.Sunset, 0).UTC(),
		Temp:       d.Temp,
		FeelsLike:  d.FeelsLike,
		DewPoint:   d.DewPoint,
		Pressure:   d.Pressure,
		Humidity:   d.Humidity,
		Clouds:     d.Clouds,
		Visibility: d.Visibility,
		WindSpeed:  d.WindSpeed,
		WindDeg:    d.WindDeg,
	}
	if d.Rain != nil {
		obs.Rain = &d.Rain.OneHour
	}
	if d.Snow != nil {
		obs.Snow = &d.Snow.OneHour
	}
	for _, w := range d.Weather {
		obs.Conditions = append(obs.Conditions, ObservedCondition{
			ID:          w.ID,
			Main:        w.Main,
			Description: w.Description,
			Icon:        w.Icon,
		})
	}
	return obs, nil
}
