package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

const (
	openWeatherBaseURL = "https://api.openweathermap.org"
	weatherTimeout     = 10 * time.Second
)

// WeatherClient fetches current conditions from OpenWeather.
type WeatherClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewWeatherClient(apiKey string, logger *zap.Logger) *WeatherClient {
	return &WeatherClient{
		baseURL: openWeatherBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: weatherTimeout},
		logger:  logger,
	}
}

type openWeatherResponse struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Rain *struct {
		OneHour   *float64 `json:"1h"`
		ThreeHour *float64 `json:"3h"`
	} `json:"rain"`
}

// FetchWeather returns the current reading for a city in metric units.
// Unknown cities map to models.ErrNotFound.
func (w *WeatherClient) FetchWeather(ctx context.Context, cityName string) (models.WeatherReading, error) {
	l := w.logger.With(zap.String("method", "FetchWeather"), zap.String("city", cityName))

	q := url.Values{}
	q.Set("q", cityName)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.baseURL+"/data/2.5/weather?"+q.Encode(), nil)
	if err != nil {
		return models.WeatherReading{}, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := w.client.Do(req)
	metrics.ObserveAdapter("weather", err)
	if err != nil {
		l.Error("Weather request failed", zap.Error(err))
		return models.WeatherReading{}, fmt.Errorf("weather request failed: %w", models.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return models.WeatherReading{}, fmt.Errorf("city %q: %w", cityName, models.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		l.Error("Weather service returned non-200", zap.Int("status", resp.StatusCode))
		return models.WeatherReading{}, fmt.Errorf("weather service status %d: %w", resp.StatusCode, models.ErrServiceUnavailable)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.WeatherReading{}, fmt.Errorf("decoding weather response: %w", models.ErrServiceUnavailable)
	}

	reading := models.WeatherReading{
		TemperatureCelsius: payload.Main.Temp,
	}
	if len(payload.Weather) > 0 {
		reading.Description = payload.Weather[0].Description
	}
	if payload.Rain != nil {
		reading.RainLastHourMm = payload.Rain.OneHour
		reading.RainLast3HourMm = payload.Rain.ThreeHour
	}

	return reading, nil
}
