package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

const (
	nominatimBaseURL = "https://nominatim.openstreetmap.org"
	geocodeTimeout   = 10 * time.Second

	// Nominatim usage policy requires an identifying User-Agent.
	geocodeUserAgent = "wayfarer-travel-assistant"
)

// Geocoder resolves free-text place names to coordinates via Nominatim.
type Geocoder struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewGeocoder(logger *zap.Logger) *Geocoder {
	return &Geocoder{
		baseURL: nominatimBaseURL,
		client:  &http.Client{Timeout: geocodeTimeout},
		logger:  logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the best-match coordinates for a place name, or
// models.ErrNotFound when the service has no match.
func (g *Geocoder) Geocode(ctx context.Context, placeName string) (models.Coordinates, error) {
	l := g.logger.With(zap.String("method", "Geocode"), zap.String("place", placeName))

	q := url.Values{}
	q.Set("q", placeName)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", geocodeUserAgent)

	resp, err := g.client.Do(req)
	metrics.ObserveAdapter("geocode", err)
	if err != nil {
		l.Error("Geocoding request failed", zap.Error(err))
		return models.Coordinates{}, fmt.Errorf("geocoding request failed: %w", models.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Error("Geocoding service returned non-200", zap.Int("status", resp.StatusCode))
		return models.Coordinates{}, fmt.Errorf("geocoding service status %d: %w", resp.StatusCode, models.ErrServiceUnavailable)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return models.Coordinates{}, fmt.Errorf("decoding geocode response: %w", models.ErrServiceUnavailable)
	}
	if len(results) == 0 {
		return models.Coordinates{}, fmt.Errorf("place %q: %w", placeName, models.ErrNotFound)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid latitude in geocode response: %w", models.ErrServiceUnavailable)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("invalid longitude in geocode response: %w", models.ErrServiceUnavailable)
	}

	return models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
