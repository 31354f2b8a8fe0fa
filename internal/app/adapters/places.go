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
	placesBaseURL = "https://maps.googleapis.com"
	placesTimeout = 10 * time.Second
)

// PlacesClient wraps the Google Places nearby search.
type PlacesClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
}

func NewPlacesClient(apiKey string, logger *zap.Logger) *PlacesClient {
	return &PlacesClient{
		baseURL: placesBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: placesTimeout},
		logger:  logger,
	}
}

type placesResponse struct {
	Results []struct {
		Name     string  `json:"name"`
		Vicinity string  `json:"vicinity"`
		Rating   float64 `json:"rating"`
	} `json:"results"`
	Status string `json:"status"`
}

// FetchNearby returns places of the given category around a location. An
// empty result set is not an error.
func (p *PlacesClient) FetchNearby(ctx context.Context, location models.Coordinates, radiusMeters int, category string) ([]models.NearbyPlace, error) {
	l := p.logger.With(zap.String("method", "FetchNearby"), zap.String("category", category))

	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", location.Latitude, location.Longitude))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("type", category)
	q.Set("key", p.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/maps/api/place/nearbysearch/json?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building places request: %w", err)
	}

	resp, err := p.client.Do(req)
	metrics.ObserveAdapter("places", err)
	if err != nil {
		l.Error("Places request failed", zap.Error(err))
		return nil, fmt.Errorf("places request failed: %w", models.ErrServiceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.Error("Places service returned non-200", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("places service status %d: %w", resp.StatusCode, models.ErrServiceUnavailable)
	}

	var payload placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding places response: %w", models.ErrServiceUnavailable)
	}

	places := make([]models.NearbyPlace, 0, len(payload.Results))
	for _, r := range payload.Results {
		places = append(places, models.NearbyPlace{
			Name:    r.Name,
			Address: r.Vicinity,
			Rating:  r.Rating,
		})
	}
	return places, nil
}
