// Package cafes owns the cafes/restaurants page backed by the places nearby
// search.
package cafes

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

const (
	searchRadiusMeters = 1500
	searchCategory     = "restaurant"

	noResultsMessage = "cafes or restaurants found soon."
)

// Geocoder resolves the free-text location before the nearby search.
type Geocoder interface {
	Geocode(ctx context.Context, placeName string) (models.Coordinates, error)
}

// PlacesSearcher runs the nearby search.
type PlacesSearcher interface {
	FetchNearby(ctx context.Context, location models.Coordinates, radiusMeters int, category string) ([]models.NearbyPlace, error)
}

type Handler struct {
	geocoder Geocoder
	places   PlacesSearcher
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(geocoder Geocoder, places PlacesSearcher, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{geocoder: geocoder, places: places, sessions: sessions, logger: logger}
}

// Search lists restaurants within 1.5 km of the location as
// "Name / Address / Rating" rows. No results is a message, not an error.
func (h *Handler) Search(c *gin.Context) {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, session.PageCafesRestaurants); err == nil {
		middleware.SetState(c, next)
		if id := middleware.SessionIDFromContext(c); id != "" {
			h.sessions.Put(id, next)
		}
	}

	location := c.PostForm("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a location."})
		return
	}

	coords, err := h.geocoder.Geocode(c.Request.Context(), location)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Location not found."})
		return
	case err != nil:
		h.logger.Error("Geocoding failed for places search", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not look up the location. Please try again."})
		return
	}

	places, err := h.places.FetchNearby(c.Request.Context(), coords, searchRadiusMeters, searchCategory)
	if err != nil {
		h.logger.Error("Nearby places search failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not search for cafes and restaurants. Please try again."})
		return
	}

	if len(places) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": noResultsMessage})
		return
	}

	results := make([]string, 0, len(places))
	for _, p := range places {
		results = append(results, FormatPlace(p))
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// FormatPlace renders one nearby place row. Missing fields display as "N/A".
func FormatPlace(p models.NearbyPlace) string {
	name := p.Name
	if name == "" {
		name = "N/A"
	}
	address := p.Address
	if address == "" {
		address = "N/A"
	}
	rating := "N/A"
	if p.Rating > 0 {
		rating = fmt.Sprintf("%.1f", p.Rating)
	}
	return fmt.Sprintf("Name: %s / Address: %s / Rating: %s", name, address, rating)
}
