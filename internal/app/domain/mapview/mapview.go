// Package mapview owns the map page: geocoding a place name and returning
// the marker payload for the client-side map.
package mapview

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

const defaultZoom = 12

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, placeName string) (models.Coordinates, error)
}

type Handler struct {
	geocoder Geocoder
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(geocoder Geocoder, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{geocoder: geocoder, sessions: sessions, logger: logger}
}

// Show geocodes the place name and returns a map centered on it with a
// single marker. Unknown places render "Location not found." and nothing
// further.
func (h *Handler) Show(c *gin.Context) {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, session.PageMap); err == nil {
		middleware.SetState(c, next)
		if id := middleware.SessionIDFromContext(c); id != "" {
			h.sessions.Put(id, next)
		}
	}

	location := c.PostForm("location")
	if location == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a place name."})
		return
	}

	coords, err := h.geocoder.Geocode(c.Request.Context(), location)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Location not found."})
		return
	case err != nil:
		h.logger.Error("Geocoding failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not look up the location. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"center": coords,
		"zoom":   defaultZoom,
		"marker": gin.H{
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
			"tooltip":   "Location",
		},
	})
}
