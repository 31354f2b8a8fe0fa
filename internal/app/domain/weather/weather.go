// Package weather owns the weather page.
package weather

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

// Fetcher reads current conditions for a city.
type Fetcher interface {
	FetchWeather(ctx context.Context, cityName string) (models.WeatherReading, error)
}

type Handler struct {
	fetcher  Fetcher
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(fetcher Fetcher, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{fetcher: fetcher, sessions: sessions, logger: logger}
}

// Show renders temperature, description and the rain breakdown. Rain lines
// appear only for figures present in the reading; without any rain data the
// page states exactly "No rain expected."
func (h *Handler) Show(c *gin.Context) {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, session.PageWeather); err == nil {
		middleware.SetState(c, next)
		if id := middleware.SessionIDFromContext(c); id != "" {
			h.sessions.Put(id, next)
		}
	}

	city := c.PostForm("city")
	if city == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a city name."})
		return
	}

	reading, err := h.fetcher.FetchWeather(c.Request.Context(), city)
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Could not retrieve weather information."})
		return
	case err != nil:
		h.logger.Error("Weather fetch failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not retrieve weather information."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"title":       fmt.Sprintf("Weather in %s:", city),
		"temperature": fmt.Sprintf("Temperature: %.1f°C", reading.TemperatureCelsius),
		"description": fmt.Sprintf("Weather: %s", capitalize(reading.Description)),
		"rain":        RainLines(reading),
	})
}

// RainLines builds the rain-chance breakdown for a reading.
func RainLines(reading models.WeatherReading) []string {
	if reading.RainLastHourMm == nil && reading.RainLast3HourMm == nil {
		return []string{"No rain expected."}
	}

	var lines []string
	if reading.RainLastHourMm != nil {
		lines = append(lines, fmt.Sprintf("Chance of rain in the next hour: %g mm", *reading.RainLastHourMm))
	}
	if reading.RainLast3HourMm != nil {
		lines = append(lines, fmt.Sprintf("Chance of rain in the next 3 hours: %g mm", *reading.RainLast3HourMm))
	}
	return lines
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
