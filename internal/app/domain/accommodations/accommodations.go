// Package accommodations owns the accommodations page. The upstream hotel
// search is not wired yet; the page records the lookup in the search history
// and returns the placeholder response.
package accommodations

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/domain/history"
	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

// hotelPrompt is the query that will be sent to the inference model once the
// accommodation search is wired to it.
const hotelPrompt = `You should give them the nearby hotels along with the rating based on different sites / or give by different users.
Hotel name, the address, the contact number, and how much they charge for a basic room.
Link directly to the hotel's page, phone number, and a code for 10%% off.
The search location is: %s`

type Handler struct {
	history  history.Service
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(historyService history.Service, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{history: historyService, sessions: sessions, logger: logger}
}

// Search builds the hotel prompt for the location and unconditionally records
// the lookup with its placeholder response.
func (h *Handler) Search(c *gin.Context) {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, session.PageAccommodations); err == nil {
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

	// TODO: send the prompt to the inference model once hotel search is enabled.
	prompt := fmt.Sprintf(hotelPrompt, location)
	h.logger.Debug("Accommodation prompt built", zap.Int("prompt_length", len(prompt)))

	response := fmt.Sprintf("Searching for accommodations near %s...", location)

	if err := h.history.SaveSearch(c.Request.Context(), location, response); err != nil {
		h.logger.Error("Failed to record accommodation search", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not record the search. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": response})
}
