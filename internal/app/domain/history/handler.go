package history

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

type Handler struct {
	service  Service
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{service: service, sessions: sessions, logger: logger}
}

// Recents renders the recent-info page: the last five searches with the query
// as heading and the stored response as body, most recent first.
func (h *Handler) Recents(c *gin.Context) {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, session.PageRecentInfo); err == nil {
		state = next
		middleware.SetState(c, state)
		if id := middleware.SessionIDFromContext(c); id != "" {
			h.sessions.Put(id, state)
		}
	}

	records, err := h.service.RecentSearches(c.Request.Context())
	if err != nil {
		h.logger.Error("Recent searches failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not load recent searches."})
		return
	}

	type entry struct {
		Heading string `json:"heading"`
		Body    string `json:"body"`
	}
	entries := make([]entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, entry{Heading: rec.Query, Body: rec.Response})
	}

	c.JSON(http.StatusOK, gin.H{
		"title":    "Recent Information",
		"subtitle": "Here are your recent searches:",
		"searches": entries,
	})
}
