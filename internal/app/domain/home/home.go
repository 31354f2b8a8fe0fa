// Package home owns the main page: place descriptions from the inference
// model, optional translation, voice input and the itinerary PDF download.
package home

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/adapters"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/history"
	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

// maxImageBytes caps landmark uploads at 8 MiB.
const maxImageBytes = 8 << 20

// uploadedImageQuery is the history query recorded when the user supplied an
// image instead of text.
const uploadedImageQuery = "Uploaded Image"

// Describer is the inference boundary the home page depends on.
type Describer interface {
	DescribePlace(ctx context.Context, freeText string, image []byte) (string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}

// Transcriber converts uploaded audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, sampleRate int) (string, error)
}

type Handler struct {
	describer   Describer
	transcriber Transcriber
	history     history.Service
	sessions    *session.Store
	logger      *zap.Logger
}

func NewHandler(describer Describer, transcriber Transcriber, historyService history.Service, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{
		describer:   describer,
		transcriber: transcriber,
		history:     historyService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Describe handles the "Get Basic Information" action. It requires free text
// or an uploaded image; with neither the inference adapter is never invoked.
// Translation failures fall back to the untranslated text with a warning.
func (h *Handler) Describe(c *gin.Context) {
	state := h.navigate(c, session.PageHome)

	inputText := c.PostForm("text")
	language := session.ParseLanguage(c.PostForm("language"))
	image := h.readImage(c)

	if inputText == "" && len(image) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a place name or upload an image."})
		return
	}

	state.Query = inputText
	state.Image = image
	state.Language = language
	h.saveState(c, state)

	response, err := h.describer.DescribePlace(c.Request.Context(), inputText, image)
	if err != nil {
		h.logger.Error("Describe place failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not retrieve information. Please try again."})
		return
	}

	var warning string
	if language != session.LanguageEnglish {
		translated, terr := h.describer.Translate(c.Request.Context(), response, string(language))
		if terr != nil {
			warning = fmt.Sprintf("Translation to %s failed.", language)
		} else {
			response = translated
		}
	}

	query := inputText
	if query == "" {
		query = uploadedImageQuery
	}
	if err := h.history.SaveSearch(c.Request.Context(), query, response); err != nil {
		h.logger.Warn("Failed to record search", zap.Error(err))
	}

	payload := gin.H{"information": response}
	if warning != "" {
		payload["warning"] = warning
	}
	c.JSON(http.StatusOK, payload)
}

// Voice transcribes an uploaded audio clip into the session's text buffer.
// Both recognition failure kinds surface as user-facing messages, never as a
// terminated session.
func (h *Handler) Voice(c *gin.Context) {
	state := h.navigate(c, session.PageHome)

	file, _, err := c.Request.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an audio recording."})
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil || len(audio) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an audio recording."})
		return
	}

	sampleRate := 16000
	if v, ok := c.GetPostForm("sample_rate"); ok {
		if _, err := fmt.Sscanf(v, "%d", &sampleRate); err != nil {
			sampleRate = 16000
		}
	}

	transcript, err := h.transcriber.Transcribe(c.Request.Context(), audio, sampleRate)
	switch {
	case errors.Is(err, models.ErrUnrecognizedSpeech):
		c.JSON(http.StatusOK, gin.H{"message": "Sorry, I did not understand that."})
		return
	case err != nil:
		h.logger.Warn("Speech recognition failed", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"message": "Sorry, the service is down."})
		return
	}

	state.Query = transcript
	h.saveState(c, state)
	c.JSON(http.StatusOK, gin.H{"text": transcript, "message": "You said: " + transcript})
}

// ItineraryPDF renders the itinerary download. The affordance is only enabled
// when free text is present in the session or the request.
func (h *Handler) ItineraryPDF(c *gin.Context) {
	state := h.navigate(c, session.PageHome)

	query := c.Query("text")
	if query == "" {
		query = state.Query
	}
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a place name first."})
		return
	}

	itinerary := "Sample itinerary for " + query
	pdfBytes, err := adapters.RenderItineraryPDF(itinerary)
	if err != nil {
		h.logger.Error("Itinerary PDF rendering failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate the itinerary PDF."})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="itinerary.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) readImage(c *gin.Context) []byte {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		return nil
	}
	defer file.Close()

	if header.Size > maxImageBytes {
		return nil
	}
	image, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		return nil
	}
	return image
}

func (h *Handler) navigate(c *gin.Context, page session.Page) session.State {
	state := middleware.StateFromContext(c)
	if next, err := session.Navigate(state, page); err == nil {
		state = next
		h.saveState(c, state)
	}
	return state
}

func (h *Handler) saveState(c *gin.Context, state session.State) {
	middleware.SetState(c, state)
	if id := middleware.SessionIDFromContext(c); id != "" {
		h.sessions.Put(id, state)
	}
}
