package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

type Handler struct {
	service  Service
	sessions *session.Store
	logger   *zap.Logger
}

func NewHandler(service Service, sessions *session.Store, logger *zap.Logger) *Handler {
	return &Handler{service: service, sessions: sessions, logger: logger}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp creates an account. Validation and duplicate-username errors are
// shown inline and keep the session on the sign-up page; success returns the
// session to the login page without logging the user in.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	state := middleware.StateFromContext(c)
	state.Page = session.PageSignUp

	if req.Name == "" || req.Surname == "" || req.Email == "" || req.Password == "" {
		h.saveState(c, state)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields."})
		return
	}

	_, err := h.service.Register(c.Request.Context(), req.Email, req.Password, req.Name, req.Surname, req.Age)
	switch {
	case errors.Is(err, models.ErrValidation):
		h.saveState(c, state)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format. Must be @example.com"})
		return
	case errors.Is(err, models.ErrConflict):
		h.saveState(c, state)
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists."})
		return
	case err != nil:
		h.logger.Error("Sign-up failed", zap.Error(err))
		h.saveState(c, state)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create the account. Please try again."})
		return
	}

	state = session.SignUpSucceeded(state)
	h.saveState(c, state)
	c.JSON(http.StatusCreated, gin.H{"message": "Signed up successfully with email: " + req.Email})
}

// SignIn validates credentials. Success sets the identity cookie and moves
// the session to Home authenticated; failure leaves the session untouched.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter both email and password."})
		return
	}

	state := middleware.StateFromContext(c)

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, models.ErrValidation):
		metrics.LoginAttempts.WithLabelValues("invalid_email").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format. Must be @example.com"})
		return
	case errors.Is(err, models.ErrUnauthenticated):
		metrics.LoginAttempts.WithLabelValues("denied").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	case err != nil:
		h.logger.Error("Sign-in failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not sign in. Please try again."})
		return
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()

	state = session.LoginSucceeded(state, user.ID, user.Username)
	h.saveState(c, state)

	c.SetCookie(middleware.AuthCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"message": "You are now logged in. Redirecting...",
		"page":    string(state.Page),
	})
}

func (h *Handler) saveState(c *gin.Context, state session.State) {
	middleware.SetState(c, state)
	if id := middleware.SessionIDFromContext(c); id != "" {
		h.sessions.Put(id, state)
	}
}
