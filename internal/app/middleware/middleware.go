package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
)

const (
	// SessionCookie carries the in-memory session id.
	SessionCookie = "wf_session"
	// AuthCookie carries the signed identity token.
	AuthCookie = "auth_token"

	sessionIDKey    = "session_id"
	sessionStateKey = "session_state"
	userClaimsKey   = "user_claims"

	accessDeniedMessage = "You need to be logged in to access this page."
)

// TokenValidator is the slice of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.Claims, error)
}

// CORSMiddleware handles CORS headers.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// SecurityMiddleware adds security headers.
func SecurityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("X-Content-Type-Options", "nosniff")
		c.Writer.Header().Set("X-Frame-Options", "DENY")
		c.Writer.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	}
}

// SessionMiddleware resolves the session cookie to an in-memory state,
// creating a fresh login-page session when none exists, and exposes both id
// and state on the gin context.
func SessionMiddleware(store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		var state session.State
		var ok bool
		if err == nil {
			state, ok = store.Get(id)
		}
		if err != nil || !ok {
			id, state = store.Create()
			c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		}

		c.Set(sessionIDKey, id)
		c.Set(sessionStateKey, state)
		c.Next()
	}
}

// AuthMiddleware rejects requests whose session is not authenticated with a
// valid identity token. The target handler never runs on denial, so a denied
// navigation triggers zero adapter or store calls.
func AuthMiddleware(validator TokenValidator, store *session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := StateFromContext(c)
		token, err := c.Cookie(AuthCookie)
		if err != nil || token == "" || !state.Authenticated {
			denyAccess(c)
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			denyAccess(c)
			return
		}

		c.Set(userClaimsKey, claims)
		c.Next()
	}
}

func denyAccess(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": accessDeniedMessage})
}

// StateFromContext returns the session state resolved by SessionMiddleware.
func StateFromContext(c *gin.Context) session.State {
	if v, exists := c.Get(sessionStateKey); exists {
		if state, ok := v.(session.State); ok {
			return state
		}
	}
	return session.NewState()
}

// SessionIDFromContext returns the session id resolved by SessionMiddleware.
func SessionIDFromContext(c *gin.Context) string {
	if v, exists := c.Get(sessionIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// ClaimsFromContext returns the identity claims set by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) *models.Claims {
	if v, exists := c.Get(userClaimsKey); exists {
		if claims, ok := v.(*models.Claims); ok {
			return claims
		}
	}
	return nil
}

// SetState is used by handlers to stash an updated state back on the context
// before persisting it to the store.
func SetState(c *gin.Context, state session.State) {
	c.Set(sessionStateKey, state)
}
