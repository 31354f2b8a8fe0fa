package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/adapters"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/accommodations"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/auth"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/cafes"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/history"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/home"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/mapview"
	"github.com/wayfarer-app/wayfarer/internal/app/domain/weather"
	"github.com/wayfarer-app/wayfarer/internal/app/middleware"
	"github.com/wayfarer-app/wayfarer/internal/app/session"
	"github.com/wayfarer-app/wayfarer/internal/pkg/config"
)

// AppHandlers groups one handler per navigation destination.
type AppHandlers struct {
	Auth           *auth.Handler
	Home           *home.Handler
	Map            *mapview.Handler
	Weather        *weather.Handler
	Recents        *history.Handler
	Accommodations *accommodations.Handler
	Cafes          *cafes.Handler

	authService auth.Service
	sessions    *session.Store
}

// Setup builds the dependency graph and registers all routes.
func Setup(r *gin.Engine, cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) error {
	handlers, err := setupDependencies(cfg, dbPool, log)
	if err != nil {
		return fmt.Errorf("failed to setup dependencies: %w", err)
	}
	setupRouter(r, handlers)
	return nil
}

func setupDependencies(cfg *config.Config, dbPool *pgxpool.Pool, log *zap.Logger) (*AppHandlers, error) {
	sessions := session.NewStore(cfg.JWT.SessionTTL)

	// Repositories
	authRepo := auth.NewPostgresRepository(dbPool, log)
	historyRepo := history.NewPostgresRepository(dbPool, log)

	// Services
	authService := auth.NewService(authRepo, cfg, log)
	historyService := history.NewService(historyRepo, log)

	// External service adapters
	gemini, err := adapters.NewGeminiClient(context.Background(), cfg.Keys.Gemini, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	geocoder := adapters.NewGeocoder(log)
	weatherClient := adapters.NewWeatherClient(cfg.Keys.OpenWeather, log)
	placesClient := adapters.NewPlacesClient(cfg.Keys.GoogleMaps, log)
	speechClient := adapters.NewSpeechClient(cfg.Keys.GoogleMaps, log)

	return &AppHandlers{
		Auth:           auth.NewHandler(authService, sessions, log),
		Home:           home.NewHandler(gemini, speechClient, historyService, sessions, log),
		Map:            mapview.NewHandler(geocoder, sessions, log),
		Weather:        weather.NewHandler(weatherClient, sessions, log),
		Recents:        history.NewHandler(historyService, sessions, log),
		Accommodations: accommodations.NewHandler(historyService, sessions, log),
		Cafes:          cafes.NewHandler(geocoder, placesClient, sessions, log),
		authService:    authService,
		sessions:       sessions,
	}, nil
}

func setupRouter(r *gin.Engine, h *AppHandlers) {
	r.Use(middleware.SessionMiddleware(h.sessions))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", h.Auth.SignUp)
		authGroup.POST("/signin", h.Auth.SignIn)
	}

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware(h.authService, h.sessions))
	{
		protected.POST("/home/describe", h.Home.Describe)
		protected.POST("/home/voice", h.Home.Voice)
		protected.GET("/home/itinerary.pdf", h.Home.ItineraryPDF)
		protected.POST("/map", h.Map.Show)
		protected.POST("/weather", h.Weather.Show)
		protected.GET("/recents", h.Recents.Recents)
		protected.POST("/accommodations", h.Accommodations.Search)
		protected.POST("/cafes", h.Cafes.Search)
	}
}
