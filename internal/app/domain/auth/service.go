package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/config"
)

var _ Service = (*ServiceImpl)(nil)

// Service defines the account business logic contract.
type Service interface {
	Login(ctx context.Context, username, password string) (*models.UserAuth, string, error)
	Register(ctx context.Context, username, password, name, surname string, age int) (int64, error)
	ValidateToken(tokenString string) (*models.Claims, error)
}

type ServiceImpl struct {
	logger *zap.Logger
	repo   Repository
	cfg    *config.Config
}

func NewService(repo Repository, cfg *config.Config, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger, repo: repo, cfg: cfg}
}

// Login validates the credentials and returns the user plus a signed session
// token. Invalid credentials and unknown users both surface as
// models.ErrUnauthenticated so the form cannot probe for accounts.
func (s *ServiceImpl) Login(ctx context.Context, username, password string) (*models.UserAuth, string, error) {
	l := s.logger.With(zap.String("method", "Login"), zap.String("username", username))
	l.Debug("Attempting login")

	if !ValidEmail(username) {
		return nil, "", fmt.Errorf("invalid email format: %w", models.ErrValidation)
	}

	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		l.Warn("GetUserByUsername failed")
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		l.Warn("Password comparison failed", zap.Int64("userID", user.ID))
		return nil, "", fmt.Errorf("invalid credentials: %w", models.ErrUnauthenticated)
	}

	token, err := s.generateToken(user)
	if err != nil {
		l.Error("Failed to generate token", zap.Int64("userID", user.ID), zap.Error(err))
		return nil, "", fmt.Errorf("generating session token: %w", err)
	}

	l.Info("Login successful")
	return user, token, nil
}

// Register hashes the password and stores the new account. The caller keeps
// the user on the sign-up page on failure; success moves them to login.
func (s *ServiceImpl) Register(ctx context.Context, username, password, name, surname string, age int) (int64, error) {
	l := s.logger.With(zap.String("method", "Register"), zap.String("username", username))
	l.Debug("Attempting registration")

	if !ValidEmail(username) {
		return 0, fmt.Errorf("invalid email format: %w", models.ErrValidation)
	}
	if password == "" {
		return 0, fmt.Errorf("password is required: %w", models.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		l.Error("Failed to hash password", zap.Error(err))
		return 0, fmt.Errorf("could not process password")
	}

	userID, err := s.repo.CreateUser(ctx, &models.UserAuth{
		Username: username,
		Password: string(hashed),
		Name:     name,
		Surname:  surname,
		Age:      age,
	})
	if err != nil {
		l.Warn("Repository registration failed", zap.Error(err))
		return 0, fmt.Errorf("registration failed: %w", err)
	}

	l.Info("Registration successful", zap.Int64("userID", userID))
	return userID, nil
}

// ValidateToken parses and verifies a session token.
func (s *ServiceImpl) ValidateToken(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid session token: %w", models.ErrUnauthenticated)
	}
	return claims, nil
}

func (s *ServiceImpl) generateToken(user *models.UserAuth) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.cfg.JWT.Issuer,
		},
		UserID:   user.ID,
		Username: user.Username,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWT.SecretKey))
}
