package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/config"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateUser(ctx context.Context, user *models.UserAuth) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) GetUserByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAuth), args.Error(1)
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey: "test-secret-key",
			TokenTTL:  time.Hour,
			Issuer:    "test-issuer",
		},
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	hashed, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.DefaultCost)
	require.NoError(t, err)

	stored := &models.UserAuth{ID: 1, Username: "a@b.com", Password: string(hashed)}

	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetUserByUsername", ctx, "a@b.com").Return(stored, nil)

		service := NewService(mockRepo, testConfig(), logger)
		user, token, err := service.Login(ctx, "a@b.com", "correct-password")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetUserByUsername", ctx, "a@b.com").Return(stored, nil)

		service := NewService(mockRepo, testConfig(), logger)
		_, _, err := service.Login(ctx, "a@b.com", "wrong-password")

		assert.True(t, errors.Is(err, models.ErrUnauthenticated))
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("GetUserByUsername", ctx, "ghost@b.com").Return(nil, models.ErrNotFound)

		service := NewService(mockRepo, testConfig(), logger)
		_, _, err := service.Login(ctx, "ghost@b.com", "whatever")

		// Unknown user and bad password are indistinguishable.
		assert.True(t, errors.Is(err, models.ErrUnauthenticated))
	})

	t.Run("malformed email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, testConfig(), logger)

		_, _, err := service.Login(ctx, "abc", "whatever")
		assert.True(t, errors.Is(err, models.ErrValidation))
		mockRepo.AssertNotCalled(t, "GetUserByUsername")
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("hashes the password before storing", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.UserAuth) bool {
			if u.Password == "secret" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret")) == nil
		})).Return(int64(5), nil)

		service := NewService(mockRepo, testConfig(), logger)
		id, err := service.Register(ctx, "new@b.com", "secret", "Ada", "Lovelace", 30)

		require.NoError(t, err)
		assert.Equal(t, int64(5), id)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate username", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockRepo.On("CreateUser", ctx, mock.Anything).Return(int64(0), models.ErrConflict)

		service := NewService(mockRepo, testConfig(), logger)
		_, err := service.Register(ctx, "dup@b.com", "secret", "Ada", "Lovelace", 30)

		assert.True(t, errors.Is(err, models.ErrConflict))
	})

	t.Run("invalid email", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, testConfig(), logger)

		_, err := service.Register(ctx, "not-an-email", "secret", "Ada", "Lovelace", 30)
		assert.True(t, errors.Is(err, models.ErrValidation))
		mockRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("empty password", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, testConfig(), logger)

		_, err := service.Register(ctx, "new@b.com", "", "Ada", "Lovelace", 30)
		assert.True(t, errors.Is(err, models.ErrValidation))
	})
}

func TestValidateToken(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.DefaultCost)
	require.NoError(t, err)
	stored := &models.UserAuth{ID: 9, Username: "a@b.com", Password: string(hashed)}

	mockRepo := new(MockRepository)
	mockRepo.On("GetUserByUsername", ctx, "a@b.com").Return(stored, nil)

	service := NewService(mockRepo, testConfig(), logger)
	_, token, err := service.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, "a@b.com", claims.Username)

	_, err = service.ValidateToken(token + "tampered")
	assert.True(t, errors.Is(err, models.ErrUnauthenticated))
}
