package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository is the credential store contract.
type Repository interface {
	// CreateUser stores a new user with a HASHED password and returns the new
	// numeric id. Duplicate usernames map to models.ErrConflict.
	CreateUser(ctx context.Context, user *models.UserAuth) (int64, error)
	// GetUserByUsername fetches the record used for login comparison.
	GetUserByUsername(ctx context.Context, username string) (*models.UserAuth, error)
}

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresRepository struct {
	db     DB
	logger *zap.Logger
}

func NewPostgresRepository(db DB, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *models.UserAuth) (int64, error) {
	l := r.logger.With(zap.String("method", "CreateUser"), zap.String("username", user.Username))

	query := `INSERT INTO users (username, password_hash, name, surname, age) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id int64
	err := r.db.QueryRow(ctx, query, user.Username, user.Password, user.Name, user.Surname, user.Age).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			l.Warn("Username already exists")
			return 0, fmt.Errorf("username %s already exists: %w", user.Username, models.ErrConflict)
		}
		l.Error("Error inserting user", zap.Error(err))
		return 0, fmt.Errorf("database error registering user: %w", models.ErrStoreUnavailable)
	}

	l.Info("User registered successfully", zap.Int64("userID", id))
	return id, nil
}

func (r *PostgresRepository) GetUserByUsername(ctx context.Context, username string) (*models.UserAuth, error) {
	var user models.UserAuth
	query := `SELECT id, username, password_hash, created_at FROM users WHERE username = $1`
	err := r.db.QueryRow(ctx, query, username).Scan(&user.ID, &user.Username, &user.Password, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found: %w", username, models.ErrNotFound)
		}
		r.logger.Error("Error fetching user by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("database error fetching user: %w", models.ErrStoreUnavailable)
	}
	return &user, nil
}
