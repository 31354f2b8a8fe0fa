package history

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
)

var _ Repository = (*PostgresRepository)(nil)

// Repository is the search-history store contract. Rows are append-only
// audit entries; ids assigned by the database are the recency ordering.
type Repository interface {
	Append(ctx context.Context, query, response string) (int64, error)
	Recent(ctx context.Context, limit int) ([]models.SearchRecord, error)
}

// DB is the subset of pgxpool.Pool the repository needs; pgxmock satisfies it
// in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresRepository struct {
	db     DB
	logger *zap.Logger
}

func NewPostgresRepository(db DB, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{db: db, logger: logger}
}

func (r *PostgresRepository) Append(ctx context.Context, query, response string) (int64, error) {
	l := r.logger.With(zap.String("method", "Append"))

	insert := `INSERT INTO searches (query, response) VALUES ($1, $2) RETURNING id`
	var id int64
	if err := r.db.QueryRow(ctx, insert, query, response).Scan(&id); err != nil {
		l.Error("Error appending search record", zap.Error(err))
		return 0, fmt.Errorf("database error appending search: %w", models.ErrStoreUnavailable)
	}
	return id, nil
}

func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]models.SearchRecord, error) {
	l := r.logger.With(zap.String("method", "Recent"), zap.Int("limit", limit))

	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive: %w", models.ErrValidation)
	}

	query := `SELECT id, query, response, created_at FROM searches ORDER BY id DESC LIMIT $1`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		l.Error("Error querying recent searches", zap.Error(err))
		return nil, fmt.Errorf("database error reading history: %w", models.ErrStoreUnavailable)
	}
	defer rows.Close()

	records := make([]models.SearchRecord, 0, limit)
	for rows.Next() {
		var rec models.SearchRecord
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Response, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search record: %w", models.ErrStoreUnavailable)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating search records: %w", models.ErrStoreUnavailable)
	}

	return records, nil
}
