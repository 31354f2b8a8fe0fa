package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
)

func TestAppend(t *testing.T) {
	ctx := context.Background()

	t.Run("stores the record and returns its id", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectQuery(`INSERT INTO searches`).
			WithArgs("Lisbon", "Lisbon is the capital of Portugal.").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		id, err := repo.Append(ctx, "Lisbon", "Lisbon is the capital of Portugal.")

		require.NoError(t, err)
		assert.Equal(t, int64(11), id)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("database failure maps to store unavailable", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectQuery(`INSERT INTO searches`).
			WithArgs("Lisbon", "text").
			WillReturnError(errors.New("connection reset"))

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		_, err = repo.Append(ctx, "Lisbon", "text")

		assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	})
}

func TestRecent(t *testing.T) {
	ctx := context.Background()

	t.Run("returns rows newest first", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		mockDB.ExpectQuery(`SELECT id, query, response, created_at FROM searches ORDER BY id DESC`).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"id", "query", "response", "created_at"}).
				AddRow(int64(3), "Porto", "About Porto", now).
				AddRow(int64(2), "Lisbon", "About Lisbon", now.Add(-time.Hour)).
				AddRow(int64(1), "Faro", "About Faro", now.Add(-2*time.Hour)))

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		records, err := repo.Recent(ctx, 5)

		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "Porto", records[0].Query)
		assert.Equal(t, "Lisbon", records[1].Query)
		assert.Equal(t, "Faro", records[2].Query)
		assert.NoError(t, mockDB.ExpectationsWereMet())
	})

	t.Run("empty history yields an empty slice", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectQuery(`SELECT id, query, response, created_at FROM searches`).
			WithArgs(5).
			WillReturnRows(pgxmock.NewRows([]string{"id", "query", "response", "created_at"}))

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		records, err := repo.Recent(ctx, 5)

		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("non-positive limit is rejected", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		_, err = repo.Recent(ctx, 0)

		assert.True(t, errors.Is(err, models.ErrValidation))
	})

	t.Run("database failure maps to store unavailable", func(t *testing.T) {
		mockDB, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mockDB.Close()

		mockDB.ExpectQuery(`SELECT id, query, response, created_at FROM searches`).
			WithArgs(5).
			WillReturnError(errors.New("connection reset"))

		repo := NewPostgresRepository(mockDB, zap.NewNop())
		_, err = repo.Recent(ctx, 5)

		assert.True(t, errors.Is(err, models.ErrStoreUnavailable))
	})
}
