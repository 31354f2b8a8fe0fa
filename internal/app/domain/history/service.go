package history

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wayfarer-app/wayfarer/internal/app/models"
	"github.com/wayfarer-app/wayfarer/internal/pkg/metrics"
)

// recentLimit bounds the recent-info page to the last five searches.
const recentLimit = 5

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	// SaveSearch records a (query, response) pair. History is process-wide,
	// not scoped to the authenticated user.
	SaveSearch(ctx context.Context, query, response string) error
	// RecentSearches returns up to the last five records, most recent first.
	RecentSearches(ctx context.Context) ([]models.SearchRecord, error)
}

type ServiceImpl struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *ServiceImpl {
	return &ServiceImpl{repo: repo, logger: logger}
}

func (s *ServiceImpl) SaveSearch(ctx context.Context, query, response string) error {
	l := s.logger.With(zap.String("method", "SaveSearch"))

	id, err := s.repo.Append(ctx, query, response)
	if err != nil {
		l.Error("Failed to save search", zap.Error(err))
		return fmt.Errorf("saving search: %w", err)
	}

	metrics.SearchesSaved.Inc()
	l.Debug("Search saved", zap.Int64("id", id))
	return nil
}

func (s *ServiceImpl) RecentSearches(ctx context.Context) ([]models.SearchRecord, error) {
	records, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		s.logger.Error("Failed to read recent searches", zap.Error(err))
		return nil, fmt.Errorf("reading recent searches: %w", err)
	}
	return records, nil
}
