package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/cache"
	"github.com/ohmypoop/backend/pkg/model"
)

// articleCacheVersion is bumped manually whenever the cached page payload's
// shape changes, invalidating everything written under the old tag.
const articleCacheVersion = "v2"

// ArticleRepositoryInterface defines the article feed data access
type ArticleRepositoryInterface interface {
	ListPage(ctx context.Context, page, pageSize int) ([]model.Article, error)
	Count(ctx context.Context) (int, error)
}

// ArticleService serves the paginated health article feed through a TTL
// cache so repeat requests for the same page skip the database.
type ArticleService struct {
	repo     ArticleRepositoryInterface
	cache    *cache.Cache[model.ArticlePage]
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewArticleService creates a new ArticleService
func NewArticleService(repo ArticleRepositoryInterface, cacheTTL time.Duration, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		repo:     repo,
		cache:    cache.New[model.ArticlePage](articleCacheVersion),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListArticles returns one page of the article feed, cached per
// page+pageSize key.
func (s *ArticleService) ListArticles(ctx context.Context, page, pageSize int) (*model.ArticlePage, error) {
	if page < 1 {
		return nil, fmt.Errorf("invalid page: must be at least 1")
	}
	if pageSize < 1 {
		return nil, fmt.Errorf("invalid page size: must be at least 1")
	}

	key := fmt.Sprintf("articles:%d:%d", page, pageSize)

	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("article page served from cache",
			zap.String("key", key),
		)
		return &cached, nil
	}

	articles, err := s.repo.ListPage(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("failed to list articles",
			zap.Error(err),
			zap.Int("page", page),
		)
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count articles", zap.Error(err))
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	result := model.ArticlePage{
		Articles:   articles,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}

	s.cache.Set(key, result, s.cacheTTL)

	s.logger.Info("article page loaded from database",
		zap.Int("page", page),
		zap.Int("page_size", pageSize),
		zap.Int("count", len(articles)),
	)

	return &result, nil
}

// InvalidatePage drops a cached page, forcing the next request to hit the
// database.
func (s *ArticleService) InvalidatePage(page, pageSize int) {
	s.cache.Invalidate(fmt.Sprintf("articles:%d:%d", page, pageSize))
}
