package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/pkg/model"
)

// ArticleRepository manages the health article feed
type ArticleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *pgxpool.Pool, logger *zap.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger,
	}
}

// ListPage retrieves one page of published articles, newest first.
// page is 1-based.
func (r *ArticleRepository) ListPage(ctx context.Context, page, pageSize int) ([]model.Article, error) {
	query := `
		SELECT
			id, title, summary, content, category,
			image_url, published_at, created_at
		FROM articles
		ORDER BY published_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, pageSize, (page-1)*pageSize)
	if err != nil {
		r.logger.Error("failed to list articles",
			zap.Error(err),
			zap.Int("page", page),
			zap.Int("page_size", pageSize),
		)
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	var articles []model.Article
	for rows.Next() {
		var a model.Article
		err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Summary,
			&a.Content,
			&a.Category,
			&a.ImageURL,
			&a.PublishedAt,
			&a.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan article", zap.Error(err))
			continue
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating articles", zap.Error(err))
		return nil, fmt.Errorf("error iterating articles: %w", err)
	}

	return articles, nil
}

// Count returns the total number of published articles
func (r *ArticleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&count)
	if err != nil {
		r.logger.Error("failed to count articles", zap.Error(err))
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}

	return count, nil
}
