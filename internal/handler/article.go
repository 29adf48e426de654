package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/service"
)

// ArticleHandler implements the health article feed endpoint
type ArticleHandler struct {
	service         *service.ArticleService
	defaultPageSize int
	maxPageSize     int
	logger          *zap.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(service *service.ArticleService, defaultPageSize, maxPageSize int, logger *zap.Logger) *ArticleHandler {
	return &ArticleHandler{
		service:         service,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          logger,
	}
}

// ListArticles returns one page of the article feed
// GET /api/v1/articles?page=1&page_size=20
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid page: must be a positive integer",
			})
			return
		}
		page = parsed
	}

	pageSize := h.defaultPageSize
	if raw := c.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Code:    "VALIDATION_ERROR",
				Message: "Invalid page_size: must be a positive integer",
			})
			return
		}
		pageSize = parsed
	}
	if pageSize > h.maxPageSize {
		pageSize = h.maxPageSize
	}

	result, err := h.service.ListArticles(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logger.Error("failed to list articles",
			zap.Error(err),
			zap.Int("page", page),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list articles",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
