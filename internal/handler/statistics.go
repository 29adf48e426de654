package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/service"
)

// StatisticsHandler implements statistics and calendar API endpoints
type StatisticsHandler struct {
	service *service.StatisticsService
	logger  *zap.Logger
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(service *service.StatisticsService, logger *zap.Logger) *StatisticsHandler {
	return &StatisticsHandler{
		service: service,
		logger:  logger,
	}
}

// GetSummary returns the statistics report for one period
// GET /api/v1/statistics/summary?user_id=...&period=month&date=2024-03-06
func (h *StatisticsHandler) GetSummary(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	g, ref, err := parsePeriodQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	report, err := h.service.GetReport(c.Request.Context(), userID, g, ref)
	if err != nil {
		h.logger.Error("failed to compute statistics",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to compute statistics",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetCalendar returns the month grid with per-day statuses
// GET /api/v1/calendar/:year/:month?user_id=...
func (h *StatisticsHandler) GetCalendar(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid year",
			Details: stringPtr(err.Error()),
		})
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid month: must be between 1 and 12",
		})
		return
	}

	days, err := h.service.GetCalendar(c.Request.Context(), userID, year, time.Month(month))
	if err != nil {
		h.logger.Error("failed to derive calendar",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("year", year),
			zap.Int("month", month),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to derive calendar",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}
