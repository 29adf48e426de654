package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/service"
	"github.com/ohmypoop/backend/pkg/model"
)

// RecordHandler implements poop record API endpoints
type RecordHandler struct {
	service *service.RecordService
	logger  *zap.Logger
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(service *service.RecordService, logger *zap.Logger) *RecordHandler {
	return &RecordHandler{
		service: service,
		logger:  logger,
	}
}

// CreateRecordRequest is the POST /api/v1/records payload
type CreateRecordRequest struct {
	UserID          string     `json:"user_id" binding:"required"`
	StartTime       time.Time  `json:"start_time" binding:"required"`
	EndTime         *time.Time `json:"end_time"`
	DurationSeconds *int       `json:"duration_seconds"`
	Success         bool       `json:"success"`
	Amount          *string    `json:"amount"`
	Memo            *string    `json:"memo"`
}

// CreateRecord logs a new bowel movement record
// POST /api/v1/records
func (h *RecordHandler) CreateRecord(c *gin.Context) {
	var req CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	rec := &model.Record{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationSeconds: req.DurationSeconds,
		Success:         req.Success,
		Memo:            req.Memo,
	}
	if req.Amount != nil {
		amount := model.AmountCategory(*req.Amount)
		rec.Amount = &amount
	}

	if err := h.service.CreateRecord(c.Request.Context(), req.UserID, rec); err != nil {
		h.logger.Error("failed to create record",
			zap.Error(err),
			zap.String("user_id", req.UserID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// ListRecords returns the user's records for one period
// GET /api/v1/records?user_id=...&period=week&date=2024-03-06
func (h *RecordHandler) ListRecords(c *gin.Context) {
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

	records, r, err := h.service.ListByPeriod(c.Request.Context(), userID, g, ref)
	if err != nil {
		h.logger.Error("failed to list records",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to list records",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if records == nil {
		records = []model.Record{}
	}

	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"range":   r,
		"count":   len(records),
	})
}

// DeleteRecord removes a record owned by the user
// DELETE /api/v1/records/:id?user_id=...
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	recordID := c.Param("id")

	if err := h.service.DeleteRecord(c.Request.Context(), userID, recordID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Code:    "NOT_FOUND",
				Message: "Record not found",
			})
			return
		}

		h.logger.Error("failed to delete record",
			zap.Error(err),
			zap.String("record_id", recordID),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to delete record",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Record deleted successfully",
		"record_id": recordID,
	})
}
