package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/service"
)

// PrivacyHandler implements data portability and erasure endpoints
type PrivacyHandler struct {
	service *service.PrivacyService
	logger  *zap.Logger
}

// NewPrivacyHandler creates a new PrivacyHandler
func NewPrivacyHandler(service *service.PrivacyService, logger *zap.Logger) *PrivacyHandler {
	return &PrivacyHandler{
		service: service,
		logger:  logger,
	}
}

// ExportData returns every record the user has logged as a JSON download
// GET /api/v1/privacy/export?user_id=...
func (h *PrivacyHandler) ExportData(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	jsonData, err := h.service.ExportUserData(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to export user data",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to export user data",
			Details: stringPtr(err.Error()),
		})
		return
	}

	filename := fmt.Sprintf("ohmypoop-export-%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", jsonData)
}

// PurgeData deletes every record for the user
// DELETE /api/v1/privacy/data?user_id=...
func (h *PrivacyHandler) PurgeData(c *gin.Context) {
	userID, err := requireUserID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	h.logger.Info("processing user data purge request",
		zap.String("user_id", userID),
		zap.String("ip", c.ClientIP()),
	)

	deleted, err := h.service.PurgeUserData(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to purge user data",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to purge user data",
			Details: stringPtr(err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "User data deleted successfully",
		"user_id":       userID,
		"deleted_count": deleted,
	})
}
