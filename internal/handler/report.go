package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler implements downloadable report endpoints
type ReportHandler struct {
	service *service.ReportService
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger,
	}
}

// DownloadPDF streams the period report as a PDF attachment
// GET /api/v1/reports/pdf?user_id=...&period=month&date=2024-03-06
func (h *ReportHandler) DownloadPDF(c *gin.Context) {
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

	pdfBytes, err := h.service.GeneratePDF(c.Request.Context(), userID, g, ref)
	if err != nil {
		h.logger.Error("failed to generate PDF report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to generate PDF report",
			Details: stringPtr(err.Error()),
		})
		return
	}

	filename := fmt.Sprintf("bowel-report-%s.pdf", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// DownloadXLSX streams the period report as a spreadsheet attachment
// GET /api/v1/reports/xlsx?user_id=...&period=month&date=2024-03-06
func (h *ReportHandler) DownloadXLSX(c *gin.Context) {
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

	xlsxBytes, err := h.service.GenerateXLSX(c.Request.Context(), userID, g, ref)
	if err != nil {
		h.logger.Error("failed to generate XLSX export",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "Failed to generate XLSX export",
			Details: stringPtr(err.Error()),
		})
		return
	}

	filename := fmt.Sprintf("bowel-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, xlsxBytes)
}
