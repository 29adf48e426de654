package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/export"
	"github.com/ohmypoop/backend/internal/pdf"
	"github.com/ohmypoop/backend/internal/period"
	"github.com/ohmypoop/backend/internal/stats"
)

// ReportService renders downloadable period reports. Reports are generated
// on demand and returned inline; nothing is uploaded or persisted.
type ReportService struct {
	repo     RecordRepositoryInterface
	pdfGen   *pdf.Generator
	exporter *export.ExcelExporter
	logger   *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(repo RecordRepositoryInterface, pdfGen *pdf.Generator, exporter *export.ExcelExporter, logger *zap.Logger) *ReportService {
	return &ReportService{
		repo:     repo,
		pdfGen:   pdfGen,
		exporter: exporter,
		logger:   logger,
	}
}

// GeneratePDF renders the PDF report for the period containing ref
func (s *ReportService) GeneratePDF(ctx context.Context, userID string, g period.Granularity, ref time.Time) ([]byte, error) {
	data, err := s.collect(ctx, userID, g, ref)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := s.pdfGen.Generate(data)
	if err != nil {
		s.logger.Error("failed to generate PDF report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to generate PDF report: %w", err)
	}

	s.logger.Info("PDF report generated successfully",
		zap.String("user_id", userID),
		zap.String("granularity", string(g)),
		zap.Int("size_bytes", len(pdfBytes)),
	)

	return pdfBytes, nil
}

// GenerateXLSX renders the spreadsheet export for the period containing ref
func (s *ReportService) GenerateXLSX(ctx context.Context, userID string, g period.Granularity, ref time.Time) ([]byte, error) {
	data, err := s.collect(ctx, userID, g, ref)
	if err != nil {
		return nil, err
	}

	xlsxBytes, err := s.exporter.Export(data)
	if err != nil {
		s.logger.Error("failed to generate XLSX export",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to generate XLSX export: %w", err)
	}

	s.logger.Info("XLSX export generated successfully",
		zap.String("user_id", userID),
		zap.String("granularity", string(g)),
		zap.Int("size_bytes", len(xlsxBytes)),
	)

	return xlsxBytes, nil
}

// collect fetches the period's records and precomputes the aggregates both
// renderers consume.
func (s *ReportService) collect(ctx context.Context, userID string, g period.Granularity, ref time.Time) (*pdf.ReportData, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	r := period.Calc(g, ref)

	records, err := s.repo.GetByUserAndRange(ctx, userID, r.Start, r.End)
	if err != nil {
		s.logger.Error("failed to get records for report",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to get records for report: %w", err)
	}

	return &pdf.ReportData{
		UserID:       userID,
		Label:        period.FormatLabel(g, ref),
		DateRange:    fmt.Sprintf("%s to %s", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")),
		Records:      records,
		Summary:      stats.Summarize(records, r.Days()),
		Timing:       stats.ComputeTiming(records),
		Distribution: stats.DistributeByHour(records),
	}, nil
}
