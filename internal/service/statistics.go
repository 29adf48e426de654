package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/calendar"
	"github.com/ohmypoop/backend/internal/period"
	"github.com/ohmypoop/backend/internal/stats"
)

// StatisticsService derives period statistics and calendar views from the
// raw record collection. All aggregation happens in memory; the repository
// only supplies the pre-filtered records.
type StatisticsService struct {
	repo   RecordRepositoryInterface
	logger *zap.Logger
}

// NewStatisticsService creates a new StatisticsService
func NewStatisticsService(repo RecordRepositoryInterface, logger *zap.Logger) *StatisticsService {
	return &StatisticsService{
		repo:   repo,
		logger: logger,
	}
}

// StatisticsReport bundles every aggregate one statistics screen needs
type StatisticsReport struct {
	Period       string                 `json:"period"`
	Label        string                 `json:"label"`
	Range        period.Range           `json:"range"`
	Summary      stats.Summary          `json:"summary"`
	Timing       stats.Timing           `json:"timing"`
	Distribution stats.HourDistribution `json:"distribution"`
	BestHour     int                    `json:"best_hour"`
	BestHourN    int                    `json:"best_hour_count"`
}

// GetReport computes the full statistics report for the period containing ref
func (s *StatisticsService) GetReport(ctx context.Context, userID string, g period.Granularity, ref time.Time) (*StatisticsReport, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	r := period.Calc(g, ref)

	records, err := s.repo.GetByUserAndRange(ctx, userID, r.Start, r.End)
	if err != nil {
		s.logger.Error("failed to get records for statistics",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("granularity", string(g)),
		)
		return nil, fmt.Errorf("failed to get records for statistics: %w", err)
	}

	bestHour, bestCount := stats.BestHour(records)
	report := &StatisticsReport{
		Period:       string(g),
		Label:        period.FormatLabel(g, ref),
		Range:        r,
		Summary:      stats.Summarize(records, r.Days()),
		Timing:       stats.ComputeTiming(records),
		Distribution: stats.DistributeByHour(records),
		BestHour:     bestHour,
		BestHourN:    bestCount,
	}

	s.logger.Info("statistics report computed",
		zap.String("user_id", userID),
		zap.String("granularity", string(g)),
		zap.Int("record_count", report.Summary.TotalCount),
	)

	return report, nil
}

// GetCalendar derives the month grid with per-day statuses
func (s *StatisticsService) GetCalendar(ctx context.Context, userID string, year int, month time.Month) ([]calendar.Day, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month: %d", month)
	}

	r := period.Calc(period.Month, time.Date(year, month, 1, 0, 0, 0, 0, time.Local))

	records, err := s.repo.GetByUserAndRange(ctx, userID, r.Start, r.End)
	if err != nil {
		s.logger.Error("failed to get records for calendar",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.Int("year", year),
			zap.Int("month", int(month)),
		)
		return nil, fmt.Errorf("failed to get records for calendar: %w", err)
	}

	days := calendar.BuildMonth(records, year, month)

	s.logger.Info("calendar derived successfully",
		zap.String("user_id", userID),
		zap.Int("year", year),
		zap.Int("month", int(month)),
		zap.Int("record_count", len(records)),
	)

	return days, nil
}
