package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/audit"
	"github.com/ohmypoop/backend/internal/period"
	"github.com/ohmypoop/backend/pkg/model"
)

// RecordRepositoryInterface defines the record data access used by services
type RecordRepositoryInterface interface {
	Save(ctx context.Context, rec *model.Record) error
	Delete(ctx context.Context, recordID, userID string) error
	GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]model.Record, error)
}

// AuditLoggerInterface is the audit trail sink used by mutating services
type AuditLoggerInterface interface {
	LogCreate(ctx context.Context, userID string, resourceType audit.ResourceType, resourceID string) error
	LogDelete(ctx context.Context, userID string, resourceType audit.ResourceType, resourceID string) error
}

// RecordService handles poop record business logic
type RecordService struct {
	repo        RecordRepositoryInterface
	auditLogger AuditLoggerInterface
	logger      *zap.Logger
}

// NewRecordService creates a new RecordService
func NewRecordService(repo RecordRepositoryInterface, auditLogger AuditLoggerInterface, logger *zap.Logger) *RecordService {
	return &RecordService{
		repo:        repo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// CreateRecord validates and persists a new poop record
func (s *RecordService) CreateRecord(ctx context.Context, userID string, rec *model.Record) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if rec.StartTime.IsZero() {
		return fmt.Errorf("start time is required")
	}

	// Validate amount category if provided
	if rec.Amount != nil {
		if !model.ValidAmount(string(*rec.Amount)) {
			return fmt.Errorf("invalid amount: must be large, normal, small, or abnormal")
		}
		if !rec.Success {
			return fmt.Errorf("amount is only meaningful for successful records")
		}
	}

	// Validate duration if provided
	if rec.DurationSeconds != nil && *rec.DurationSeconds < 0 {
		return fmt.Errorf("invalid duration: must be non-negative")
	}

	// Validate end time if provided
	if rec.EndTime != nil && rec.EndTime.Before(rec.StartTime) {
		return fmt.Errorf("end time must not be before start time")
	}

	// Generate ID if not provided
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	rec.UserID = userID
	rec.CreatedAt = time.Now()

	if err := s.repo.Save(ctx, rec); err != nil {
		s.logger.Error("failed to create poop record",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to create poop record: %w", err)
	}

	if err := s.auditLogger.LogCreate(ctx, userID, audit.ResourcePoopRecord, rec.ID); err != nil {
		s.logger.Error("failed to audit record creation", zap.Error(err))
	}

	s.logger.Info("poop record created successfully",
		zap.String("record_id", rec.ID),
		zap.String("user_id", userID),
		zap.Bool("success", rec.Success),
	)

	return nil
}

// DeleteRecord removes a record owned by the user
func (s *RecordService) DeleteRecord(ctx context.Context, userID, recordID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if recordID == "" {
		return fmt.Errorf("record ID is required")
	}

	if err := s.repo.Delete(ctx, recordID, userID); err != nil {
		s.logger.Error("failed to delete poop record",
			zap.Error(err),
			zap.String("record_id", recordID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to delete poop record: %w", err)
	}

	if err := s.auditLogger.LogDelete(ctx, userID, audit.ResourcePoopRecord, recordID); err != nil {
		s.logger.Error("failed to audit record deletion", zap.Error(err))
	}

	s.logger.Info("poop record deleted successfully",
		zap.String("record_id", recordID),
		zap.String("user_id", userID),
	)

	return nil
}

// ListByPeriod retrieves the user's records for the period containing ref
func (s *RecordService) ListByPeriod(ctx context.Context, userID string, g period.Granularity, ref time.Time) ([]model.Record, period.Range, error) {
	if userID == "" {
		return nil, period.Range{}, fmt.Errorf("user ID is required")
	}

	r := period.Calc(g, ref)

	records, err := s.repo.GetByUserAndRange(ctx, userID, r.Start, r.End)
	if err != nil {
		s.logger.Error("failed to list records by period",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("granularity", string(g)),
		)
		return nil, period.Range{}, fmt.Errorf("failed to list records: %w", err)
	}

	s.logger.Info("records listed successfully",
		zap.String("user_id", userID),
		zap.String("granularity", string(g)),
		zap.Int("count", len(records)),
	)

	return records, r, nil
}
