package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ohmypoop/backend/internal/audit"
	"github.com/ohmypoop/backend/pkg/model"
)

// PrivacyRepositoryInterface defines the bulk data access used by privacy
// operations
type PrivacyRepositoryInterface interface {
	GetAllByUser(ctx context.Context, userID string) ([]model.Record, error)
	DeleteAllByUser(ctx context.Context, userID string) (int64, error)
}

// AuditTrailInterface is the raw audit sink used by privacy operations
type AuditTrailInterface interface {
	Log(ctx context.Context, entry audit.Entry) error
}

// PrivacyService implements data portability (export everything as JSON)
// and the right to be forgotten (purge every record for a user).
type PrivacyService struct {
	repo        PrivacyRepositoryInterface
	auditLogger AuditTrailInterface
	logger      *zap.Logger
}

// NewPrivacyService creates a new PrivacyService
func NewPrivacyService(repo PrivacyRepositoryInterface, auditLogger AuditTrailInterface, logger *zap.Logger) *PrivacyService {
	return &PrivacyService{
		repo:        repo,
		auditLogger: auditLogger,
		logger:      logger,
	}
}

// UserDataExport is the JSON envelope handed back to the user
type UserDataExport struct {
	UserID     string         `json:"user_id"`
	Records    []model.Record `json:"records"`
	ExportedAt time.Time      `json:"exported_at"`
}

// ExportUserData returns every record the user has logged as indented JSON
func (s *PrivacyService) ExportUserData(ctx context.Context, userID string) ([]byte, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	s.logger.Info("Starting user data export",
		zap.String("user_id", userID),
	)

	records, err := s.repo.GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get records for export: %w", err)
	}

	exportData := UserDataExport{
		UserID:     userID,
		Records:    records,
		ExportedAt: time.Now(),
	}

	jsonData, err := json.MarshalIndent(exportData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export data: %w", err)
	}

	if err := s.auditLogger.Log(ctx, audit.Entry{
		UserID:        userID,
		OperationType: audit.OperationExport,
		ResourceType:  audit.ResourceUserData,
		ResourceID:    userID,
	}); err != nil {
		s.logger.Error("Failed to audit data export", zap.Error(err))
	}

	s.logger.Info("User data export completed",
		zap.String("user_id", userID),
		zap.Int("record_count", len(records)),
	)

	return jsonData, nil
}

// PurgeUserData deletes every record for the user and returns the number of
// rows removed
func (s *PrivacyService) PurgeUserData(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, fmt.Errorf("user ID is required")
	}

	s.logger.Info("Starting user data purge",
		zap.String("user_id", userID),
	)

	deleted, err := s.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge user data: %w", err)
	}

	if err := s.auditLogger.Log(ctx, audit.Entry{
		UserID:        userID,
		OperationType: audit.OperationPurge,
		ResourceType:  audit.ResourceUserData,
		ResourceID:    userID,
	}); err != nil {
		s.logger.Error("Failed to audit data purge", zap.Error(err))
	}

	s.logger.Info("User data purge completed",
		zap.String("user_id", userID),
		zap.Int64("deleted_count", deleted),
	)

	return deleted, nil
}
