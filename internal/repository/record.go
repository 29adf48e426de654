package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ohmypoop/backend/pkg/model"
)

// RecordRepository manages poop record persistence
type RecordRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewRecordRepository creates a new RecordRepository
func NewRecordRepository(db *pgxpool.Pool, logger *zap.Logger) *RecordRepository {
	return &RecordRepository{
		db:     db,
		logger: logger,
	}
}

// Save inserts a new poop record
func (r *RecordRepository) Save(ctx context.Context, rec *model.Record) error {
	query := `
		INSERT INTO poop_records (
			id, user_id, start_time, end_time, duration_seconds,
			success, amount, memo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.UserID,
		rec.StartTime,
		rec.EndTime,
		rec.DurationSeconds,
		rec.Success,
		rec.Amount,
		rec.Memo,
	)

	if err != nil {
		r.logger.Error("failed to save poop record",
			zap.Error(err),
			zap.String("user_id", rec.UserID),
		)
		return fmt.Errorf("failed to save poop record: %w", err)
	}

	return nil
}

// Delete removes a record owned by the given user. Returns an error when no
// matching row exists, so deleting another user's record fails the same way
// as deleting a nonexistent one.
func (r *RecordRepository) Delete(ctx context.Context, recordID, userID string) error {
	query := `DELETE FROM poop_records WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, recordID, userID)
	if err != nil {
		r.logger.Error("failed to delete poop record",
			zap.Error(err),
			zap.String("record_id", recordID),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to delete poop record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("poop record not found: %s", recordID)
	}

	return nil
}

// GetByUserAndRange retrieves a user's records whose start time falls inside
// the inclusive [start, end] window, sorted ascending by start time.
func (r *RecordRepository) GetByUserAndRange(ctx context.Context, userID string, start, end time.Time) ([]model.Record, error) {
	query := `
		SELECT
			id, user_id, start_time, end_time, duration_seconds,
			success, amount, memo, created_at
		FROM poop_records
		WHERE user_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time ASC
	`

	rows, err := r.db.Query(ctx, query, userID, start, end)
	if err != nil {
		r.logger.Error("failed to get poop records", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get poop records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.StartTime,
			&rec.EndTime,
			&rec.DurationSeconds,
			&rec.Success,
			&rec.Amount,
			&rec.Memo,
			&rec.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan poop record", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating poop records", zap.Error(err))
		return nil, fmt.Errorf("error iterating poop records: %w", err)
	}

	return records, nil
}

// GetAllByUser retrieves every record a user has ever logged, sorted
// ascending by start time. Used by the privacy export.
func (r *RecordRepository) GetAllByUser(ctx context.Context, userID string) ([]model.Record, error) {
	query := `
		SELECT
			id, user_id, start_time, end_time, duration_seconds,
			success, amount, memo, created_at
		FROM poop_records
		WHERE user_id = $1
		ORDER BY start_time ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to get all poop records", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get all poop records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var rec model.Record
		err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.StartTime,
			&rec.EndTime,
			&rec.DurationSeconds,
			&rec.Success,
			&rec.Amount,
			&rec.Memo,
			&rec.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan poop record", zap.Error(err))
			continue
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating poop records", zap.Error(err))
		return nil, fmt.Errorf("error iterating poop records: %w", err)
	}

	return records, nil
}

// DeleteAllByUser removes every record a user has logged and returns the
// number of rows deleted. Used by the privacy purge.
func (r *RecordRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM poop_records WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error("failed to delete user's poop records",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return 0, fmt.Errorf("failed to delete user's poop records: %w", err)
	}

	return result.RowsAffected(), nil
}
