package repository

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/database"
)

// NewActivityRepository stores activities in PostgreSQL when a database is
// configured and in memory otherwise
func NewActivityRepository(db *database.Database, logger *zap.Logger) repository.ActivityRepository {
	if db == nil {
		return NewMemoryActivityRepository()
	}
	return &activityRepository{
		db:     db,
		logger: logger,
	}
}

type activityRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func (r *activityRepository) Save(ctx context.Context, activity *entity.Activity) error {
	query := `
		INSERT INTO activities (id, action, contract_id, signer_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.DB.ExecContext(ctx, query,
		activity.ID,
		activity.Action,
		activity.ContractID,
		activity.SignerID,
		activity.Reason,
		activity.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save activity",
			zap.String("action", string(activity.Action)),
			zap.String("contract_id", activity.ContractID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to save activity: %w", err)
	}

	return nil
}

func (r *activityRepository) List(ctx context.Context, limit int) ([]*entity.Activity, error) {
	query := `
		SELECT id, action, contract_id, signer_id, reason, created_at
		FROM activities
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return scanActivities(rows)
}

func (r *activityRepository) ListByContract(ctx context.Context, contractID string) ([]*entity.Activity, error) {
	query := `
		SELECT id, action, contract_id, signer_id, reason, created_at
		FROM activities
		WHERE contract_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.DB.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for contract: %w", err)
	}
	return scanActivities(rows)
}

func scanActivities(rows *sql.Rows) ([]*entity.Activity, error) {
	defer rows.Close()

	activities := make([]*entity.Activity, 0)
	for rows.Next() {
		var a entity.Activity
		var signerID, reason sql.NullString
		if err := rows.Scan(&a.ID, &a.Action, &a.ContractID, &signerID, &reason, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.SignerID = signerID.String
		a.Reason = reason.String
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activities: %w", err)
	}
	return activities, nil
}

// MemoryActivityRepository keeps activities in process, newest last
type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities []entity.Activity
}

func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{}
}

func (r *MemoryActivityRepository) Save(ctx context.Context, activity *entity.Activity) error {
	r.mu.Lock()
	r.activities = append(r.activities, *activity)
	r.mu.Unlock()
	return nil
}

func (r *MemoryActivityRepository) List(ctx context.Context, limit int) ([]*entity.Activity, error) {
	return r.collect(limit, func(*entity.Activity) bool { return true }), nil
}

func (r *MemoryActivityRepository) ListByContract(ctx context.Context, contractID string) ([]*entity.Activity, error) {
	return r.collect(0, func(a *entity.Activity) bool { return a.ContractID == contractID }), nil
}

// collect walks newest first; limit <= 0 means no limit
func (r *MemoryActivityRepository) collect(limit int, keep func(*entity.Activity) bool) []*entity.Activity {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entity.Activity, 0)
	for i := len(r.activities) - 1; i >= 0; i-- {
		a := r.activities[i]
		if !keep(&a) {
			continue
		}
		result = append(result, &a)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}
