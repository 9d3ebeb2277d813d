package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

type ActivityUsecase interface {
	// Record stamps the activity with an id and time and stores it
	Record(ctx context.Context, action entity.ActivityAction, contractID, signerID, reason string) (*entity.Activity, error)

	// List returns the newest activities; limit is clamped to [1, MaxActivityLimit]
	List(ctx context.Context, limit int) ([]*entity.Activity, error)
	ListByContract(ctx context.Context, contractID string) ([]*entity.Activity, error)
}

type activityUsecase struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewActivityUsecase(repo repository.ActivityRepository, logger *zap.Logger) ActivityUsecase {
	return &activityUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (u *activityUsecase) Record(ctx context.Context, action entity.ActivityAction, contractID, signerID, reason string) (*entity.Activity, error) {
	activity := &entity.Activity{
		ID:         uuid.NewString(),
		Action:     action,
		ContractID: contractID,
		SignerID:   signerID,
		Reason:     reason,
		CreatedAt:  u.now().UTC(),
	}

	if err := u.repo.Save(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record %s activity: %w", action, err)
	}

	u.logger.Info("Activity recorded",
		zap.String("id", activity.ID),
		zap.String("action", string(action)),
		zap.String("contract_id", contractID),
		zap.String("signer_id", signerID),
	)

	return activity, nil
}

func (u *activityUsecase) List(ctx context.Context, limit int) ([]*entity.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}

	activities, err := u.repo.List(ctx, limit)
	if err != nil {
		u.logger.Error("Failed to list activities", zap.Error(err))
		return nil, err
	}
	return activities, nil
}

func (u *activityUsecase) ListByContract(ctx context.Context, contractID string) ([]*entity.Activity, error) {
	activities, err := u.repo.ListByContract(ctx, contractID)
	if err != nil {
		u.logger.Error("Failed to list contract activities",
			zap.String("contract_id", contractID),
			zap.Error(err),
		)
		return nil, err
	}
	return activities, nil
}
