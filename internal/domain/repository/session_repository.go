package repository

import (
	"context"

	"plume/internal/domain/entity"
)

type SessionRepository interface {
	FindByToken(ctx context.Context, token string) (*entity.SigningSession, error)

	// FindByContract returns the first session issued for the contract
	FindByContract(ctx context.Context, contractID string) (*entity.SigningSession, error)

	// VerifyOTP accepts any code of the configured length made of digits
	VerifyOTP(ctx context.Context, token, code string) (*entity.OTPVerifyResult, error)
}

// FlowStateRepository keeps per-token signer progress. Get returns nil
// without error when nothing is stored.
type FlowStateRepository interface {
	Get(ctx context.Context, token string) (*entity.FlowState, error)
	Save(ctx context.Context, token string, state *entity.FlowState) error
}

// DraftRepository keeps contract wizard drafts. FindByID returns nil
// without error when the draft is unknown or expired.
type DraftRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Draft, error)
	Save(ctx context.Context, draft *entity.Draft) error
}
