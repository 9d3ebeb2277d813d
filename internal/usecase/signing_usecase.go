package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"plume/internal/config"
	"plume/internal/display"
	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/signature"
)

// ConsentView is the consent step payload
type ConsentView struct {
	Session    *entity.SigningSession `json:"session"`
	Disclosure string                 `json:"disclosure"`
}

// SigningUsecase drives a signer through landing, consent, verify, review,
// sign and complete. Steps may be revisited but never skipped.
type SigningUsecase interface {
	Open(ctx context.Context, token string) (*entity.SigningSession, error)
	Consent(ctx context.Context, token string) (*ConsentView, error)
	GiveConsent(ctx context.Context, token string, scrolledToBottom, agreed bool) (*entity.SigningSession, error)
	ResendCode(ctx context.Context, token string) (*entity.OTPResendResult, error)
	VerifyCode(ctx context.Context, token, code string) (*entity.OTPVerifyResult, error)
	CompleteReview(ctx context.Context, token string) (*entity.SigningSession, error)
	Sign(ctx context.Context, token string, capture signature.Capture, agreed bool) (*entity.SigningSession, error)
}

type signingUsecase struct {
	config    *config.Config
	sessions  repository.SessionRepository
	flowState repository.FlowStateRepository
	logger    *zap.Logger
	now       func() time.Time

	// serialises read-modify-write of the flow state per token
	locks keyLocks
}

func NewSigningUsecase(cfg *config.Config, sessions repository.SessionRepository, flowState repository.FlowStateRepository, logger *zap.Logger) SigningUsecase {
	return &signingUsecase{
		config:    cfg,
		sessions:  sessions,
		flowState: flowState,
		logger:    logger,
		now:       time.Now,
	}
}

// withState layers the stored flow state over the fixture session. The
// returned state is never nil.
func (u *signingUsecase) withState(ctx context.Context, sess *entity.SigningSession) (*entity.FlowState, *entity.SigningSession, error) {
	state, err := u.flowState.Get(ctx, sess.Token)
	if err != nil {
		return nil, nil, err
	}
	if state == nil {
		state = &entity.FlowState{}
	}
	return state, state.Apply(sess), nil
}

// mutate runs fn against an open session and persists the resulting state
func (u *signingUsecase) mutate(ctx context.Context, token string, fn func(merged *entity.SigningSession, state *entity.FlowState) error) (*entity.SigningSession, error) {
	// lookup before locking so unknown tokens never allocate a lock
	sess, err := u.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.lock(token)
	defer unlock()

	state, merged, err := u.withState(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !merged.Open() {
		return nil, fmt.Errorf("%w: session is %s", entity.ErrSessionClosed, merged.Status)
	}

	if err := fn(merged, state); err != nil {
		return nil, err
	}

	if err := u.flowState.Save(ctx, token, state); err != nil {
		u.logger.Error("Failed to save flow state", zap.String("token", token), zap.Error(err))
		return nil, err
	}

	return state.Apply(sess), nil
}

// advance moves the flow forward to step without undoing later progress
func advance(state *entity.FlowState, merged *entity.SigningSession, step entity.SignerFlowStep) {
	if merged.CurrentStep.Before(step) {
		state.CurrentStep = step
	}
}

func (u *signingUsecase) Open(ctx context.Context, token string) (*entity.SigningSession, error) {
	sess, err := u.sessions.FindByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	_, merged, err := u.withState(ctx, sess)
	if err != nil {
		return nil, err
	}
	return merged, nil
}

func (u *signingUsecase) Consent(ctx context.Context, token string) (*ConsentView, error) {
	merged, err := u.Open(ctx, token)
	if err != nil {
		return nil, err
	}
	return &ConsentView{Session: merged, Disclosure: entity.ConsentDisclosure}, nil
}

func (u *signingUsecase) GiveConsent(ctx context.Context, token string, scrolledToBottom, agreed bool) (*entity.SigningSession, error) {
	return u.mutate(ctx, token, func(merged *entity.SigningSession, state *entity.FlowState) error {
		if !scrolledToBottom {
			return fmt.Errorf("%w: the disclosure must be read to the end before agreeing", entity.ErrInvalidInput)
		}
		if !agreed {
			return fmt.Errorf("%w: consent to electronic signatures is required", entity.ErrInvalidInput)
		}

		if !merged.ConsentGiven {
			now := u.now().UTC()
			state.ConsentGivenAt = &now
		}
		state.ConsentGiven = true
		advance(state, merged, entity.StepVerify)

		u.logger.Info("Signer consent recorded",
			zap.String("contract_id", merged.ContractID),
			zap.String("signer_id", merged.SignerID),
		)
		return nil
	})
}

func (u *signingUsecase) ResendCode(ctx context.Context, token string) (*entity.OTPResendResult, error) {
	var result *entity.OTPResendResult

	_, err := u.mutate(ctx, token, func(merged *entity.SigningSession, state *entity.FlowState) error {
		if !merged.ConsentGiven {
			return fmt.Errorf("%w: consent is required before verification", entity.ErrStepOutOfOrder)
		}

		now := u.now().UTC()
		cooldown := u.config.Session.ResendCooldown()
		if state.CodeSentAt != nil {
			if remaining := state.CodeSentAt.Add(cooldown).Sub(now); remaining > 0 {
				return fmt.Errorf("%w: resend available in %ds", entity.ErrCooldown, int(math.Ceil(remaining.Seconds())))
			}
		}

		state.CodeSentAt = &now
		result = &entity.OTPResendResult{
			MaskedEmail:      display.MaskEmail(merged.SignerEmail),
			CooldownSeconds:  int(cooldown / time.Second),
			CodeLength:       u.config.Session.OTPLength,
			NextResendAtUnix: now.Add(cooldown).Unix(),
		}

		u.logger.Info("Verification code sent",
			zap.String("contract_id", merged.ContractID),
			zap.String("signer_id", merged.SignerID),
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u *signingUsecase) VerifyCode(ctx context.Context, token, code string) (*entity.OTPVerifyResult, error) {
	var result *entity.OTPVerifyResult

	session, err := u.mutate(ctx, token, func(merged *entity.SigningSession, state *entity.FlowState) error {
		if !merged.ConsentGiven {
			return fmt.Errorf("%w: consent is required before verification", entity.ErrStepOutOfOrder)
		}

		verified, err := u.sessions.VerifyOTP(ctx, token, code)
		if err != nil {
			return err
		}
		result = verified
		if !verified.Success {
			u.logger.Info("Verification code rejected",
				zap.String("signer_id", merged.SignerID),
				zap.String("reason", verified.Error),
			)
			return nil
		}

		state.OTPVerified = true
		advance(state, merged, entity.StepReview)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Success {
		result.Session = session
	}
	return result, nil
}

func (u *signingUsecase) CompleteReview(ctx context.Context, token string) (*entity.SigningSession, error) {
	return u.mutate(ctx, token, func(merged *entity.SigningSession, state *entity.FlowState) error {
		if !merged.OTPVerified {
			return fmt.Errorf("%w: identity must be verified before review", entity.ErrStepOutOfOrder)
		}
		state.Reviewed = true
		advance(state, merged, entity.StepSign)
		return nil
	})
}

func (u *signingUsecase) Sign(ctx context.Context, token string, capture signature.Capture, agreed bool) (*entity.SigningSession, error) {
	return u.mutate(ctx, token, func(merged *entity.SigningSession, state *entity.FlowState) error {
		if !merged.OTPVerified {
			return fmt.Errorf("%w: identity must be verified before signing", entity.ErrStepOutOfOrder)
		}
		if !state.Reviewed {
			return fmt.Errorf("%w: the document must be reviewed before signing", entity.ErrStepOutOfOrder)
		}
		if !agreed {
			return fmt.Errorf("%w: agreement to sign electronically is required", entity.ErrInvalidInput)
		}

		value, err := signature.Normalize(capture)
		if err != nil {
			return err
		}

		now := u.now().UTC()
		state.Signature = value
		state.SignatureType = capture.Type
		state.SignedAt = &now
		state.Completed = true
		state.CurrentStep = entity.StepComplete

		u.logger.Info("Document signed",
			zap.String("contract_id", merged.ContractID),
			zap.String("signer_id", merged.SignerID),
			zap.String("signature_type", string(capture.Type)),
		)
		return nil
	})
}
