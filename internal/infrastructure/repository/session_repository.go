package repository

import (
	"context"
	"fmt"

	"plume/internal/config"
	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/fixture"
	"plume/internal/infrastructure/latency"
)

type sessionRepository struct {
	fixtures  *fixture.Set
	latency   *latency.Simulator
	otpLength int
}

func NewSessionRepository(cfg *config.Config, fixtures *fixture.Set, latency *latency.Simulator) repository.SessionRepository {
	return &sessionRepository{
		fixtures:  fixtures,
		latency:   latency,
		otpLength: cfg.Session.OTPLength,
	}
}

func (r *sessionRepository) FindByToken(ctx context.Context, token string) (*entity.SigningSession, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	sess, ok := r.fixtures.Session(token)
	if !ok {
		return nil, fmt.Errorf("signing session: %w", entity.ErrNotFound)
	}
	return sess, nil
}

func (r *sessionRepository) FindByContract(ctx context.Context, contractID string) (*entity.SigningSession, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	sess, ok := r.fixtures.SessionForContract(contractID)
	if !ok {
		return nil, fmt.Errorf("signing session for contract %s: %w", contractID, entity.ErrNotFound)
	}
	return sess, nil
}

func (r *sessionRepository) VerifyOTP(ctx context.Context, token, code string) (*entity.OTPVerifyResult, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	sess, ok := r.fixtures.Session(token)
	if !ok {
		return &entity.OTPVerifyResult{Success: false, Error: "Invalid session"}, nil
	}
	if !IsOTPCode(code, r.otpLength) {
		return &entity.OTPVerifyResult{Success: false, Error: "Invalid code"}, nil
	}

	sess.OTPVerified = true
	return &entity.OTPVerifyResult{Success: true, Session: sess}, nil
}

// IsOTPCode reports whether code is exactly length ASCII digits
func IsOTPCode(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
