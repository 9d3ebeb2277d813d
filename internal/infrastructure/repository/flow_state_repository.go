package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plume/internal/config"
	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/kvstore"
)

const (
	flowStatePrefix = "plume:flow:"
	draftPrefix     = "plume:draft:"
)

type flowStateRepository struct {
	store kvstore.Store
	ttl   time.Duration
}

func NewFlowStateRepository(cfg *config.Config, store kvstore.Store) repository.FlowStateRepository {
	return &flowStateRepository{
		store: store,
		ttl:   cfg.Session.TTL(),
	}
}

func (r *flowStateRepository) Get(ctx context.Context, token string) (*entity.FlowState, error) {
	var state entity.FlowState
	err := kvstore.GetJSON(ctx, r.store, flowStatePrefix+token, &state)
	if errors.Is(err, kvstore.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load flow state: %w", err)
	}
	return &state, nil
}

func (r *flowStateRepository) Save(ctx context.Context, token string, state *entity.FlowState) error {
	if err := kvstore.SetJSON(ctx, r.store, flowStatePrefix+token, state, r.ttl); err != nil {
		return fmt.Errorf("failed to save flow state: %w", err)
	}
	return nil
}

type draftRepository struct {
	store kvstore.Store
	ttl   time.Duration
}

func NewDraftRepository(cfg *config.Config, store kvstore.Store) repository.DraftRepository {
	return &draftRepository{
		store: store,
		ttl:   cfg.Session.TTL(),
	}
}

func (r *draftRepository) FindByID(ctx context.Context, id string) (*entity.Draft, error) {
	var draft entity.Draft
	err := kvstore.GetJSON(ctx, r.store, draftPrefix+id, &draft)
	if errors.Is(err, kvstore.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	return &draft, nil
}

func (r *draftRepository) Save(ctx context.Context, draft *entity.Draft) error {
	if err := kvstore.SetJSON(ctx, r.store, draftPrefix+draft.ID, draft, r.ttl); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}
