package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
)

type PreferenceUsecase interface {
	// Get returns the client's preferences, defaults when none are stored
	Get(ctx context.Context, clientKey string) (*entity.UIPreferences, error)
	Update(ctx context.Context, clientKey string, patch *entity.PreferencesPatch) (*entity.UIPreferences, error)
}

type preferenceUsecase struct {
	repo   repository.PreferenceRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewPreferenceUsecase(repo repository.PreferenceRepository, logger *zap.Logger) PreferenceUsecase {
	return &preferenceUsecase{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func clientKeyOrDefault(clientKey string) string {
	clientKey = strings.TrimSpace(clientKey)
	if clientKey == "" {
		return entity.DefaultClientKey
	}
	return clientKey
}

func (u *preferenceUsecase) Get(ctx context.Context, clientKey string) (*entity.UIPreferences, error) {
	stored, err := u.repo.Find(ctx, clientKeyOrDefault(clientKey))
	if err != nil {
		u.logger.Error("Failed to load preferences", zap.String("client_key", clientKey), zap.Error(err))
		return nil, err
	}

	prefs := entity.DefaultPreferences()
	if stored != nil {
		prefs = stored.Preferences
	}
	return &prefs, nil
}

func (u *preferenceUsecase) Update(ctx context.Context, clientKey string, patch *entity.PreferencesPatch) (*entity.UIPreferences, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	clientKey = clientKeyOrDefault(clientKey)
	current, err := u.Get(ctx, clientKey)
	if err != nil {
		return nil, err
	}

	updated := patch.ApplyTo(*current)
	if err := u.repo.Save(ctx, &entity.StoredPreferences{
		ClientKey:   clientKey,
		Preferences: updated,
		UpdatedAt:   u.now().UTC(),
	}); err != nil {
		u.logger.Error("Failed to save preferences", zap.String("client_key", clientKey), zap.Error(err))
		return nil, err
	}

	u.logger.Debug("Preferences updated",
		zap.String("client_key", clientKey),
		zap.String("contrast", string(updated.Contrast)),
		zap.String("view_mode", string(updated.ContractViewMode)),
	)
	return &updated, nil
}
