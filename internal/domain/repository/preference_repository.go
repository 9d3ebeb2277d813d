package repository

import (
	"context"

	"plume/internal/domain/entity"
)

type PreferenceRepository interface {
	// Find returns nil without error when the client has no stored preferences
	Find(ctx context.Context, clientKey string) (*entity.StoredPreferences, error)

	// Save upserts the client's preferences
	Save(ctx context.Context, prefs *entity.StoredPreferences) error
}

type ActivityRepository interface {
	Save(ctx context.Context, activity *entity.Activity) error

	// List returns the newest activities first
	List(ctx context.Context, limit int) ([]*entity.Activity, error)
	ListByContract(ctx context.Context, contractID string) ([]*entity.Activity, error)
}
