package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/database"
)

// NewPreferenceRepository stores preferences in PostgreSQL when a database
// is configured and in memory otherwise
func NewPreferenceRepository(db *database.Database, logger *zap.Logger) repository.PreferenceRepository {
	if db == nil {
		return NewMemoryPreferenceRepository()
	}
	return &preferenceRepository{
		db:     db,
		logger: logger,
	}
}

type preferenceRepository struct {
	db     *database.Database
	logger *zap.Logger
}

func (r *preferenceRepository) Find(ctx context.Context, clientKey string) (*entity.StoredPreferences, error) {
	query := `
		SELECT client_key, preferences, updated_at
		FROM ui_preferences
		WHERE client_key = $1
	`

	var stored entity.StoredPreferences
	var raw []byte

	err := r.db.DB.QueryRowContext(ctx, query, clientKey).Scan(
		&stored.ClientKey,
		&raw,
		&stored.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find preferences: %w", err)
	}

	// Start from defaults so keys added later keep their default value
	stored.Preferences = entity.DefaultPreferences()
	if err := json.Unmarshal(raw, &stored.Preferences); err != nil {
		r.logger.Warn("Stored preferences are malformed, using defaults",
			zap.String("client_key", clientKey),
			zap.Error(err),
		)
		stored.Preferences = entity.DefaultPreferences()
	}

	return &stored, nil
}

func (r *preferenceRepository) Save(ctx context.Context, prefs *entity.StoredPreferences) error {
	raw, err := json.Marshal(prefs.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	query := `
		INSERT INTO ui_preferences (client_key, preferences, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT(client_key) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.DB.ExecContext(ctx, query, prefs.ClientKey, raw, prefs.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

type MemoryPreferenceRepository struct {
	mu    sync.RWMutex
	prefs map[string]entity.StoredPreferences
}

func NewMemoryPreferenceRepository() *MemoryPreferenceRepository {
	return &MemoryPreferenceRepository{
		prefs: make(map[string]entity.StoredPreferences),
	}
}

func (r *MemoryPreferenceRepository) Find(ctx context.Context, clientKey string) (*entity.StoredPreferences, error) {
	r.mu.RLock()
	stored, ok := r.prefs[clientKey]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (r *MemoryPreferenceRepository) Save(ctx context.Context, prefs *entity.StoredPreferences) error {
	r.mu.Lock()
	r.prefs[prefs.ClientKey] = *prefs
	r.mu.Unlock()
	return nil
}
