package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"plume/internal/config"
)

var Module = fx.Module("database",
	fx.Provide(NewDatabase),
)

type Database struct {
	DB     *sql.DB
	logger *zap.Logger
}

// NewDatabase connects to PostgreSQL when database.enabled is set. It returns
// a nil *Database otherwise and repositories fall back to memory.
func NewDatabase(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*Database, error) {
	if !cfg.Database.Enabled {
		logger.Info("Database disabled, using in-memory repositories")
		return nil, nil
	}

	// Build PostgreSQL connection string
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open(cfg.Database.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	database := &Database{
		DB:     db,
		logger: logger,
	}

	// Run migrations
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return database.Close()
		},
	})

	return database, nil
}

func (d *Database) migrate() error {
	statements := []struct {
		name string
		sql  string
	}{
		{
			name: "ui_preferences table",
			sql: `
	CREATE TABLE IF NOT EXISTS ui_preferences (
		client_key VARCHAR(255) PRIMARY KEY,
		preferences JSONB NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`,
		},
		{
			name: "activities table",
			sql: `
	CREATE TABLE IF NOT EXISTS activities (
		id VARCHAR(64) PRIMARY KEY,
		action VARCHAR(32) NOT NULL,
		contract_id VARCHAR(255) NOT NULL,
		signer_id VARCHAR(255) DEFAULT '',
		reason TEXT DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`,
		},
		{
			// Created separately, PostgreSQL doesn't support IF NOT EXISTS inline
			name: "activities contract index",
			sql: `
	CREATE INDEX IF NOT EXISTS idx_activities_contract_id ON activities(contract_id);
	`,
		},
	}

	for _, stmt := range statements {
		if _, err := d.DB.Exec(stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}

	d.logger.Info("Database migrations completed successfully")
	return nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}
