package service

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"

	"plume/internal/config"
	deliveryhttp "plume/internal/delivery/http"
	"plume/internal/infrastructure/database"
	"plume/internal/infrastructure/fixture"
	"plume/internal/infrastructure/kvstore"
	"plume/internal/infrastructure/latency"
	"plume/internal/infrastructure/logger"
	"plume/internal/infrastructure/redis"
	"plume/internal/infrastructure/repository"
	"plume/internal/server"
	"plume/internal/usecase"
)

// Options is the full module graph. An empty configPath searches the
// working directory for config.yaml.
func Options(configPath string) []fx.Option {
	configModule := config.Module
	if configPath != "" {
		configModule = fx.Provide(func() (*config.Config, error) {
			return config.LoadFile(configPath)
		})
	}

	return []fx.Option{
		// Configuration
		configModule,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		kvstore.Module,
		fixture.Module,
		latency.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	}
}

// Application wraps the fx.App for service management
type Application struct {
	configPath string
	app        *fx.App
	ctx        context.Context
	cancel     context.CancelFunc
	doneChan   chan struct{}
}

// NewApplication creates a new Application instance
func NewApplication(configPath string) *Application {
	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		configPath: configPath,
		ctx:        ctx,
		cancel:     cancel,
		doneChan:   make(chan struct{}),
	}
}

// Run starts the application and blocks until a signal or Shutdown
func (a *Application) Run() error {
	defer close(a.doneChan)

	a.app = fx.New(Options(a.configPath)...)

	if err := a.app.Start(a.ctx); err != nil {
		return err
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		a.Shutdown()
	case <-a.ctx.Done():
		// Context was cancelled
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (a *Application) Shutdown() {
	a.cancel()
	if a.app != nil {
		ctx, cancel := context.WithTimeout(context.Background(), fx.DefaultTimeout)
		defer cancel()
		_ = a.app.Stop(ctx)
	}
}

// Wait blocks until the application exits
func (a *Application) Wait() {
	<-a.doneChan
}
