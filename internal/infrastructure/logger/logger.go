package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"plume/internal/config"
)

var Module = fx.Module("logger",
	fx.Provide(NewLogger),
	fx.Invoke(registerSync),
)

func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := newConfig(cfg).Build()
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("app", cfg.App.Name)), nil
}

func newConfig(cfg *config.Config) zap.Config {
	var zapConfig zap.Config

	if cfg.IsDevelopment() {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	if cfg.Logging.Format == "console" || cfg.Logging.Format == "json" {
		zapConfig.Encoding = cfg.Logging.Format
	}

	// colour codes only make sense on a terminal
	if cfg.IsDevelopment() && zapConfig.Encoding == "console" {
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapConfig.Level = zap.NewAtomicLevelAt(parseLevel(cfg.Logging.Level))

	return zapConfig
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// registerSync flushes buffered entries on shutdown
func registerSync(lc fx.Lifecycle, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
}
