package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Mock     MockConfig     `mapstructure:"mock"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Port    int    `mapstructure:"port"`
	Env     string `mapstructure:"env"`
	BaseURL string `mapstructure:"base_url"` // Used to build signer links
}

// MockConfig controls the fixture-backed data layer
type MockConfig struct {
	FixturesDir string `mapstructure:"fixtures_dir"` // Empty uses the embedded fixtures
	MinDelayMS  int    `mapstructure:"min_delay_ms"`
	MaxDelayMS  int    `mapstructure:"max_delay_ms"`
}

func (m *MockConfig) MinDelay() time.Duration {
	return time.Duration(m.MinDelayMS) * time.Millisecond
}

func (m *MockConfig) MaxDelay() time.Duration {
	return time.Duration(m.MaxDelayMS) * time.Millisecond
}

type SessionConfig struct {
	TTLMinutes               int `mapstructure:"ttl_minutes"`
	OTPLength                int `mapstructure:"otp_length"`
	OTPResendCooldownSeconds int `mapstructure:"otp_resend_cooldown_seconds"`
}

func (s *SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

func (s *SessionConfig) ResendCooldown() time.Duration {
	return time.Duration(s.OTPResendCooldownSeconds) * time.Second
}

type DatabaseConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Plume")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.env", "development")
	v.SetDefault("app.base_url", "http://localhost:3000")

	v.SetDefault("mock.fixtures_dir", "")
	v.SetDefault("mock.min_delay_ms", 300)
	v.SetDefault("mock.max_delay_ms", 800)

	v.SetDefault("session.ttl_minutes", 60)
	v.SetDefault("session.otp_length", 6)
	v.SetDefault("session.otp_resend_cooldown_seconds", 30)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	return load(v)
}

// LoadFile reads configuration from an explicit path
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// Enable environment variable override
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		// Running without a config file is fine, defaults and env cover it
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Mock.MaxDelayMS < cfg.Mock.MinDelayMS {
		cfg.Mock.MaxDelayMS = cfg.Mock.MinDelayMS
	}
	if cfg.Session.OTPLength <= 0 {
		cfg.Session.OTPLength = 6
	}

	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
