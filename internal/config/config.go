package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL               string        `mapstructure:"base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	ValidEmail       string `mapstructure:"valid_email"`
	ValidPassword    string `mapstructure:"valid_password"`
	NotValidPassword string `mapstructure:"not_valid_password"`

	ImagesDir       string `mapstructure:"images_dir"`
	ForeignPetIndex int    `mapstructure:"foreign_pet_index"`
	ScenariosFile   string `mapstructure:"scenarios_file"`

	StorageType string `mapstructure:"storage_type"`
	BBoltPath   string `mapstructure:"bbolt_path"`

	PublishersFile              string        `mapstructure:"publishers_file"`
	ReportWebhookURL            string        `mapstructure:"report_webhook_url"`
	ReportWebhookTimeoutSeconds int64         `mapstructure:"report_webhook_timeout_seconds"`
	ReportWebhookTimeout        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "petfriends-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("base_url", "https://petfriends1.herokuapp.com/")
	v.SetDefault("request_timeout_seconds", 0) // transport default
	v.SetDefault("valid_email", "")
	v.SetDefault("valid_password", "")
	v.SetDefault("not_valid_password", "not-a-valid-password")
	v.SetDefault("images_dir", "./testdata/images")
	v.SetDefault("foreign_pet_index", 50)
	v.SetDefault("scenarios_file", "")
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/created_pets.db")
	v.SetDefault("publishers_file", "")
	v.SetDefault("report_webhook_url", "")
	v.SetDefault("report_webhook_timeout_seconds", 5)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("invalid base_url (must not be empty)")
	}
	if cfg.RequestTimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be zero or positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.ForeignPetIndex < 0 {
		return nil, fmt.Errorf("invalid foreign_pet_index (must not be negative)")
	}

	cfg.PublishersFile = strings.TrimSpace(cfg.PublishersFile)
	cfg.ReportWebhookURL = strings.TrimSpace(cfg.ReportWebhookURL)
	if cfg.ReportWebhookTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid report_webhook_timeout_seconds (must be positive seconds)")
	}
	cfg.ReportWebhookTimeout = time.Duration(cfg.ReportWebhookTimeoutSeconds) * time.Second

	return &cfg, nil
}

// RequireCredentials reports whether the test account is configured.
func (c *Config) RequireCredentials() error {
	if strings.TrimSpace(c.ValidEmail) == "" || c.ValidPassword == "" {
		return fmt.Errorf("valid_email and valid_password must be set")
	}
	return nil
}
