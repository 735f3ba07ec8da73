// Package config loads and validates application configuration.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Goals    GoalsConfig    `mapstructure:"goals"`
}

// StorageConfig selects the persistence backend. The file backend keeps the
// full snapshot in a single YAML file; the database backend uses MySQL.
type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file database"`
	File    string `mapstructure:"file" validate:"required_if=Backend file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime"`
	Params          map[string]string `mapstructure:"params"`
}

type GoalsConfig struct {
	DailyGoal int `mapstructure:"daily_goal" validate:"gte=1"`
}

func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigType("yaml")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/medstudy")
	}

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.file", filepath.Join("data", "medstudy.yml"))
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("goals.daily_goal", 3)

	// Database credentials come from the environment only, never from the
	// config file.
	if err := v.BindEnv("database.username", "MEDSTUDY_DB_USERNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind MEDSTUDY_DB_USERNAME environment variable: %w", err)
	}
	if err := v.BindEnv("database.password", "MEDSTUDY_DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind MEDSTUDY_DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants and reports translated, readable
// messages.
func (cfg *Config) Validate() error {
	validate, trans, err := newValidator()
	if err != nil {
		return err
	}

	err = validate.Struct(cfg)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate.Struct() > %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %v", messages)
}
