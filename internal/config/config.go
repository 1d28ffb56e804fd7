package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Sync     SyncConfig     `mapstructure:"sync"`
}

// APIConfig holds the listing backend connection settings
type APIConfig struct {
	BaseURL              string `mapstructure:"base_url"`
	Prefix               string `mapstructure:"prefix"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRetries           int    `mapstructure:"max_retries"`
	MaxWorkers           int    `mapstructure:"max_workers"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	PageSize             int    `mapstructure:"page_size"`
}

// DatabaseConfig holds the catalog archive database settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
}

// RedisConfig holds Redis connection details for the snapshot cache and the
// admin session store. When disabled, in-memory implementations are used.
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
}

// AdminConfig holds the hashed admin credential and session settings. Only the
// salt and hash live in configuration, never a plaintext password.
type AdminConfig struct {
	Username     string `mapstructure:"username"`
	PasswordSalt string `mapstructure:"password_salt"`
	PasswordHash string `mapstructure:"password_hash"`
	SessionTTL   int    `mapstructure:"session_ttl"`
}

// SyncConfig controls the catalog sync job
type SyncConfig struct {
	Archive bool `mapstructure:"archive"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config.yaml file not found in current directory")
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:3000")
	viper.SetDefault("api.prefix", "/api/public")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("api.max_retries", 3)
	viper.SetDefault("api.max_workers", 5)
	viper.SetDefault("api.max_requests_per_second", 5)
	viper.SetDefault("api.page_size", 10)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.name", "catalog")
	viper.SetDefault("database.user", "catalog_user")
	viper.SetDefault("database.password", "catalog_pass")

	viper.SetDefault("redis.enabled", false)
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.database", 0)

	viper.SetDefault("admin.username", "")
	viper.SetDefault("admin.password_salt", "")
	viper.SetDefault("admin.password_hash", "")
	viper.SetDefault("admin.session_ttl", 3600)

	viper.SetDefault("sync.archive", false)
}
