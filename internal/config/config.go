package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"weathernow.app/pkg/errors"
)

const (
	maxRedisDB        = 15
	maxPortNumber     = 65535
	maxTimeoutSeconds = 120
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Storage StorageConfig `split_words:"true"`
}

type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

type WeatherConfig struct {
	APIKey         string `envconfig:"OPENWEATHERMAP_API_KEY"`
	BaseURL        string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	IconBaseURL    string `envconfig:"OPENWEATHERMAP_ICON_BASE_URL" default:"https://openweathermap.org/img/wn"`
	Units          string `envconfig:"WEATHER_UNITS" default:"metric"`
	TimeoutSeconds int    `envconfig:"WEATHER_HTTP_TIMEOUT_SECONDS" default:"10"`
}

// StorageType represents the preference storage backend to use
type StorageType int

const (
	StorageTypeUnknown StorageType = iota
	StorageTypeMemory
	StorageTypeRedis
	StorageTypeSQLite
	StorageTypePostgres
)

// String returns the string representation of storage type
func (s StorageType) String() string {
	switch s {
	case StorageTypeMemory:
		return "memory"
	case StorageTypeRedis:
		return "redis"
	case StorageTypeSQLite:
		return "sqlite"
	case StorageTypePostgres:
		return "postgres"
	default:
		return "unknown"
	}
}

// IsValid checks if the storage type is valid
func (s StorageType) IsValid() bool {
	switch s {
	case StorageTypeMemory, StorageTypeRedis, StorageTypeSQLite, StorageTypePostgres:
		return true
	default:
		return false
	}
}

// StorageTypeFromString converts string to StorageType enum
func StorageTypeFromString(v string) StorageType {
	switch v {
	case "memory":
		return StorageTypeMemory
	case "redis":
		return StorageTypeRedis
	case "sqlite":
		return StorageTypeSQLite
	case "postgres":
		return StorageTypePostgres
	default:
		return StorageTypeUnknown
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for envconfig
func (s *StorageType) UnmarshalText(text []byte) error {
	*s = StorageTypeFromString(string(text))
	return nil
}

// MarshalText implements encoding.TextMarshaler for envconfig
func (s StorageType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type StorageConfig struct {
	Type       StorageType    `envconfig:"STORAGE_TYPE" default:"memory"`
	SQLitePath string         `envconfig:"STORAGE_SQLITE_PATH" default:"data/preferences.db"`
	Redis      RedisConfig    `split_words:"true"`
	Database   DatabaseConfig `split_words:"true"`
}

type RedisConfig struct {
	Addr         string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string `envconfig:"REDIS_PASSWORD" default:""`
	DB           int    `envconfig:"REDIS_DB" default:"0"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"weathernow"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

func (c DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.NewConfigurationError("process environment variables", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks configuration values for consistency
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > maxPortNumber {
		return errors.NewConfigurationError(
			fmt.Sprintf("server port must be between 1 and %d", maxPortNumber), nil)
	}

	if c.Weather.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY is required", nil)
	}

	if c.Weather.BaseURL == "" {
		return errors.NewConfigurationError("weather API base URL cannot be empty", nil)
	}

	if c.Weather.TimeoutSeconds <= 0 || c.Weather.TimeoutSeconds > maxTimeoutSeconds {
		return errors.NewConfigurationError(
			fmt.Sprintf("weather HTTP timeout must be between 1 and %d seconds", maxTimeoutSeconds), nil)
	}

	if !c.Storage.Type.IsValid() {
		return errors.NewConfigurationError(
			fmt.Sprintf("unknown storage type %q", c.Storage.Type.String()), nil)
	}

	if c.Storage.Type == StorageTypeRedis {
		if c.Storage.Redis.Addr == "" {
			return errors.NewConfigurationError("redis address cannot be empty", nil)
		}
		if c.Storage.Redis.DB < 0 || c.Storage.Redis.DB > maxRedisDB {
			return errors.NewConfigurationError(
				fmt.Sprintf("redis DB must be between 0 and %d", maxRedisDB), nil)
		}
	}

	if c.Storage.Type == StorageTypeSQLite && c.Storage.SQLitePath == "" {
		return errors.NewConfigurationError("sqlite path cannot be empty", nil)
	}

	return nil
}
