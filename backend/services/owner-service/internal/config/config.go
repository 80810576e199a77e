package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "isuride/backend/libs/config"
	libdb "isuride/backend/libs/db"
	"isuride/backend/services/owner-service/internal/service"
)

const defaultPort = "8080"

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Port string `yaml:"port" env:"OWNER_HTTP_PORT"`
}

// DatabaseConfig selects and tunes the SQL store.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" env:"OWNER_DB_DRIVER"`
	DSN             string        `yaml:"dsn" env:"OWNER_DB_DSN"`
	MaxOpenConns    int           `yaml:"maxOpenConns" env:"OWNER_DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"maxIdleConns" env:"OWNER_DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" env:"OWNER_DB_CONN_MAX_LIFETIME"`
}

// RedisConfig configures the owner session cache.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"OWNER_REDIS_ENABLED"`
	Addr     string `yaml:"addr" env:"OWNER_REDIS_ADDR"`
	Password string `yaml:"password" env:"OWNER_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"OWNER_REDIS_DB"`
	TTL      int    `yaml:"ttlSeconds" env:"OWNER_REDIS_TTL"`
}

// JWTConfig enables bearer authentication when Secret is set.
type JWTConfig struct {
	Secret           string `yaml:"secret" env:"OWNER_JWT_SECRET"`
	ExpiresInMinutes int    `yaml:"expiresInMinutes" env:"OWNER_JWT_EXPIRES_MINUTES"`
}

// DistanceConfig selects the total distance computation.
type DistanceConfig struct {
	Strategy    string `yaml:"strategy" env:"OWNER_DISTANCE_STRATEGY"`
	BatchSize   int    `yaml:"batchSize" env:"OWNER_DISTANCE_BATCH_SIZE"`
	Parallelism int    `yaml:"parallelism" env:"OWNER_DISTANCE_PARALLELISM"`
}

// Config defines owner service configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Distance DistanceConfig `yaml:"distance"`
}

// Default returns the configuration used before file and env overrides.
func Default() *Config {
	return &Config{
		HTTP:     HTTPConfig{Port: defaultPort},
		Database: DatabaseConfig{Driver: libdb.DriverPostgres},
		Redis:    RedisConfig{Addr: "localhost:6379", TTL: 300},
		JWT:      JWTConfig{ExpiresInMinutes: 60},
		Distance: DistanceConfig{Strategy: string(service.StrategyScoped), BatchSize: 500, Parallelism: 4},
	}
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := Default()
	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.New("config: database dsn required")
	}
	if _, err := libdb.DriverName(c.Database.Driver); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Redis.Enabled && strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("config: redis addr required when redis is enabled")
	}
	if _, err := service.ParseStrategy(c.Distance.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = defaultPort
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// OwnerSessionTTL returns the cache ttl as duration.
func (c *Config) OwnerSessionTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// JWTExpiration converts configured expiry to duration.
func (c *Config) JWTExpiration() time.Duration {
	if c.JWT.ExpiresInMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(c.JWT.ExpiresInMinutes) * time.Minute
}

// DistanceStrategy returns the validated strategy.
func (c *Config) DistanceStrategy() service.Strategy {
	strategy, err := service.ParseStrategy(c.Distance.Strategy)
	if err != nil {
		return service.StrategyScoped
	}
	return strategy
}
