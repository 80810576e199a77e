package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"isuride/backend/services/owner-service/internal/service"
)

func TestLoadRequiresDSN(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OWNER_DB_DSN", "")

	_, err := Load()
	assert.EqualError(t, err, "config: database dsn required")
}

func TestLoadDefaultsWithEnv(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("OWNER_DB_DSN", "postgres://isucon@localhost/isuride")
	t.Setenv("OWNER_DISTANCE_STRATEGY", "scan")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, service.StrategyScan, cfg.DistanceStrategy())
	assert.Equal(t, 500, cfg.Distance.BatchSize)
	assert.Equal(t, 5*time.Minute, cfg.OwnerSessionTTL())
	assert.Equal(t, time.Hour, cfg.JWTExpiration())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "owner.yaml")
	doc := `http:
  port: ":9001"
database:
  driver: mysql
  dsn: "isucon:isucon@tcp(127.0.0.1:3306)/isuride?parseTime=true"
  connMaxLifetime: 10m
redis:
  enabled: true
  addr: "redis:6379"
  ttlSeconds: 30
distance:
  strategy: global
  batchSize: 50
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("OWNER_DB_DSN", "")
	os.Unsetenv("OWNER_DB_DSN")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9001", cfg.HTTPAddress())
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, 10*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 30*time.Second, cfg.OwnerSessionTTL())
	assert.Equal(t, service.StrategyGlobal, cfg.DistanceStrategy())
	assert.Equal(t, 50, cfg.Distance.BatchSize)
	assert.Equal(t, 4, cfg.Distance.Parallelism)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Database.DSN = "dsn"
	require.NoError(t, cfg.Validate())

	cfg.Distance.Strategy = "teleport"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.DSN = "dsn"
	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.DSN = "dsn"
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = ""
	assert.Error(t, cfg.Validate())
}
