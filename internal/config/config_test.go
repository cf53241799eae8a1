package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
server:
  host: 127.0.0.1
  port: 9090
database:
  host: localhost
  port: 5432
  user: petreserve
  password: secret
  database: petreserve
jwt:
  secret: test-secret
otp:
  ttl_minutes: 10
  max_attempts: 3
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	assert.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=petreserve")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "sslmode=disable")
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL())
	assert.Equal(t, int32(3), cfg.OTP.MaxAttempts)

	// Defaults for omitted sections.
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 8*time.Hour, cfg.JWTTTL())
	assert.NotEmpty(t, cfg.Scheduler.MarkStaleCodes)
	assert.Equal(t, 72, cfg.Scheduler.AbandonedAfterHours)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
