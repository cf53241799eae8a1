package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	JWT       JWTConfig       `yaml:"jwt"`
	OTP       OTPConfig       `yaml:"otp"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SendGridConfig contains email delivery settings
type SendGridConfig struct {
	APIKey   string `yaml:"api_key"`
	FromName string `yaml:"from_name"`
	FromAddr string `yaml:"from_addr"`
}

// JWTConfig contains staff token settings
type JWTConfig struct {
	Secret   string `yaml:"secret"`
	TTLHours int    `yaml:"ttl_hours"`
}

// OTPConfig tunes the handover code window and brute-force ceiling
type OTPConfig struct {
	TTLMinutes  int   `yaml:"ttl_minutes"`
	MaxAttempts int32 `yaml:"max_attempts"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SchedulerConfig holds cron specs and thresholds for the hygiene jobs
type SchedulerConfig struct {
	MarkStaleCodes      string `yaml:"mark_stale_codes"`
	CancelAbandoned     string `yaml:"cancel_abandoned"`
	StaleCodeAfterHours int    `yaml:"stale_code_after_hours"`
	AbandonedAfterHours int    `yaml:"abandoned_after_hours"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.TTLHours == 0 {
		c.JWT.TTLHours = 8
	}
	if c.OTP.TTLMinutes == 0 {
		c.OTP.TTLMinutes = 15
	}
	if c.OTP.MaxAttempts == 0 {
		c.OTP.MaxAttempts = 5
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Scheduler.MarkStaleCodes == "" {
		c.Scheduler.MarkStaleCodes = "0 0 * * * *" // hourly
	}
	if c.Scheduler.CancelAbandoned == "" {
		c.Scheduler.CancelAbandoned = "0 30 2 * * *" // nightly
	}
	if c.Scheduler.StaleCodeAfterHours == 0 {
		c.Scheduler.StaleCodeAfterHours = 24
	}
	if c.Scheduler.AbandonedAfterHours == 0 {
		c.Scheduler.AbandonedAfterHours = 72
	}
}

// GetServerAddress returns host:port for the HTTP listener
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDatabaseConnectionString builds the lib/pq connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password,
		c.Database.Database, c.Database.SSLMode)
}

// OTPTTL returns the configured code lifetime
func (c *Config) OTPTTL() time.Duration {
	return time.Duration(c.OTP.TTLMinutes) * time.Minute
}

// JWTTTL returns the configured staff token lifetime
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWT.TTLHours) * time.Hour
}
