package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	Messaging MessagingConfig `yaml:"messaging"`
	Email     EmailConfig     `yaml:"email"`
	Fees      FeeConfig       `yaml:"fees"`
	Reminders ReminderConfig  `yaml:"reminders"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Jobs      JobsConfig      `yaml:"jobs"`
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

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// MessagingConfig selects and configures the SMS collaborator
type MessagingConfig struct {
	Provider   string `yaml:"provider"` // "console" or "gateway"
	GatewayURL string `yaml:"gateway_url"`
	APIKey     string `yaml:"api_key"`
}

// EmailConfig contains SendGrid settings for staff alert mails
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromEmail      string `yaml:"from_email"`
	FromName       string `yaml:"from_name"`
	AlertEmail     string `yaml:"alert_email"`
}

// FeeConfig holds the fallback fee policy used when the settings store has
// no override for a key.
type FeeConfig struct {
	LateFeeAmount           int64 `yaml:"late_fee_amount"`
	LateFeeGraceHours       int   `yaml:"late_fee_grace_hours"`
	ExtensionFeeAmount      int64 `yaml:"extension_fee_amount"`
	ExtensionThresholdHours int   `yaml:"extension_threshold_hours"`
}

// ReminderConfig holds the fallback return-reminder policy. Enabled is a
// pointer so an omitted key defaults to true instead of silently disabling
// the scheduler; only an explicit `enabled: false` turns it off.
type ReminderConfig struct {
	Enabled        *bool `yaml:"enabled"`
	IntervalsHours []int `yaml:"intervals_hours"`
	LookbackHours  int   `yaml:"lookback_hours"`
	SendGapSeconds int   `yaml:"send_gap_seconds"`
}

// RemindersEnabled resolves the pointer, treating an unset key as enabled.
func (c ReminderConfig) RemindersEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// SchedulerConfig contains cron schedule settings (six-field specs)
type SchedulerConfig struct {
	ReturnReminders string `yaml:"return_reminders"`
	OverdueAlerts   string `yaml:"overdue_alerts"`
	ReconcileLedger string `yaml:"reconcile_ledger"`
}

// JobsConfig bounds individual job runs
type JobsConfig struct {
	RunTimeoutSeconds int `yaml:"run_timeout_seconds"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	if val := os.Getenv("SMS_GATEWAY_URL"); val != "" {
		c.Messaging.GatewayURL = val
	}
	if val := os.Getenv("SMS_API_KEY"); val != "" {
		c.Messaging.APIKey = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}

	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if val := os.Getenv("REMINDER_INTERVALS"); val != "" {
		if hours, err := ParseIntervals(val); err == nil {
			c.Reminders.IntervalsHours = hours
		}
	}
}

// Validate checks the configuration and applies documented defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Messaging.Provider == "" {
		c.Messaging.Provider = "console"
	}
	if c.Messaging.Provider == "gateway" && c.Messaging.GatewayURL == "" {
		return fmt.Errorf("messaging gateway_url is required for the gateway provider")
	}

	// Fee policy defaults; the settings store can override them per key.
	if c.Fees.LateFeeGraceHours == 0 {
		c.Fees.LateFeeGraceHours = 2
	}
	if c.Fees.LateFeeAmount == 0 {
		c.Fees.LateFeeAmount = 50000 // ₹500
	}
	if c.Fees.ExtensionFeeAmount == 0 {
		c.Fees.ExtensionFeeAmount = 30000 // ₹300
	}
	if c.Fees.ExtensionThresholdHours == 0 {
		c.Fees.ExtensionThresholdHours = 4
	}

	if c.Reminders.Enabled == nil {
		enabled := true
		c.Reminders.Enabled = &enabled
	}
	if len(c.Reminders.IntervalsHours) == 0 {
		c.Reminders.IntervalsHours = []int{24, 2}
	}
	if c.Reminders.LookbackHours == 0 {
		c.Reminders.LookbackHours = 2
	}
	if c.Reminders.SendGapSeconds == 0 {
		c.Reminders.SendGapSeconds = 1
	}

	// Reminder windows are one hour wide, so the scan must run well inside
	// the hour or windows get missed.
	if c.Scheduler.ReturnReminders == "" {
		c.Scheduler.ReturnReminders = "0 */10 * * * *"
	}
	if c.Scheduler.OverdueAlerts == "" {
		c.Scheduler.OverdueAlerts = "0 0 3 * * *"
	}
	if c.Scheduler.ReconcileLedger == "" {
		c.Scheduler.ReconcileLedger = "0 30 2 * * *"
	}

	if c.Jobs.RunTimeoutSeconds == 0 {
		c.Jobs.RunTimeoutSeconds = 300
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// RunTimeout returns the per-run job deadline
func (c *Config) RunTimeout() time.Duration {
	return time.Duration(c.Jobs.RunTimeoutSeconds) * time.Second
}

// ParseIntervals parses a comma-separated list of reminder lead hours,
// e.g. "24,2".
func ParseIntervals(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	hours := make([]int, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || h <= 0 {
			return nil, fmt.Errorf("invalid interval %q", p)
		}
		hours = append(hours, h)
	}
	return hours, nil
}
