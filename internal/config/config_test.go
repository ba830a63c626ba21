package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  user: "rentalops"
  database: "rentalops_dev"
  ssl_mode: "disable"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Messaging.Provider)
	assert.Equal(t, int64(50000), cfg.Fees.LateFeeAmount)
	assert.Equal(t, 2, cfg.Fees.LateFeeGraceHours)
	assert.True(t, cfg.Reminders.RemindersEnabled(), "an omitted reminders block must not disable the scheduler")
	assert.Equal(t, []int{24, 2}, cfg.Reminders.IntervalsHours)
	assert.Equal(t, 2, cfg.Reminders.LookbackHours)
	assert.Equal(t, "0 */10 * * * *", cfg.Scheduler.ReturnReminders)
	assert.Equal(t, 5*time.Minute, cfg.RunTimeout())
}

func TestLoadExplicitReminderDisableSticks(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
reminders:
  enabled: false
`))
	require.NoError(t, err)
	assert.False(t, cfg.Reminders.RemindersEnabled())
}

func TestLoadRejectsGatewayWithoutURL(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
messaging:
  provider: "gateway"
`))
	require.Error(t, err)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REMINDER_INTERVALS", "48,6")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []int{48, 6}, cfg.Reminders.IntervalsHours)
}

func TestParseIntervals(t *testing.T) {
	hours, err := ParseIntervals("24, 2")
	require.NoError(t, err)
	assert.Equal(t, []int{24, 2}, hours)

	_, err = ParseIntervals("24,soon")
	assert.Error(t, err)

	_, err = ParseIntervals("0")
	assert.Error(t, err)
}

func TestGetDatabaseConnectionString(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "postgres://rentalops:@localhost:5432/rentalops_dev?sslmode=disable", cfg.GetDatabaseConnectionString())
}
