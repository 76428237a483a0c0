package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FITLOG_PRIMARY__ENV", "test")
	t.Setenv("FITLOG_SERVER__PORT", "8080")
	t.Setenv("FITLOG_SERVER__READ_TIMEOUT", "10")
	t.Setenv("FITLOG_SERVER__WRITE_TIMEOUT", "10")
	t.Setenv("FITLOG_SERVER__IDLE_TIMEOUT", "60")
}

func TestLoadMapsNestedKeys(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("FITLOG_DATABASE__PATH", "/tmp/fitlog-test")
	t.Setenv("FITLOG_TRACKER__UPSERT_MISSING_USERS", "true")
	t.Setenv("FITLOG_TRACKER__STORE_TIMEOUT", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "/tmp/fitlog-test", cfg.Database.Path)
	assert.True(t, cfg.Tracker.UpsertMissingUsers)
	assert.Equal(t, 3, cfg.Tracker.StoreTimeout)
}

func TestLoadAppliesDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/fitlog", cfg.Database.Path)
	assert.Equal(t, 300, cfg.Database.GCInterval)
	assert.Equal(t, 5, cfg.Tracker.StoreTimeout)
	assert.False(t, cfg.Tracker.UpsertMissingUsers)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "fitlog", cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Empty(t, cfg.Observability.NewRelic.LicenseKey)
}

func TestObservabilityValidate(t *testing.T) {
	obs := DefaultObservabilityConfig()
	require.NoError(t, obs.Validate())

	obs.Logging.Level = "loud"
	assert.Error(t, obs.Validate())

	obs = DefaultObservabilityConfig()
	obs.Logging.Format = "xml"
	assert.Error(t, obs.Validate())
}
