package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	assert.Error(t, LoadConfig())

	t.Setenv("JWT_SECRET", "something-long-enough")
	require.NoError(t, LoadConfig())
	assert.Equal(t, "something-long-enough", AppConfig.JWTSecret)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test")
	require.NoError(t, LoadConfig())

	assert.Equal(t, "development", AppConfig.Environment)
	assert.Equal(t, "5000", AppConfig.ServerPort)
	assert.Equal(t, "estatecrm", AppConfig.DBName)
	assert.Equal(t, 10, AppConfig.RateLimitLogin)
	assert.Equal(t, 60, AppConfig.ReminderLeadTime)
	assert.False(t, AppConfig.Redis.Enabled)
	assert.Equal(t, 587, AppConfig.SMTP.Port)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "test")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("RATE_LIMIT_LOGIN", "25")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDRESS", "redis:6379")
	t.Setenv("SKIP_SEED", "true")

	require.NoError(t, LoadConfig())
	assert.Equal(t, "8080", AppConfig.ServerPort)
	assert.Equal(t, 25, AppConfig.RateLimitLogin)
	assert.True(t, AppConfig.Redis.Enabled)
	assert.Equal(t, "redis:6379", AppConfig.Redis.Address)
	assert.True(t, AppConfig.SkipSeed)
}

func TestProductionRequiresDBPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DB_PASSWORD", "")
	assert.Error(t, LoadConfig())

	t.Setenv("DB_PASSWORD", "s3cret")
	assert.NoError(t, LoadConfig())
}

func TestMaskPassword(t *testing.T) {
	masked := maskPassword("host=db port=5432 user=postgres password=hunter2 dbname=estatecrm")
	assert.NotContains(t, masked, "hunter2")
	assert.Contains(t, masked, "password=*****")
	assert.Contains(t, masked, "dbname=estatecrm")

	// Password at the end of the DSN
	masked = maskPassword("host=db password=hunter2")
	assert.Equal(t, "host=db password=*****", masked)

	// No password present
	assert.Equal(t, "host=db", maskPassword("host=db"))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 7))

	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))

	assert.Equal(t, 7, getEnvAsInt("UNSET_INT_VAR", 7))
}
