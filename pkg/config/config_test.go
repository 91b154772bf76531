package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.RateLimit.LoginPerMinute)
	assert.Equal(t, 5*time.Second, cfg.DB.QueryTimeout)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Empty(t, cfg.Redis.URL)
}

func TestFromViper_Overrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "8081")
	v.Set("JWT_SECRET", "s3cr3t")
	v.Set("DB_QUERY_TIMEOUT_SECONDS", 2)
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("LOGIN_RATE_LIMIT", "no-es-numero")

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8081", cfg.HTTP.Addr())
	assert.Equal(t, "s3cr3t", cfg.JWT.Secret)
	assert.Equal(t, 2*time.Second, cfg.DB.QueryTimeout)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 20, cfg.RateLimit.LoginPerMinute, "un valor no numérico conserva el default")
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}

func TestValidate(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")

	cfg.JWT.Secret = "secret"
	assert.NoError(t, cfg.Validate())

	cfg.RateLimit.LoginPerMinute = 0
	assert.ErrorContains(t, cfg.Validate(), "LOGIN_RATE_LIMIT")
}
