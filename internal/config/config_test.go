package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("FEED_DEFAULT_PAGE_SIZE", "not-a-number")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 20, cfg.Feed.DefaultPageSize, "bad ints fall back")
	assert.Equal(t, 100, cfg.Feed.MaxPageSize)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.True(t, AppConfig{Environment: "Production"}.IsProduction())
	assert.False(t, AppConfig{Environment: "development"}.IsProduction())
}
