package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PORT", "")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "default-profile.jpg", cfg.DefaultProfileImage)
	assert.False(t, cfg.UseMemoryStore())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins())
	assert.Empty(t, cfg.TrustedProxyList())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("ELASTICSEARCH_ADDRS", "http://a:9200, ,http://b:9200")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 173.245.48.0/20")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.UseMemoryStore())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.ESAddrs())
	assert.Equal(t, []string{"10.0.0.0/8", "173.245.48.0/20"}, cfg.TrustedProxyList())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRE", "7d")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()

	assert.Equal(t, 168*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.CookieSecure)
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:1/d?sslmode=disable", cfg.PostgresDSN())
}
