package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("SESSION_TTL", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("GEMINI_KEY", "")

	cfg := New()

	assert.Equal(t, 2*time.Hour, cfg.SessionCfg.TTL)
	assert.Equal(t, 15*time.Minute, cfg.SessionCfg.SubmittedTTL)
	assert.Equal(t, 0, cfg.RedisCfg.DB)
	assert.NotEmpty(t, cfg.AuthCfg.JWTSecret)
	assert.Empty(t, cfg.GeminiAPICfg.APIKeys)
}

func TestNew_ReadsOverrides(t *testing.T) {
	t.Setenv("REGISTRATION_SERVICE_PORT", "9000")
	t.Setenv("SESSION_TTL", "45m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("GEMINI_KEY", "k1, k2,")

	cfg := New()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 45*time.Minute, cfg.SessionCfg.TTL)
	assert.Equal(t, 3, cfg.RedisCfg.DB)
	assert.Equal(t, []string{"k1", "k2"}, cfg.GeminiAPICfg.APIKeys)
}

func TestNew_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("SESSION_SUBMITTED_TTL", "soon")
	t.Setenv("REDIS_DB", "two")

	cfg := New()

	assert.Equal(t, 15*time.Minute, cfg.SessionCfg.SubmittedTTL)
	assert.Equal(t, 0, cfg.RedisCfg.DB)
}

func TestNew_TokenTTLFollowsSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SESSION_TOKEN_TTL", "")

	cfg := New()
	assert.Equal(t, 90*time.Minute, cfg.AuthCfg.TokenTTL)

	t.Setenv("SESSION_TOKEN_TTL", "30m")
	cfg = New()
	assert.Equal(t, 30*time.Minute, cfg.AuthCfg.TokenTTL)
}
