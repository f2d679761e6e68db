package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("unit", "")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.OpenAI.StandardModel)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.FastModel)
	assert.Equal(t, 90*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, 2, cfg.Completion.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Completion.BaseDelay)
	assert.Equal(t, 5, cfg.Completion.SampleConcurrency)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Gemini.Enabled())
	assert.False(t, cfg.Razorpay.Enabled())
	assert.False(t, cfg.Stripe.Enabled())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.sphere.ai, http://localhost:3000")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_stripe")
	t.Setenv("DATABASE_URL", "postgres://sphere@localhost/sphere")
	t.Setenv("APP_DATABASE_DRIVER", "postgres")
	t.Setenv("APP_COMPLETION_MAX_RETRIES", "4")

	cfg, err := Load("unit", "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.sphere.ai", "http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Razorpay.Enabled())
	assert.True(t, cfg.Stripe.Enabled())
	assert.Equal(t, "postgres://sphere@localhost/sphere", cfg.Database.DSN)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 4, cfg.Completion.MaxRetries)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	path := filepath.Join(t.TempDir(), "sphere.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 7000
completion:
  timeout: 30s
  sample_concurrency: 2
gemini:
  api_key: g-key
`), 0o600))

	cfg, err := Load("unit", path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Completion.Timeout)
	assert.Equal(t, 2, cfg.Completion.SampleConcurrency)
	assert.True(t, cfg.Gemini.Enabled())
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("missing openai key", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		_, err := Load("unit", "")
		assert.ErrorContains(t, err, "OPENAI_API_KEY")
	})

	t.Run("wildcard origin", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,*")
		_, err := Load("unit", "")
		assert.ErrorContains(t, err, "wildcard")
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "sk-test")
		_, err := Load("unit", filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
