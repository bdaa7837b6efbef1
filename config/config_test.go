package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/artemmak/showreel/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ProductionConfig {
	return &ProductionConfig{
		Database: DatabaseConfig{Host: "localhost", Port: 5432, Name: "showreel", User: "postgres", Password: "secret", SSLMode: "disable"},
		Server:   ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second, IdleTimeout: time.Second},
		Security: SecurityConfig{SubmitRateLimit: 5, GlobalRateLimit: 100, RateLimitWindow: time.Minute},
		JWT: JWTConfig{
			SecretKey:       "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
			Issuer:          "showreel",
			Audience:        "showreel-admin",
		},
		Logging: LoggingConfig{Level: "info", Output: "stdout"},
		Cache:   CacheConfig{Enabled: true, RedisURL: "redis://localhost:6379", DefaultTTL: time.Minute},
	}
}

func TestValidateProductionConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ProductionConfig)
		wantErr string
	}{
		{"valid", func(*ProductionConfig) {}, ""},
		{"missing db password", func(c *ProductionConfig) { c.Database.Password = "" }, "DB_PASSWORD is required"},
		{"short jwt secret", func(c *ProductionConfig) { c.JWT.SecretKey = "short" }, "JWT_SECRET_KEY must be at least 32"},
		{"rsa without keys", func(c *ProductionConfig) { c.JWT.UseRSAKeys = true }, "JWT_PRIVATE_KEY and JWT_PUBLIC_KEY"},
		{"bad port", func(c *ProductionConfig) { c.Server.Port = 70000 }, "SERVER_PORT"},
		{"telegram half configured", func(c *ProductionConfig) { c.Telegram.BotToken = "123:abc" }, "TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID"},
		{"bad log level", func(c *ProductionConfig) { c.Logging.Level = "trace" }, "LOG_LEVEL"},
		{"file output without path", func(c *ProductionConfig) { c.Logging.Output = "file" }, "LOG_FILE_PATH"},
		{"cache without url", func(c *ProductionConfig) { c.Cache.RedisURL = "" }, "CACHE_REDIS_URL"},
		{"tls without cert", func(c *ProductionConfig) { c.Security.TLSEnabled = true }, "TLS_CERT_FILE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateProductionConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Host = ""
	cfg.Database.Name = ""
	err := ValidateProductionConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST is required; DB_NAME is required")
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SHOWREEL_TEST_INT", "42")
	t.Setenv("SHOWREEL_TEST_BAD_INT", "x")
	t.Setenv("SHOWREEL_TEST_BOOL", "true")
	t.Setenv("SHOWREEL_TEST_DUR", "90s")
	t.Setenv("SHOWREEL_TEST_SLICE", " a , ,b ")

	assert.Equal(t, 42, getEnvInt("SHOWREEL_TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("SHOWREEL_TEST_BAD_INT", 1))
	assert.True(t, getEnvBool("SHOWREEL_TEST_BOOL", false))
	assert.Equal(t, 90*time.Second, getEnvDuration("SHOWREEL_TEST_DUR", time.Second))
	assert.Equal(t, []string{"a", "b"}, getEnvStringSlice("SHOWREEL_TEST_SLICE", nil))
	assert.Equal(t, "fallback", getEnvString("SHOWREEL_TEST_UNSET", "fallback"))
}

func TestLoadProductionConfigFromEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "0123456789abcdef0123456789abcdef")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("LOG_OUTPUT", "stdout")

	cfg, err := LoadProductionConfig()
	require.NoError(t, err)
	assert.Equal(t, "showreel", cfg.Database.Name)
	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, "-100200", cfg.Telegram.ChatID)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestPricingFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("round trip", func(t *testing.T) {
		path := filepath.Join(dir, "pricing.toml")
		want := pricing.DefaultConfig()
		want.BaseFramePrice = decimal.NewFromInt(3500)
		require.NoError(t, WritePricingFile(path, want))

		got, err := LoadPricingFile(path)
		require.NoError(t, err)
		assert.True(t, want.BaseFramePrice.Equal(got.BaseFramePrice))
		assert.True(t, want.NDAPartialMultiplier.Equal(got.NDAPartialMultiplier))
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.toml")
		require.NoError(t, os.WriteFile(path, []byte("base_frame_price = 4000\nnda_full_multiplier = 1.75\n"), 0o600))

		got, err := LoadPricingFile(path)
		require.NoError(t, err)
		assert.True(t, got.BaseFramePrice.Equal(decimal.NewFromInt(4000)))
		assert.True(t, got.NDAFullMultiplier.Equal(decimal.RequireFromString("1.75")))
		assert.True(t, got.MusicPrice.Equal(pricing.DefaultConfig().MusicPrice))
	})

	t.Run("invalid multiplier", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("deadline_20_multiplier = 0.5\n"), 0o600))
		_, err := LoadPricingFile(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadPricingFile(filepath.Join(dir, "nope.toml"))
		assert.Error(t, err)
	})
}
