package main

import (
	"encoding/base64"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/protomem/bizcard-pass/internal/pass"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := loadConfig()

	assert.Equal(t, "localhost", cfg.HTTPHost)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "Asia/Seoul", cfg.Timezone)
	assert.True(t, cfg.DB.Automigrate)
	assert.Equal(t, slog.LevelInfo, cfg.slogLevel())
	assert.False(t, cfg.passCredentialsSet())
	assert.Equal(t, 15*time.Second, cfg.HTTPWriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.HTTPShutdownPeriod)
	assert.Equal(t, pass.DefaultProfile.Phone, cfg.Card.Phone)
	assert.Equal(t, pass.DefaultProfile.Kakao, cfg.Card.Kakao)
	assert.NoError(t, cfg.validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SERVICE_TIMEZONE", "Europe/Berlin")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/cards?sslmode=disable")
	t.Setenv("DB_AUTOMIGRATE", "false")
	t.Setenv("HTTP_SHUTDOWN_PERIOD", "10s")
	t.Setenv("TEAM_IDENTIFIER", "ABCDE12345")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.test,https://b.test")
	t.Setenv("PASS_CERTIFICATE_PEM_BASE64", "Y2VydA==")
	t.Setenv("PASS_KEY_PEM_BASE64", "a2V5")
	t.Setenv("WWDR_CERTIFICATE_PEM_BASE64", "d3dkcg==")

	cfg := loadConfig()

	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, slog.LevelDebug, cfg.slogLevel())
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.False(t, cfg.DB.Automigrate)
	assert.Equal(t, 10*time.Second, cfg.HTTPShutdownPeriod)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.passCredentialsSet())
	assert.NoError(t, cfg.validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
	}{
		{"bad port", func(c *config) { c.HTTPPort = 0 }},
		{"bad log level", func(c *config) { c.LogLevel = "verbose" }},
		{"unknown timezone", func(c *config) { c.Timezone = "Mars/Olympus" }},
		{"empty dsn", func(c *config) { c.DB.DSN = "" }},
		{"short team id", func(c *config) { c.Pass.TeamIdentifier = "ABC" }},
		{"bad card email", func(c *config) { c.Card.Email = "not-an-email" }},
		{"missing assets dir", func(c *config) { c.Pass.AssetsDir = "/definitely/not/here" }},
		{"zero shutdown period", func(c *config) { c.HTTPShutdownPeriod = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestNewRendererWithoutCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := loadConfig()
	r, err := newRenderer(logger, cfg, time.UTC)
	require.NoError(t, err)
	require.NotNil(t, r)
}

func TestDecodeCredentials(t *testing.T) {
	cfg := loadConfig()
	cfg.Pass.CertificateBase64 = base64.StdEncoding.EncodeToString([]byte{0x30, 0x00})
	cfg.Pass.KeyBase64 = base64.StdEncoding.EncodeToString([]byte{0x30, 0x00})
	cfg.Pass.WWDRBase64 = "%%%"

	_, err := decodeCredentials(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WWDR_CERTIFICATE_PEM_BASE64")

	cfg.Pass.WWDRBase64 = cfg.Pass.CertificateBase64
	creds, err := decodeCredentials(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(creds.Certificate), "BEGIN "+pass.BlockCertificate)
	assert.Contains(t, string(creds.PrivateKey), "BEGIN "+pass.BlockPrivateKey)

	_, err = newRenderer(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg, time.UTC)
	assert.Error(t, err)
}
