package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:5001", cfg.OracleBaseURL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ORACLE_BASE_URL", "http://oracle.internal:5001/")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("CORS_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "10")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := Load()
	assert.NoError(t, err)

	// Trailing slash is trimmed so path joins stay clean.
	assert.Equal(t, "http://oracle.internal:5001", cfg.OracleBaseURL)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("UPSTREAM_TIMEOUT_SECONDS", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveUpload(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "-1")
	_, err := Load()
	assert.Error(t, err)
}
