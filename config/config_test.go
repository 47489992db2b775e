// config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JOTLIN_CONFIG", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":9000\"\ndatabase_url: postgres://file/db\nsession_ttl: 1h\n"), 0o644))

	t.Setenv("JOTLIN_CONFIG", path)
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JOTLIN_ADDR", "")
	t.Setenv("JOTLIN_SESSION_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 1<<20, cfg.MaxContentBytes)
}

func TestLoadBadTTL(t *testing.T) {
	t.Setenv("JOTLIN_CONFIG", "")
	t.Setenv("DATABASE_URL", "postgres://env/db")
	t.Setenv("JOTLIN_SESSION_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)
}
