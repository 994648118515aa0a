package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apiserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 0\n")

	cfg, cfgPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)

	assert.Equal(t, 5050, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, "memory", cfg.Session.Type)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL.Duration())
	assert.Equal(t, "spice_session", cfg.Session.CookieName)
	assert.Equal(t, "spicestore:session:", cfg.Session.Redis.Prefix)
	assert.Equal(t, "data/uploads", cfg.Uploads.Dir)
	assert.Equal(t, int64(5<<20), cfg.Uploads.MaxSize)
	assert.Equal(t, "spicestore", cfg.Metrics.Namespace)
	assert.Equal(t, "configs/i18n", cfg.I18n.Path)
	assert.Equal(t, "en", cfg.I18n.DefaultLang)
}

func TestLoadConfigEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_SPICE_PORT", "9090")
	path := writeConfig(t, `
server:
  port: ${TEST_SPICE_PORT:5050}
database:
  type: "${TEST_SPICE_DB:sqlite}"
  dbname: "${TEST_SPICE_DB_NAME:./data/test.db}"
session:
  ttl: ${TEST_SPICE_TTL:1h}
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)

	// set variable wins over the default
	assert.Equal(t, 9090, cfg.Server.Port)
	// unset variables fall back to their defaults
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "./data/test.db", cfg.Database.DBName)
	assert.Equal(t, time.Hour, cfg.Session.TTL.Duration())
}

func TestDurationUnmarshal(t *testing.T) {
	path := writeConfig(t, "session:\n  ttl: 90\n")
	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.Session.TTL.Duration())

	path = writeConfig(t, "session:\n  ttl: not-a-duration\n")
	_, _, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestGetDSN(t *testing.T) {
	pg := &DatabaseConfig{Type: "postgres", Host: "db", Port: 5432, User: "u", Password: "p", DBName: "spice", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/spice?sslmode=disable", pg.GetDSN())

	my := &DatabaseConfig{Type: "mysql", Host: "db", Port: 3306, User: "u", Password: "p", DBName: "spice"}
	assert.Equal(t, "u:p@tcp(db:3306)/spice?charset=utf8mb4&parseTime=True&loc=Local", my.GetDSN())

	sq := &DatabaseConfig{Type: "sqlite", DBName: filepath.Join(t.TempDir(), "sub", "spice.db")}
	assert.Equal(t, sq.DBName, sq.GetDSN())
	// the parent directory is created on demand
	_, err := os.Stat(filepath.Dir(sq.DBName))
	assert.NoError(t, err)
}
