package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "data", c.DataDir)
	assert.Equal(t, StorageFile, c.Storage)
	assert.Equal(t, "sha256", c.PasswordScheme)
	assert.Equal(t, "warn", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.StorageTimeout)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_NoSources(t *testing.T) {
	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, `{
		"data_dir": "from-json",
		"storage": "sqlite",
		"database_dsn": "file:json.db",
		"log_level": "info",
		"storage_timeout": "3s"
	}`)
	t.Setenv("JOBKEEPER_DATABASE_DSN", "file:env.db")
	t.Setenv("JOBKEEPER_LOG_BACKEND", "zap")

	cfg, err := loadConfig([]string{"-c", path, "-l", "debug", "-t", "7s"})
	require.NoError(t, err)

	assert.Equal(t, "from-json", cfg.DataDir)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, "file:env.db", cfg.DatabaseDSN, "env overrides json")
	assert.Equal(t, "zap", cfg.LogBackend)
	assert.Equal(t, "debug", cfg.LogLevel, "flags override json")
	assert.Equal(t, 7*time.Second, cfg.StorageTimeout)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing json file", func(t *testing.T) {
		_, err := loadConfig([]string{"-config", filepath.Join(t.TempDir(), "nope.json")})
		require.Error(t, err)
	})
	t.Run("malformed json", func(t *testing.T) {
		_, err := loadConfig([]string{"-c", writeTempJSON(t, `{"storage":`)})
		require.Error(t, err)
	})
	t.Run("bad env duration", func(t *testing.T) {
		t.Setenv("JOBKEEPER_STORAGE_TIMEOUT", "soon")
		_, err := loadConfig(nil)
		require.Error(t, err)
	})
	t.Run("bad flag duration", func(t *testing.T) {
		_, err := loadConfig([]string{"-t", "abc"})
		require.Error(t, err)
	})
	t.Run("invalid storage", func(t *testing.T) {
		_, err := loadConfig([]string{"-s", "floppy"})
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "s3 without bucket", mutate: func(c *Config) { c.Storage = StorageS3 }, wantErr: true},
		{name: "s3 with bucket", mutate: func(c *Config) { c.Storage = StorageS3; c.S3Bucket = "jobs" }},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage = StoragePostgres }, wantErr: true},
		{name: "file without dir", mutate: func(c *Config) { c.DataDir = "" }, wantErr: true},
		{name: "argon2id", mutate: func(c *Config) { c.PasswordScheme = "argon2id" }},
		{name: "unknown scheme", mutate: func(c *Config) { c.PasswordScheme = "md5" }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
		{name: "unknown format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: true},
		{name: "unknown backend", mutate: func(c *Config) { c.LogBackend = "logrus" }, wantErr: true},
		{name: "zero timeout", mutate: func(c *Config) { c.StorageTimeout = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaults()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
