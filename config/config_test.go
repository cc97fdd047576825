package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "wordcards.db", cfg.SQLitePath)
	assert.Equal(t, "flashcards", cfg.StorageKey)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.AuthEnabled())
}

func TestNewFromEnvironment(t *testing.T) {
	t.Setenv("WORDCARDS_ENV", "production")
	t.Setenv("WORDCARDS_DB_DRIVER", " Memory ")
	t.Setenv("WORDCARDS_STORAGE_KEY", "cards-v2")
	t.Setenv("WORDCARDS_JWT_SECRET", "s3cret")
	t.Setenv("WORDCARDS_TOKEN_TTL", "90m")
	t.Setenv("WORDCARDS_ALLOWED_ORIGINS", "https://cards.example.com")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, DriverMemory, cfg.DBDriver)
	assert.Equal(t, "cards-v2", cfg.StorageKey)
	assert.Equal(t, 90*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"https://cards.example.com"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.AuthEnabled())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		return Config{DBDriver: DriverSQLite, SQLitePath: "x.db", StorageKey: "flashcards", TokenTTL: time.Hour}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "sqlite", mutate: func(*Config) {}},
		{name: "memory", mutate: func(c *Config) { c.DBDriver = DriverMemory }},
		{name: "postgres with url", mutate: func(c *Config) {
			c.DBDriver = DriverPostgres
			c.DBURL = "postgres://localhost/wordcards"
		}},
		{name: "postgres without url", mutate: func(c *Config) { c.DBDriver = DriverPostgres }, wantErr: "DB_URL"},
		{name: "sqlite without path", mutate: func(c *Config) { c.SQLitePath = "" }, wantErr: "SQLITE_PATH"},
		{name: "unknown driver", mutate: func(c *Config) { c.DBDriver = "mysql" }, wantErr: "unsupported DB_DRIVER"},
		{name: "blank storage key", mutate: func(c *Config) { c.StorageKey = "  " }, wantErr: "STORAGE_KEY"},
		{name: "zero ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: "TOKEN_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestOpenMediumSQLite(t *testing.T) {
	t.Parallel()

	cfg := &Config{DBDriver: DriverSQLite, SQLitePath: t.TempDir() + "/cards.db"}
	medium, err := OpenMedium(cfg)
	require.NoError(t, err)

	_, found, err := medium.GetItem(t.Context(), "flashcards")
	require.NoError(t, err)
	assert.False(t, found)
}
