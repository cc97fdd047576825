package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrewpaige1/wordcards/models"
)

func newSQLiteMedium(t *testing.T) *GormMedium {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVRecord{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGormMedium(db)
}

func TestGormMedium_GetItem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newSQLiteMedium(t)

	tests := []struct {
		name      string
		setup     func(t *testing.T)
		key       string
		wantValue string
		wantOK    bool
	}{
		{
			name:   "missing key",
			key:    "nothing-here",
			wantOK: false,
		},
		{
			name: "stored value",
			setup: func(t *testing.T) {
				require.NoError(t, m.SetItem(ctx, "stored", `[]`))
			},
			key:       "stored",
			wantValue: `[]`,
			wantOK:    true,
		},
		{
			name: "overwritten value",
			setup: func(t *testing.T) {
				require.NoError(t, m.SetItem(ctx, "overwritten", `[]`))
				require.NoError(t, m.SetItem(ctx, "overwritten", `[{"id":"x"}]`))
			},
			key:       "overwritten",
			wantValue: `[{"id":"x"}]`,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}

			value, ok, err := m.GetItem(ctx, tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestGormMedium_SetItemKeepsOneRowPerKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := newSQLiteMedium(t)

	for _, v := range []string{"1", "2", "3"} {
		require.NoError(t, m.SetItem(ctx, "flashcards", v))
	}
	require.NoError(t, m.SetItem(ctx, "other", "x"))

	var count int64
	require.NoError(t, m.Model(&models.KVRecord{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	value, ok, err := m.GetItem(ctx, "flashcards")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", value)
}
