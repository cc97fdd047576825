package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrewpaige1/wordcards/models"
)

// GormMedium stores items as rows of the kv_records table.
type GormMedium struct {
	*gorm.DB
}

func NewGormMedium(db *gorm.DB) *GormMedium {
	return &GormMedium{DB: db}
}

func (db *GormMedium) GetItem(ctx context.Context, key string) (string, bool, error) {
	var record models.KVRecord
	err := db.WithContext(ctx).Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q: %w", key, err)
	}
	return record.Value, true, nil
}

func (db *GormMedium) SetItem(ctx context.Context, key, value string) error {
	record := models.KVRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}
