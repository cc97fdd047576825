package models

import "time"

// KVRecord is one entry of the key-value medium backing the card store.
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:200"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string {
	return "kv_records"
}
