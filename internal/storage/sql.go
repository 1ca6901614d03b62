package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is a single key-value row of the SQL store.
type Entry struct {
	Key       string         `gorm:"column:entry_key;primaryKey;size:191"`
	Value     datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName pins the table used for snapshots.
func (Entry) TableName() string {
	return "kv_entries"
}

// SQLStore keeps snapshots in a relational table through GORM. It works with any dialect
// GORM supports; the service wires PostgreSQL and SQLite.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the snapshot table and returns the store.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate kv_entries: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var entry Entry
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("sql get %s: %w", key, err)
	}

	return []byte(entry.Value), nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	entry := Entry{Key: key, Value: datatypes.JSON(value), UpdatedAt: time.Now().UTC()}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("sql set %s: %w", key, err)
	}

	return nil
}

func (s *SQLStore) Remove(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("sql remove %s: %w", key, err)
	}
	return nil
}
