// Package sqlite implements store.SnapshotStore on an embedded SQLite
// database through gorm. All partitions share one "snapshots" table keyed
// by partition name.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/phrazzld/scry-notes/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// snapshotRecord is one row of the snapshots table.
type snapshotRecord struct {
	Name      string `gorm:"primaryKey;column:name"`
	Data      []byte `gorm:"column:data;not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (snapshotRecord) TableName() string {
	return "snapshots"
}

// Store is a SQLite-backed SnapshotStore.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for a throwaway database.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshots table: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Store{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

// Load implements store.SnapshotStore.
func (s *Store) Load(ctx context.Context, partition string) ([]byte, error) {
	if partition == "" {
		return nil, store.ErrInvalidPartition
	}

	var rec snapshotRecord
	err := s.db.WithContext(ctx).Where("name = ?", partition).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, store.NewStoreError(partition, "load", "failed to query snapshot", err)
	}

	return rec.Data, nil
}

// Save implements store.SnapshotStore.
func (s *Store) Save(ctx context.Context, partition string, data []byte) error {
	if partition == "" {
		return store.ErrInvalidPartition
	}

	rec := snapshotRecord{
		Name:      partition,
		Data:      data,
		UpdatedAt: s.now(),
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return store.NewStoreError(partition, "save", "failed to upsert snapshot", err)
	}

	return nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
