// Package history keeps a local journal of dispatched notifications in a
// SQLite database. The journal is diagnostic only: the monitor records
// into it best effort and the history subcommand reads it back.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Event is one dispatch attempt.
type Event struct {
	ID                uint      `gorm:"primaryKey"`
	CreatedAt         time.Time `gorm:"index"`
	Kind              string    `gorm:"index"`
	Recipients        string
	Subject           string
	Success           bool
	InactivityMinutes float64
}

// Repository handles all journal database operations.
type Repository struct {
	db *gorm.DB
}

// Open connects to the journal database at path, creating the schema if
// needed.
func Open(path string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	if err := db.AutoMigrate(&Event{}); err != nil {
		return nil, fmt.Errorf("migrate journal schema: %w", err)
	}

	return &Repository{db: db}, nil
}

// Record inserts one event.
func (r *Repository) Record(e *Event) error {
	if result := r.db.Create(e); result.Error != nil {
		return fmt.Errorf("insert journal event: %w", result.Error)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *Repository) Recent(limit int) ([]Event, error) {
	var events []Event
	result := r.db.Order("created_at DESC").Limit(limit).Find(&events)
	if result.Error != nil {
		return nil, fmt.Errorf("query journal events: %w", result.Error)
	}
	return events, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// JoinRecipients flattens an address list for storage.
func JoinRecipients(to []string) string {
	return strings.Join(to, ", ")
}
