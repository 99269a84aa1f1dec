package score

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store persists the best score across sessions
type Store interface {
	LoadHigh(ctx context.Context) (int, error)
	SaveHigh(ctx context.Context, high int) error
	Close() error
}

// HighScore is the single persisted row
type HighScore struct {
	ID        uint `gorm:"primaryKey"`
	Score     int  `gorm:"not null"`
	UpdatedAt time.Time
}

const highScoreRow = 1

// SQLStore keeps the high score in a SQLite file through gorm
type SQLStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database at path. An empty path uses a
// private in-memory database.
func OpenSQLite(path string) (*SQLStore, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open score db %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}
	if path == "" {
		// every pooled connection would get its own empty memory database
		sqlDB.SetMaxOpenConns(1)
	} else if err = db.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error setting journal_mode PRAGMA: %w", err)
	}
	if err = db.AutoMigrate(&HighScore{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate score db: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) LoadHigh(ctx context.Context) (int, error) {
	var row HighScore
	err := s.db.WithContext(ctx).First(&row, highScoreRow).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	return row.Score, nil
}

func (s *SQLStore) SaveHigh(ctx context.Context, high int) error {
	row := HighScore{ID: highScoreRow, Score: high}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save high score: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// MemoryStore is the fallback when no database can be opened
type MemoryStore struct {
	mu   sync.Mutex
	high int
}

func (m *MemoryStore) LoadHigh(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.high, nil
}

func (m *MemoryStore) SaveHigh(_ context.Context, high int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.high = high
	return nil
}

func (m *MemoryStore) Close() error { return nil }
