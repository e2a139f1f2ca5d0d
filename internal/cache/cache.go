package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// QueryMapping records a resolved query string to backend query id mapping
// so repeat queries can skip a fresh submission.
type QueryMapping struct {
	ID        uint   `gorm:"primaryKey"`
	Query     string `gorm:"uniqueIndex;not null"`
	QueryID   string `gorm:"not null"`
	CreatedAt time.Time
}

// LessonProgress tracks where the user left off in the lessons for a topic.
type LessonProgress struct {
	ID            uint   `gorm:"primaryKey"`
	Topic         string `gorm:"uniqueIndex;not null"`
	QueryID       string `gorm:"not null"`
	LastStepIndex int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Stats summarizes the offline store contents.
type Stats struct {
	Mappings        int64
	ProgressEntries int64
}

// Store is the offline cache backed by a local SQLite database.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// Open connects to the SQLite database at path and runs auto-migration.
func Open(path string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.AutoMigrate(&QueryMapping{}, &LessonProgress{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	return &Store{db: db, log: log}, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CachedQueryID looks up a previously resolved query id for the exact query
// string. The second return value is false when no mapping exists.
func (s *Store) CachedQueryID(query string) (string, bool, error) {
	var m QueryMapping
	err := s.db.Where("query = ?", query).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup query mapping: %w", err)
	}
	return m.QueryID, true, nil
}

// SaveQueryMapping persists a query to query-id mapping, replacing any
// existing mapping for the same query string.
func (s *Store) SaveQueryMapping(query, queryID string) error {
	m := QueryMapping{Query: query, QueryID: queryID}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "query"}},
		DoUpdates: clause.AssignmentColumns([]string{"query_id"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("save query mapping: %w", err)
	}
	return nil
}

// SaveProgress upserts the lesson progress entry for a topic.
func (s *Store) SaveProgress(topic, queryID string, lastStepIndex int) error {
	p := LessonProgress{Topic: topic, QueryID: queryID, LastStepIndex: lastStepIndex}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "topic"}},
		DoUpdates: clause.AssignmentColumns([]string{"query_id", "last_step_index", "updated_at"}),
	}).Create(&p).Error
	if err != nil {
		return fmt.Errorf("save lesson progress: %w", err)
	}
	return nil
}

// ProgressForTopic returns the progress entry for a topic, if one exists.
func (s *Store) ProgressForTopic(topic string) (*LessonProgress, bool, error) {
	var p LessonProgress
	err := s.db.Where("topic = ?", topic).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup lesson progress: %w", err)
	}
	return &p, true, nil
}

// LatestProgress returns the most recently created progress entry, if any.
func (s *Store) LatestProgress() (*LessonProgress, bool, error) {
	var p LessonProgress
	err := s.db.Order("created_at DESC, id DESC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lookup latest progress: %w", err)
	}
	return &p, true, nil
}

// RecentProgress lists progress entries, newest first.
func (s *Store) RecentProgress(limit int) ([]LessonProgress, error) {
	var entries []LessonProgress
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list lesson progress: %w", err)
	}
	return entries, nil
}

// Stats reports row counts for the cache CLI.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	if err := s.db.Model(&QueryMapping{}).Count(&st.Mappings).Error; err != nil {
		return Stats{}, fmt.Errorf("count mappings: %w", err)
	}
	if err := s.db.Model(&LessonProgress{}).Count(&st.ProgressEntries).Error; err != nil {
		return Stats{}, fmt.Errorf("count progress entries: %w", err)
	}
	return st, nil
}

// ClearMappings removes all cached query mappings.
func (s *Store) ClearMappings() error {
	if err := s.db.Where("1 = 1").Delete(&QueryMapping{}).Error; err != nil {
		return fmt.Errorf("clear mappings: %w", err)
	}
	return nil
}

// ClearAll removes all cached data, mappings and progress alike.
func (s *Store) ClearAll() error {
	if err := s.ClearMappings(); err != nil {
		return err
	}
	if err := s.db.Where("1 = 1").Delete(&LessonProgress{}).Error; err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. LEARNIX_DB environment variable
// 2. $XDG_DATA_HOME/learnix/learnix.db
// 3. ~/.local/share/learnix/learnix.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("LEARNIX_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "learnix", "learnix.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
