// Package report persists aggregation output: the stats.json document the
// frontend consumes, plus a run history table so repeated aggregations can
// be compared over time.
package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"chatwrapped/internal/stats"
)

// Run is one recorded aggregation run.
type Run struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	Year               int       `json:"year"`
	RecordCount        int       `json:"record_count"`
	SkippedCount       int       `json:"skipped_count"`
	TotalConversations int       `json:"total_conversations"`
	AlignmentScore     int       `json:"alignment_score"`
	StatsPath          string    `json:"stats_path"`
	DurationMs         int64     `json:"duration_ms"`
	CreatedAt          time.Time `json:"created_at"`
}

// Store wraps the run history database.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewStore opens (and migrates) the run history database at path.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("report: creating storage dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("report: opening database: %w", err)
	}
	if err := db.AutoMigrate(&Run{}); err != nil {
		return nil, fmt.Errorf("report: migrating: %w", err)
	}
	return &Store{db: db, logger: logger}, nil
}

// RecordRun appends one run to the history.
func (s *Store) RecordRun(run *Run) error {
	if err := s.db.Create(run).Error; err != nil {
		return fmt.Errorf("report: recording run: %w", err)
	}
	s.logger.Info("aggregation run recorded",
		"year", run.Year, "conversations", run.TotalConversations, "duration_ms", run.DurationMs)
	return nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	var runs []Run
	err := s.db.Order("created_at DESC, id DESC").Limit(limit).Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("report: listing runs: %w", err)
	}
	return runs, nil
}

// WriteStats writes the report document as indented JSON, creating parent
// directories as needed.
func WriteStats(path string, report *stats.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: creating stats dir: %w", err)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("report: encoding stats: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: writing %s: %w", path, err)
	}
	return nil
}

// ReadStats loads a previously written report document.
func ReadStats(path string) (*stats.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: reading %s: %w", path, err)
	}
	var report stats.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("report: decoding %s: %w", path, err)
	}
	return &report, nil
}
