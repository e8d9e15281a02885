package scanlog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stocktake/core/session"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned when the log has no database behind it.
var ErrNoDatabase = errors.New("scan log database is not connected")

// Log is a scan log backed by a GORM database.
type Log struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New migrates the scan_events table and returns the log.
func New(db *gorm.DB, logger *zap.Logger) (*Log, error) {
	if db == nil {
		return nil, ErrNoDatabase
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&ScanEvent{}); err != nil {
		return nil, fmt.Errorf("failed to migrate scan log: %w", err)
	}
	return &Log{db: db, logger: logger.Named("scanlog")}, nil
}

// Open wraps db without migrating it. Used when the schema is checked
// separately.
func Open(db *gorm.DB, logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{db: db, logger: logger.Named("scanlog")}
}

// Append stores one scan.
func (l *Log) Append(ctx context.Context, entry session.ScanEntry) error {
	event := ScanEvent{
		Barcode:   entry.Barcode,
		Accepted:  entry.Accepted,
		SaveFile:  entry.SaveFile,
		ScannedAt: entry.ScannedAt.UTC(),
	}
	if err := l.db.WithContext(ctx).Create(&event).Error; err != nil {
		return fmt.Errorf("failed to append scan %q: %w", entry.Barcode, err)
	}
	l.logger.Debug("Scan logged", zap.Uint("id", event.ID), zap.String("barcode", entry.Barcode))
	return nil
}

// Since returns the scans tagged with saveFile that were received strictly
// after t, oldest first. saveFile is the base name of a save file; scans made
// while a different stocktake was open are not returned.
func (l *Log) Since(ctx context.Context, saveFile string, t time.Time) ([]session.ScanEntry, error) {
	var events []ScanEvent
	err := l.db.WithContext(ctx).
		Where("save_file = ? AND scanned_at > ?", saveFile, t.UTC()).
		Order("scanned_at ASC").
		Order("id ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read scan log: %w", err)
	}
	return toEntries(events), nil
}

// Recent returns the newest limit scans, newest first.
func (l *Log) Recent(ctx context.Context, limit int) ([]ScanEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	var events []ScanEvent
	err := l.db.WithContext(ctx).
		Order("scanned_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read scan log: %w", err)
	}
	return events, nil
}

// Count returns the number of logged scans.
func (l *Log) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.WithContext(ctx).Model(&ScanEvent{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return n, nil
}

func toEntries(events []ScanEvent) []session.ScanEntry {
	entries := make([]session.ScanEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, session.ScanEntry{
			Barcode:   e.Barcode,
			Accepted:  e.Accepted,
			SaveFile:  e.SaveFile,
			ScannedAt: e.ScannedAt,
		})
	}
	return entries
}
