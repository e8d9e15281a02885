package checks

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"stocktake/core/records"

	"go.uber.org/zap"
)

// CorruptSuffix is appended to save files set aside by FixSaveDir.
const CorruptSuffix = ".corrupt"

// SaveDirReport describes the local save directory.
type SaveDirReport struct {
	Dir      string   `json:"dir"`
	Exists   bool     `json:"exists"`
	Writable bool     `json:"writable"`
	Files    int      `json:"files"`
	Corrupt  []string `json:"corrupt"`
}

// Healthy reports whether nothing needs fixing.
func (r *SaveDirReport) Healthy() bool {
	return r.Exists && r.Writable && len(r.Corrupt) == 0
}

// CheckSaveDir verifies that dir exists, accepts new files and holds only
// save files that can be restored.
func CheckSaveDir(dir string) (*SaveDirReport, error) {
	report := &SaveDirReport{Dir: dir, Corrupt: []string{}}

	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return report, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat save directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("save directory %s is not a directory", dir)
	}
	report.Exists = true

	if f, err := os.CreateTemp(dir, ".integrity-*"); err == nil {
		report.Writable = true
		f.Close()
		os.Remove(f.Name())
	}

	files, err := filepath.Glob(filepath.Join(dir, "stocktake_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	report.Files = len(files)
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err == nil {
			err = records.New().Restore(data)
		}
		if err != nil {
			report.Corrupt = append(report.Corrupt, filepath.Base(path))
		}
	}
	return report, nil
}

// FixSaveDir creates a missing save directory and renames corrupt save files
// so they are no longer picked up as snapshots.
func FixSaveDir(report *SaveDirReport, logger *zap.Logger) error {
	if !report.Exists {
		if err := os.MkdirAll(report.Dir, 0o755); err != nil {
			logger.Error("Failed to create save directory", zap.String("dir", report.Dir), zap.Error(err))
			return err
		}
		logger.Info("Created save directory", zap.String("dir", report.Dir))
	}
	for _, name := range report.Corrupt {
		path := filepath.Join(report.Dir, name)
		if err := os.Rename(path, path+CorruptSuffix); err != nil {
			logger.Error("Failed to set aside corrupt save file", zap.String("file", name), zap.Error(err))
			return err
		}
		logger.Warn("Set aside corrupt save file", zap.String("file", name))
	}
	return nil
}
