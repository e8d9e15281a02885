package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Save writes the stocktake to the active save file, starting a new one when
// none is active.
func (s *Session) Save(ctx context.Context) (*SaveReport, error) {
	if !s.fileLoaded {
		return nil, ErrNoDataLoaded
	}
	var report *SaveReport
	if s.activeSavePath == "" || s.pendingRotation {
		report = s.rotate(ctx)
	} else {
		report = s.saveActive()
	}
	return report, report.Err
}

// autosave applies the scan-count policy after a processed scan.
func (s *Session) autosave(ctx context.Context) *SaveReport {
	rotate := s.pendingRotation ||
		(s.cfg.AutosaveCountNewFile > 0 && s.scanCount%s.cfg.AutosaveCountNewFile == 0)
	save := s.cfg.AutosaveCount > 0 && s.scanCount%s.cfg.AutosaveCount == 0

	switch {
	case rotate, save && s.activeSavePath == "":
		return s.rotate(ctx)
	case save:
		return s.saveActive()
	default:
		return nil
	}
}

func (s *Session) saveActive() *SaveReport {
	report := &SaveReport{Path: s.activeSavePath}
	if err := s.write(s.activeSavePath); err != nil {
		report.Err = err
		s.saveFailed(report)
	}
	return report
}

// rotate starts a new save file, prunes old ones and archives the new file.
func (s *Session) rotate(ctx context.Context) *SaveReport {
	report := &SaveReport{Rotated: true}

	path, err := s.saves.NewPath()
	if err != nil {
		report.Err = fmt.Errorf("failed to allocate save file: %w", err)
		s.pendingRotation = true
		s.saveFailed(report)
		return report
	}
	report.Path = path

	if err := s.write(path); err != nil {
		report.Err = err
		s.pendingRotation = true
		s.saveFailed(report)
		return report
	}
	s.activeSavePath = path
	s.pendingRotation = false

	pruned, err := s.saves.Prune(s.cfg.RetainFiles)
	report.Pruned = pruned
	if err != nil {
		s.logger.Warn("Failed to prune save files", zap.Error(err))
	}
	for _, p := range pruned {
		s.logger.Debug("Pruned save file", zap.String("path", p))
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, path); err != nil {
			report.ArchiveErr = err
			s.logger.Warn("Failed to archive save file", zap.String("path", path), zap.Error(err))
		}
	}

	s.logger.Info("Started new save file", zap.String("path", path), zap.Int("pruned", len(pruned)))
	return report
}

func (s *Session) write(path string) error {
	data, err := s.store.Snapshot()
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.saves.Write(path, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *Session) saveFailed(report *SaveReport) {
	s.logger.Error("Autosave failed", zap.String("path", report.Path), zap.Error(report.Err))
	s.view.DisplayMessage("Save Error", fmt.Sprintf("Progress could not be saved: %v", report.Err))
}
