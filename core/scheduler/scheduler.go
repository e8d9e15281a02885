// Package scheduler runs periodic background jobs for the server.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"stocktake/core/session"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SaveFiles lists local save files.
type SaveFiles interface {
	Latest() (session.SaveFile, bool, error)
}

// Archive uploads save files and trims old copies.
type Archive interface {
	Archive(ctx context.Context, path string) error
	Prune(ctx context.Context, keep int) ([]string, error)
}

// Scheduler archives the newest save file on a cron schedule.
type Scheduler struct {
	cron    *cron.Cron
	cfg     Config
	saves   SaveFiles
	archive Archive
	logger  *zap.Logger

	lastArchived session.SaveFile
}

// New creates a scheduler. Nothing runs until Start.
func New(cfg Config, saves SaveFiles, archive Archive, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		cron:    cron.New(),
		cfg:     cfg,
		saves:   saves,
		archive: archive,
		logger:  logger.Named("scheduler"),
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ArchiveSpec, s.archiveJob); err != nil {
		return fmt.Errorf("invalid archive schedule %q: %w", s.cfg.ArchiveSpec, err)
	}
	s.logger.Info("Starting scheduler", zap.String("archive_spec", s.cfg.ArchiveSpec))
	s.cron.Start()
	return nil
}

// Stop stops the cron loop and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) archiveJob() {
	timeout := time.Duration(s.cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := s.RunArchive(ctx); err != nil {
		s.logger.Error("Scheduled archive failed", zap.Error(err))
	}
}

// RunArchive uploads the newest save file unless it was already uploaded
// unchanged, then prunes the archive. It reports whether a file was uploaded.
func (s *Scheduler) RunArchive(ctx context.Context) (bool, error) {
	latest, ok, err := s.saves.Latest()
	if err != nil {
		return false, fmt.Errorf("failed to list save files: %w", err)
	}
	if !ok {
		s.logger.Debug("No save file to archive")
		return false, nil
	}
	if latest.Path == s.lastArchived.Path && latest.ModTime.Equal(s.lastArchived.ModTime) {
		return false, nil
	}

	if err := s.archive.Archive(ctx, latest.Path); err != nil {
		return false, err
	}
	s.lastArchived = latest

	if _, err := s.archive.Prune(ctx, s.cfg.ArchiveRetain); err != nil {
		s.logger.Warn("Failed to prune archive", zap.Error(err))
	}
	return true, nil
}
