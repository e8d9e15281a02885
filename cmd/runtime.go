package cmd

import (
	"context"
	"fmt"

	"stocktake/core/archive"
	"stocktake/core/config"
	"stocktake/core/database"
	"stocktake/core/logger"
	"stocktake/core/scanlog"
	"stocktake/core/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command loads first.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
}

func loadRuntime() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logg}, nil
}

// openScanLog connects the scan log database. A failed connection is not
// fatal unless required is set.
func (r *runtime) openScanLog(required bool) (*scanlog.Log, *gorm.DB, error) {
	db, err := database.Connect(r.cfg.Database)
	if err != nil {
		if required {
			return nil, nil, fmt.Errorf("scan log database required: %w", err)
		}
		r.logger.Warn("Optional database connection failed, scans are not logged", zap.Error(err))
		return nil, nil, nil
	}
	log, err := scanlog.New(db, r.logger)
	if err != nil {
		if required {
			return nil, nil, err
		}
		r.logger.Warn("Scan log unavailable", zap.Error(err))
		return nil, db, nil
	}
	r.logger.Info("Scan log connected", zap.String("driver", r.cfg.Database.Driver))
	return log, db, nil
}

// openArchive creates the storage client and archiver when archiving is
// enabled. Both are nil otherwise.
func (r *runtime) openArchive(ctx context.Context, required bool) (storage.Client, *archive.Archiver, error) {
	if !r.cfg.Storage.Enabled {
		if required {
			return nil, nil, fmt.Errorf("snapshot archive is disabled (set STORAGE_ENABLED=true)")
		}
		return nil, nil, nil
	}
	client, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	arch := archive.New(client, r.cfg.Storage, r.logger)
	if err := arch.EnsureBucket(ctx); err != nil {
		if required {
			return nil, nil, err
		}
		r.logger.Warn("Archive bucket unavailable", zap.Error(err))
	}
	return client, arch, nil
}
