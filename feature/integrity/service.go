package integrity

import (
	"context"
	"errors"

	"stocktake/core/storage"
	"stocktake/feature/integrity/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ErrArchiveDisabled is returned by archive checks when no storage client is configured.
var ErrArchiveDisabled = errors.New("snapshot archive is disabled")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	storage storage.Config
	db      *gorm.DB
	saveDir string
	logger  *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil when
// archiving or the scan log are not configured.
func NewService(client storage.Client, storageCfg storage.Config, db *gorm.DB, saveDir string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		storage: storageCfg,
		db:      db,
		saveDir: saveDir,
		logger:  logger,
	}
}

// CheckStructure returns what is missing in the archive bucket.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrArchiveDisabled
	}
	return checks.CheckStructure(ctx, s.client, s.storage.Bucket, s.storage.Prefix)
}

// FixStructure creates what is missing in the archive bucket.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrArchiveDisabled
	}
	return checks.FixStructure(ctx, s.client, s.storage.Bucket, s.storage.Prefix, s.storage.Region, s.logger, missing)
}

// CheckSchema compares the scan log tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// FixSchema migrates the scan log tables.
func (s *Service) FixSchema() error {
	return checks.FixSchema(s.db)
}

// CheckSaveDir inspects the local save directory.
func (s *Service) CheckSaveDir() (*checks.SaveDirReport, error) {
	return checks.CheckSaveDir(s.saveDir)
}

// FixSaveDir repairs what CheckSaveDir found.
func (s *Service) FixSaveDir(report *checks.SaveDirReport) error {
	return checks.FixSaveDir(report, s.logger)
}

// Section is the outcome of one check in a combined run.
type Section struct {
	Status string `json:"status"` // "ok", "fixed", "failed", "error", "skipped"
	Error  string `json:"error,omitempty"`
	Result any    `json:"result,omitempty"`
}

// Run executes every check concurrently, fixing what it can when fix is set.
// Failures are reported per section, never as a combined error.
func (s *Service) Run(ctx context.Context, fix bool) map[string]Section {
	var saveDir, schema, structure Section

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		saveDir = s.runSaveDir(fix)
		return nil
	})
	g.Go(func() error {
		schema = s.runSchema(fix)
		return nil
	})
	g.Go(func() error {
		structure = s.runStructure(gctx, fix)
		return nil
	})
	_ = g.Wait()

	return map[string]Section{
		"savedir":   saveDir,
		"schema":    schema,
		"structure": structure,
	}
}

func (s *Service) runSaveDir(fix bool) Section {
	res, err := s.CheckSaveDir()
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if res.Healthy() {
		return Section{Status: "ok", Result: res}
	}
	if !fix {
		return Section{Status: "failed", Result: res}
	}
	if err := s.FixSaveDir(res); err != nil {
		return Section{Status: "error", Error: err.Error(), Result: res}
	}
	return Section{Status: "fixed", Result: res}
}

func (s *Service) runSchema(fix bool) Section {
	res, err := s.CheckSchema()
	if errors.Is(err, checks.ErrNoDatabase) {
		return Section{Status: "skipped", Error: err.Error()}
	}
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if res.Matched {
		return Section{Status: "ok", Result: res}
	}
	if !fix {
		return Section{Status: "failed", Result: res}
	}
	if err := s.FixSchema(); err != nil {
		return Section{Status: "error", Error: err.Error(), Result: res}
	}
	return Section{Status: "fixed", Result: res}
}

func (s *Service) runStructure(ctx context.Context, fix bool) Section {
	missing, err := s.CheckStructure(ctx)
	if errors.Is(err, ErrArchiveDisabled) {
		return Section{Status: "skipped", Error: err.Error()}
	}
	if err != nil {
		return Section{Status: "error", Error: err.Error()}
	}
	if len(missing) == 0 {
		return Section{Status: "ok", Result: missing}
	}
	if !fix {
		return Section{Status: "failed", Result: missing}
	}
	if err := s.FixStructure(ctx, missing); err != nil {
		return Section{Status: "error", Error: err.Error(), Result: missing}
	}
	return Section{Status: "fixed", Result: missing}
}
