package stocktake

import (
	"context"
	"errors"
	"math/rand/v2"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"stocktake/core/records"
	"stocktake/core/scanlog"
	"stocktake/core/session"
	"stocktake/feature/stocktake/models"

	"go.uber.org/zap"
)

// ErrSimulatorDisabled is returned by Simulate when the simulator is off.
var ErrSimulatorDisabled = errors.New("barcode simulator is disabled")

// ErrInvalidSnapshotName is returned for snapshot names that leave the save directory.
var ErrInvalidSnapshotName = errors.New("invalid snapshot name")

// SaveFiles lists the save directory.
type SaveFiles interface {
	Dir() string
	List() ([]session.SaveFile, error)
}

// RecentScans reads the scan log.
type RecentScans interface {
	Recent(ctx context.Context, limit int) ([]scanlog.ScanEvent, error)
}

// Service serializes access to one stocktake session.
type Service struct {
	mu        sync.Mutex
	session   *session.Session
	view      *BufferView
	saves     SaveFiles
	scans     RecentScans
	simulator bool
	rng       *rand.Rand
	logger    *zap.Logger
}

// NewService creates a service. view must be the View the session was
// created with; scans may be nil when no scan log is configured.
func NewService(sess *session.Session, view *BufferView, saves SaveFiles, scans RecentScans, simulator bool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if view == nil {
		view = NewBufferView()
	}
	return &Service{
		session:   sess,
		view:      view,
		saves:     saves,
		scans:     scans,
		simulator: simulator,
		rng:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
		logger:    logger,
	}
}

// Scan handles one barcode. confirmed accepts barcodes below the minimum length.
func (s *Service) Scan(ctx context.Context, barcode string, confirmed bool) models.ScanResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out session.ScanOutcome
	if confirmed {
		out = s.session.HandleConfirmedScan(ctx, barcode)
	} else {
		out = s.session.HandleScan(ctx, barcode)
	}
	return s.scanResponse(out)
}

// Simulate scans a random barcode.
func (s *Service) Simulate(ctx context.Context) (models.ScanResponse, error) {
	if !s.simulator {
		return models.ScanResponse{}, ErrSimulatorDisabled
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out, err := s.session.SimulateScan(ctx, s.rng)
	if err != nil {
		s.view.Drain()
		return models.ScanResponse{}, err
	}
	return s.scanResponse(out), nil
}

func (s *Service) scanResponse(out session.ScanOutcome) models.ScanResponse {
	resp := models.ScanResponse{ScanOutcome: out, Messages: s.view.Drain()}
	if out.Reason != nil {
		resp.Reason = out.Reason.Error()
	}
	if out.Save != nil && out.Save.Err != nil {
		resp.SaveError = out.Save.Err.Error()
	}
	return resp
}

// RecentScans returns the latest scan log entries, newest first.
func (s *Service) RecentScans(ctx context.Context, limit int) ([]models.ScanEvent, error) {
	if s.scans == nil {
		return nil, scanlog.ErrNoDatabase
	}
	events, err := s.scans.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]models.ScanEvent, 0, len(events))
	for _, e := range events {
		out = append(out, models.ScanEvent{Barcode: e.Barcode, Accepted: e.Accepted, SaveFile: e.SaveFile, ScannedAt: e.ScannedAt})
	}
	return out, nil
}

// State returns the session state.
func (s *Service) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.State()
}

// Report returns the stocktake summary.
func (s *Service) Report() records.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Report()
}

// Groups returns the display groups.
func (s *Service) Groups(hideFound bool) [][]records.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Groups(hideFound)
}

// Rows returns the display rows, header first.
func (s *Service) Rows(hideFound bool) [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Rows(hideFound)
}

// Record returns one record.
func (s *Service) Record(barcode string) (records.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.session.Find(barcode)
	if !ok {
		return records.Record{}, session.ErrRecordNotFound
	}
	return r, nil
}

// SetFound marks a known record found or not found.
func (s *Service) SetFound(barcode string, found bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.SetFound(barcode, found)
}

// DeleteUnknown removes an unknown record.
func (s *Service) DeleteUnknown(barcode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.DeleteUnknown(barcode)
}

// Sources returns the source registry.
func (s *Service) Sources() map[int]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Sources()
}

// LoadSource loads a source file. An empty mode asks the session prompter,
// which answers with the configured default.
func (s *Service) LoadSource(ctx context.Context, req models.LoadRequest) (models.LoadResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res records.LoadResult
		err error
	)
	if req.Mode == "" {
		res, err = s.session.LoadSource(ctx, req.Path)
	} else {
		mode, perr := session.ParseLoadMode(req.Mode)
		if perr != nil {
			return models.LoadResponse{}, perr
		}
		res, err = s.session.LoadSourceWithMode(ctx, req.Path, mode)
	}

	resp := models.LoadResponse{
		SourceID: res.SourceID,
		Inserted: res.Inserted,
		Rejected: res.Rejected,
		Messages: s.view.Drain(),
	}
	if resp.Rejected == nil {
		resp.Rejected = []string{}
	}
	var dup *records.DuplicateBarcodeError
	if errors.As(err, &dup) {
		return resp, nil
	}
	return resp, err
}

// Save writes the stocktake now.
func (s *Service) Save(ctx context.Context) (models.SaveResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.session.Save(ctx)
	s.view.Drain()
	if err != nil {
		return models.SaveResponse{}, err
	}
	resp := models.SaveResponse{Path: report.Path, Rotated: report.Rotated, Pruned: report.Pruned}
	if report.ArchiveErr != nil {
		resp.ArchiveError = report.ArchiveErr.Error()
	}
	return resp, nil
}

// Snapshots lists the save files, newest first.
func (s *Service) Snapshots() ([]models.SnapshotFile, error) {
	files, err := s.saves.List()
	if err != nil {
		return nil, err
	}
	active := s.State().ActiveSavePath

	out := make([]models.SnapshotFile, 0, len(files))
	for _, f := range files {
		out = append(out, models.SnapshotFile{
			Name:    f.Name,
			Size:    f.Size,
			ModTime: f.ModTime,
			Active:  active != "" && filepath.Clean(active) == filepath.Clean(f.Path),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ModTime.After(out[j].ModTime) })
	return out, nil
}

// LoadSnapshot continues the stocktake stored in the named save file.
func (s *Service) LoadSnapshot(ctx context.Context, name string) ([]models.Message, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return nil, ErrInvalidSnapshotName
	}
	path := filepath.Join(s.saves.Dir(), name)

	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.session.LoadSnapshot(ctx, path)
	return s.view.Drain(), err
}

// Reset starts a new stocktake.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.NewStocktake()
	s.view.Drain()
}

// HideFound hides everything found so far.
func (s *Service) HideFound() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.HideFound()
	s.view.Drain()
	return s.session.State()
}

// ShowAll clears the hidden set.
func (s *Service) ShowAll() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.ShowAll()
	s.view.Drain()
	return s.session.State()
}
