package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"stocktake/core/records"

	"go.uber.org/zap"
)

// Dependencies bundles the collaborators of a Session.
// Loader and Saves are required; the rest fall back to no-ops.
type Dependencies struct {
	Loader   SourceLoader
	Saves    SaveStore
	ScanLog  ScanLog
	Notifier Notifier
	View     View
	Prompter Prompter
	Archiver Archiver
}

// Session is one operator's stocktake.
type Session struct {
	cfg    Config
	store  *records.Store
	logger *zap.Logger
	now    func() time.Time

	loader   SourceLoader
	saves    SaveStore
	scanLog  ScanLog
	notifier Notifier
	view     View
	prompter Prompter
	archiver Archiver

	fileLoaded      bool
	activeSavePath  string
	hidden          map[string]struct{}
	scanCount       int
	pendingRotation bool
	replaying       bool
}

// State is a read-only view of the session state.
type State struct {
	FileLoaded     bool   `json:"file_loaded"`
	ActiveSavePath string `json:"active_save_path"`
	ScanCount      int    `json:"scan_count"`
	HiddenCount    int    `json:"hidden_count"`
	RecordCount    int    `json:"record_count"`
}

// New creates a session with an empty store.
func New(cfg Config, deps Dependencies, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{
		cfg:      cfg,
		store:    records.New(),
		logger:   logger,
		now:      time.Now,
		loader:   deps.Loader,
		saves:    deps.Saves,
		scanLog:  deps.ScanLog,
		notifier: deps.Notifier,
		view:     deps.View,
		prompter: deps.Prompter,
		archiver: deps.Archiver,
		hidden:   make(map[string]struct{}),
	}
	if s.scanLog == nil {
		s.scanLog = nopScanLog{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.view == nil {
		s.view = nopView{}
	}
	if s.prompter == nil {
		mode, err := ParseLoadMode(cfg.DefaultLoadMode)
		if err != nil {
			mode = LoadAppend
		}
		s.prompter = StaticPrompter{Mode: mode}
	}
	return s
}

// State returns a snapshot of the session state.
func (s *Session) State() State {
	return State{
		FileLoaded:     s.fileLoaded,
		ActiveSavePath: s.activeSavePath,
		ScanCount:      s.scanCount,
		HiddenCount:    len(s.hidden),
		RecordCount:    s.store.Len(),
	}
}

// HandleScan processes one scanned barcode.
func (s *Session) HandleScan(ctx context.Context, barcode string) ScanOutcome {
	return s.handle(ctx, barcode, false)
}

// HandleConfirmedScan processes a scan whose shape the operator already confirmed.
func (s *Session) HandleConfirmedScan(ctx context.Context, barcode string) ScanOutcome {
	return s.handle(ctx, barcode, true)
}

func (s *Session) handle(ctx context.Context, raw string, confirmed bool) ScanOutcome {
	barcode := strings.TrimSpace(raw)
	out := ScanOutcome{Barcode: barcode, ScanCount: s.scanCount}

	if err := s.checkShape(barcode, confirmed); err != nil {
		s.logScan(ctx, raw, false)
		s.notifier.Notify(EventInvalidBarcode)
		s.logger.Warn("Scan rejected", zap.String("barcode", barcode), zap.Error(err))
		out.Result = ResultRejected
		out.Reason = err
		return out
	}
	s.logScan(ctx, raw, s.fileLoaded)

	if !s.fileLoaded {
		s.view.DisplayMessage("Scan", "You need to load reel data before scanning")
		out.Result = ResultNoDataLoaded
		return out
	}

	rec, existed := s.store.FindByBarcode(barcode)
	switch {
	case !existed:
		if err := s.store.InsertUnknown(barcode); err != nil {
			// Unreachable: absence was just checked.
			s.logger.Error("Failed to insert unknown record", zap.String("barcode", barcode), zap.Error(err))
		}
		out.Kind = KindUnknown
	case rec.Unknown:
		out.Kind = KindUnknown
	default:
		out.Kind = KindKnown
	}

	if existed && rec.Found {
		out.Result = ResultDuplicate
		s.notifier.Notify(EventDuplicate)
		s.view.DisplayMessage("Duplicate", fmt.Sprintf("Scanned barcode %s has already been found", barcode))
	} else {
		s.store.MarkFound(barcode)
		out.Result = ResultNewlyFound
	}

	if _, hidden := s.hidden[barcode]; hidden {
		out.Suppressed = true
	} else {
		if out.Result == ResultNewlyFound {
			if out.Kind == KindKnown {
				s.notifier.Notify(EventKnownFound)
			} else {
				s.notifier.Notify(EventUnknownFound)
			}
		}
		s.view.RecordFound(barcode, out.Kind)
	}

	s.scanCount++
	out.ScanCount = s.scanCount
	s.logger.Debug("Scan processed",
		zap.String("barcode", barcode),
		zap.String("result", string(out.Result)),
		zap.String("kind", string(out.Kind)),
		zap.Int("scan_count", s.scanCount),
	)

	if !s.replaying {
		out.Save = s.autosave(ctx)
	}
	return out
}

func (s *Session) checkShape(barcode string, confirmed bool) error {
	if barcode == "" {
		return &InvalidBarcodeError{Barcode: barcode, MinLength: s.cfg.MinBarcodeLength}
	}
	if len(barcode) >= s.cfg.MinBarcodeLength || confirmed {
		return nil
	}
	if s.prompter.ConfirmBarcode(barcode, s.cfg.MinBarcodeLength) {
		return nil
	}
	return &InvalidBarcodeError{Barcode: barcode, MinLength: s.cfg.MinBarcodeLength}
}

func (s *Session) logScan(ctx context.Context, raw string, accepted bool) {
	if s.replaying {
		return
	}
	entry := ScanEntry{Barcode: raw, Accepted: accepted, ScannedAt: s.now()}
	if s.activeSavePath != "" {
		entry.SaveFile = filepath.Base(s.activeSavePath)
	}
	if err := s.scanLog.Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to append to scan log", zap.String("barcode", raw), zap.Error(err))
	}
}

// LoadSource loads a source file. When data is already loaded the operator is
// asked whether to append, overwrite or cancel.
func (s *Session) LoadSource(ctx context.Context, path string) (records.LoadResult, error) {
	mode := LoadAppend
	if s.fileLoaded {
		mode = s.prompter.ChooseLoadMode(path)
	}
	return s.LoadSourceWithMode(ctx, path, mode)
}

// LoadSourceWithMode loads a source file with a preselected load mode.
//
// Append keeps loaded data and rejects duplicate barcodes of the new batch.
// Overwrite discards the store, the registry and the session state once the
// new rows have been read. Cancel changes nothing and returns ErrLoadCancelled.
// A *records.DuplicateBarcodeError is returned alongside a valid result when
// some rows were rejected.
func (s *Session) LoadSourceWithMode(ctx context.Context, path string, mode LoadMode) (records.LoadResult, error) {
	switch mode {
	case LoadCancel:
		return records.LoadResult{}, ErrLoadCancelled
	case LoadAppend, LoadOverwrite:
	default:
		return records.LoadResult{}, fmt.Errorf("unknown load mode %q", mode)
	}

	rows, err := s.loader.Rows(ctx, path)
	if err != nil {
		if isNotFound(err) {
			s.view.DisplayMessage("Load File", "File wasn't found, or you didn't select a file")
			return records.LoadResult{}, &SourceNotFoundError{Path: path, Err: err}
		}
		s.view.DisplayMessage("Load File", fmt.Sprintf("Could not read %s: %v", path, err))
		return records.LoadResult{}, fmt.Errorf("failed to read source %s: %w", path, err)
	}

	if mode == LoadOverwrite && s.fileLoaded {
		s.logger.Info("Overwriting loaded stocktake", zap.String("path", path))
		s.NewStocktake()
	}

	result, loadErr := s.store.Load(rows, path)
	s.fileLoaded = true
	s.displayRecords(false)

	var dup *records.DuplicateBarcodeError
	if errors.As(loadErr, &dup) {
		s.logger.Warn("Duplicate barcodes rejected",
			zap.String("path", path),
			zap.Int("inserted", result.Inserted),
			zap.Strings("rejected", dup.Barcodes),
		)
		s.view.DisplayMessage("Load File Error",
			"The following reels were NOT inserted because they have the same ID as one already loaded:\n"+strings.Join(dup.Barcodes, "\n"))
		return result, loadErr
	}

	s.logger.Info("Source loaded",
		zap.String("path", path),
		zap.Int("source_id", result.SourceID),
		zap.Int("inserted", result.Inserted),
	)
	return result, nil
}

// LoadSnapshot replaces the stocktake with a saved snapshot and continues
// saving into that file. On a corrupt snapshot the operator is offered a fresh
// stocktake; the error is returned either way.
func (s *Session) LoadSnapshot(ctx context.Context, path string) error {
	data, err := s.saves.Read(path)
	if err != nil {
		if isNotFound(err) {
			s.view.DisplayMessage("Load Progress", "File was not found to load")
			return &SourceNotFoundError{Path: path, Err: err}
		}
		s.view.DisplayMessage("Load Progress", fmt.Sprintf("Could not read %s: %v", path, err))
		return fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}

	if err := s.store.Restore(data); err != nil {
		s.logger.Error("Snapshot could not be restored", zap.String("path", path), zap.Error(err))
		s.view.DisplayMessage("Load Progress", fmt.Sprintf("Saved stocktake %s is damaged: %v", path, err))
		var corrupt *records.SnapshotCorruptError
		if errors.As(err, &corrupt) && s.prompter.OfferFreshStart(err) {
			s.NewStocktake()
		}
		return err
	}

	s.resetCounters()
	s.fileLoaded = true
	s.activeSavePath = path
	s.displayRecords(false)
	s.logger.Info("Snapshot loaded", zap.String("path", path), zap.Int("records", s.store.Len()))
	return nil
}

// NewStocktake discards the store, the registry and all session state.
func (s *Session) NewStocktake() {
	s.store.Reset()
	s.fileLoaded = false
	s.activeSavePath = ""
	s.resetCounters()
}

func (s *Session) resetCounters() {
	s.hidden = make(map[string]struct{})
	s.scanCount = 0
	s.pendingRotation = false
}

// HideFound shows only unfound records and stops highlighting everything
// found so far.
func (s *Session) HideFound() {
	s.displayRecords(true)
	for _, barcode := range s.store.FoundBarcodes() {
		s.hidden[barcode] = struct{}{}
	}
}

// ShowAll shows every record again and re-highlights the found ones.
func (s *Session) ShowAll() {
	s.displayRecords(false)
	s.hidden = make(map[string]struct{})
}

func (s *Session) displayRecords(hideFound bool) {
	s.view.DisplayRecords(s.store.Rows(hideFound))
	if hideFound {
		return
	}
	for _, barcode := range s.store.FoundUnknownBarcodes() {
		s.view.RecordFound(barcode, KindUnknown)
	}
	for _, barcode := range s.store.FoundKnownBarcodes() {
		s.view.RecordFound(barcode, KindKnown)
	}
}

// SetFound toggles the found flag of a known record by hand.
func (s *Session) SetFound(barcode string, found bool) error {
	rec, ok := s.store.FindByBarcode(barcode)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s", ErrRecordNotFound, barcode)
	case rec.Unknown:
		return fmt.Errorf("%w: %s", ErrUnknownRecord, barcode)
	}
	if found {
		s.store.MarkFound(barcode)
		return nil
	}
	s.store.MarkNotFound(barcode)
	delete(s.hidden, barcode)
	return nil
}

// DeleteUnknown removes a record created by a scan. Known records are never deleted.
func (s *Session) DeleteUnknown(barcode string) error {
	rec, ok := s.store.FindByBarcode(barcode)
	switch {
	case !ok:
		return fmt.Errorf("%w: %s", ErrRecordNotFound, barcode)
	case !rec.Unknown:
		return fmt.Errorf("%w: %s", ErrKnownRecord, barcode)
	}
	s.store.DeleteByBarcode(barcode)
	delete(s.hidden, barcode)
	s.logger.Info("Unknown record deleted", zap.String("barcode", barcode))
	return nil
}

// Report returns the current stocktake summary.
func (s *Session) Report() records.Report {
	return s.store.Report()
}

// Groups returns the display groups using the configured group size.
func (s *Session) Groups(hideFound bool) [][]records.Record {
	return s.store.Groups(s.cfg.MaxGroupSize, hideFound)
}

// Rows returns display rows, header first.
func (s *Session) Rows(hideFound bool) [][]string {
	return s.store.Rows(hideFound)
}

// Find returns the record with the barcode.
func (s *Session) Find(barcode string) (records.Record, bool) {
	return s.store.FindByBarcode(barcode)
}

// Sources returns the source registry.
func (s *Session) Sources() map[int]string {
	return s.store.Sources()
}
