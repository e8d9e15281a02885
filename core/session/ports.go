package session

import (
	"context"
	"fmt"
	"time"

	"stocktake/core/records"
)

// SourceLoader reads the rows of a source file. Rows without a barcode are
// dropped by the loader. A missing source is reported with an error wrapping
// ErrSourceNotFound or fs.ErrNotExist.
type SourceLoader interface {
	Rows(ctx context.Context, path string) ([]records.Row, error)
}

// SaveStore persists snapshot documents.
type SaveStore interface {
	// NewPath returns a fresh, unused save file path.
	NewPath() (string, error)
	// Write replaces the contents of path.
	Write(path string, data []byte) error
	// Read returns the contents of path.
	Read(path string) ([]byte, error)
	// Prune removes all but the keep most recently modified save files and
	// returns the removed paths.
	Prune(keep int) ([]string, error)
}

// ScanEntry is one raw scan as recorded in the scan log.
//
// Barcode is the input exactly as received. Accepted is true only when the
// scan passed the shape check and data was loaded, that is when it was
// applied to the stocktake. SaveFile is the base name of the save file the
// session was writing to, empty before the first save of a stocktake.
type ScanEntry struct {
	Barcode   string
	Accepted  bool
	SaveFile  string
	ScannedAt time.Time
}

// ScanLog records every raw scan, independent of its validity.
type ScanLog interface {
	Append(ctx context.Context, entry ScanEntry) error
}

// Archiver copies a save file somewhere safe.
type Archiver interface {
	Archive(ctx context.Context, path string) error
}

// Event is a semantic feedback signal for the operator.
type Event string

const (
	EventDuplicate      Event = "duplicate"
	EventUnknownFound   Event = "unknownFound"
	EventKnownFound     Event = "knownFound"
	EventInvalidBarcode Event = "invalidBarcode"
)

// Notifier turns events into something the operator can perceive (sound, bell).
type Notifier interface {
	Notify(event Event)
}

// View presents stocktake state to the operator.
type View interface {
	// DisplayRecords shows rows; the first row is the header.
	DisplayRecords(rows [][]string)
	// RecordFound highlights a found barcode.
	RecordFound(barcode string, kind RecordKind)
	// DisplayMessage shows an informational message.
	DisplayMessage(title, message string)
}

// LoadMode decides what happens to loaded data when another source is loaded.
type LoadMode string

const (
	LoadAppend    LoadMode = "append"
	LoadOverwrite LoadMode = "overwrite"
	LoadCancel    LoadMode = "cancel"
)

// ParseLoadMode validates a load mode name.
func ParseLoadMode(name string) (LoadMode, error) {
	switch mode := LoadMode(name); mode {
	case LoadAppend, LoadOverwrite, LoadCancel:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown load mode %q (want append, overwrite or cancel)", name)
	}
}

// Prompter asks the operator to decide.
type Prompter interface {
	// ConfirmBarcode asks whether a barcode shorter than minLength should be accepted.
	ConfirmBarcode(barcode string, minLength int) bool
	// ChooseLoadMode asks how to combine path with the data already loaded.
	ChooseLoadMode(path string) LoadMode
	// OfferFreshStart asks whether to start a new stocktake after err.
	OfferFreshStart(err error) bool
}

// StaticPrompter answers every question with fixed values. It serves
// non-interactive deployments.
type StaticPrompter struct {
	AcceptShort bool
	Mode        LoadMode
	FreshStart  bool
}

func (p StaticPrompter) ConfirmBarcode(string, int) bool { return p.AcceptShort }

func (p StaticPrompter) ChooseLoadMode(string) LoadMode {
	if p.Mode == "" {
		return LoadAppend
	}
	return p.Mode
}

func (p StaticPrompter) OfferFreshStart(error) bool { return p.FreshStart }

type nopView struct{}

func (nopView) DisplayRecords([][]string)      {}
func (nopView) RecordFound(string, RecordKind) {}
func (nopView) DisplayMessage(string, string)  {}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

type nopScanLog struct{}

func (nopScanLog) Append(context.Context, ScanEntry) error { return nil }
