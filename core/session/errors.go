package session

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrNoDataLoaded is returned by operations that need a loaded stocktake.
	ErrNoDataLoaded = errors.New("no stocktake data loaded")
	// ErrSourceNotFound is wrapped by loaders when the requested source does not exist.
	ErrSourceNotFound = errors.New("source not found")
	// ErrLoadCancelled is returned when the operator cancels a load.
	ErrLoadCancelled = errors.New("load cancelled")
	// ErrRecordNotFound is returned for barcodes that are not in the store.
	ErrRecordNotFound = errors.New("record not found")
	// ErrKnownRecord is returned when an operation is restricted to unknown records.
	ErrKnownRecord = errors.New("record was loaded from a source file")
	// ErrUnknownRecord is returned when an operation is restricted to known records.
	ErrUnknownRecord = errors.New("record was created by a scan")
)

// SourceNotFoundError reports a source file or snapshot that could not be found.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("file %q not found: %v", e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// InvalidBarcodeError reports a scan rejected because of its shape.
type InvalidBarcodeError struct {
	Barcode   string
	MinLength int
}

func (e *InvalidBarcodeError) Error() string {
	if e.Barcode == "" {
		return "empty barcode"
	}
	return fmt.Sprintf("barcode %q is shorter than %d characters", e.Barcode, e.MinLength)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound) || errors.Is(err, fs.ErrNotExist)
}
