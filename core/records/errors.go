package records

import (
	"fmt"
	"strings"
)

// DuplicateBarcodeError reports barcodes that were rejected because a record
// with the same barcode already exists. Rows that did not conflict remain
// inserted.
type DuplicateBarcodeError struct {
	Barcodes []string
}

func (e *DuplicateBarcodeError) Error() string {
	if len(e.Barcodes) == 1 {
		return fmt.Sprintf("duplicate barcode: %s not inserted", e.Barcodes[0])
	}
	return fmt.Sprintf("%d duplicate barcodes not inserted: %s", len(e.Barcodes), strings.Join(e.Barcodes, ", "))
}

// SnapshotCorruptError is returned when a snapshot document cannot be restored.
type SnapshotCorruptError struct {
	Reason string
	Err    error
}

func (e *SnapshotCorruptError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt snapshot: %s: %v", e.Reason, e.Err)
	}
	return "corrupt snapshot: " + e.Reason
}

func (e *SnapshotCorruptError) Unwrap() error {
	return e.Err
}

func corrupt(reason string, err error) error {
	return &SnapshotCorruptError{Reason: reason, Err: err}
}
