package session

import (
	"context"
	"errors"
	"math/rand/v2"
)

// simulatedUnknownBarcodes never appear in real source files.
var simulatedUnknownBarcodes = []string{"5318008", "112358132Z", "2997924589"}

// ErrAllFound is returned by SimulateScan when no record is left to find.
var ErrAllFound = errors.New("found all barcodes")

// SimulateScan scans a random unfound record, or one time in eleven a
// barcode that is not in any source. It exercises the scan path without a
// scanner attached.
func (s *Session) SimulateScan(ctx context.Context, rng *rand.Rand) (ScanOutcome, error) {
	if !s.fileLoaded {
		s.view.DisplayMessage("Barcode Simulator", "You need to load reel data before scanning")
		return ScanOutcome{}, ErrNoDataLoaded
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	var barcode string
	if rng.IntN(11) == 0 {
		barcode = simulatedUnknownBarcodes[rng.IntN(len(simulatedUnknownBarcodes))]
	} else {
		unfound := s.store.Unfound()
		if len(unfound) == 0 {
			s.view.DisplayMessage("Barcode Simulator", "Found all barcodes!")
			return ScanOutcome{}, ErrAllFound
		}
		barcode = unfound[rng.IntN(len(unfound))].Barcode
	}
	return s.HandleConfirmedScan(ctx, barcode), nil
}
