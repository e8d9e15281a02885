package session

import (
	"context"

	"go.uber.org/zap"
)

// ReplaySummary counts what a replay did.
type ReplaySummary struct {
	Applied    int         `json:"applied"`
	NewlyFound int         `json:"newly_found"`
	Duplicates int         `json:"duplicates"`
	Skipped    int         `json:"skipped"`
	Save       *SaveReport `json:"save,omitempty"`
}

// Replay re-applies logged scans on top of the loaded stocktake, typically the
// scans recorded after the last snapshot was written. Entries that were not
// accepted (bad shape, or no data loaded at the time) are skipped. Replayed
// scans are not logged again and do not trigger autosaves; the result is
// written to a fresh save file at the end.
func (s *Session) Replay(ctx context.Context, entries []ScanEntry) (ReplaySummary, error) {
	var summary ReplaySummary
	if !s.fileLoaded {
		return summary, ErrNoDataLoaded
	}

	s.replaying = true
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			s.replaying = false
			return summary, err
		}
		if !entry.Accepted {
			summary.Skipped++
			continue
		}
		out := s.HandleConfirmedScan(ctx, entry.Barcode)
		switch out.Result {
		case ResultNewlyFound:
			summary.NewlyFound++
		case ResultDuplicate:
			summary.Duplicates++
		default:
			summary.Skipped++
			continue
		}
		summary.Applied++
	}
	s.replaying = false

	s.logger.Info("Scan log replayed",
		zap.Int("applied", summary.Applied),
		zap.Int("newly_found", summary.NewlyFound),
		zap.Int("skipped", summary.Skipped),
	)

	summary.Save = s.rotate(ctx)
	return summary, summary.Save.Err
}
