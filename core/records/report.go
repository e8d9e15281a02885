package records

// Report summarises the state of a stocktake.
type Report struct {
	// FoundCount counts known records that have been found.
	FoundCount int `json:"found_count"`
	// UnknownFoundCount counts unknown records (always found).
	UnknownFoundCount int `json:"unknown_count"`
	// MissingCount counts known records that have not been found.
	MissingCount int `json:"missing_count"`
	// MissingRecords holds the unfound records.
	MissingRecords []Record `json:"missing_reels"`
	// UnknownRecords holds the records created by scans.
	UnknownRecords []Record `json:"unknown_reels"`
}

// Report computes the current stocktake summary.
func (s *Store) Report() Report {
	report := Report{
		MissingRecords: []Record{},
		UnknownRecords: []Record{},
	}
	known := 0
	for _, r := range s.records {
		switch {
		case r.Unknown:
			report.UnknownFoundCount++
			report.UnknownRecords = append(report.UnknownRecords, r.clone())
		case r.Found:
			known++
			report.FoundCount++
		default:
			known++
			report.MissingRecords = append(report.MissingRecords, r.clone())
		}
	}
	report.MissingCount = known - report.FoundCount
	return report
}
