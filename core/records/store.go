package records

// Store is the record set of a single stocktake.
// It is not safe for concurrent use; the owning session serializes access.
type Store struct {
	// records keeps insertion order for display and snapshots.
	records []*Record
	// index maps barcode to record for O(1) lookup on every scan.
	index map[string]*Record
	// sources maps source id to the file path it was loaded from.
	sources map[int]string
	// paths is the reverse of sources.
	paths map[string]int
}

// LoadResult describes the outcome of a Load call.
type LoadResult struct {
	// SourceID is the id assigned to (or reused for) the source path.
	SourceID int
	// Inserted counts rows that became records.
	Inserted int
	// Rejected lists barcodes that were already present.
	Rejected []string
}

// New creates an empty store.
func New() *Store {
	return &Store{
		index:   make(map[string]*Record),
		sources: make(map[int]string),
		paths:   make(map[string]int),
	}
}

// Reset drops every record and the source registry.
func (s *Store) Reset() {
	s.records = nil
	s.index = make(map[string]*Record)
	s.sources = make(map[int]string)
	s.paths = make(map[string]int)
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// Load inserts rows read from sourcePath.
//
// The source path is registered (or its existing id reused) before any row is
// inserted. Rows whose barcode already exists are collected; once the whole
// batch is processed a *DuplicateBarcodeError listing them is returned. All
// other rows stay inserted.
func (s *Store) Load(rows []Row, sourcePath string) (LoadResult, error) {
	result := LoadResult{SourceID: s.registerSource(sourcePath)}

	for _, row := range rows {
		if err := s.insert(newKnown(row, result.SourceID)); err != nil {
			result.Rejected = append(result.Rejected, row.Barcode)
			continue
		}
		result.Inserted++
	}

	if len(result.Rejected) > 0 {
		return result, &DuplicateBarcodeError{Barcodes: result.Rejected}
	}
	return result, nil
}

// registerSource returns the id for path. New paths get the id after the
// highest one registered, starting at 0.
func (s *Store) registerSource(path string) int {
	if id, ok := s.SourceID(path); ok {
		return id
	}
	id := 0
	for existing := range s.sources {
		if existing >= id {
			id = existing + 1
		}
	}
	s.sources[id] = path
	s.paths[path] = id
	return id
}

// SourceID returns the registered id for path.
func (s *Store) SourceID(path string) (int, bool) {
	id, ok := s.paths[path]
	return id, ok
}

// Sources returns a copy of the source registry.
func (s *Store) Sources() map[int]string {
	out := make(map[int]string, len(s.sources))
	for id, p := range s.sources {
		out[id] = p
	}
	return out
}

func (s *Store) insert(r *Record) error {
	if _, exists := s.index[r.Barcode]; exists {
		return &DuplicateBarcodeError{Barcodes: []string{r.Barcode}}
	}
	s.records = append(s.records, r)
	s.index[r.Barcode] = r
	return nil
}

// FindByBarcode returns a copy of the record with the given barcode.
func (s *Store) FindByBarcode(barcode string) (Record, bool) {
	r, ok := s.index[barcode]
	if !ok {
		return Record{}, false
	}
	return r.clone(), true
}

// Exists reports whether a record with the barcode is present.
func (s *Store) Exists(barcode string) bool {
	_, ok := s.index[barcode]
	return ok
}

// InsertUnknown creates an unknown record for a scanned barcode. The record is
// found from the moment it exists. Inserting an existing barcode fails with a
// *DuplicateBarcodeError; callers are expected to check Exists first.
func (s *Store) InsertUnknown(barcode string) error {
	return s.insert(newUnknown(barcode))
}

// MarkFound marks the record found. It returns false if the barcode is absent.
func (s *Store) MarkFound(barcode string) bool {
	r, ok := s.index[barcode]
	if !ok {
		return false
	}
	r.Found = true
	return true
}

// MarkNotFound clears the found flag of a known record. Absent barcodes and
// unknown records are left untouched and false is returned, since an unknown
// record cannot exist unfound.
func (s *Store) MarkNotFound(barcode string) bool {
	r, ok := s.index[barcode]
	if !ok || r.Unknown {
		return false
	}
	r.Found = false
	return true
}

// DeleteByBarcode removes the record. It returns false if the barcode is absent.
// Restricting deletion to unknown records is the caller's policy.
func (s *Store) DeleteByBarcode(barcode string) bool {
	if _, ok := s.index[barcode]; !ok {
		return false
	}
	delete(s.index, barcode)
	for i, r := range s.records {
		if r.Barcode == barcode {
			s.records = append(s.records[:i], s.records[i+1:]...)
			break
		}
	}
	return true
}

// All returns copies of every record in insertion order.
func (s *Store) All() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.clone())
	}
	return out
}

// Rows returns the records as string rows, RowHeader first.
// With hideFound only unfound records are included.
func (s *Store) Rows(hideFound bool) [][]string {
	rows := [][]string{append([]string(nil), RowHeader...)}
	for _, r := range s.records {
		if hideFound && r.Found {
			continue
		}
		rows = append(rows, r.Strings())
	}
	return rows
}

// AllFound reports whether every record is found.
func (s *Store) AllFound() bool {
	for _, r := range s.records {
		if !r.Found {
			return false
		}
	}
	return true
}

// Unfound returns copies of records that have not been found yet.
func (s *Store) Unfound() []Record {
	return s.filter(func(r *Record) bool { return !r.Found })
}

// FoundBarcodes lists barcodes of every found record.
func (s *Store) FoundBarcodes() []string {
	return s.barcodes(func(r *Record) bool { return r.Found })
}

// UnknownBarcodes lists barcodes of every unknown record.
func (s *Store) UnknownBarcodes() []string {
	return s.barcodes(func(r *Record) bool { return r.Unknown })
}

// FoundKnownBarcodes lists found records that came from a source file.
func (s *Store) FoundKnownBarcodes() []string {
	return s.barcodes(func(r *Record) bool { return r.Found && !r.Unknown })
}

// FoundUnknownBarcodes lists found records that were created by a scan.
func (s *Store) FoundUnknownBarcodes() []string {
	return s.barcodes(func(r *Record) bool { return r.Found && r.Unknown })
}

func (s *Store) barcodes(keep func(*Record) bool) []string {
	var out []string
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r.Barcode)
		}
	}
	return out
}

func (s *Store) filter(keep func(*Record) bool) []Record {
	var out []Record
	for _, r := range s.records {
		if keep(r) {
			out = append(out, r.clone())
		}
	}
	return out
}
