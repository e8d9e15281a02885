package records

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/goccy/go-json"
)

// snapshotDocument is the on-disk save format.
type snapshotDocument struct {
	ReelData []Record         `json:"reelData"`
	FileID   map[string]string `json:"fileID"`
}

// snapshotRecord decodes a record with presence tracking on required keys.
type snapshotRecord struct {
	Barcode  *string `json:"barcode"`
	Weight   *int    `json:"weight"`
	Width    *int    `json:"width"`
	Material *string `json:"material"`
	FileID   *int    `json:"fileID"`
	Found    *bool   `json:"found"`
	Unknown  *bool   `json:"unknownRecord"`
}

// Snapshot encodes the store, registry included, as an indented JSON document.
func (s *Store) Snapshot() ([]byte, error) {
	doc := snapshotDocument{
		ReelData: make([]Record, 0, len(s.records)),
		FileID:   make(map[string]string, len(s.sources)),
	}
	for _, r := range s.records {
		doc.ReelData = append(doc.ReelData, *r)
	}
	for id, path := range s.sources {
		doc.FileID[strconv.Itoa(id)] = path
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the store contents with a snapshot document.
// The document is fully validated first; on any error the store is unchanged
// and a *SnapshotCorruptError is returned.
func (s *Store) Restore(data []byte) error {
	restored, err := decodeSnapshot(data)
	if err != nil {
		return err
	}
	s.records = restored.records
	s.index = restored.index
	s.sources = restored.sources
	s.paths = restored.paths
	return nil
}

func decodeSnapshot(data []byte) (*Store, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, corrupt("malformed JSON", err)
	}
	rawRecords, ok := top["reelData"]
	if !ok {
		return nil, corrupt(`missing key "reelData"`, nil)
	}
	rawSources, ok := top["fileID"]
	if !ok {
		return nil, corrupt(`missing key "fileID"`, nil)
	}

	out := New()
	if err := out.decodeRegistry(rawSources); err != nil {
		return nil, err
	}

	var entries []snapshotRecord
	if err := json.Unmarshal(rawRecords, &entries); err != nil {
		return nil, corrupt(`invalid "reelData" list`, err)
	}
	for i, e := range entries {
		r, err := e.record(i, out.sources)
		if err != nil {
			return nil, err
		}
		if err := out.insert(r); err != nil {
			return nil, corrupt(fmt.Sprintf("record %d", i), err)
		}
	}
	return out, nil
}

// decodeRegistry reads the "fileID" object token by token so that repeated
// keys are seen. Keys must be canonical non-negative integers and every id and
// every path may appear once.
func (s *Store) decodeRegistry(raw json.RawMessage) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return corrupt(`invalid "fileID" registry`, err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return corrupt(`"fileID" registry is not an object`, nil)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return corrupt(`invalid "fileID" registry`, err)
		}
		key, _ := tok.(string)
		tok, err = dec.Token()
		if err != nil {
			return corrupt(`invalid "fileID" registry`, err)
		}
		path, ok := tok.(string)
		if !ok {
			return corrupt(fmt.Sprintf("registry entry %q is not a path", key), nil)
		}

		id, err := strconv.Atoi(key)
		if err != nil {
			return corrupt(fmt.Sprintf("registry key %q is not an integer", key), err)
		}
		if id < 0 || strconv.Itoa(id) != key {
			return corrupt(fmt.Sprintf("registry key %q is not a canonical id", key), nil)
		}
		if _, dup := s.sources[id]; dup {
			return corrupt(fmt.Sprintf("registry id %d is listed twice", id), nil)
		}
		if other, dup := s.paths[path]; dup {
			return corrupt(fmt.Sprintf("registry path %q is listed as both %d and %d", path, other, id), nil)
		}
		s.sources[id] = path
		s.paths[path] = id
	}
	return nil
}

func (e snapshotRecord) record(i int, sources map[int]string) (*Record, error) {
	switch {
	case e.Barcode == nil || *e.Barcode == "":
		return nil, corrupt(fmt.Sprintf("record %d has no barcode", i), nil)
	case e.Found == nil:
		return nil, corrupt(fmt.Sprintf("record %s has no found flag", *e.Barcode), nil)
	case e.Unknown == nil:
		return nil, corrupt(fmt.Sprintf("record %s has no unknownRecord flag", *e.Barcode), nil)
	case *e.Unknown && !*e.Found:
		return nil, corrupt(fmt.Sprintf("unknown record %s is not found", *e.Barcode), nil)
	}
	if e.FileID != nil {
		if _, ok := sources[*e.FileID]; !ok {
			return nil, corrupt(fmt.Sprintf("record %s references unregistered file %d", *e.Barcode, *e.FileID), nil)
		}
	}
	return &Record{
		Barcode:  *e.Barcode,
		Weight:   e.Weight,
		Width:    e.Width,
		Material: e.Material,
		SourceID: e.FileID,
		Found:    *e.Found,
		Unknown:  *e.Unknown,
	}, nil
}

// SourceIDs returns the registered ids in ascending order.
func (s *Store) SourceIDs() []int {
	ids := make([]int, 0, len(s.sources))
	for id := range s.sources {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
