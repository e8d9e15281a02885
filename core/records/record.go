package records

import "strconv"

// Record is one physical reel in the stocktake.
type Record struct {
	// Barcode is the unique key of the record.
	Barcode string `json:"barcode"`
	// Weight is nil for unknown records.
	Weight *int `json:"weight"`
	// Width is nil for unknown records.
	Width *int `json:"width"`
	// Material is nil for unknown records.
	Material *string `json:"material"`
	// SourceID references the source registry. Nil for records that were
	// never loaded from a file.
	SourceID *int `json:"fileID"`

	// Found is set once the reel has been scanned or marked found.
	Found bool `json:"found"`
	// Unknown marks records created by a scan rather than a source file.
	Unknown bool `json:"unknownRecord"`
}

// Row is one line of source data as delivered by a source loader.
// Rows without a barcode never reach the store.
type Row struct {
	Barcode  string
	Width    int
	Weight   int
	Material string
}

// RowHeader names the columns returned by Store.Rows.
var RowHeader = []string{"Barcode", "Weight", "Width", "Material", "File"}

// newKnown builds a record from a source row.
func newKnown(row Row, sourceID int) *Record {
	width, weight, material, id := row.Width, row.Weight, row.Material, sourceID
	return &Record{
		Barcode:  row.Barcode,
		Weight:   &weight,
		Width:    &width,
		Material: &material,
		SourceID: &id,
	}
}

// newUnknown builds a record for a barcode that was scanned but never loaded.
func newUnknown(barcode string) *Record {
	return &Record{
		Barcode: barcode,
		Found:   true,
		Unknown: true,
	}
}

// clone returns a deep copy so callers cannot mutate store internals.
func (r *Record) clone() Record {
	c := *r
	if r.Weight != nil {
		v := *r.Weight
		c.Weight = &v
	}
	if r.Width != nil {
		v := *r.Width
		c.Width = &v
	}
	if r.Material != nil {
		v := *r.Material
		c.Material = &v
	}
	if r.SourceID != nil {
		v := *r.SourceID
		c.SourceID = &v
	}
	return c
}

// Strings renders the record in RowHeader column order. Nil values render as "None".
func (r Record) Strings() []string {
	return []string{
		r.Barcode,
		intString(r.Weight),
		intString(r.Width),
		stringOrNone(r.Material),
		intString(r.SourceID),
	}
}

func intString(v *int) string {
	if v == nil {
		return "None"
	}
	return strconv.Itoa(*v)
}

func stringOrNone(v *string) string {
	if v == nil {
		return "None"
	}
	return *v
}
