package records

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []Row {
	return []Row{
		{Barcode: "ABC1234567", Width: 10, Weight: 100, Material: "PaperX"},
		{Barcode: "ABC1234568", Width: 12, Weight: 120, Material: "PaperX"},
		{Barcode: "ABC1234569", Width: 10, Weight: 90, Material: "PaperY"},
	}
}

func TestStore_Load(t *testing.T) {
	t.Run("Fresh rows are all missing", func(t *testing.T) {
		s := New()
		res, err := s.Load(sampleRows(), "stock.xlsx")
		require.NoError(t, err)
		assert.Equal(t, 0, res.SourceID)
		assert.Equal(t, 3, res.Inserted)
		assert.Empty(t, res.Rejected)

		report := s.Report()
		assert.Equal(t, 3, report.MissingCount)
		assert.Equal(t, 0, report.FoundCount)
		assert.Equal(t, 0, report.UnknownFoundCount)
	})

	t.Run("Same path reuses id and rejects reloaded rows", func(t *testing.T) {
		s := New()
		_, err := s.Load(sampleRows(), "stock.xlsx")
		require.NoError(t, err)

		res, err := s.Load(sampleRows(), "stock.xlsx")
		var dup *DuplicateBarcodeError
		require.True(t, errors.As(err, &dup))
		assert.ElementsMatch(t, []string{"ABC1234567", "ABC1234568", "ABC1234569"}, dup.Barcodes)
		assert.Equal(t, 0, res.SourceID)
		assert.Equal(t, 0, res.Inserted)
		assert.Equal(t, map[int]string{0: "stock.xlsx"}, s.Sources())
		assert.Equal(t, 3, s.Len())
	})

	t.Run("Partial batch keeps non duplicates", func(t *testing.T) {
		s := New()
		_, err := s.Load(sampleRows()[:1], "a.xlsx")
		require.NoError(t, err)

		res, err := s.Load([]Row{
			{Barcode: "ABC1234567", Width: 1, Weight: 1, Material: "Other"},
			{Barcode: "NEW0000001", Width: 8, Weight: 80, Material: "PaperZ"},
		}, "b.xlsx")
		var dup *DuplicateBarcodeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, []string{"ABC1234567"}, dup.Barcodes)
		assert.Equal(t, 1, res.SourceID)
		assert.Equal(t, 1, res.Inserted)

		rec, ok := s.FindByBarcode("NEW0000001")
		require.True(t, ok)
		assert.Equal(t, 1, *rec.SourceID)

		original, ok := s.FindByBarcode("ABC1234567")
		require.True(t, ok)
		assert.Equal(t, "PaperX", *original.Material, "existing record must not be overwritten")
	})

	t.Run("Duplicate within one batch", func(t *testing.T) {
		s := New()
		rows := append(sampleRows(), sampleRows()[0])
		res, err := s.Load(rows, "a.xlsx")
		assert.Error(t, err)
		assert.Equal(t, 3, res.Inserted)
		assert.Equal(t, []string{"ABC1234567"}, res.Rejected)
	})

	t.Run("Sequential source ids", func(t *testing.T) {
		s := New()
		for i, path := range []string{"a.xlsx", "b.xlsx", "c.xlsx"} {
			res, err := s.Load(nil, path)
			require.NoError(t, err)
			assert.Equal(t, i, res.SourceID)
		}
		assert.Equal(t, []int{0, 1, 2}, s.SourceIDs())
	})
}

func TestStore_UnknownRecords(t *testing.T) {
	s := New()
	require.NoError(t, s.InsertUnknown("9999999999"))

	rec, ok := s.FindByBarcode("9999999999")
	require.True(t, ok)
	assert.True(t, rec.Found)
	assert.True(t, rec.Unknown)
	assert.Nil(t, rec.SourceID)
	assert.Nil(t, rec.Width)

	err := s.InsertUnknown("9999999999")
	var dup *DuplicateBarcodeError
	assert.ErrorAs(t, err, &dup)

	assert.False(t, s.MarkNotFound("9999999999"), "unknown records stay found")
	rec, _ = s.FindByBarcode("9999999999")
	assert.True(t, rec.Found)

	assert.Equal(t, 1, s.Report().UnknownFoundCount)
	assert.True(t, s.DeleteByBarcode("9999999999"))
	assert.False(t, s.Exists("9999999999"))
	assert.False(t, s.DeleteByBarcode("9999999999"))
}

func TestStore_MarkFound(t *testing.T) {
	s := New()
	_, err := s.Load(sampleRows(), "a.xlsx")
	require.NoError(t, err)

	assert.False(t, s.MarkFound("NOPE"))
	assert.False(t, s.MarkNotFound("NOPE"))

	assert.True(t, s.MarkFound("ABC1234567"))
	assert.Equal(t, 1, s.Report().FoundCount)
	assert.Equal(t, []string{"ABC1234567"}, s.FoundKnownBarcodes())
	assert.Equal(t, []string{"ABC1234567"}, s.FoundBarcodes())
	assert.Empty(t, s.FoundUnknownBarcodes())

	assert.True(t, s.MarkNotFound("ABC1234567"))
	assert.Equal(t, 0, s.Report().FoundCount)
	assert.Len(t, s.Unfound(), 3)
	assert.False(t, s.AllFound())
}

func TestStore_FindReturnsCopy(t *testing.T) {
	s := New()
	_, err := s.Load(sampleRows(), "a.xlsx")
	require.NoError(t, err)

	rec, _ := s.FindByBarcode("ABC1234567")
	*rec.Width = 999
	rec.Found = true

	again, _ := s.FindByBarcode("ABC1234567")
	assert.Equal(t, 10, *again.Width)
	assert.False(t, again.Found)
}

func TestStore_Report(t *testing.T) {
	s := New()
	_, err := s.Load(sampleRows(), "a.xlsx")
	require.NoError(t, err)
	s.MarkFound("ABC1234568")
	require.NoError(t, s.InsertUnknown("ZZZ0000001"))

	report := s.Report()
	assert.Equal(t, 1, report.FoundCount)
	assert.Equal(t, 1, report.UnknownFoundCount)
	assert.Equal(t, 2, report.MissingCount)
	assert.Len(t, report.MissingRecords, 2)
	require.Len(t, report.UnknownRecords, 1)
	assert.Equal(t, "ZZZ0000001", report.UnknownRecords[0].Barcode)
}

func TestStore_Rows(t *testing.T) {
	s := New()
	_, err := s.Load(sampleRows()[:2], "a.xlsx")
	require.NoError(t, err)
	s.MarkFound("ABC1234567")
	require.NoError(t, s.InsertUnknown("ZZZ0000001"))

	rows := s.Rows(false)
	require.Len(t, rows, 4)
	assert.Equal(t, RowHeader, rows[0])
	assert.Equal(t, []string{"ABC1234567", "100", "10", "PaperX", "0"}, rows[1])
	assert.Equal(t, []string{"ZZZ0000001", "None", "None", "None", "None"}, rows[3])

	hidden := s.Rows(true)
	require.Len(t, hidden, 2)
	assert.Equal(t, "ABC1234568", hidden[1][0])
}

func TestStore_Reset(t *testing.T) {
	s := New()
	_, err := s.Load(sampleRows(), "a.xlsx")
	require.NoError(t, err)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Sources())
	assert.False(t, s.Exists("ABC1234567"))

	res, err := s.Load(sampleRows(), "b.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 0, res.SourceID)
}
