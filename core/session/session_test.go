package session

import (
	"context"
	"errors"
	"io/fs"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"stocktake/core/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())
	h.loader.sources["single.xlsx"] = []records.Row{
		{Barcode: "ABC1234567", Width: 10, Weight: 100, Material: "PaperX"},
	}

	res, err := h.session.LoadSource(ctx, "single.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, h.session.Report().MissingCount)

	out := h.session.HandleScan(ctx, "ABC1234567")
	assert.Equal(t, ResultNewlyFound, out.Result)
	assert.Equal(t, KindKnown, out.Kind)
	report := h.session.Report()
	assert.Equal(t, 1, report.FoundCount)
	assert.Equal(t, 0, report.MissingCount)
	assert.Equal(t, 0, report.UnknownFoundCount)

	out = h.session.HandleScan(ctx, "ABC1234567")
	assert.Equal(t, ResultDuplicate, out.Result)
	assert.Equal(t, report, h.session.Report())

	out = h.session.HandleScan(ctx, "ZZZ0000001")
	assert.Equal(t, ResultNewlyFound, out.Result)
	assert.Equal(t, KindUnknown, out.Kind)
	assert.Equal(t, 1, h.session.Report().UnknownFoundCount)

	assert.Equal(t, []Event{EventKnownFound, EventDuplicate, EventUnknownFound}, h.notifier.events)
	assert.Equal(t, 3, h.session.State().ScanCount)
	assert.Len(t, h.scanLog.entries, 3)
}

func TestSession_HandleScan_Shape(t *testing.T) {
	ctx := context.Background()

	t.Run("Short barcode refused by operator", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		out := h.session.HandleScan(ctx, "SHORT")
		assert.Equal(t, ResultRejected, out.Result)
		var invalid *InvalidBarcodeError
		require.ErrorAs(t, out.Reason, &invalid)
		assert.Equal(t, 10, invalid.MinLength)
		assert.Equal(t, []string{"confirm:SHORT"}, h.prompter.asked)
		assert.Equal(t, []Event{EventInvalidBarcode}, h.notifier.events)
		assert.Equal(t, 0, h.session.State().ScanCount)
		assert.False(t, h.session.store.Exists("SHORT"))

		require.Len(t, h.scanLog.entries, 1)
		assert.False(t, h.scanLog.entries[0].Accepted)
	})

	t.Run("Short barcode confirmed by operator", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.acceptShort = true
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		out := h.session.HandleScan(ctx, "SHORT")
		assert.Equal(t, ResultNewlyFound, out.Result)
		assert.Equal(t, KindUnknown, out.Kind)
	})

	t.Run("Confirmed scan skips the prompt", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		out := h.session.HandleConfirmedScan(ctx, "SHORT")
		assert.Equal(t, ResultNewlyFound, out.Result)
		assert.Empty(t, h.prompter.asked)
	})

	t.Run("Blank barcode is always rejected", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.acceptShort = true
		out := h.session.HandleConfirmedScan(ctx, "   ")
		assert.Equal(t, ResultRejected, out.Result)
		assert.Empty(t, h.prompter.asked)
	})

	t.Run("Surrounding whitespace is trimmed", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		out := h.session.HandleScan(ctx, " ABC1234567\r\n")
		assert.Equal(t, "ABC1234567", out.Barcode)
		assert.Equal(t, KindKnown, out.Kind)
	})
}

func TestSession_HandleScan_NoDataLoaded(t *testing.T) {
	h := newHarness(t, testConfig())

	out := h.session.HandleScan(context.Background(), "ABC1234567")
	assert.Equal(t, ResultNoDataLoaded, out.Result)
	assert.Nil(t, out.Save)
	assert.Equal(t, 0, h.session.State().ScanCount)
	assert.Equal(t, 0, h.session.store.Len())
	assert.Empty(t, h.saves.files)
	assert.Len(t, h.view.messages, 1)
	require.Len(t, h.scanLog.entries, 1)
	assert.False(t, h.scanLog.entries[0].Accepted)
}

func TestSession_ScanLogEntries(t *testing.T) {
	ctx := context.Background()

	t.Run("Raw input is logged verbatim", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		h.session.HandleScan(ctx, " ABC1234567\r\n")
		h.session.HandleScan(ctx, "  ")

		require.Len(t, h.scanLog.entries, 2)
		assert.Equal(t, " ABC1234567\r\n", h.scanLog.entries[0].Barcode)
		assert.True(t, h.scanLog.entries[0].Accepted)
		assert.Equal(t, "  ", h.scanLog.entries[1].Barcode)
		assert.False(t, h.scanLog.entries[1].Accepted)
	})

	t.Run("Entries carry the active save file", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		h.session.HandleScan(ctx, "ABC1234567")
		h.session.HandleScan(ctx, "ABC7654321")

		h.session.NewStocktake()
		_, err = h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")

		require.Len(t, h.scanLog.entries, 3)
		assert.Empty(t, h.scanLog.entries[0].SaveFile, "no save file exists before the first save")
		assert.Equal(t, "stocktake_001.json", h.scanLog.entries[1].SaveFile)
		assert.Empty(t, h.scanLog.entries[2].SaveFile, "a new stocktake starts untagged")
	})

	t.Run("Restored snapshot tags later scans", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")
		saved := h.session.State().ActiveSavePath
		require.NotEmpty(t, saved)

		h.scanLog.entries = nil
		require.NoError(t, h.session.LoadSnapshot(ctx, saved))
		h.session.HandleScan(ctx, "ABC7654321")

		require.Len(t, h.scanLog.entries, 1)
		assert.Equal(t, filepath.Base(saved), h.scanLog.entries[0].SaveFile)
	})
}

func TestSession_HiddenSuppression(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	h.session.HandleScan(ctx, "ABC1234567")
	h.session.HideFound()

	last := h.view.displayed[len(h.view.displayed)-1]
	assert.Equal(t, records.RowHeader, last[0])
	require.Len(t, last, 2)
	assert.Equal(t, "ABC7654321", last[1][0])
	assert.Equal(t, 1, h.session.State().HiddenCount)

	h.notifier.events = nil
	out := h.session.HandleScan(ctx, "ABC1234567")
	assert.Equal(t, ResultDuplicate, out.Result)
	assert.True(t, out.Suppressed)
	assert.NotContains(t, h.view.highlighted, "ABC1234567")
	assert.Equal(t, []Event{EventDuplicate}, h.notifier.events)

	out = h.session.HandleScan(ctx, "ABC7654321")
	assert.False(t, out.Suppressed)
	assert.Equal(t, KindKnown, h.view.highlighted["ABC7654321"])

	h.session.ShowAll()
	assert.Equal(t, 0, h.session.State().HiddenCount)
	assert.Equal(t, KindKnown, h.view.highlighted["ABC1234567"])
	assert.Equal(t, KindKnown, h.view.highlighted["ABC7654321"])
}

func TestSession_LoadSource(t *testing.T) {
	ctx := context.Background()

	t.Run("Append rejects duplicates and keeps old data", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")

		res, err := h.session.LoadSource(ctx, "extra.xlsx")
		var dup *records.DuplicateBarcodeError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, []string{"ABC1234567"}, dup.Barcodes)
		assert.Equal(t, 1, res.Inserted)
		assert.Equal(t, 1, res.SourceID)
		assert.Equal(t, []string{"mode:extra.xlsx"}, h.prompter.asked)
		assert.Equal(t, map[int]string{0: "stock.xlsx", 1: "extra.xlsx"}, h.session.Sources())

		rec, ok := h.session.Find("ABC1234567")
		require.True(t, ok)
		assert.True(t, rec.Found)
		assert.Equal(t, 0, *rec.SourceID)
		assert.Equal(t, 1, h.session.State().ScanCount)
	})

	t.Run("Overwrite resets store and session state", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.mode = LoadOverwrite
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")
		h.session.HideFound()

		res, err := h.session.LoadSource(ctx, "extra.xlsx")
		require.NoError(t, err)
		assert.Equal(t, 0, res.SourceID)
		assert.Equal(t, map[int]string{0: "extra.xlsx"}, h.session.Sources())

		state := h.session.State()
		assert.True(t, state.FileLoaded)
		assert.Equal(t, 0, state.ScanCount)
		assert.Equal(t, 0, state.HiddenCount)
		assert.Empty(t, state.ActiveSavePath)
		assert.Equal(t, 2, state.RecordCount)

		rec, ok := h.session.Find("ABC1234567")
		require.True(t, ok)
		assert.False(t, rec.Found)
	})

	t.Run("Cancel leaves everything unchanged", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.mode = LoadCancel
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")
		before := h.session.State()

		_, err = h.session.LoadSource(ctx, "extra.xlsx")
		assert.ErrorIs(t, err, ErrLoadCancelled)
		assert.Equal(t, before, h.session.State())
		assert.Equal(t, map[int]string{0: "stock.xlsx"}, h.session.Sources())
	})

	t.Run("First load does not prompt", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.mode = LoadCancel
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		assert.Empty(t, h.prompter.asked)
	})

	t.Run("Missing source is reported", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "nope.xlsx")
		var notFound *SourceNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "nope.xlsx", notFound.Path)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.False(t, h.session.State().FileLoaded)
		assert.Len(t, h.view.messages, 1)
	})

	t.Run("Failed overwrite keeps loaded data", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.mode = LoadOverwrite
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)

		_, err = h.session.LoadSource(ctx, "nope.xlsx")
		require.Error(t, err)
		assert.Equal(t, 2, h.session.State().RecordCount)
		assert.Equal(t, map[int]string{0: "stock.xlsx"}, h.session.Sources())
	})

	t.Run("Loader failures are wrapped", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.loader.err = errors.New("sheet has no header row")
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sheet has no header row")
		var notFound *SourceNotFoundError
		assert.False(t, errors.As(err, &notFound))
	})
}

func TestSession_Autosave(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.AutosaveCountNewFile = 3
	cfg.RetainFiles = 2
	h := newHarness(t, cfg)
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	var rotated []int
	for i := 1; i <= 9; i++ {
		out := h.session.HandleScan(ctx, "ABC1234567")
		require.NotNil(t, out.Save)
		require.NoError(t, out.Save.Err)
		if out.Save.Rotated {
			rotated = append(rotated, i)
		}
	}

	assert.Equal(t, []int{1, 3, 6, 9}, rotated)
	assert.Equal(t, []string{"saves/stocktake_003.json", "saves/stocktake_004.json"}, h.saves.paths())
	assert.Equal(t, "saves/stocktake_004.json", h.session.State().ActiveSavePath)
	assert.Len(t, h.archiver.archived, 4)

	restored := records.New()
	require.NoError(t, restored.Restore(h.saves.files["saves/stocktake_004.json"]))
	assert.Equal(t, h.session.store.All(), restored.All())
}

func TestSession_Autosave_Disabled(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.AutosaveCount = 0
	cfg.AutosaveCountNewFile = 0
	h := newHarness(t, cfg)
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	out := h.session.HandleScan(ctx, "ABC1234567")
	assert.Nil(t, out.Save)
	assert.Empty(t, h.saves.files)
}

func TestSession_Autosave_FailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	h.saves.failWrite = true
	out := h.session.HandleScan(ctx, "ABC1234567")
	assert.Equal(t, ResultNewlyFound, out.Result)
	require.NotNil(t, out.Save)
	assert.Error(t, out.Save.Err)
	assert.Contains(t, h.view.messages[len(h.view.messages)-1], "Save Error")
	assert.True(t, h.session.pendingRotation)

	h.saves.failWrite = false
	out = h.session.HandleScan(ctx, "ABC7654321")
	assert.Equal(t, ResultNewlyFound, out.Result)
	require.NoError(t, out.Save.Err)
	assert.True(t, out.Save.Rotated)
	assert.False(t, h.session.pendingRotation)
	assert.Len(t, h.saves.files, 1)
}

func TestSession_Autosave_ArchiveFailure(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())
	h.archiver.err = errors.New("bucket unreachable")
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	out := h.session.HandleScan(ctx, "ABC1234567")
	require.NotNil(t, out.Save)
	assert.NoError(t, out.Save.Err)
	assert.Error(t, out.Save.ArchiveErr)
	assert.Len(t, h.saves.files, 1)
}

func TestSession_Save(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())

	_, err := h.session.Save(ctx)
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	_, err = h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	report, err := h.session.Save(ctx)
	require.NoError(t, err)
	assert.True(t, report.Rotated)

	again, err := h.session.Save(ctx)
	require.NoError(t, err)
	assert.False(t, again.Rotated)
	assert.Equal(t, report.Path, again.Path)
}

func TestSession_LoadSnapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Restores records and continues in the same file", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.session.HandleScan(ctx, "ABC1234567")
		h.session.HandleScan(ctx, "ZZZ0000001")
		path := h.session.State().ActiveSavePath
		want := h.session.store.All()

		h.session.NewStocktake()
		assert.False(t, h.session.State().FileLoaded)

		require.NoError(t, h.session.LoadSnapshot(ctx, path))
		state := h.session.State()
		assert.True(t, state.FileLoaded)
		assert.Equal(t, path, state.ActiveSavePath)
		assert.Equal(t, 0, state.ScanCount)
		assert.Equal(t, want, h.session.store.All())
		assert.Equal(t, KindUnknown, h.view.highlighted["ZZZ0000001"])
		assert.Equal(t, KindKnown, h.view.highlighted["ABC1234567"])

		out := h.session.HandleScan(ctx, "ABC7654321")
		assert.Equal(t, path, out.Save.Path)
	})

	t.Run("Missing snapshot", func(t *testing.T) {
		h := newHarness(t, testConfig())
		err := h.session.LoadSnapshot(ctx, "saves/nope.json")
		var notFound *SourceNotFoundError
		assert.ErrorAs(t, err, &notFound)
	})

	t.Run("Corrupt snapshot with fresh start", func(t *testing.T) {
		h := newHarness(t, testConfig())
		h.prompter.freshStart = true
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.saves.files["saves/bad.json"] = []byte(`{"reelData": [`)

		err = h.session.LoadSnapshot(ctx, "saves/bad.json")
		var corrupt *records.SnapshotCorruptError
		require.ErrorAs(t, err, &corrupt)
		assert.Equal(t, []string{"fresh"}, h.prompter.asked)
		assert.False(t, h.session.State().FileLoaded)
		assert.Equal(t, 0, h.session.State().RecordCount)
	})

	t.Run("Corrupt snapshot keeps current stocktake", func(t *testing.T) {
		h := newHarness(t, testConfig())
		_, err := h.session.LoadSource(ctx, "stock.xlsx")
		require.NoError(t, err)
		h.saves.files["saves/bad.json"] = []byte(`{"reelData": [{"barcode": "X"}], "fileID": {}}`)

		err = h.session.LoadSnapshot(ctx, "saves/bad.json")
		require.Error(t, err)
		assert.True(t, h.session.State().FileLoaded)
		assert.Equal(t, 2, h.session.State().RecordCount)
	})
}

func TestSession_SetFoundAndDeleteUnknown(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())
	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)
	h.session.HandleScan(ctx, "ZZZ0000001")

	require.NoError(t, h.session.SetFound("ABC1234567", true))
	rec, _ := h.session.Find("ABC1234567")
	assert.True(t, rec.Found)

	require.NoError(t, h.session.SetFound("ABC1234567", false))
	rec, _ = h.session.Find("ABC1234567")
	assert.False(t, rec.Found)

	assert.ErrorIs(t, h.session.SetFound("ZZZ0000001", false), ErrUnknownRecord)
	assert.ErrorIs(t, h.session.SetFound("NOPE000000", true), ErrRecordNotFound)

	assert.ErrorIs(t, h.session.DeleteUnknown("ABC1234567"), ErrKnownRecord)
	assert.ErrorIs(t, h.session.DeleteUnknown("NOPE000000"), ErrRecordNotFound)
	require.NoError(t, h.session.DeleteUnknown("ZZZ0000001"))
	_, ok := h.session.Find("ZZZ0000001")
	assert.False(t, ok)
}

func TestSession_SimulateScan(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())

	_, err := h.session.SimulateScan(ctx, nil)
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	_, err = h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		if _, err = h.session.SimulateScan(ctx, rng); err != nil {
			break
		}
	}
	require.ErrorIs(t, err, ErrAllFound)
	assert.Equal(t, 0, h.session.Report().MissingCount)
	for _, r := range h.session.Report().UnknownRecords {
		assert.Contains(t, simulatedUnknownBarcodes, r.Barcode)
	}
}

func TestSession_Replay(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())

	_, err := h.session.Replay(ctx, nil)
	assert.ErrorIs(t, err, ErrNoDataLoaded)

	_, err = h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	summary, err := h.session.Replay(ctx, []ScanEntry{
		{Barcode: "ABC1234567", Accepted: true},
		{Barcode: "SHORT", Accepted: false},
		{Barcode: "ZZZ0000001", Accepted: true},
		{Barcode: "ABC1234567", Accepted: true},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Applied)
	assert.Equal(t, 2, summary.NewlyFound)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 1, summary.Skipped)
	assert.True(t, summary.Save.Rotated)

	assert.Empty(t, h.scanLog.entries)
	assert.Len(t, h.saves.files, 1)
	assert.Equal(t, 1, h.session.Report().FoundCount)
	assert.Equal(t, 1, h.session.Report().UnknownFoundCount)
}

func TestSession_Replay_IgnoresScansWithoutData(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, testConfig())

	h.session.HandleScan(ctx, "ABC1234567")
	logged := append([]ScanEntry(nil), h.scanLog.entries...)
	require.Len(t, logged, 1)

	_, err := h.session.LoadSource(ctx, "stock.xlsx")
	require.NoError(t, err)

	summary, err := h.session.Replay(ctx, logged)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Applied)
	assert.Equal(t, 0, summary.NewlyFound)
	assert.Equal(t, 1, summary.Skipped)

	rec, ok := h.session.Find("ABC1234567")
	require.True(t, ok)
	assert.False(t, rec.Found)
	assert.Equal(t, 0, h.session.Report().FoundCount)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, testConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Empty save dir", func(c *Config) { c.SaveDir = "" }},
		{"Negative length", func(c *Config) { c.MinBarcodeLength = -1 }},
		{"Negative autosave", func(c *Config) { c.AutosaveCount = -1 }},
		{"Negative retention", func(c *Config) { c.RetainFiles = -1 }},
		{"Negative group size", func(c *Config) { c.MaxGroupSize = -1 }},
		{"Unknown load mode", func(c *Config) { c.DefaultLoadMode = "merge" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
