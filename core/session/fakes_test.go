package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"testing"
	"time"

	"stocktake/core/records"

	"go.uber.org/zap"
)

type fakeLoader struct {
	sources map[string][]records.Row
	err     error
}

func (f *fakeLoader) Rows(_ context.Context, path string) ([]records.Row, error) {
	if f.err != nil {
		return nil, f.err
	}
	rows, ok := f.sources[path]
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	return rows, nil
}

type memSaves struct {
	files     map[string][]byte
	order     []string
	next      int
	failWrite bool
	failPath  bool
}

func newMemSaves() *memSaves {
	return &memSaves{files: make(map[string][]byte)}
}

func (m *memSaves) NewPath() (string, error) {
	if m.failPath {
		return "", errors.New("no space left")
	}
	m.next++
	return fmt.Sprintf("saves/stocktake_%03d.json", m.next), nil
}

func (m *memSaves) Write(path string, data []byte) error {
	if m.failWrite {
		return errors.New("read-only file system")
	}
	if _, ok := m.files[path]; !ok {
		m.order = append(m.order, path)
	}
	m.files[path] = append([]byte(nil), data...)
	return nil
}

func (m *memSaves) Read(path string) ([]byte, error) {
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func (m *memSaves) Prune(keep int) ([]string, error) {
	if keep <= 0 || len(m.order) <= keep {
		return nil, nil
	}
	cut := len(m.order) - keep
	removed := append([]string(nil), m.order[:cut]...)
	for _, p := range removed {
		delete(m.files, p)
	}
	m.order = append([]string(nil), m.order[cut:]...)
	return removed, nil
}

func (m *memSaves) paths() []string {
	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

type recordingView struct {
	displayed   [][][]string
	highlighted map[string]RecordKind
	messages    []string
}

func newRecordingView() *recordingView {
	return &recordingView{highlighted: make(map[string]RecordKind)}
}

func (v *recordingView) DisplayRecords(rows [][]string) {
	v.displayed = append(v.displayed, rows)
	v.highlighted = make(map[string]RecordKind)
}

func (v *recordingView) RecordFound(barcode string, kind RecordKind) {
	v.highlighted[barcode] = kind
}

func (v *recordingView) DisplayMessage(title, message string) {
	v.messages = append(v.messages, title+": "+message)
}

type recordingNotifier struct {
	events []Event
}

func (n *recordingNotifier) Notify(e Event) {
	n.events = append(n.events, e)
}

type recordingScanLog struct {
	entries []ScanEntry
}

func (l *recordingScanLog) Append(_ context.Context, e ScanEntry) error {
	l.entries = append(l.entries, e)
	return nil
}

type fakeArchiver struct {
	archived []string
	err      error
}

func (a *fakeArchiver) Archive(_ context.Context, path string) error {
	if a.err != nil {
		return a.err
	}
	a.archived = append(a.archived, path)
	return nil
}

type scriptedPrompter struct {
	acceptShort bool
	mode        LoadMode
	freshStart  bool
	asked       []string
}

func (p *scriptedPrompter) ConfirmBarcode(barcode string, _ int) bool {
	p.asked = append(p.asked, "confirm:"+barcode)
	return p.acceptShort
}

func (p *scriptedPrompter) ChooseLoadMode(path string) LoadMode {
	p.asked = append(p.asked, "mode:"+path)
	return p.mode
}

func (p *scriptedPrompter) OfferFreshStart(error) bool {
	p.asked = append(p.asked, "fresh")
	return p.freshStart
}

type harness struct {
	session  *Session
	loader   *fakeLoader
	saves    *memSaves
	view     *recordingView
	notifier *recordingNotifier
	scanLog  *recordingScanLog
	prompter *scriptedPrompter
	archiver *fakeArchiver
}

func testConfig() Config {
	return Config{
		SaveDir:              "saves",
		MinBarcodeLength:     10,
		AutosaveCount:        1,
		AutosaveCountNewFile: 10,
		RetainFiles:          3,
		MaxGroupSize:         30,
		DefaultLoadMode:      "append",
	}
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		loader: &fakeLoader{sources: map[string][]records.Row{
			"stock.xlsx": {
				{Barcode: "ABC1234567", Width: 10, Weight: 100, Material: "PaperX"},
				{Barcode: "ABC7654321", Width: 20, Weight: 200, Material: "PaperX"},
			},
			"extra.xlsx": {
				{Barcode: "ABC1234567", Width: 10, Weight: 100, Material: "PaperX"},
				{Barcode: "DEF0000001", Width: 30, Weight: 300, Material: "Board"},
			},
		}},
		saves:    newMemSaves(),
		view:     newRecordingView(),
		notifier: &recordingNotifier{},
		scanLog:  &recordingScanLog{},
		prompter: &scriptedPrompter{mode: LoadAppend},
		archiver: &fakeArchiver{},
	}
	h.session = New(cfg, Dependencies{
		Loader:   h.loader,
		Saves:    h.saves,
		ScanLog:  h.scanLog,
		Notifier: h.notifier,
		View:     h.view,
		Prompter: h.prompter,
		Archiver: h.archiver,
	}, zap.NewNop())
	h.session.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return h
}
