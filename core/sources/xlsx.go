package sources

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"stocktake/core/records"
	"stocktake/core/session"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// XLSXLoader reads rows from local workbooks.
type XLSXLoader struct {
	cfg    Config
	logger *zap.Logger
}

// NewXLSXLoader creates a workbook loader.
func NewXLSXLoader(cfg Config, logger *zap.Logger) *XLSXLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &XLSXLoader{cfg: cfg, logger: logger.Named("sources.xlsx")}
}

// Rows reads the configured sheet of the workbook at path.
func (l *XLSXLoader) Rows(_ context.Context, path string) ([]records.Row, error) {
	if path == "" {
		return nil, session.ErrSourceNotFound
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", session.ErrSourceNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := l.cfg.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	table := make([][]any, len(raw))
	for i, r := range raw {
		table[i] = make([]any, len(r))
		for j, v := range r {
			table[i][j] = v
		}
	}

	rows, err := parseTable(table, l.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Workbook read", zap.String("path", path), zap.String("sheet", sheet), zap.Int("rows", len(rows)))
	return rows, nil
}
