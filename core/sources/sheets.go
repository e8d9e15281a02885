package sources

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"stocktake/core/records"
	"stocktake/core/session"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// SheetsScheme prefixes Google Sheets source paths.
const SheetsScheme = "sheets://"

// ErrSheetsDisabled is returned for sheets:// paths when no credentials are configured.
var ErrSheetsDisabled = errors.New("google sheets sources are not configured")

// RangeReader fetches a rectangular range of cell values.
type RangeReader interface {
	ReadRange(ctx context.Context, spreadsheetID, sheetRange string) ([][]any, error)
}

// GoogleSheetsReader reads ranges through the Sheets API.
type GoogleSheetsReader struct {
	service *sheetsapi.Service
}

// NewGoogleSheetsReader authenticates with a service account file.
func NewGoogleSheetsReader(ctx context.Context, credentialsFile string) (*GoogleSheetsReader, error) {
	service, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	return &GoogleSheetsReader{service: service}, nil
}

// ReadRange fetches sheetRange of the spreadsheet.
func (r *GoogleSheetsReader) ReadRange(ctx context.Context, spreadsheetID, sheetRange string) ([][]any, error) {
	resp, err := r.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, fmt.Errorf("%w: spreadsheet %s", session.ErrSourceNotFound, spreadsheetID)
		}
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}
	return resp.Values, nil
}

// SheetsLoader reads rows from Google Sheets.
type SheetsLoader struct {
	reader RangeReader
	cfg    Config
	logger *zap.Logger
}

// NewSheetsLoader creates a loader on top of reader.
func NewSheetsLoader(reader RangeReader, cfg Config, logger *zap.Logger) *SheetsLoader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SheetsLoader{reader: reader, cfg: cfg, logger: logger.Named("sources.sheets")}
}

// Rows reads a sheets://<id>[/<range>] path.
func (l *SheetsLoader) Rows(ctx context.Context, path string) ([]records.Row, error) {
	id, sheetRange, err := ParseSheetsPath(path)
	if err != nil {
		return nil, err
	}
	if sheetRange == "" {
		sheetRange = l.cfg.SheetsRange
		if l.cfg.Sheet != "" {
			sheetRange = l.cfg.Sheet + "!" + sheetRange
		}
	}

	values, err := l.reader.ReadRange(ctx, id, sheetRange)
	if err != nil {
		return nil, err
	}
	rows, err := parseTable(values, l.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("Sheet read", zap.String("spreadsheet", id), zap.String("range", sheetRange), zap.Int("rows", len(rows)))
	return rows, nil
}

// ParseSheetsPath splits sheets://<id>[/<range>] into its parts.
func ParseSheetsPath(path string) (id, sheetRange string, err error) {
	rest, ok := strings.CutPrefix(path, SheetsScheme)
	if !ok {
		return "", "", fmt.Errorf("not a sheets path: %q", path)
	}
	id, sheetRange, _ = strings.Cut(rest, "/")
	if id == "" {
		return "", "", fmt.Errorf("%w: missing spreadsheet id in %q", session.ErrSourceNotFound, path)
	}
	return id, sheetRange, nil
}
