package sources

import (
	"context"
	"strings"

	"stocktake/core/records"
	"stocktake/core/session"
)

// Router picks the loader for a source path.
type Router struct {
	xlsx   session.SourceLoader
	sheets session.SourceLoader
}

// NewRouter creates a router. sheets may be nil when Google Sheets is not configured.
func NewRouter(xlsx, sheets session.SourceLoader) *Router {
	return &Router{xlsx: xlsx, sheets: sheets}
}

// Rows dispatches sheets:// paths to the sheets loader and everything else to the workbook loader.
func (r *Router) Rows(ctx context.Context, path string) ([]records.Row, error) {
	if strings.HasPrefix(path, SheetsScheme) {
		if r.sheets == nil {
			return nil, ErrSheetsDisabled
		}
		return r.sheets.Rows(ctx, path)
	}
	return r.xlsx.Rows(ctx, path)
}
