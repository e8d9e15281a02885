package sources

import (
	"context"

	"go.uber.org/zap"
)

// NewLoader builds the router for cfg. Google Sheets is enabled when a
// credentials file is configured.
func NewLoader(ctx context.Context, cfg Config, logger *zap.Logger) (*Router, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	xlsx := NewXLSXLoader(cfg, logger)
	if cfg.CredentialsFile == "" {
		return NewRouter(xlsx, nil), nil
	}
	reader, err := NewGoogleSheetsReader(ctx, cfg.CredentialsFile)
	if err != nil {
		return nil, err
	}
	return NewRouter(xlsx, NewSheetsLoader(reader, cfg, logger)), nil
}
