package session

import "fmt"

// Config holds the stocktake session settings.
type Config struct {
	// SaveDir is the directory that holds snapshot files.
	SaveDir string `mapstructure:"save_dir" default:"saves"`
	// MinBarcodeLength is the shortest barcode accepted without confirmation.
	MinBarcodeLength int `mapstructure:"min_barcode_length" default:"10"`
	// AutosaveCount saves to the active file every N scans. Zero disables it.
	AutosaveCount int `mapstructure:"autosave_count" default:"1"`
	// AutosaveCountNewFile starts a new save file every N scans. Zero disables it.
	AutosaveCountNewFile int `mapstructure:"autosave_count_new_file" default:"10"`
	// RetainFiles is how many save files survive pruning. Zero keeps all.
	RetainFiles int `mapstructure:"retain_files" default:"3"`
	// MaxGroupSize bounds display groups. Zero disables the limit.
	MaxGroupSize int `mapstructure:"max_group_size" default:"30"`
	// DefaultLoadMode is used when no operator can be asked (append, overwrite, cancel).
	DefaultLoadMode string `mapstructure:"default_load_mode" default:"append"`
}

// Validate checks the settings for values the session cannot work with.
func (c Config) Validate() error {
	switch {
	case c.SaveDir == "":
		return fmt.Errorf("save_dir must not be empty")
	case c.MinBarcodeLength < 0:
		return fmt.Errorf("min_barcode_length must not be negative")
	case c.AutosaveCount < 0 || c.AutosaveCountNewFile < 0:
		return fmt.Errorf("autosave counts must not be negative")
	case c.RetainFiles < 0:
		return fmt.Errorf("retain_files must not be negative")
	case c.MaxGroupSize < 0:
		return fmt.Errorf("max_group_size must not be negative")
	}
	if _, err := ParseLoadMode(c.DefaultLoadMode); err != nil {
		return err
	}
	return nil
}
