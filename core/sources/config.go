package sources

// Config describes where the expected inventory columns are found.
type Config struct {
	// Sheet is the worksheet to read. Empty means the first sheet.
	Sheet string `mapstructure:"sheet" default:""`
	// BarcodeColumn is the zero-based column index of the barcode.
	BarcodeColumn int `mapstructure:"barcode_column" default:"3"`
	// WidthColumn is the zero-based column index of the width.
	WidthColumn int `mapstructure:"width_column" default:"2"`
	// WeightColumn is the zero-based column index of the weight.
	WeightColumn int `mapstructure:"weight_column" default:"7"`
	// MaterialHeader is the header of the material column.
	MaterialHeader string `mapstructure:"material_header" default:"Material"`
	// CredentialsFile is the Google service account file. Empty disables
	// sheets:// sources.
	CredentialsFile string `mapstructure:"credentials_file" default:""`
	// SheetsRange is read when a sheets:// path names no range.
	SheetsRange string `mapstructure:"sheets_range" default:"A:Z"`
}
