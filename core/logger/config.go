package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding (json, console).
	Format string `mapstructure:"format" default:"console"`
	// File, when set, receives the log in addition to stderr. Useful at the
	// terminal, where stderr scrolls away with the scan output.
	File string `mapstructure:"file" default:""`
}
