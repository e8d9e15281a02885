package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
)

// Config holds the schedule of background jobs.
type Config struct {
	// Enabled turns scheduled archiving on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// ArchiveSpec is a standard 5-field cron expression.
	ArchiveSpec string `mapstructure:"archive_spec" default:"*/15 * * * *"`
	// ArchiveRetain is how many archived files survive pruning. Zero keeps all.
	ArchiveRetain int `mapstructure:"archive_retain" default:"50"`
	// TimeoutSeconds bounds a single job run.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"120"`
}

// Validate checks the cron expression when scheduling is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if _, err := cron.ParseStandard(c.ArchiveSpec); err != nil {
		return fmt.Errorf("archive_spec %q: %w", c.ArchiveSpec, err)
	}
	if c.ArchiveRetain < 0 {
		return fmt.Errorf("archive_retain must not be negative, got %d", c.ArchiveRetain)
	}
	return nil
}
