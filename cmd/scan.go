package cmd

import (
	"errors"
	"fmt"
	"os"

	"stocktake/core/records"
	"stocktake/core/session"
	"stocktake/core/sources"
	"stocktake/feature/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	scanLoadFlags []string
	scanResume    bool
	scanTables    bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a stocktake at the terminal",
	Long: `Reads barcodes from standard input, one per line, as typed by a keyboard
wedge scanner. Lines starting with ':' are commands; type :help for a list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		ctx := cmd.Context()

		saves, err := session.NewDirStore(cfg.Stocktake.SaveDir)
		if err != nil {
			return err
		}
		unlock, err := saves.Lock()
		if err != nil {
			return fmt.Errorf("save directory %s: %w", saves.Dir(), err)
		}
		defer unlock()

		scanLog, _, _ := rt.openScanLog(false)
		_, arch, err := rt.openArchive(ctx, false)
		if err != nil {
			return err
		}
		src, err := sources.NewLoader(ctx, cfg.Sources, logg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		lines := console.NewLines(cmd.InOrStdin())
		interactive := console.IsTerminal(cmd.InOrStdin())
		mode, _ := session.ParseLoadMode(cfg.Stocktake.DefaultLoadMode)

		view := console.NewView(out, console.IsTerminal(out))
		view.Tables = scanTables
		deps := session.Dependencies{
			Loader:   src,
			Saves:    saves,
			View:     view,
			Notifier: console.NewBell(os.Stderr),
			Prompter: console.NewPrompter(lines, out, interactive, session.StaticPrompter{Mode: mode}),
		}
		if scanLog != nil {
			deps.ScanLog = scanLog
		}
		if arch != nil {
			deps.Archiver = arch
		}
		sess := session.New(cfg.Stocktake, deps, logg)

		if scanResume {
			resumeLatest(ctx, sess, saves, logg)
		}
		for _, path := range scanLoadFlags {
			_, err := sess.LoadSourceWithMode(ctx, path, session.LoadAppend)
			var dup *records.DuplicateBarcodeError
			if err != nil && !errors.As(err, &dup) {
				return err
			}
			logg.Info("Source loaded", zap.String("path", path))
		}

		return console.New(sess, saves, lines, out, logg).Run(ctx)
	},
}

func init() {
	RootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringSliceVar(&scanLoadFlags, "load", nil, "Source files to load before scanning")
	scanCmd.Flags().BoolVar(&scanResume, "resume", false, "Continue the newest save file")
	scanCmd.Flags().BoolVar(&scanTables, "tables", false, "Print full record tables instead of counts")
}
