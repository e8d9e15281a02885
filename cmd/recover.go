package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"stocktake/core/session"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// recoverCmd represents the recover command
var recoverCmd = &cobra.Command{
	Use:   "recover [save-file]",
	Short: "Replay logged scans on top of a save file",
	Long: `Loads a save file (the newest one by default), replays every accepted scan
the scan log recorded for that file after it was last written and saves the
result to a new save file. Use it when scans were received but not saved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		ctx := cmd.Context()

		path, err := saveFileArg(rt, args)
		if err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to stat save file: %w", err)
		}

		scanLog, _, err := rt.openScanLog(true)
		if err != nil {
			return err
		}
		saves, err := session.NewDirStore(cfg.Stocktake.SaveDir)
		if err != nil {
			return err
		}
		unlock, err := saves.Lock()
		if err != nil {
			return fmt.Errorf("save directory %s: %w", saves.Dir(), err)
		}
		defer unlock()

		// No source loader: a recovery never reads spreadsheets.
		sess := session.New(cfg.Stocktake, session.Dependencies{Saves: saves}, logg)
		if err := sess.LoadSnapshot(ctx, path); err != nil {
			return err
		}

		entries, err := scanLog.Since(ctx, filepath.Base(path), info.ModTime())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No scans to replay.")
			return nil
		}

		summary, err := sess.Replay(ctx, entries)
		if err != nil {
			return fmt.Errorf("replay finished but saving failed: %w", err)
		}

		logg.Info("Recovery completed",
			zap.String("from", path),
			zap.String("to", summary.Save.Path),
			zap.Int("applied", summary.Applied),
			zap.Int("newly_found", summary.NewlyFound),
			zap.Int("duplicates", summary.Duplicates),
			zap.Int("skipped", summary.Skipped),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Replayed %d scans (%d newly found), saved to %s\n",
			summary.Applied, summary.NewlyFound, summary.Save.Path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(recoverCmd)
}
