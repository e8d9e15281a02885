package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"stocktake/core/records"
	"stocktake/core/session"
	"stocktake/core/sources"
	"stocktake/feature/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var exportFlag string

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [save-file]",
	Short: "Print the found, missing and unknown reels of a save file",
	Long:  `Reads a save file (the newest one by default) and prints the stocktake report. With --export the missing and unknown reels are also written to an .xlsx workbook.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		logg := rt.logger

		path, err := saveFileArg(rt, args)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read save file: %w", err)
		}
		store := records.New()
		if err := store.Restore(data); err != nil {
			return err
		}
		report := store.Report()

		fmt.Fprintf(cmd.OutOrStdout(), "Report for %s\n", path)
		console.RenderReport(cmd.OutOrStdout(), report)

		if exportFlag != "" {
			if err := sources.WriteReport(exportFlag, report); err != nil {
				return err
			}
			logg.Info("Report exported", zap.String("file", exportFlag))
		}
		return nil
	},
}

// saveFileArg resolves the optional save file argument. Bare names are
// looked up in the save directory; no argument means the newest save file.
func saveFileArg(rt *runtime, args []string) (string, error) {
	dir := rt.cfg.Stocktake.SaveDir
	if len(args) == 1 {
		path := args[0]
		if path == filepath.Base(path) {
			if _, err := os.Stat(path); err != nil {
				path = filepath.Join(dir, path)
			}
		}
		return path, nil
	}
	saves, err := session.NewDirStore(dir)
	if err != nil {
		return "", err
	}
	latest, ok, err := saves.Latest()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("no save file in %s", dir)
	}
	return latest.Path, nil
}

func init() {
	RootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVar(&exportFlag, "export", "", "Write the report to this .xlsx file")
}
