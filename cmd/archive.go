package cmd

import (
	"fmt"

	"stocktake/core/scheduler"
	"stocktake/core/session"
	"stocktake/feature/console"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fetchDest string

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage save files archived to object storage",
}

// archiveListCmd represents the archive list command
var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived save files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		_, arch, err := rt.openArchive(cmd.Context(), true)
		if err != nil {
			return err
		}
		objects, err := arch.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(objects) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No save files under %s/%s\n", arch.Bucket(), arch.Prefix())
			return nil
		}
		console.RenderArchive(cmd.OutOrStdout(), objects)
		return nil
	},
}

// archiveFetchCmd represents the archive fetch command
var archiveFetchCmd = &cobra.Command{
	Use:   "fetch <name>",
	Short: "Download an archived save file",
	Long:  `Downloads an archived save file into the save directory (or --dest) so it can be continued or recovered.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		_, arch, err := rt.openArchive(cmd.Context(), true)
		if err != nil {
			return err
		}
		dest := fetchDest
		if dest == "" {
			dest = rt.cfg.Stocktake.SaveDir
		}
		path, err := arch.Fetch(cmd.Context(), args[0], dest)
		if err != nil {
			return err
		}
		rt.logger.Info("Save file fetched", zap.String("name", args[0]), zap.String("path", path))
		return nil
	},
}

// archivePushCmd represents the archive push command
var archivePushCmd = &cobra.Command{
	Use:   "push",
	Short: "Archive the newest save file now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := loadRuntime()
		if err != nil {
			return err
		}
		_, arch, err := rt.openArchive(cmd.Context(), true)
		if err != nil {
			return err
		}
		saves, err := session.NewDirStore(rt.cfg.Stocktake.SaveDir)
		if err != nil {
			return err
		}

		uploaded, err := scheduler.New(rt.cfg.Scheduler, saves, arch, rt.logger).RunArchive(cmd.Context())
		if err != nil {
			return err
		}
		if !uploaded {
			rt.logger.Info("Nothing to archive", zap.String("dir", saves.Dir()))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd, archiveFetchCmd, archivePushCmd)

	archiveFetchCmd.Flags().StringVar(&fetchDest, "dest", "", "Directory to download into (default: the save directory)")
}
