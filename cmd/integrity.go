package cmd

import (
	"context"
	"fmt"

	"stocktake/core/database"
	"stocktake/core/storage"
	"stocktake/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the save directory, scan log schema and archive bucket",
	Long:  `Runs every integrity check. With --fix, problems that can be repaired are repaired.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return cmd.Help()
		}
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		defer logg.Sync()

		failed := false
		for name, section := range svc.Run(cmd.Context(), fixFlag) {
			fields := []zap.Field{zap.String("check", name), zap.String("status", section.Status)}
			switch section.Status {
			case "ok", "fixed":
				logg.Info("Integrity check passed", fields...)
			case "skipped":
				logg.Info("Integrity check skipped", append(fields, zap.String("reason", section.Error))...)
			default:
				failed = true
				logg.Warn("Integrity check failed", append(fields, zap.String("error", section.Error), zap.Any("result", section.Result))...)
			}
		}
		if failed && !fixFlag {
			logg.Info("Run with --fix to repair what can be repaired.")
		}
		return nil
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the archive bucket",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runStructureCheck(cmd.Context(), svc, logg)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check and fix the scan log tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runSchemaCheck(svc, logg)
	},
}

// saveDirCmd represents the integrity savedir command
var saveDirCmd = &cobra.Command{
	Use:   "savedir",
	Short: "Check the local save directory for unreadable save files",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := integrityService()
		if err != nil {
			return err
		}
		return runSaveDirCheck(svc, logg)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd, saveDirCmd)

	integrityCmd.PersistentFlags().BoolVar(&fixFlag, "fix", false, "Repair what can be repaired")
}

// integrityService builds the service without touching anything: the
// database is connected but not migrated and the bucket is not created.
func integrityService() (*integrity.Service, *zap.Logger, error) {
	rt, err := loadRuntime()
	if err != nil {
		return nil, nil, err
	}
	cfg, logg := rt.cfg, rt.logger

	var client storage.Client
	if cfg.Storage.Enabled {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	return integrity.NewService(client, cfg.Storage, db, cfg.Stocktake.SaveDir, logg), logg, nil
}

func runStructureCheck(ctx context.Context, svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking archive bucket...")
	missing, err := svc.CheckStructure(ctx)
	if err != nil {
		return fmt.Errorf("structure check failed: %w", err)
	}
	if len(missing) == 0 {
		logg.Info("Archive bucket is intact.")
		return nil
	}
	logg.Warn("Archive bucket is incomplete", zap.Strings("missing", missing))
	if !fixFlag {
		logg.Info("Run with --fix to create what is missing.")
		return nil
	}
	if err := svc.FixStructure(ctx, missing); err != nil {
		return fmt.Errorf("failed to fix structure: %w", err)
	}
	logg.Info("Archive bucket fixed successfully.")
	return nil
}

func runSchemaCheck(svc *integrity.Service, logg *zap.Logger) error {
	logg.Info("Checking scan log schema...")
	report, err := svc.CheckSchema()
	if err != nil {
		return fmt.Errorf("schema check failed: %w", err)
	}
	if report.Matched {
		logg.Info("Scan log schema matches the models.", zap.String("driver", report.Driver))
		return nil
	}
	for table, tbl := range report.Tables {
		if tbl.Status == "ok" {
			continue
		}
		if len(tbl.MissingColumns) > 0 {
			logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
		}
		if len(tbl.TypeMismatches) > 0 {
			logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
		}
	}
	for _, e := range report.Errors {
		logg.Error("Inspection Error", zap.String("error", e))
	}
	if !fixFlag {
		logg.Info("Run with --fix to migrate the scan log tables.")
		return nil
	}
	if err := svc.FixSchema(); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	logg.Info("Scan log schema migrated.")
	return nil
}

func runSaveDirCheck(svc *integrity.Service, logg *zap.Logger) error {
	report, err := svc.CheckSaveDir()
	if err != nil {
		return fmt.Errorf("save directory check failed: %w", err)
	}
	if report.Healthy() {
		logg.Info("Save directory is healthy.", zap.String("dir", report.Dir), zap.Int("files", report.Files))
		return nil
	}
	logg.Warn("Save directory needs attention",
		zap.String("dir", report.Dir),
		zap.Bool("exists", report.Exists),
		zap.Bool("writable", report.Writable),
		zap.Strings("corrupt", report.Corrupt),
	)
	if !fixFlag {
		logg.Info("Run with --fix to create the directory and set corrupt files aside.")
		return nil
	}
	if err := svc.FixSaveDir(report); err != nil {
		return fmt.Errorf("failed to fix save directory: %w", err)
	}
	logg.Info("Save directory fixed.")
	return nil
}
