package cmd

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stocktake/core/loader"
	"stocktake/core/logger"
	"stocktake/core/middleware/auth"
	"stocktake/core/middleware/rayid"
	"stocktake/core/scheduler"
	"stocktake/core/session"
	"stocktake/core/sources"
	"stocktake/feature/integrity"
	"stocktake/feature/stocktake"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "stocktake/docs/swagger"
)

// @title Stocktake API
// @version 1.0
// @description Scanner intake and reconciliation for a reel stocktake.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

var resumeFlag bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stocktake server",
	Long:  `Starts the HTTP server that receives scans and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		rt, err := loadRuntime()
		if err != nil {
			log.Fatalf("%v", err)
		}
		cfg, logg := rt.cfg, rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// 2. Save directory, owned by this process only
		saves, err := session.NewDirStore(cfg.Stocktake.SaveDir)
		if err != nil {
			logg.Fatal("Failed to prepare save directory", zap.Error(err))
		}
		unlock, err := saves.Lock()
		if err != nil {
			logg.Fatal("Save directory is in use", zap.String("dir", saves.Dir()), zap.Error(err))
		}
		defer unlock()

		// 3. Optional collaborators: scan log database and archive bucket
		scanLog, db, _ := rt.openScanLog(false)
		client, arch, err := rt.openArchive(ctx, false)
		if err != nil {
			logg.Fatal("Failed to set up archive", zap.Error(err))
		}

		src, err := sources.NewLoader(ctx, cfg.Sources, logg)
		if err != nil {
			logg.Fatal("Failed to set up source loaders", zap.Error(err))
		}

		// 4. Session
		view := stocktake.NewBufferView()
		deps := session.Dependencies{
			Loader:   src,
			Saves:    saves,
			View:     view,
			Notifier: stocktake.NewLogNotifier(logg),
		}
		var recent stocktake.RecentScans
		if scanLog != nil {
			deps.ScanLog = scanLog
			recent = scanLog
		}
		if arch != nil {
			deps.Archiver = arch
		}
		sess := session.New(cfg.Stocktake, deps, logg)

		if resumeFlag {
			resumeLatest(ctx, sess, saves, logg)
		}

		svc := stocktake.NewService(sess, view, saves, recent, cfg.Server.Simulator, logg)

		// 5. Scheduled archiving
		var sched *scheduler.Scheduler
		if cfg.Scheduler.Enabled && arch != nil {
			sched = scheduler.New(cfg.Scheduler, saves, arch, logg)
			if err := sched.Start(); err != nil {
				logg.Fatal("Failed to start scheduler", zap.Error(err))
			}
		}

		// 6. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(stocktake.NewFeature(svc))
		mgr.Register(integrity.NewFeature(client, cfg.Storage, db, saves.Dir(), logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 7. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 8. Graceful Shutdown
		<-ctx.Done()
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
		if sched != nil {
			sched.Stop()
		}
		if _, err := svc.Save(context.Background()); err != nil && !errors.Is(err, session.ErrNoDataLoaded) {
			logg.Error("Final save failed", zap.Error(err))
		}
	},
}

// resumeLatest continues the newest save file, if any.
func resumeLatest(ctx context.Context, sess *session.Session, saves *session.DirStore, logg *zap.Logger) {
	latest, ok, err := saves.Latest()
	if err != nil {
		logg.Warn("Failed to list save files", zap.Error(err))
		return
	}
	if !ok {
		logg.Info("No save file to resume")
		return
	}
	if err := sess.LoadSnapshot(ctx, latest.Path); err != nil {
		logg.Warn("Failed to resume save file", zap.String("path", latest.Path), zap.Error(err))
		return
	}
	logg.Info("Resumed stocktake", zap.String("path", latest.Path))
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&resumeFlag, "resume", false, "Continue the newest save file")
}
