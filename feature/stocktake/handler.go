package stocktake

import (
	"errors"

	"stocktake/core/logger"
	"stocktake/core/records"
	"stocktake/core/scanlog"
	"stocktake/core/session"
	"stocktake/core/utils"
	"stocktake/feature/stocktake/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the stocktake session.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the stocktake routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/stocktake")
	group.Post("/scans", h.HandleScan)
	group.Post("/scans/simulate", h.HandleSimulate)
	group.Get("/scans/recent", h.HandleRecentScans)
	group.Get("/state", h.HandleState)
	group.Get("/report", h.HandleReport)
	group.Get("/groups", h.HandleGroups)
	group.Get("/records", h.HandleRows)
	group.Get("/records/:barcode", h.HandleGetRecord)
	group.Put("/records/:barcode/found", h.HandleSetFound)
	group.Delete("/records/:barcode", h.HandleDeleteRecord)
	group.Get("/sources", h.HandleSources)
	group.Post("/sources", h.HandleLoadSource)
	group.Post("/save", h.HandleSave)
	group.Get("/snapshots", h.HandleSnapshots)
	group.Post("/snapshots/load", h.HandleLoadSnapshot)
	group.Post("/hide", h.HandleHide)
	group.Post("/show", h.HandleShow)
	group.Post("/reset", h.HandleReset)
}

// statusFor maps session errors to HTTP status codes.
func statusFor(err error) int {
	var (
		notFound *session.SourceNotFoundError
		corrupt  *records.SnapshotCorruptError
	)
	switch {
	case errors.As(err, &notFound), errors.Is(err, session.ErrRecordNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrNoDataLoaded),
		errors.Is(err, session.ErrLoadCancelled),
		errors.Is(err, session.ErrKnownRecord),
		errors.Is(err, session.ErrUnknownRecord),
		errors.Is(err, session.ErrAllFound):
		return fiber.StatusConflict
	case errors.As(err, &corrupt):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidSnapshotName):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrSimulatorDisabled):
		return fiber.StatusForbidden
	case errors.Is(err, scanlog.ErrNoDatabase):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}

// HandleScan processes one scanned barcode.
// @Summary Scan Barcode
// @Description Handle one scan. Barcodes shorter than the configured minimum are rejected unless confirm=true.
// @Tags stocktake
// @Accept json
// @Produce json
// @Param request body models.ScanRequest true "Scanned barcode"
// @Param confirm query bool false "Accept short barcodes"
// @Success 200 {object} models.ScanResponse "Scan outcome"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /stocktake/scans [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp := h.service.Scan(c.Context(), req.Barcode, utils.ToBool(c.Query("confirm")))
	if resp.SaveError != "" {
		l.Warn("Autosave failed after scan", zap.String("barcode", resp.Barcode), zap.String("error", resp.SaveError))
	}
	l.Debug("Scan handled", zap.String("barcode", resp.Barcode), zap.String("result", string(resp.Result)))
	return c.JSON(resp)
}

// HandleSimulate scans a random barcode.
// @Summary Simulate Scan
// @Description Scan a random unfound barcode, occasionally one that is in no source. Requires the simulator to be enabled.
// @Tags stocktake
// @Produce json
// @Success 200 {object} models.ScanResponse "Scan outcome"
// @Failure 403 {object} map[string]string "Simulator disabled"
// @Failure 409 {object} map[string]string "Nothing loaded or everything found"
// @Router /stocktake/scans/simulate [post]
func (h *Handler) HandleSimulate(c *fiber.Ctx) error {
	resp, err := h.service.Simulate(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// HandleRecentScans returns the latest scan log entries.
// @Summary Recent Scans
// @Description Latest raw scans from the scan log, newest first.
// @Tags stocktake
// @Produce json
// @Param limit query int false "Number of entries (default 50)"
// @Success 200 {array} models.ScanEvent "Scan log entries"
// @Failure 503 {object} map[string]string "No scan log configured"
// @Router /stocktake/scans/recent [get]
func (h *Handler) HandleRecentScans(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	events, err := h.service.RecentScans(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		if !errors.Is(err, scanlog.ErrNoDatabase) {
			l.Error("Failed to read scan log", zap.Error(err))
		}
		return fail(c, err)
	}
	return c.JSON(events)
}

// HandleState returns the session state.
// @Summary Session State
// @Tags stocktake
// @Produce json
// @Success 200 {object} session.State "Session state"
// @Router /stocktake/state [get]
func (h *Handler) HandleState(c *fiber.Ctx) error {
	return c.JSON(h.service.State())
}

// HandleReport returns the stocktake report.
// @Summary Stocktake Report
// @Description Counts of found, missing and unknown records with the missing and unknown lists.
// @Tags stocktake
// @Produce json
// @Success 200 {object} records.Report "Report"
// @Router /stocktake/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	return c.JSON(h.service.Report())
}

// HandleGroups returns the display groups.
// @Summary Display Groups
// @Description Records sorted by material, width and weight, grouped by material and width.
// @Tags stocktake
// @Produce json
// @Param hide_found query bool false "Leave out found records"
// @Success 200 {object} models.GroupsResponse "Groups"
// @Router /stocktake/groups [get]
func (h *Handler) HandleGroups(c *fiber.Ctx) error {
	groups := h.service.Groups(utils.ToBool(c.Query("hide_found")))
	return c.JSON(models.GroupsResponse{Groups: groups})
}

// HandleRows returns the display rows.
// @Summary Display Rows
// @Tags stocktake
// @Produce json
// @Param hide_found query bool false "Leave out found records"
// @Success 200 {object} models.RowsResponse "Rows, header first"
// @Router /stocktake/records [get]
func (h *Handler) HandleRows(c *fiber.Ctx) error {
	rows := h.service.Rows(utils.ToBool(c.Query("hide_found")))
	return c.JSON(models.RowsResponse{Rows: rows})
}

// HandleGetRecord returns one record.
// @Summary Get Record
// @Tags stocktake
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 200 {object} records.Record "Record"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /stocktake/records/{barcode} [get]
func (h *Handler) HandleGetRecord(c *fiber.Ctx) error {
	r, err := h.service.Record(c.Params("barcode"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(r)
}

// HandleSetFound marks a known record found or not found.
// @Summary Set Found
// @Description Manually mark a known record. Unknown records are always found.
// @Tags stocktake
// @Accept json
// @Produce json
// @Param barcode path string true "Barcode"
// @Param request body models.FoundRequest true "Found flag"
// @Success 200 {object} records.Record "Updated record"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Unknown record"
// @Router /stocktake/records/{barcode}/found [put]
func (h *Handler) HandleSetFound(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	barcode := c.Params("barcode")

	var req models.FoundRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.service.SetFound(barcode, req.Found); err != nil {
		return fail(c, err)
	}
	l.Info("Record marked", zap.String("barcode", barcode), zap.Bool("found", req.Found))

	r, err := h.service.Record(barcode)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(r)
}

// HandleDeleteRecord deletes an unknown record.
// @Summary Delete Unknown Record
// @Description Remove a record that was created by a scan. Records loaded from a source cannot be deleted.
// @Tags stocktake
// @Produce json
// @Param barcode path string true "Barcode"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Known record"
// @Router /stocktake/records/{barcode} [delete]
func (h *Handler) HandleDeleteRecord(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	barcode := c.Params("barcode")

	if err := h.service.DeleteUnknown(barcode); err != nil {
		return fail(c, err)
	}
	l.Info("Unknown record deleted", zap.String("barcode", barcode))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSources returns the source registry.
// @Summary List Sources
// @Tags stocktake
// @Produce json
// @Success 200 {object} map[int]string "Source id to path"
// @Router /stocktake/sources [get]
func (h *Handler) HandleSources(c *fiber.Ctx) error {
	return c.JSON(h.service.Sources())
}

// HandleLoadSource loads a source file.
// @Summary Load Source
// @Description Load an .xlsx path or a sheets://<spreadsheet-id>/<range> source. Duplicate barcodes are reported in rejected.
// @Tags stocktake
// @Accept json
// @Produce json
// @Param request body models.LoadRequest true "Source and load mode"
// @Success 200 {object} models.LoadResponse "Load result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Source not found"
// @Failure 409 {object} map[string]string "Load cancelled"
// @Router /stocktake/sources [post]
func (h *Handler) HandleLoadSource(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.LoadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Path == "" {
		return badRequest(c, "path is required")
	}
	if req.Mode != "" {
		if _, err := session.ParseLoadMode(req.Mode); err != nil {
			return badRequest(c, err.Error())
		}
	}

	resp, err := h.service.LoadSource(c.Context(), req)
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			l.Error("Failed to load source", zap.String("path", req.Path), zap.Error(err))
		}
		return fail(c, err)
	}

	l.Info("Source loaded",
		zap.String("path", req.Path),
		zap.Int("inserted", resp.Inserted),
		zap.Int("rejected", len(resp.Rejected)),
	)
	return c.JSON(resp)
}

// HandleSave saves the stocktake now.
// @Summary Save
// @Tags stocktake
// @Produce json
// @Success 200 {object} models.SaveResponse "Save result"
// @Failure 409 {object} map[string]string "Nothing loaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stocktake/save [post]
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	resp, err := h.service.Save(c.Context())
	if err != nil {
		if statusFor(err) == fiber.StatusInternalServerError {
			l.Error("Save failed", zap.Error(err))
		}
		return fail(c, err)
	}
	return c.JSON(resp)
}

// HandleSnapshots lists the save files.
// @Summary List Snapshots
// @Tags stocktake
// @Produce json
// @Success 200 {array} models.SnapshotFile "Save files, newest first"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /stocktake/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	files, err := h.service.Snapshots()
	if err != nil {
		l.Error("Failed to list snapshots", zap.Error(err))
		return fail(c, err)
	}
	return c.JSON(files)
}

// HandleLoadSnapshot continues a saved stocktake.
// @Summary Load Snapshot
// @Description Replace the session with the contents of a save file from the save directory.
// @Tags stocktake
// @Accept json
// @Produce json
// @Param request body models.SnapshotLoadRequest true "Save file name"
// @Success 200 {object} session.State "Session state"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Corrupt snapshot"
// @Router /stocktake/snapshots/load [post]
func (h *Handler) HandleLoadSnapshot(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req models.SnapshotLoadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, err := h.service.LoadSnapshot(c.Context(), req.Name); err != nil {
		l.Warn("Snapshot load failed", zap.String("name", req.Name), zap.Error(err))
		return fail(c, err)
	}
	l.Info("Snapshot loaded", zap.String("name", req.Name))
	return c.JSON(h.service.State())
}

// HandleHide hides the records found so far.
// @Summary Hide Found
// @Tags stocktake
// @Produce json
// @Success 200 {object} session.State "Session state"
// @Router /stocktake/hide [post]
func (h *Handler) HandleHide(c *fiber.Ctx) error {
	return c.JSON(h.service.HideFound())
}

// HandleShow shows every record again.
// @Summary Show All
// @Tags stocktake
// @Produce json
// @Success 200 {object} session.State "Session state"
// @Router /stocktake/show [post]
func (h *Handler) HandleShow(c *fiber.Ctx) error {
	return c.JSON(h.service.ShowAll())
}

// HandleReset starts a new stocktake.
// @Summary New Stocktake
// @Description Drop all records and sources. Existing save files are kept.
// @Tags stocktake
// @Produce json
// @Success 200 {object} session.State "Session state"
// @Router /stocktake/reset [post]
func (h *Handler) HandleReset(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	h.service.Reset()
	l.Info("New stocktake started")
	return c.JSON(h.service.State())
}
