package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"stocktake/core/records"
	"stocktake/core/session"

	"go.uber.org/zap"
)

// SaveFiles lists the save directory.
type SaveFiles interface {
	Dir() string
	Latest() (session.SaveFile, bool, error)
}

// Console feeds input lines to a session.
type Console struct {
	session *session.Session
	saves   SaveFiles
	lines   *Lines
	out     io.Writer
	rng     *rand.Rand
	logger  *zap.Logger
}

// New creates a console. lines must be the reader the session's Prompter uses.
func New(sess *session.Session, saves SaveFiles, lines *Lines, out io.Writer, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{
		session: sess,
		saves:   saves,
		lines:   lines,
		out:     out,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:  logger,
	}
}

const help = `Every line is a scan. Commands:
  :load <path> [append|overwrite]  load a source (.xlsx or sheets://id/range)
  :continue [name]                 continue a save file (default newest)
  :save                            save now
  :hide / :show                    hide found reels / show all
  :rows                            list the visible records
  :groups                          list records grouped by material and width
  :report                          found, missing and unknown summary
  :found <barcode> / :unfound <barcode>
  :delete <barcode>                delete an unknown reel
  :simulate [n]                    scan n random barcodes
  :new                             start a new stocktake
  :state                           session state
  :quit                            save and exit`

// Run processes lines until :quit, end of input or ctx is done. On exit the
// stocktake is saved when data is loaded.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Scan barcodes, or :help for commands.")
	for {
		if err := ctx.Err(); err != nil {
			c.saveOnExit(context.Background())
			return err
		}
		line, ok := c.lines.Next()
		if !ok {
			break
		}
		quit, err := c.Execute(ctx, line)
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if quit {
			break
		}
	}
	c.saveOnExit(ctx)
	return c.lines.Err()
}

func (c *Console) saveOnExit(ctx context.Context) {
	report, err := c.session.Save(ctx)
	switch {
	case errors.Is(err, session.ErrNoDataLoaded):
	case err != nil:
		c.logger.Error("Final save failed", zap.Error(err))
	default:
		fmt.Fprintf(c.out, "Saved to %s\n", report.Path)
	}
}

// Execute handles one input line. quit is true for :quit.
func (c *Console) Execute(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		c.printOutcome(c.session.HandleScan(ctx, line))
		return false, nil
	}

	fields := strings.Fields(line[1:])
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return true, nil
	case "help", "h", "?":
		fmt.Fprintln(c.out, help)
	case "load":
		return false, c.load(ctx, args)
	case "continue":
		return false, c.continueSave(ctx, args)
	case "save":
		report, err := c.session.Save(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "Saved to %s\n", report.Path)
	case "hide":
		c.session.HideFound()
	case "show":
		c.session.ShowAll()
	case "rows":
		RenderRows(c.out, c.session.Rows(false))
	case "groups":
		RenderGroups(c.out, c.session.Groups(false))
	case "report":
		RenderReport(c.out, c.session.Report())
	case "found", "unfound":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: :%s <barcode>", cmd)
		}
		if err := c.session.SetFound(args[0], cmd == "found"); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "%s marked %s\n", args[0], cmd)
	case "delete":
		if len(args) != 1 {
			return false, errors.New("usage: :delete <barcode>")
		}
		if err := c.session.DeleteUnknown(args[0]); err != nil {
			return false, err
		}
		fmt.Fprintf(c.out, "%s deleted\n", args[0])
	case "simulate":
		return false, c.simulate(ctx, args)
	case "new":
		c.session.NewStocktake()
		fmt.Fprintln(c.out, "New stocktake started")
	case "state":
		st := c.session.State()
		fmt.Fprintf(c.out, "loaded=%t records=%d scans=%d hidden=%d save=%s\n",
			st.FileLoaded, st.RecordCount, st.ScanCount, st.HiddenCount, st.ActiveSavePath)
	default:
		return false, fmt.Errorf("unknown command :%s (try :help)", cmd)
	}
	return false, nil
}

func (c *Console) load(ctx context.Context, args []string) error {
	if len(args) == 0 || len(args) > 2 {
		return errors.New("usage: :load <path> [append|overwrite]")
	}
	var (
		res records.LoadResult
		err error
	)
	if len(args) == 2 {
		mode, perr := session.ParseLoadMode(args[1])
		if perr != nil {
			return perr
		}
		res, err = c.session.LoadSourceWithMode(ctx, args[0], mode)
	} else {
		res, err = c.session.LoadSource(ctx, args[0])
	}

	var dup *records.DuplicateBarcodeError
	if err != nil && !errors.As(err, &dup) {
		return err
	}
	fmt.Fprintf(c.out, "Loaded %d reels from %s (%d rejected)\n", res.Inserted, args[0], len(res.Rejected))
	return nil
}

func (c *Console) continueSave(ctx context.Context, args []string) error {
	var path string
	switch len(args) {
	case 0:
		latest, ok, err := c.saves.Latest()
		if err != nil {
			return err
		}
		if !ok {
			return errors.New("no save file to continue")
		}
		path = latest.Path
	case 1:
		path = args[0]
		if path == filepath.Base(path) {
			path = filepath.Join(c.saves.Dir(), path)
		}
	default:
		return errors.New("usage: :continue [name]")
	}
	if err := c.session.LoadSnapshot(ctx, path); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Continuing %s\n", path)
	return nil
}

func (c *Console) simulate(ctx context.Context, args []string) error {
	n := 1
	if len(args) == 1 {
		if _, err := fmt.Sscanf(args[0], "%d", &n); err != nil || n < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
	}
	for i := 0; i < n; i++ {
		out, err := c.session.SimulateScan(ctx, c.rng)
		if errors.Is(err, session.ErrAllFound) {
			return nil
		}
		if err != nil {
			return err
		}
		c.printOutcome(out)
	}
	return nil
}

func (c *Console) printOutcome(out session.ScanOutcome) {
	switch out.Result {
	case session.ResultRejected:
		fmt.Fprintf(c.out, "rejected %q: %v\n", out.Barcode, out.Reason)
	case session.ResultDuplicate:
		fmt.Fprintf(c.out, "duplicate %s\n", out.Barcode)
	}
	if out.Save != nil && out.Save.ArchiveErr != nil {
		fmt.Fprintf(c.out, "archive failed: %v\n", out.Save.ArchiveErr)
	}
}
