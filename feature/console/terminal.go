package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"stocktake/core/session"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Lines reads input one line at a time. The console and the prompter share it
// so a prompt consumes the line typed after the question.
type Lines struct {
	sc *bufio.Scanner
}

// NewLines wraps r.
func NewLines(r io.Reader) *Lines {
	return &Lines{sc: bufio.NewScanner(r)}
}

// Next returns the next line without its line ending. ok is false at end of input.
func (l *Lines) Next() (line string, ok bool) {
	if !l.sc.Scan() {
		return "", false
	}
	return strings.TrimRight(l.sc.Text(), "\r"), true
}

// Err returns the first read error.
func (l *Lines) Err() error {
	return l.sc.Err()
}

// View prints session output to a writer.
type View struct {
	out      io.Writer
	colorize bool
	// Tables turns full record tables on. Without it only counts are printed.
	Tables bool
}

// NewView creates a view. colorize adds ANSI colors to highlights.
func NewView(out io.Writer, colorize bool) *View {
	return &View{out: out, colorize: colorize}
}

func (v *View) DisplayRecords(rows [][]string) {
	if v.Tables {
		RenderRows(v.out, rows)
		return
	}
	fmt.Fprintf(v.out, "%d records shown\n", max(len(rows)-1, 0))
}

func (v *View) RecordFound(barcode string, kind session.RecordKind) {
	line := fmt.Sprintf("found %s (%s)", barcode, kind)
	if v.colorize {
		color := text.FgGreen
		if kind == session.KindUnknown {
			color = text.FgYellow
		}
		line = color.Sprint(line)
	}
	fmt.Fprintln(v.out, line)
}

func (v *View) DisplayMessage(title, message string) {
	line := fmt.Sprintf("[%s] %s", title, message)
	if v.colorize {
		line = text.FgHiRed.Sprint(line)
	}
	fmt.Fprintln(v.out, line)
}

// Bell rings the terminal bell: once for an unknown reel, twice for a
// duplicate, three times for an invalid barcode.
type Bell struct {
	out io.Writer
}

// NewBell creates a notifier writing to out.
func NewBell(out io.Writer) *Bell {
	return &Bell{out: out}
}

func (b *Bell) Notify(event session.Event) {
	var n int
	switch event {
	case session.EventUnknownFound:
		n = 1
	case session.EventDuplicate:
		n = 2
	case session.EventInvalidBarcode:
		n = 3
	}
	if n > 0 {
		fmt.Fprint(b.out, strings.Repeat("\a", n))
	}
}

// Prompter asks the operator on the terminal. When input is not interactive
// every question is answered by the fallback.
type Prompter struct {
	lines       *Lines
	out         io.Writer
	interactive bool
	fallback    session.StaticPrompter
}

// NewPrompter creates a prompter reading answers from lines.
func NewPrompter(lines *Lines, out io.Writer, interactive bool, fallback session.StaticPrompter) *Prompter {
	return &Prompter{lines: lines, out: out, interactive: interactive, fallback: fallback}
}

func (p *Prompter) ConfirmBarcode(barcode string, minLength int) bool {
	if !p.interactive {
		return p.fallback.ConfirmBarcode(barcode, minLength)
	}
	return p.yesNo(fmt.Sprintf("Barcode %s is shorter than %d characters. Accept it?", barcode, minLength))
}

func (p *Prompter) ChooseLoadMode(path string) session.LoadMode {
	if !p.interactive {
		return p.fallback.ChooseLoadMode(path)
	}
	fmt.Fprintf(p.out, "Data is already loaded. Add %s to it (a), replace it (o) or cancel (c)? ", path)
	answer, ok := p.lines.Next()
	if !ok {
		return session.LoadCancel
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "a", "append":
		return session.LoadAppend
	case "o", "overwrite":
		return session.LoadOverwrite
	default:
		return session.LoadCancel
	}
}

func (p *Prompter) OfferFreshStart(err error) bool {
	if !p.interactive {
		return p.fallback.OfferFreshStart(err)
	}
	return p.yesNo("The saved stocktake could not be loaded. Start a new stocktake?")
}

func (p *Prompter) yesNo(question string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", question)
	answer, ok := p.lines.Next()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
