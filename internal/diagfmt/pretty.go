package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ssc/internal/diag"
	"ssc/internal/source"
)

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	message, caret        *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:     color.New(color.FgRed, color.Bold),
		warn:    color.New(color.FgYellow, color.Bold),
		info:    color.New(color.FgCyan, color.Bold),
		note:    color.New(color.FgCyan),
		code:    color.New(color.FgMagenta),
		path:    color.New(color.Bold),
		gutter:  color.New(color.FgBlue),
		message: color.New(color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.message, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, d, fs, opts, p)
	}
}

func writeDiagnostic(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		p.path.Sprint(location(d.Primary, fs, opts.PathMode)),
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		p.message.Sprint(d.Message),
	)
	writeExcerpt(w, d.Primary, fs, opts, p, p.caret)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		fmt.Fprintf(w, "  %s: %s: %s\n",
			p.note.Sprint("note"),
			p.path.Sprint(location(n.Span, fs, opts.PathMode)),
			n.Msg,
		)
		if n.Span != d.Primary {
			writeExcerpt(w, n.Span, fs, PrettyOpts{Width: opts.Width}, p, p.note)
		}
	}
}

func location(span source.Span, fs *source.FileSet, mode PathMode) string {
	if fs == nil || int(span.File) >= fs.Len() {
		return fmt.Sprintf("<unknown>:%d", span.Start)
	}
	start, _ := fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(fs.Get(span.File), fs, mode), start.Line, start.Col)
}

func writeExcerpt(w io.Writer, span source.Span, fs *source.FileSet, opts PrettyOpts, p palette, caret *color.Color) {
	if fs == nil || int(span.File) >= fs.Len() {
		return
	}
	f := fs.Get(span.File)
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)

	lastLine := uint32(max(f.LineCount(), 1))
	ctx := uint32(max(opts.Context, 0))
	from := uint32(1)
	if start.Line > ctx {
		from = start.Line - ctx
	}
	from = max(from, 1)
	to := min(start.Line+ctx, lastLine)
	gutter := len(strconv.FormatUint(uint64(to), 10))

	for ln := from; ln <= to; ln++ {
		line := f.Line(int(ln))
		fmt.Fprintf(w, " %s %s %s\n",
			p.gutter.Sprint(fmt.Sprintf("%*d", gutter, ln)),
			p.gutter.Sprint("|"),
			clip(line, opts.Width),
		)
		if ln != start.Line {
			continue
		}
		endCol := uint32(len(line)) + 1
		if end.Line == start.Line {
			endCol = min(end.Col, endCol)
		}
		pad, marks := underline(line, start.Col, endCol)
		fmt.Fprintf(w, " %s %s %s%s\n",
			strings.Repeat(" ", gutter),
			p.gutter.Sprint("|"),
			pad,
			caret.Sprint(marks),
		)
	}
}

// underline builds the padding and ^~~~ marks for the byte columns
// [startCol, endCol) of line; both columns are 1-based.
func underline(line string, startCol, endCol uint32) (string, string) {
	from := min(int(startCol)-1, len(line))
	to := min(max(int(endCol)-1, from), len(line))

	var pad strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		pad.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	width := max(runewidth.StringWidth(line[from:to]), 1)
	return pad.String(), "^" + strings.Repeat("~", width-1)
}

func clip(line string, width uint8) string {
	if width == 0 || runewidth.StringWidth(line) <= int(width) {
		return line
	}
	return runewidth.Truncate(line, int(width), "…")
}
