package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"chearmyp/internal/diag"
	"chearmyp/internal/source"
)

type palette struct {
	sev   map[diag.Severity]*color.Color
	code  *color.Color
	gut   *color.Color
	caret *color.Color
	note  *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		sev: map[diag.Severity]*color.Color{
			diag.SevError:   color.New(color.FgRed, color.Bold),
			diag.SevWarning: color.New(color.FgYellow, color.Bold),
			diag.SevInfo:    color.New(color.FgCyan, color.Bold),
		},
		code:  color.New(color.Bold),
		gut:   color.New(color.FgBlue),
		caret: color.New(color.FgGreen, color.Bold),
		note:  color.New(color.FgCyan),
	}
	all := []*color.Color{p.code, p.gut, p.caret, p.note}
	for _, c := range p.sev {
		all = append(all, c)
	}
	for _, c := range all {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sev := p.sev[d.Severity]
		if sev == nil {
			sev = p.code
		}
		if !hasLocation(d, fs) {
			fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
			continue
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			formatPath(f, fs, opts.PathMode), start.Line, start.Col,
			sev.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		writeSnippet(w, fs, d.Primary, uint32(max(opts.Context, 0)), tab, p)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", p.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode), ns.Line, ns.Col, n.Msg)
		}
	}
}

// writeSnippet prints up to context lines before the primary line, the line
// itself and a caret run under the part of the span on that line.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context uint32, tab int, p palette) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	first := uint32(1)
	if start.Line > context {
		first = start.Line - context
	}
	gutterWidth := len(fmt.Sprint(start.Line))

	for ln := first; ln <= start.Line; ln++ {
		text := expandTabs(f.GetLine(ln), tab)
		fmt.Fprintf(w, " %s %s\n", p.gut.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(start.Line)
	from := clampCol(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = clampCol(int(end.Col)-1, len(line))
	}
	pad := runewidth.StringWidth(expandTabs(line[:from], tab))
	width := runewidth.StringWidth(expandTabs(line[from:to], tab))
	marker := "^"
	if width > 1 {
		marker += strings.Repeat("~", width-1)
	}
	fmt.Fprintf(w, " %s %s%s\n", p.gut.Sprint(strings.Repeat(" ", gutterWidth)+" |"),
		strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func clampCol(col, n int) int {
	return min(max(col, 0), n)
}

func expandTabs(s string, width int) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}
