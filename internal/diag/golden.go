package diag

import (
	"fmt"
	"sort"
	"strings"

	"chearmyp/internal/source"
)

type shortDiagnostic struct {
	severity string
	code     string
	path     string
	line     uint32
	column   uint32
	message  string
}

// FormatShortDiagnostics renders one line per diagnostic (notes included when
// asked), sorted by position. The result is stable and used for golden tests
// and the CLI's short output.
func FormatShortDiagnostics(diags []*Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for _, d := range diags {
		if d == nil {
			continue
		}
		rendered = append(rendered, render(fs, strings.ToLower(d.Severity.String()), d.Code, d.Primary, d.Message))
		if includeNotes {
			for _, n := range d.Notes {
				rendered = append(rendered, render(fs, "note", d.Code, n.Span, n.Msg))
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.path != dj.path {
			return di.path < dj.path
		}
		if di.line != dj.line {
			return di.line < dj.line
		}
		return di.column < dj.column
	})

	lines := make([]string, len(rendered))
	for i, r := range rendered {
		lines[i] = fmt.Sprintf("%s %s %s:%d:%d %s", r.severity, r.code, r.path, r.line, r.column, r.message)
	}
	return strings.Join(lines, "\n")
}

func render(fs *source.FileSet, sev string, code Code, sp source.Span, msg string) shortDiagnostic {
	start, _ := fs.Resolve(sp)
	file := fs.Get(sp.File)
	return shortDiagnostic{
		severity: sev,
		code:     code.ID(),
		path:     file.FormatPath("relative", fs.BaseDir()),
		line:     start.Line,
		column:   start.Col,
		// многострочные сообщения сплющиваем в одну строку
		message: strings.Join(strings.Fields(msg), " "),
	}
}
