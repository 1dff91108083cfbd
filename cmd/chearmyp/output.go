package main

import (
	"fmt"
	"io"
	"strings"

	"chearmyp/internal/diag"
	"chearmyp/internal/diagfmt"
	"chearmyp/internal/source"
)

// printDiagnostics sorts bag and prints it in the configured form. loaded
// is false when the file never made it into fs. It reports whether any
// diagnostic was an error.
func printDiagnostics(w io.Writer, s *settings, path string, bag *diag.Bag, fs *source.FileSet, loaded bool) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	bag.Sort()
	if s.quiet {
		bag.Filter(diag.SevError)
	}
	if bag.Len() == 0 {
		return false, nil
	}

	switch s.diagFormat {
	case "json":
		if err := diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return false, err
		}
	case "short":
		if !loaded {
			for _, d := range bag.Items() {
				fmt.Fprintf(w, "%s %s %s %s\n", strings.ToLower(d.Severity.String()), d.Code.ID(), path, d.Message)
			}
			break
		}
		fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     s.color,
			Context:   2,
			ShowNotes: true,
		})
	}
	return bag.HasErrors(), nil
}
