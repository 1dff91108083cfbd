package diagfmt

import (
	"chearmyp/internal/diag"
	"chearmyp/internal/source"
)

// hasLocation reports whether d points into a loaded file. Load failures
// carry a zero span that must not be resolved against the set.
func hasLocation(d *diag.Diagnostic, fs *source.FileSet) bool {
	if fs == nil || d.Code == diag.IOLoadFileError {
		return false
	}
	return int(d.Primary.File) < fs.Len()
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeRelative:
		return f.FormatPath(mode.String(), fs.BaseDir())
	case PathModeAbsolute, PathModeBasename, PathModeAuto:
		return f.FormatPath(mode.String(), "")
	}
	return f.Path
}
