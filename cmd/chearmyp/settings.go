package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chearmyp/internal/driver"
	"chearmyp/internal/project"
)

var manifestHint = project.ManifestName

// settings are the effective options of one command: explicit flags win
// over the manifest, the manifest wins over flag defaults.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	format         string

	text      driver.TextMode
	normalize bool
	extension string
	jobs      int
	cache     bool
	cacheDir  string

	trace    project.TraceConfig
	manifest *project.Manifest
}

// loadSettings reads flags and, unless --no-manifest, the manifest found
// above target.
func loadSettings(cmd *cobra.Command, target string) (*settings, error) {
	flags := cmd.Flags()
	s := &settings{}

	noManifest, err := flags.GetBool("no-manifest")
	if err != nil {
		return nil, err
	}
	var cfg project.Config
	if !noManifest {
		start := target
		if info, statErr := os.Stat(target); statErr == nil && !info.IsDir() {
			start = filepath.Dir(target)
		}
		m, ok, err := project.LoadManifest(start)
		if err != nil {
			return nil, err
		}
		if ok {
			s.manifest = m
			cfg = m.Config
		}
	}

	colorMode, err := stringSetting(cmd, "color", cfg.Output.Color)
	if err != nil {
		return nil, err
	}
	if s.color, err = resolveColor(colorMode, os.Stderr); err != nil {
		return nil, err
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, err
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return nil, err
	}
	if s.maxDiagnostics, err = intSetting(cmd, "max-diagnostics", cfg.Output.MaxDiagnostics); err != nil {
		return nil, err
	}
	if s.diagFormat, err = stringSetting(cmd, "diag-format", cfg.Output.Diagnostics); err != nil {
		return nil, err
	}
	switch s.diagFormat {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", s.diagFormat)
	}

	// parse-only флаги; у tokenize их нет
	if flags.Lookup("text") != nil {
		if s.format, err = stringSetting(cmd, "format", cfg.Output.Format); err != nil {
			return nil, err
		}
		text, err := stringSetting(cmd, "text", cfg.Parse.Text)
		if err != nil {
			return nil, err
		}
		if s.text, err = parseTextMode(text); err != nil {
			return nil, err
		}
		if s.normalize, err = boolSetting(cmd, "normalize", cfg.Parse.Normalize); err != nil {
			return nil, err
		}
		if s.extension, err = stringSetting(cmd, "ext", cfg.Parse.Extension); err != nil {
			return nil, err
		}
		if s.jobs, err = intSetting(cmd, "jobs", cfg.Parse.Jobs); err != nil {
			return nil, err
		}
		if s.cache, err = boolSetting(cmd, "cache", cfg.Parse.Cache); err != nil {
			return nil, err
		}
		if s.cacheDir, err = flags.GetString("cache-dir"); err != nil {
			return nil, err
		}
	}

	if s.trace.Level, err = stringSetting(cmd, "trace-level", cfg.Trace.Level); err != nil {
		return nil, err
	}
	if s.trace.Mode, err = stringSetting(cmd, "trace-mode", cfg.Trace.Mode); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Text:           s.text,
		Normalize:      s.normalize,
		Extension:      s.extension,
		Jobs:           s.jobs,
	}
}

func stringSetting(cmd *cobra.Command, name, fromManifest string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fromManifest != "" {
		return fromManifest, nil
	}
	return v, nil
}

func intSetting(cmd *cobra.Command, name string, fromManifest int) (int, error) {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) && fromManifest != 0 {
		return fromManifest, nil
	}
	return v, nil
}

func boolSetting(cmd *cobra.Command, name string, fromManifest bool) (bool, error) {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get %s flag: %w", name, err)
	}
	if !cmd.Flags().Changed(name) {
		return v || fromManifest, nil
	}
	return v, nil
}

func resolveColor(mode string, f *os.File) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "", "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

func parseTextMode(s string) (driver.TextMode, error) {
	switch strings.ToLower(s) {
	case "", "borrowed":
		return driver.TextBorrowed, nil
	case "owned":
		return driver.TextOwned, nil
	default:
		return 0, fmt.Errorf("invalid --text value %q (expected borrowed|owned)", s)
	}
}
