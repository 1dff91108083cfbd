package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"chearmyp/internal/diagfmt"
	"chearmyp/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <file.chy|directory>",
	Short: "Parse an outline document or directory into node forests",
	Long: `Parse builds the node forest of a document, or of every document under a
directory, and prints it. Structural problems are reported as warnings; the
forest is always produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	registerParseFlags(parseCmd)
}

func registerParseFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("format", "dump", "output format (dump|tree|json|yaml|msgpack)")
	flags.String("text", "borrowed", "payload representation (borrowed|owned)")
	flags.Bool("normalize", false, "NFC-normalize owned payloads")
	flags.String("ext", driver.DefaultExtension, "document extension for directories")
	flags.Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	flags.Bool("cache", false, "reuse parse results from the on-disk cache")
	flags.String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/chearmyp)")
	flags.String("ui", "auto", "progress UI for directories (auto|on|off)")
}

func runParse(cmd *cobra.Command, args []string) error {
	target := args[0]

	st, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	s, err := loadSettings(cmd, target)
	if err != nil {
		return err
	}
	switch s.format {
	case "dump", "tree", "json", "yaml", "msgpack":
	default:
		return fmt.Errorf("unknown format: %s", s.format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	sess, err := startSession(cmd, s)
	if err != nil {
		return err
	}
	defer sess.close()

	opts := s.driverOptions()
	opts.Timer = sess.timer
	if s.cache {
		if opts.Cache, err = openCache(s.cacheDir); err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	var results []*driver.ParseResult
	if st.IsDir() {
		if shouldUseTUI(mode) && !s.quiet {
			_, results, err = runParseDirWithUI(sess.ctx, "parse "+target, target, opts)
		} else {
			_, results, err = driver.ParseDir(sess.ctx, target, opts)
		}
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
	} else {
		res, err := driver.Parse(sess.ctx, target, opts)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		results = []*driver.ParseResult{res}
	}

	hadErrors := false
	for _, res := range results {
		failed, err := printDiagnostics(os.Stderr, s, res.Path, res.Bag, res.FileSet, res.File != nil)
		if err != nil {
			return err
		}
		hadErrors = hadErrors || failed
	}
	if err := writeForests(cmd.OutOrStdout(), s.format, results, st.IsDir()); err != nil {
		return err
	}
	sess.printTimings(os.Stderr)
	if hadErrors {
		return errHadErrors
	}
	return nil
}

// writeForests prints results in format. Directory runs get a per-file
// header in text formats and an array in JSON.
func writeForests(w io.Writer, format string, results []*driver.ParseResult, dir bool) error {
	outs := make([]diagfmt.ForestOutput, 0, len(results))
	for _, res := range results {
		if res.File == nil {
			continue
		}
		outs = append(outs, diagfmt.NewForestOutput(res.Path, res.Records(), res.Cached))
	}

	switch format {
	case "json":
		if !dir && len(outs) == 1 {
			return diagfmt.FormatForestJSON(w, outs[0])
		}
		return diagfmt.FormatForestsJSON(w, outs)
	case "yaml":
		return diagfmt.FormatForestYAML(w, outs...)
	case "msgpack":
		return diagfmt.FormatForestMsgpack(w, outs...)
	}

	for _, res := range results {
		if res.File == nil {
			continue
		}
		var err error
		switch format {
		case "tree":
			err = diagfmt.FormatTreePretty(w, res.Path, res.Records(), res.FileSet, res.File.ID)
		default:
			if dir {
				if _, err = fmt.Fprintf(w, "== %s\n", res.Path); err != nil {
					return err
				}
			}
			_, err = io.WriteString(w, res.Dump())
		}
		if err != nil {
			return err
		}
	}
	return nil
}
