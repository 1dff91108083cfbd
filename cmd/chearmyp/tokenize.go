package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"chearmyp/internal/diagfmt"
	"chearmyp/internal/driver"
	"chearmyp/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.chy",
	Short: "Classify the lines of an outline document",
	Long:  `Tokenize prints one token per line or fenced block, with its kind, depth and position`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	s, err := loadSettings(cmd, filePath)
	if err != nil {
		return err
	}
	sess, err := startSession(cmd, s)
	if err != nil {
		return err
	}
	defer sess.close()

	span := trace.Begin(trace.FromContext(sess.ctx), trace.ScopePass, "tokenize", sess.span.ID())
	started := time.Now()
	result, err := driver.Tokenize(filePath, s.maxDiagnostics)
	span.End("")
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if sess.timer != nil {
		sess.timer.Add("tokenize", time.Since(started))
	}

	// Выводим диагностику в stderr, если есть
	hadErrors, err := printDiagnostics(os.Stderr, s, result.File.Path, result.Bag, result.FileSet, true)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	}
	if err != nil {
		return err
	}
	sess.printTimings(os.Stderr)
	if hadErrors {
		return errHadErrors
	}
	return nil
}
