package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chearmyp/internal/version"
)

// errHadErrors ends a run that printed error diagnostics.
var errHadErrors = errors.New("finished with errors")

var rootCmd = &cobra.Command{
	Use:           "chearmyp",
	Short:         "Outline document lexer and parser",
	Long:          `chearmyp reads tab-indented outline documents and prints their tokens or node forests`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	registerGlobalFlags(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errHadErrors) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// registerGlobalFlags объявляет флаги, общие для всех команд
func registerGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0=unlimited)")
	flags.String("diag-format", "pretty", "diagnostics format on stderr (pretty|short|json)")
	flags.Bool("no-manifest", false, "ignore "+manifestHint)

	flags.String("trace", "", "trace output file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0=off)")

	flags.String("cpu-profile", "", "write CPU profile to file")
	flags.String("mem-profile", "", "write heap profile to file")
	flags.String("runtime-trace", "", "write Go runtime trace to file")
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
