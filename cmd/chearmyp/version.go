package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chearmyp/internal/version"
)

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build metadata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := version.Get()
		switch strings.ToLower(versionFormat) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		case "pretty":
			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				return err
			}
			useColor, err := resolveColor(colorMode, os.Stdout)
			if err != nil {
				return err
			}
			prev := color.NoColor
			color.NoColor = !useColor
			defer func() { color.NoColor = prev }()
			_, err = fmt.Fprint(cmd.OutOrStdout(), info.Pretty())
			return err
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", versionFormat)
		}
	},
}
