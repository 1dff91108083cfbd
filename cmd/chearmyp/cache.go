package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chearmyp/internal/driver"
)

const cacheApp = "chearmyp"

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the parse cache",
}

var cacheDirCmd = &cobra.Command{
	Use:   "dir",
	Short: "Print the cache directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCacheFromFlags(cmd)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), c.Dir())
		return err
	},
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove every cached parse result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := openCacheFromFlags(cmd)
		if err != nil {
			return err
		}
		if err := c.Clean(); err != nil {
			return fmt.Errorf("failed to clean %q: %w", c.Dir(), err)
		}
		quiet, _ := cmd.Flags().GetBool("quiet")
		if !quiet {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleaned %s\n", c.Dir())
		}
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/chearmyp)")
	cacheCmd.AddCommand(cacheDirCmd)
	cacheCmd.AddCommand(cacheCleanCmd)
}

func openCacheFromFlags(cmd *cobra.Command) (*driver.DiskCache, error) {
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	return openCache(dir)
}

func openCache(dir string) (*driver.DiskCache, error) {
	if dir != "" {
		return driver.OpenDiskCacheAt(dir)
	}
	return driver.OpenDiskCache(cacheApp)
}
