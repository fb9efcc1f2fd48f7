package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the solve result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand. It removes
// every cached solve result and rendered artifact under the cache
// directory, then prunes the fan-out subdirectories left behind.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached solve results and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			var (
				entries int
				freed   int64
				subdirs []string
			)
			err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
				if err != nil || path == dir {
					return nil // Skip errors, continue walking
				}
				if d.IsDir() {
					subdirs = append(subdirs, path)
					return nil
				}
				if info, err := d.Info(); err == nil {
					if err := os.Remove(path); err == nil {
						entries++
						freed += info.Size()
					}
				}
				return nil
			})
			if err != nil {
				return err
			}

			// Deepest first so parents are empty by the time they go.
			for i := len(subdirs) - 1; i >= 0; i-- {
				_ = os.Remove(subdirs[i])
			}

			printSuccess("Cleared %d cached solve results and artifacts", entries)
			printDetail("Directory: %s", dir)
			printDetail("Reclaimed: %.1f KB", float64(freed)/1024)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the solve cache directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
