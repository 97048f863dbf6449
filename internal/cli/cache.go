package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/keyplate/pkg/cache"
)

// cacheCommand groups the local cache subcommands. Shared backends
// (redis, mongodb) expire entries on their own and are not managed here.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the local artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Delete every cached artifact",
			Args:  cobra.NoArgs,
			RunE:  func(cmd *cobra.Command, args []string) error { return clearCache() },
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("cache dir: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), dir)
				return err
			},
		},
	)
	return cmd
}

func clearCache() error {
	dir, err := cacheDir()
	if err != nil {
		return fmt.Errorf("cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Nothing cached yet")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return err
	}
	n, err := fc.Clear()
	if err != nil {
		return err
	}
	printSuccess("Removed %d artifacts from %s", n, dir)
	return nil
}
