// Package cli implements the keyplate command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/keyplate/pkg/buildinfo"
	"github.com/matzehuels/keyplate/pkg/cache"
	"github.com/matzehuels/keyplate/pkg/pipeline"
)

const (
	appName    = "keyplate"
	configFile = appName + ".toml"
)

// Log levels accepted by [New] and [CLI.SetLogLevel].
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// CLI carries the logger every command writes to.
type CLI struct {
	Logger *log.Logger
}

// New returns a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand returns the keyplate command tree.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Keyplate turns keyboard layouts into plate geometry",
		Long: `Keyplate reads a keyboard-layout-editor.com layout and builds the plates of a
sandwich-style keyboard case: a switch plate, a bottom plate and a mid-layer
frame, emitted as OpenSCAD, JSON, DXF or construction-tree diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(
		c.buildCommand(),
		c.inspectCommand(),
		c.serveCommand(),
		c.cacheCommand(),
		c.completionCommand(),
	)

	return root
}

// newRunner creates a pipeline runner for CLI use. target selects a cache
// backend by URL; empty means the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, target string) (*pipeline.Runner, error) {
	store, err := newCache(ctx, noCache, target)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

func newCache(ctx context.Context, noCache bool, target string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if target != "" {
		return cache.Open(ctx, target)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/keyplate/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
