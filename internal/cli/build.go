package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/keyplate/pkg/api"
	"github.com/matzehuels/keyplate/pkg/client"
	"github.com/matzehuels/keyplate/pkg/errors"
	kpio "github.com/matzehuels/keyplate/pkg/io"
	"github.com/matzehuels/keyplate/pkg/observability"
	"github.com/matzehuels/keyplate/pkg/pipeline"
)

// buildFlags holds the command-line flags for the build command.
type buildFlags struct {
	config   string
	layout   string
	output   string
	manifest bool

	stabs        string
	hp, vp       string
	cornerRadius float64
	holes        int
	holeDiameter float64
	holeSegments int
	maxWall      string
	sectioned    bool
	showPoints   bool
	formats      []string

	noCache  bool
	refresh  bool
	cacheURL string
	remote   string
}

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var f buildFlags

	cmd := &cobra.Command{
		Use:   "build [layout.json]",
		Short: "Build plate geometry from a KLE layout",
		Long: `Build reads a keyboard-layout-editor.com raw-data export and writes one file
per plate and format into the output directory:

  top        switch plate with cutouts and stabilizers
  bottom     solid bottom plate
  holes      the cutouts on their own
  mid_closed mid-layer frame
  mid_sectioned  mid-layer split into four nested quadrants (--sectioned)

Options can also come from a TOML file (--config, or ./keyplate.toml when
present). Flags override file values. Use "-" to read the layout from stdin.`,
		Example: `  keyplate build ansi-60.json --hp 5 --vp 5 -c 3
  keyplate build ansi-60.json -n 6 --hd 2.2 --max-wall min_pad -f scad,dxf -o out/
  pbpaste | keyplate build - --sectioned`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.layout = args[0]
			}
			opts, err := buildOptions(cmd.Flags(), &f, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), opts, &f)
		},
	}

	fs := cmd.Flags()
	registerPlateFlags(cmd, &f)
	fs.StringVarP(&f.output, "output", "o", ".", "directory for generated files")
	fs.BoolVar(&f.manifest, "manifest", false, "also write manifest.json describing the build")
	fs.StringSliceVarP(&f.formats, "format", "f", []string{pipeline.DefaultFormat}, "output formats: scad, json, dxf, dot, tree")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached artifacts and render again")
	fs.StringVar(&f.cacheURL, "cache", "", "cache backend URL (redis://, mongodb://, file://); default is the local cache dir")
	fs.StringVar(&f.remote, "remote", "", "build on a keyplate server at this URL instead of locally")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"scad", "json", "dxf", "dot", "tree"}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// registerPlateFlags adds the layout and composition flags shared by
// build and inspect.
func registerPlateFlags(cmd *cobra.Command, f *buildFlags) {
	fs := cmd.Flags()
	fs.StringVar(&f.config, "config", "", "TOML config file (default ./"+configFile+" if present)")
	fs.StringVarP(&f.layout, "json", "j", "", "KLE raw-data file to load (alternative to the positional argument)")
	fs.StringVarP(&f.stabs, "stabs", "s", pipeline.DefaultStabs, "stabilizer style: both, cherry, costar")
	fs.StringVar(&f.hp, "hp", pipeline.DefaultPad, `horizontal padding per side, or "left,right"`)
	fs.StringVar(&f.vp, "vp", pipeline.DefaultPad, `vertical padding per side, or "top,bottom"`)
	fs.Float64VarP(&f.cornerRadius, "corner-radius", "c", 0, "corner radius")
	fs.IntVarP(&f.holes, "holes", "n", 0, "number of screw holes (even, more than 3)")
	fs.Float64Var(&f.holeDiameter, "hd", 0, "screw hole diameter")
	fs.IntVar(&f.holeSegments, "hole-segments", pipeline.DefaultHoleSegments, "polygon segments per screw hole")
	fs.StringVar(&f.maxWall, "max-wall", pipeline.DefaultMaxWall, "mid-layer wall thickness, min_pad or max_pad")
	fs.BoolVar(&f.sectioned, "sectioned", false, "also emit the mid-layer split into nested quadrants")
	fs.BoolVar(&f.showPoints, "show-points", false, "mark key corners on the top plate")

	_ = cmd.RegisterFlagCompletionFunc("stabs", cobra.FixedCompletions(
		[]string{"both", "cherry", "costar"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("max-wall", cobra.FixedCompletions(
		[]string{"min_pad", "max_pad"}, cobra.ShellCompDirectiveNoFileComp))
}

// buildOptions merges the config file and the flags that were set
// explicitly. stdin is read when the layout is "-".
func buildOptions(fs *pflag.FlagSet, f *buildFlags, stdin io.Reader) (pipeline.Options, error) {
	var opts pipeline.Options
	path := f.config
	if path == "" {
		if _, err := os.Stat(configFile); err == nil {
			path = configFile
		}
	}
	if path != "" {
		cfg, err := pipeline.LoadConfig(path)
		if err != nil {
			return opts, err
		}
		opts = cfg
	}

	switch {
	case f.layout == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeLoad, err, "read stdin")
		}
		opts.Layout = string(data)
	case f.layout != "":
		opts.LayoutPath = f.layout
	}
	if opts.Layout == "" && opts.LayoutPath == "" {
		return opts, errors.New(errors.ErrCodeInvalidInput, "no layout given (pass a file, -j, or layout in the config)")
	}

	set := func(name string, apply func()) {
		if fs.Changed(name) || path == "" {
			apply()
		}
	}
	set("stabs", func() { opts.Stabs = f.stabs })
	set("hp", func() { opts.HorizontalPad = f.hp })
	set("vp", func() { opts.VerticalPad = f.vp })
	set("corner-radius", func() { opts.CornerRadius = f.cornerRadius })
	set("holes", func() { opts.NumHoles = f.holes })
	set("hd", func() { opts.HoleDiameter = f.holeDiameter })
	set("hole-segments", func() { opts.HoleSegments = f.holeSegments })
	set("max-wall", func() { opts.MaxWall = f.maxWall })
	set("sectioned", func() { opts.Sectioned = f.sectioned })
	set("show-points", func() { opts.ShowPoints = f.showPoints })
	set("format", func() { opts.Formats = f.formats })
	opts.Refresh = f.refresh

	return opts, nil
}

// buildOutput is a finished build from either the local pipeline or a
// remote server.
type buildOutput struct {
	BuildID    string
	LayoutHash string
	Keys       int
	Width      float64
	Height     float64
	Files      []kpio.File
	Cached     bool
	Warnings   []string
}

func outputFromResult(res *pipeline.Result) buildOutput {
	out := buildOutput{
		BuildID:    res.BuildID,
		LayoutHash: res.LayoutHash,
		Keys:       res.Stats.Keys,
		Width:      res.Stats.Width,
		Height:     res.Stats.Height,
		Files:      make([]kpio.File, len(res.Artifacts)),
		Cached:     res.CacheInfo.AllCached(),
		Warnings:   res.Warnings,
	}
	for i, a := range res.Artifacts {
		out.Files[i] = kpio.File{Name: a.Filename(), Data: a.Data}
	}
	return out
}

func outputFromResponse(resp *api.BuildResponse) buildOutput {
	out := buildOutput{
		BuildID:    resp.BuildID,
		LayoutHash: resp.LayoutHash,
		Keys:       resp.Keys,
		Width:      resp.Width,
		Height:     resp.Height,
		Files:      make([]kpio.File, len(resp.Artifacts)),
		Cached:     resp.AllCached(),
		Warnings:   resp.Warnings,
	}
	for i, a := range resp.Artifacts {
		out.Files[i] = kpio.File{Name: a.Filename, Data: []byte(a.Data)}
	}
	return out
}

// runBuild executes the pipeline locally, or on a server with --remote,
// and writes the artifacts.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options, f *buildFlags) error {
	if f.remote != "" {
		return c.runRemoteBuild(ctx, opts, f)
	}

	runner, err := c.newRunner(ctx, f.noCache, f.cacheURL)
	if err != nil {
		return err
	}
	defer runner.Close()

	// Stage logs would tear through the spinner line, so the spinner only
	// runs when nobody asked for them.
	if c.Logger.GetLevel() > LogDebug && isatty.IsTerminal(os.Stderr.Fd()) {
		spinner := newSpinnerWithContext(ctx, "Building plates")
		observability.SetPipelineHooks(spinnerHooks{s: spinner})
		defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})
		quiet := c.Logger.With()
		quiet.SetLevel(LogWarn)
		runner.Logger = quiet
		spinner.Start()
		defer spinner.Stop()
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	return c.writeOutput(outputFromResult(result), f)
}

// runRemoteBuild sends the layout to a keyplate server.
func (c *CLI) runRemoteBuild(ctx context.Context, opts pipeline.Options, f *buildFlags) error {
	if opts.Layout == "" {
		data, _, err := kpio.ImportLayout(opts.LayoutPath)
		if err != nil {
			return err
		}
		opts.Layout = string(data)
		opts.LayoutPath = ""
	}
	opts.Refresh = f.refresh

	c.Logger.Debug("building remotely", "server", f.remote)
	resp, err := client.New(f.remote).Build(ctx, opts)
	if err != nil {
		return err
	}
	return c.writeOutput(outputFromResponse(resp), f)
}

// writeOutput exports the files and prints a summary.
func (c *CLI) writeOutput(out buildOutput, f *buildFlags) error {
	prog := newProgress(c.Logger)

	paths, err := kpio.ExportFiles(f.output, out.Files)
	if err != nil {
		return err
	}

	if f.manifest {
		names := make([]string, len(out.Files))
		for i, file := range out.Files {
			names[i] = file.Name
		}
		var buf bytes.Buffer
		err := kpio.WriteManifest(&buf, kpio.Manifest{
			BuildID:    out.BuildID,
			LayoutHash: out.LayoutHash,
			Width:      out.Width,
			Height:     out.Height,
			Files:      names,
			Warnings:   out.Warnings,
		})
		if err != nil {
			return err
		}
		mp, err := kpio.ExportFiles(f.output, []kpio.File{{Name: "manifest.json", Data: buf.Bytes()}})
		if err != nil {
			return err
		}
		paths = append(paths, mp...)
	}
	c.Logger.Debug("exported artifacts", "build", out.BuildID, "dir", f.output)
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	for _, w := range out.Warnings {
		printWarning("%s", w)
	}
	printSuccess("Built %s", StyleHighlight.Render(shortID(out.BuildID)))
	printStats(out.Keys, len(out.Files), out.Width, out.Height, out.Cached)

	preview := ""
	for _, p := range paths {
		printFile(p)
		if filepath.Base(p) == "top.scad" {
			preview = p
		}
	}
	if preview != "" {
		printNextStep("Preview", "openscad "+preview)
	}
	return nil
}

// shortID returns the first block of a UUID.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
