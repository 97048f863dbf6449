// Package pipeline runs the keyplate build: load → place → compose → render.
//
// The CLI and the HTTP server both drive builds through a [Runner], so a
// layout built from either surface produces byte-identical artifacts and
// shares one artifact cache.
//
// # Stages
//
//  1. Load: read the KLE document from a path or from inline text
//  2. Place: interpret the cursor language into key placements
//  3. Compose: build the top, bottom, holes and mid-layer trees
//  4. Render: emit every part in every requested format
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    LayoutPath:    "ansi-60.json",
//	    HorizontalPad: "5",
//	    VerticalPad:   "5",
//	    CornerRadius:  3,
//	    Formats:       []string{"scad", "dxf"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, a := range result.Artifacts {
//	    fmt.Println(a.Filename(), len(a.Data))
//	}
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/keyplate/pkg/cache"
	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/plate"
	"github.com/matzehuels/keyplate/pkg/plate/sink"
	"github.com/matzehuels/keyplate/pkg/plate/switchhole"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API and config files
// =============================================================================

const (
	// DefaultPad is the default horizontal and vertical padding.
	DefaultPad = "0"

	// DefaultMaxWall is the default mid-layer wall setting.
	DefaultMaxWall = "10"

	// DefaultHoleSegments is the default screw hole resolution.
	DefaultHoleSegments = plate.DefaultScrewSegments

	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = string(sink.FormatSCAD)
)

// DefaultStabs is the default stabilizer style.
const DefaultStabs = string(switchhole.DefaultStyle)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a build. It decodes from JSON
// request bodies and from TOML config files.
type Options struct {
	// Input. Layout holds inline KLE text and wins over LayoutPath.
	Layout     string `json:"layout,omitempty" toml:"-"`
	LayoutPath string `json:"-" toml:"layout"`

	// Composition
	Stabs         string  `json:"stabs,omitempty" toml:"stabs"`
	HorizontalPad string  `json:"horizontal_pad,omitempty" toml:"horizontal_pad"`
	VerticalPad   string  `json:"vertical_pad,omitempty" toml:"vertical_pad"`
	CornerRadius  float64 `json:"corner_radius,omitempty" toml:"corner_radius"`
	NumHoles      int     `json:"num_holes,omitempty" toml:"num_holes"`
	HoleDiameter  float64 `json:"hole_diameter,omitempty" toml:"hole_diameter"`
	HoleSegments  int     `json:"hole_segments,omitempty" toml:"hole_segments"`
	MaxWall       string  `json:"max_wall,omitempty" toml:"max_wall"`
	Sectioned     bool    `json:"sectioned,omitempty" toml:"sectioned"`
	ShowPoints    bool    `json:"show_points,omitempty" toml:"show_points"`

	// Render
	Formats []string `json:"formats,omitempty" toml:"formats"`

	// Refresh bypasses cached artifacts. Fresh renders are still stored.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BuildID identifies this run in logs and API responses.
	BuildID string

	// LayoutHash is the content hash of the raw layout document.
	LayoutHash string

	// Plates holds the composed construction trees.
	Plates *plate.Plates

	// Artifacts holds rendered outputs, part-major in output order.
	Artifacts []Artifact

	// Warnings collects recoverable problems, such as an unreadable max
	// wall setting.
	Warnings []string

	Stats     Stats
	CacheInfo CacheInfo
}

// Artifact is one part rendered in one format.
type Artifact struct {
	Part   string
	Format sink.Format
	Data   []byte
	Cached bool
}

// Filename returns "<part>.<ext>".
func (a Artifact) Filename() string {
	return a.Part + "." + a.Format.Ext()
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows        int
	Keys        int
	Decals      int
	Width       float64
	Height      float64
	LoadTime    time.Duration
	PlaceTime   time.Duration
	ComposeTime time.Duration
	RenderTime  time.Duration
}

// CacheInfo counts artifact cache lookups.
type CacheInfo struct {
	Hits   int
	Misses int
}

// AllCached reports whether every artifact came from the cache.
func (c CacheInfo) AllCached() bool {
	return c.Misses == 0 && c.Hits > 0
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults applies defaults and checks every option.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Stabs == "" {
		o.Stabs = DefaultStabs
	}
	if o.HorizontalPad == "" {
		o.HorizontalPad = DefaultPad
	}
	if o.VerticalPad == "" {
		o.VerticalPad = DefaultPad
	}
	if o.HoleSegments == 0 {
		o.HoleSegments = DefaultHoleSegments
	}
	if o.MaxWall == "" {
		o.MaxWall = DefaultMaxWall
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate checks the options without changing them. An unreadable max
// wall is not an error; see [Options.PlateOptions].
func (o *Options) Validate() error {
	if o.Layout == "" && o.LayoutPath == "" {
		return errors.New(errors.ErrCodeInvalidInput, "layout or layout path is required")
	}
	if _, err := o.ParseFormats(); err != nil {
		return err
	}
	_, _, err := o.PlateOptions()
	return err
}

// ParseFormats returns the requested formats, deduplicated.
func (o *Options) ParseFormats() ([]sink.Format, error) {
	return sink.ParseFormats(strings.Join(o.Formats, ","))
}

// PlateOptions converts o to composition options. A max wall that is
// neither a number nor a pad keyword falls back to the default and is
// returned as a warning.
func (o *Options) PlateOptions() (plate.Options, []error, error) {
	style, err := switchhole.ParseStyle(o.Stabs)
	if err != nil {
		return plate.Options{}, nil, err
	}
	pad, err := plate.ParsePadding(o.HorizontalPad, o.VerticalPad)
	if err != nil {
		return plate.Options{}, nil, err
	}

	var warnings []error
	wall, err := plate.ParseMaxWall(o.MaxWall)
	if err != nil {
		if !errors.Is(err, errors.ErrCodeInvalidWall) {
			return plate.Options{}, nil, err
		}
		warnings = append(warnings, err)
	}

	po := plate.Options{
		Style:         style,
		Padding:       pad,
		CornerRadius:  o.CornerRadius,
		ScrewHoles:    o.NumHoles,
		ScrewDiameter: o.HoleDiameter,
		ScrewSegments: o.HoleSegments,
		MaxWall:       wall,
		Sectioned:     o.Sectioned,
		ShowPoints:    o.ShowPoints,
	}
	if err := po.Validate(); err != nil {
		return plate.Options{}, nil, err
	}
	return po, warnings, nil
}

// source names the layout input for logs.
func (o *Options) source() string {
	if o.Layout != "" {
		return "inline"
	}
	return o.LayoutPath
}

// ArtifactKeyOpts returns the cache key options for one artifact. The
// composition options are hashed after parsing, so "5" and "5,5" padding
// share cache entries.
func ArtifactKeyOpts(po plate.Options, part string, format sink.Format) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		OptionsHash: cache.HashValue(po),
		Part:        part,
		Format:      string(format),
	}
}
