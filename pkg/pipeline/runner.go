package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/keyplate/pkg/cache"
	"github.com/matzehuels/keyplate/pkg/errors"
	"github.com/matzehuels/keyplate/pkg/layout"
	"github.com/matzehuels/keyplate/pkg/observability"
	"github.com/matzehuels/keyplate/pkg/plate"
	"github.com/matzehuels/keyplate/pkg/plate/sink"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → place → compose → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()
	result := &Result{BuildID: uuid.NewString()}
	logger := r.Logger.With("build", result.BuildID)

	// Stage 1: Load
	source := opts.source()
	hooks.OnLoadStart(ctx, source)
	start := time.Now()
	raw, l, err := Load(opts)
	result.Stats.LoadTime = time.Since(start)
	hooks.OnLoadComplete(ctx, source, len(l.Rows), result.Stats.LoadTime, err)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.LayoutHash = cache.Hash(raw)
	result.Stats.Rows = len(l.Rows)

	logger.Info("loaded layout",
		"source", source,
		"rows", len(l.Rows),
		"duration", result.Stats.LoadTime)

	// Stage 2: Place
	start = time.Now()
	placed := layout.Place(l)
	result.Stats.PlaceTime = time.Since(start)
	result.Stats.Keys = len(placed.Placements)
	result.Stats.Decals = placed.Decals
	hooks.OnPlaceComplete(ctx, result.Stats.Keys, placed.Decals, result.Stats.PlaceTime)

	logger.Info("placed keys",
		"keys", result.Stats.Keys,
		"decals", placed.Decals,
		"duration", result.Stats.PlaceTime)

	// Stage 3: Compose
	po, warnings, err := opts.PlateOptions()
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	for _, w := range warnings {
		result.warn(logger, w)
	}

	hooks.OnComposeStart(ctx, result.Stats.Keys)
	start = time.Now()
	plates, err := plate.Compose(placed, po)
	result.Stats.ComposeTime = time.Since(start)
	var nparts int
	if plates != nil {
		nparts = len(plates.Parts())
	}
	hooks.OnComposeComplete(ctx, nparts, result.Stats.ComposeTime, err)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Plates = plates
	result.Stats.Width = plates.Dimensions.ExteriorWidth
	result.Stats.Height = plates.Dimensions.ExteriorHeight

	logger.Info("composed plates",
		"parts", nparts,
		"width", plates.Dimensions.ExteriorWidth,
		"height", plates.Dimensions.ExteriorHeight,
		"duration", result.Stats.ComposeTime)

	// Stage 4: Render
	formats, err := opts.ParseFormats()
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	hooks.OnRenderStart(ctx, names)
	start = time.Now()
	err = r.render(ctx, logger, result, po, formats, opts.Refresh)
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, names, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	logger.Info("rendered outputs",
		"formats", names,
		"artifacts", len(result.Artifacts),
		"cached", result.CacheInfo.Hits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// render fills result.Artifacts, serving what it can from the cache and
// rendering the rest.
func (r *Runner) render(ctx context.Context, logger *log.Logger, result *Result, po plate.Options, formats []sink.Format, refresh bool) error {
	cacheHooks := observability.Cache()
	js := jobs(result.Plates.Parts(), formats)
	keys := make([]string, len(js))
	found := make([][]byte, len(js))
	cached := make([]bool, len(js))
	skipped := make([]bool, len(js))

	var misses []job
	var missIdx []int
	for i, j := range js {
		keys[i] = r.Keyer.ArtifactKey(result.LayoutHash, ArtifactKeyOpts(po, j.part.Name, j.format))
		if !refresh {
			data, hit, err := r.Cache.Get(ctx, keys[i])
			if err != nil {
				logger.Debug("cache get failed", "key", keys[i], "error", err)
			}
			if err == nil && hit {
				cacheHooks.OnCacheHit(ctx, keys[i])
				found[i], cached[i] = data, true
				result.CacheInfo.Hits++
				continue
			}
		}
		cacheHooks.OnCacheMiss(ctx, keys[i])
		result.CacheInfo.Misses++
		misses = append(misses, j)
		missIdx = append(missIdx, i)
	}

	outs, err := renderJobs(ctx, misses)
	if err != nil {
		return err
	}
	for k, o := range outs {
		i := missIdx[k]
		if o.skipped != nil {
			skipped[i] = true
			result.warn(logger, o.skipped)
			continue
		}
		found[i] = o.data
		key, data := keys[i], o.data
		err := cache.RetryWithBackoff(ctx, func() error {
			return r.Cache.Set(ctx, key, data, cache.DefaultTTL)
		})
		if err != nil {
			logger.Warn("cache set failed", "key", key, "error", err)
			continue
		}
		cacheHooks.OnCacheSet(ctx, key, len(data))
	}

	for i, j := range js {
		if skipped[i] {
			continue
		}
		result.Artifacts = append(result.Artifacts, Artifact{
			Part:   j.part.Name,
			Format: j.format,
			Data:   found[i],
			Cached: cached[i],
		})
	}
	return nil
}

// warn logs a recoverable problem and records it on the result.
func (res *Result) warn(logger *log.Logger, err error) {
	msg := err.Error()
	if e, ok := err.(*errors.Error); ok {
		msg = e.Message
	}
	logger.Warn(msg, "code", errors.GetCode(err))
	res.Warnings = append(res.Warnings, msg)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
