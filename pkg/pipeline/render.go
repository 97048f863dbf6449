package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/keyplate/pkg/plate"
	"github.com/matzehuels/keyplate/pkg/plate/sink"
)

// job is one part to render in one format.
type job struct {
	part   plate.Part
	format sink.Format
}

// jobs lists every part in every format, part-major.
func jobs(parts []plate.Part, formats []sink.Format) []job {
	out := make([]job, 0, len(parts)*len(formats))
	for _, p := range parts {
		for _, f := range formats {
			out = append(out, job{part: p, format: f})
		}
	}
	return out
}

// output is the result of one job. skipped is set instead of data when
// the sink had nothing to draw.
type output struct {
	data    []byte
	skipped error
}

// renderJobs renders js concurrently. DXF rasterizes a signed distance
// field, so the pool is bounded by GOMAXPROCS.
func renderJobs(ctx context.Context, js []job) ([]output, error) {
	out := make([]output, len(js))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range js {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := sink.Render(j.format, j.part.Name, j.part.Shape)
			switch {
			case stderrors.Is(err, sink.ErrEmpty):
				out[i].skipped = fmt.Errorf("skipped %s.%s: %w", j.part.Name, j.format.Ext(), err)
			case err != nil:
				return fmt.Errorf("%s as %s: %w", j.part.Name, j.format, err)
			default:
				out[i].data = data
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderParts renders parts in every format without caching. Parts that
// enclose no area are left out of DXF output and reported as warnings.
func RenderParts(ctx context.Context, parts []plate.Part, formats []sink.Format) ([]Artifact, []error, error) {
	js := jobs(parts, formats)
	outs, err := renderJobs(ctx, js)
	if err != nil {
		return nil, nil, err
	}
	var (
		artifacts []Artifact
		warnings  []error
	)
	for i, o := range outs {
		if o.skipped != nil {
			warnings = append(warnings, o.skipped)
			continue
		}
		artifacts = append(artifacts, Artifact{Part: js[i].part.Name, Format: js[i].format, Data: o.data})
	}
	return artifacts, warnings, nil
}
