// Package api defines the JSON bodies of the keyplate HTTP API.
//
//	POST /v1/plates      BuildRequest → BuildResponse
//	GET  /v1/formats     → []string
//	GET  /v1/version     → buildinfo.Info
//	GET  /healthz        → Health
//
// Every artifact format is text (OpenSCAD, JSON, ASCII DXF, DOT, SVG), so
// artifact data travels as a plain string.
package api

import (
	"github.com/matzehuels/keyplate/pkg/pipeline"
)

// BuildRequest is the body of POST /v1/plates. Layout holds the KLE raw
// data; layout paths are not accepted over the network.
type BuildRequest = pipeline.Options

// BuildResponse describes a finished build.
type BuildResponse struct {
	BuildID    string     `json:"build_id"`
	LayoutHash string     `json:"layout_hash"`
	Keys       int        `json:"keys"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	Artifacts  []Artifact `json:"artifacts"`
	Warnings   []string   `json:"warnings,omitempty"`
}

// Artifact is one rendered part.
type Artifact struct {
	Part     string `json:"part"`
	Format   string `json:"format"`
	Filename string `json:"filename"`
	Cached   bool   `json:"cached"`
	Data     string `json:"data"`
}

// AllCached reports whether every artifact came from the cache.
func (r *BuildResponse) AllCached() bool {
	if len(r.Artifacts) == 0 {
		return false
	}
	for _, a := range r.Artifacts {
		if !a.Cached {
			return false
		}
	}
	return true
}

// Health is the body of GET /healthz.
type Health struct {
	Status string `json:"status"`
	Cache  string `json:"cache"`
}

// NewBuildResponse converts a pipeline result.
func NewBuildResponse(res *pipeline.Result) BuildResponse {
	out := BuildResponse{
		BuildID:    res.BuildID,
		LayoutHash: res.LayoutHash,
		Keys:       res.Stats.Keys,
		Width:      res.Stats.Width,
		Height:     res.Stats.Height,
		Artifacts:  make([]Artifact, len(res.Artifacts)),
		Warnings:   res.Warnings,
	}
	for i, a := range res.Artifacts {
		out.Artifacts[i] = Artifact{
			Part:     a.Part,
			Format:   string(a.Format),
			Filename: a.Filename(),
			Cached:   a.Cached,
			Data:     string(a.Data),
		}
	}
	return out
}
