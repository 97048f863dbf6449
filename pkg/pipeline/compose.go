package pipeline

import (
	"github.com/matzehuels/keyplate/pkg/kle"
	"github.com/matzehuels/keyplate/pkg/layout"
	"github.com/matzehuels/keyplate/pkg/plate"
)

// Composition is everything the pipeline knows before rendering.
type Composition struct {
	Raw      []byte
	Layout   kle.Layout
	Placed   layout.Result
	Options  plate.Options
	Plates   *plate.Plates
	Warnings []error
}

// Compose loads, places and composes without rendering or caching. The
// inspect command uses it to show placements next to the plate frame.
func Compose(opts Options) (*Composition, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	po, warnings, err := opts.PlateOptions()
	if err != nil {
		return nil, err
	}
	raw, l, err := Load(opts)
	if err != nil {
		return nil, err
	}
	placed := layout.Place(l)
	plates, err := plate.Compose(placed, po)
	if err != nil {
		return nil, err
	}
	return &Composition{
		Raw:      raw,
		Layout:   l,
		Placed:   placed,
		Options:  po,
		Plates:   plates,
		Warnings: warnings,
	}, nil
}
