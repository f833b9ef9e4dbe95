package gridfinity

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/gridfinitygo/modeler"
)

// BinOptions declares how a bin is raised on top of its base. Exactly one
// of HeightMM and HeightUnits must be set.
type BinOptions struct {
	// HeightMM is the absolute wall height added above the base.
	HeightMM float64
	// HeightUnits is the total bin height in 7mm Gridfinity units,
	// including the base.
	HeightUnits int
	// Compartments subdivides the top volume; nil leaves the bin solid.
	Compartments *Compartments
	// Lip adds the stacking profile around the top rim. The lip height is
	// not counted towards the bin height.
	Lip bool
}

// Bin is a storage bin: a Base extruded to height, hollowed into
// compartments, optionally rimmed with a stacking lip. Built once at
// construction, immutable afterwards.
type Bin struct {
	solid modeler.Solid
}

// NewBin builds a bin on top of an already-built base.
func NewBin(ctx context.Context, m modeler.Modeler, base *Base, opts BinOptions) (*Bin, error) {
	if base == nil {
		return nil, errors.New("bin requires a base")
	}
	if opts.HeightMM != 0 && opts.HeightUnits != 0 {
		return nil, errors.New("bin height may be set in millimetres or units, not both")
	}
	if opts.HeightMM < 0 || opts.HeightUnits < 0 {
		return nil, errors.New("bin height must be positive")
	}

	wall := opts.HeightMM
	if opts.HeightUnits != 0 {
		wall = float64(opts.HeightUnits)*HeightUnit - base.Height()
	}
	if wall <= 0 {
		return nil, fmt.Errorf("bin height %v does not clear the base height %v", opts.HeightMM+float64(opts.HeightUnits)*HeightUnit, base.Height())
	}

	solid, err := m.ExtrudeFace(ctx, base.Solid(), modeler.DirTop, wall)
	if err != nil {
		return nil, err
	}
	if opts.Compartments != nil {
		if solid, err = opts.Compartments.cut(ctx, m, solid, wall); err != nil {
			return nil, fmt.Errorf("failed to cut compartments: %w", err)
		}
	}
	if opts.Lip {
		if solid, err = m.SweepProfile(ctx, solid, modeler.DirTop, stackProfile(LipHeight3Bin), 0, false); err != nil {
			return nil, err
		}
	}
	return &Bin{solid: solid}, nil
}

// Solid returns the built bin solid.
func (b *Bin) Solid() modeler.Solid { return b.solid }

// Height returns the built height including base and lip.
func (b *Bin) Height() float64 { return b.solid.Bounds().Size().Z }
