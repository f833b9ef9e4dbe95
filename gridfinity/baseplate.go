package gridfinity

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// BasePlateBlock builds the per-cell solid a baseplate is assembled from.
// The variants form a closed set; the chosen block is reused for every
// occupied cell.
type BasePlateBlock interface {
	Build(ctx context.Context, m modeler.Modeler) (modeler.Solid, error)
}

// BlockFrame is the minimal baseplate block: a square frame whose inner
// contour is the stacking profile a base foot drops into.
type BlockFrame struct {
	Features []Feature
}

func (b *BlockFrame) Build(ctx context.Context, m modeler.Modeler) (modeler.Solid, error) {
	outer, err := m.Box(ctx, r3.Vec{X: GridPitch, Y: GridPitch, Z: plateProfileHeight})
	if err != nil {
		return nil, err
	}
	// The pocket is the positive shape of a foot, full pitch, no stacking
	// clearance on the plate side.
	pocket, err := m.RoundedBox(ctx,
		r3.Vec{X: GridPitch, Y: GridPitch, Z: plateProfileHeight},
		GridCornerRadius)
	if err != nil {
		return nil, err
	}
	pocket, err = m.SweepProfile(ctx, pocket, modeler.DirTop, stackProfile(LipHeight3Plate), 0, true)
	if err != nil {
		return nil, err
	}
	block, err := m.Subtract(ctx, outer, pocket)
	if err != nil {
		return nil, err
	}
	return applyAll(ctx, m, block, b.Features)
}

// BlockFull is a baseplate block with a solid bottom slab, the carrier for
// weighted cutouts and mounting holes.
type BlockFull struct {
	// BottomHeight is the slab height; zero means the standard height.
	BottomHeight float64
	Features     []Feature
}

func (b *BlockFull) Build(ctx context.Context, m modeler.Modeler) (modeler.Solid, error) {
	bottom := b.BottomHeight
	if bottom == 0 {
		bottom = PlateBottomHeight
	}
	if bottom < 0 {
		return nil, fmt.Errorf("baseplate bottom height must not be negative, got %v", bottom)
	}

	frame, err := (&BlockFrame{}).Build(ctx, m)
	if err != nil {
		return nil, err
	}
	slab, err := m.Box(ctx, r3.Vec{X: GridPitch, Y: GridPitch, Z: bottom})
	if err != nil {
		return nil, err
	}
	slab, err = m.Translate(ctx, slab, r3.Vec{Z: -(plateProfileHeight + bottom) / 2})
	if err != nil {
		return nil, err
	}
	block, err := m.Union(ctx, frame, slab)
	if err != nil {
		return nil, err
	}
	return applyAll(ctx, m, block, b.Features)
}

// BlockSkeleton is a full-bottom block with a skeletonizing pocket cut from
// the underside, saving weight and filament while the rim stays stiff.
type BlockSkeleton struct {
	// BottomHeight is the slab height; zero means the standard height.
	BottomHeight float64
	Features     []Feature
}

func (b *BlockSkeleton) Build(ctx context.Context, m modeler.Modeler) (modeler.Solid, error) {
	const (
		pocketSpan   = 36.3
		pocketNotch  = 9.4
		pocketFillet = 4.25
	)
	bottom := b.BottomHeight
	if bottom == 0 {
		bottom = PlateBottomHeight
	}

	block, err := (&BlockFull{BottomHeight: bottom}).Build(ctx, m)
	if err != nil {
		return nil, err
	}

	// The pocket is a plus shape: crossing arms leave a notch of material in
	// each corner of the slab.
	long := pocketSpan / 2
	short := long - pocketNotch
	outline := []r2.Vec{
		{X: short, Y: long},
		{X: short, Y: short},
		{X: long, Y: short},
		{X: long, Y: -short},
		{X: short, Y: -short},
		{X: short, Y: -long},
		{X: -short, Y: -long},
		{X: -short, Y: -short},
		{X: -long, Y: -short},
		{X: -long, Y: short},
		{X: -short, Y: short},
		{X: -short, Y: long},
	}
	pocket, err := m.ExtrudePolygon(ctx, outline, bottom)
	if err != nil {
		return nil, err
	}
	if pocket, err = m.Fillet(ctx, pocket, modeler.EdgesVertical, pocketFillet); err != nil {
		return nil, err
	}
	// Open at the slab underside.
	pocket, err = m.Translate(ctx, pocket, r3.Vec{Z: -(plateProfileHeight/2 + bottom)})
	if err != nil {
		return nil, err
	}
	if block, err = m.Subtract(ctx, block, pocket); err != nil {
		return nil, err
	}
	return applyAll(ctx, m, block, b.Features)
}

func applyAll(ctx context.Context, m modeler.Modeler, s modeler.Solid, features []Feature) (modeler.Solid, error) {
	var err error
	for _, f := range features {
		if s, err = f.Apply(ctx, m, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// BasePlate is the supporting plate bins rest on, built from a grid
// definition like a Base. Built once at construction, immutable afterwards.
type BasePlate struct {
	grid  GridDefinition
	solid modeler.Solid
}

// NewBasePlate places one block per occupied cell, unions them, rounds the
// outer vertical edges, and applies the root-level features to the whole
// plate. A nil block means BlockFrame.
func NewBasePlate(ctx context.Context, m modeler.Modeler, grid GridDefinition, block BasePlateBlock, features ...Feature) (*BasePlate, error) {
	if block == nil {
		block = &BlockFrame{}
	}
	totalX, totalY := grid.SizeMM()

	var blocks []modeler.Solid
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if !grid.Occupied(row, col) {
				continue
			}
			cell, err := block.Build(ctx, m)
			if err != nil {
				return nil, fmt.Errorf("failed to build baseplate block: %w", err)
			}
			cx := (float64(col)+0.5)*GridPitch - totalX/2
			cy := totalY/2 - (float64(row)+0.5)*GridPitch
			if cell, err = m.Translate(ctx, cell, r3.Vec{X: cx, Y: cy}); err != nil {
				return nil, err
			}
			blocks = append(blocks, cell)
		}
	}

	solid, err := m.Union(ctx, blocks[0], blocks[1:]...)
	if err != nil {
		return nil, err
	}
	if solid, err = m.Fillet(ctx, solid, modeler.EdgesVertical, PlateEdgeRadius); err != nil {
		return nil, err
	}
	if solid, err = applyAll(ctx, m, solid, features); err != nil {
		return nil, fmt.Errorf("failed to apply baseplate features: %w", err)
	}
	return &BasePlate{grid: grid, solid: solid}, nil
}

// NewBasePlateEqual builds a rectangular x by y baseplate.
func NewBasePlateEqual(ctx context.Context, m modeler.Modeler, x, y int, block BasePlateBlock, features ...Feature) (*BasePlate, error) {
	grid, err := NewGridEqual(x, y)
	if err != nil {
		return nil, err
	}
	return NewBasePlate(ctx, m, grid, block, features...)
}

// Solid returns the built plate solid.
func (p *BasePlate) Solid() modeler.Solid { return p.solid }

// Grid returns the grid definition the plate was built from.
func (p *BasePlate) Grid() GridDefinition { return p.grid }
