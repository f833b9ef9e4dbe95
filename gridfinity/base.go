package gridfinity

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// stackProfile is the Gridfinity stacking cross-section as a closed
// polyline in a (outward, up) frame. h3 selects the bin or baseplate
// variant of the top segment.
func stackProfile(h3 float64) []r2.Vec {
	const h1, h2 = LipHeight1, LipHeight2
	return []r2.Vec{
		{X: 0, Y: 0},
		{X: h1, Y: h1},
		{X: h1, Y: h1 + h2},
		{X: h1 + h3, Y: h1 + h2 + h3},
		{X: h1 + h3, Y: 0},
	}
}

// Base is the Gridfinity foot solid that fits into a baseplate; bins are
// built on top of it. The solid is built once at construction and immutable
// afterwards.
type Base struct {
	grid  GridDefinition
	solid modeler.Solid
}

// NewBase expands the grid definition into per-cell blocks, unions them
// under a connecting platform, and applies the features to every block.
func NewBase(ctx context.Context, m modeler.Modeler, grid GridDefinition, features ...Feature) (*Base, error) {
	solid, err := buildBase(ctx, m, grid, features)
	if err != nil {
		return nil, fmt.Errorf("failed to build base: %w", err)
	}
	return &Base{grid: grid, solid: solid}, nil
}

// NewBaseEqual builds a rectangular x by y base.
func NewBaseEqual(ctx context.Context, m modeler.Modeler, x, y int, features ...Feature) (*Base, error) {
	grid, err := NewGridEqual(x, y)
	if err != nil {
		return nil, err
	}
	return NewBase(ctx, m, grid, features...)
}

// Solid returns the built foot solid.
func (b *Base) Solid() modeler.Solid { return b.solid }

// Grid returns the grid definition the base was built from.
func (b *Base) Grid() GridDefinition { return b.grid }

// Height returns the total height of the base including the platform.
func (b *Base) Height() float64 { return b.solid.Bounds().Size().Z }

func buildBase(ctx context.Context, m modeler.Modeler, grid GridDefinition, features []Feature) (modeler.Solid, error) {
	totalX, totalY := grid.SizeMM()

	var blocks []modeler.Solid
	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if !grid.Occupied(row, col) {
				continue
			}

			block, err := buildFootBlock(ctx, m, grid.Classify(row, col))
			if err != nil {
				return nil, err
			}
			for _, f := range features {
				if block, err = f.Apply(ctx, m, block); err != nil {
					return nil, err
				}
			}

			tile, err := platformTile(ctx, m, grid, row, col)
			if err != nil {
				return nil, err
			}

			// Grid is centered on the origin; row 0 is the back row.
			cx := (float64(col)+0.5)*GridPitch - totalX/2
			cy := totalY/2 - (float64(row)+0.5)*GridPitch

			block, err = m.Translate(ctx, block, r3.Vec{X: cx, Y: cy, Z: footHeight / 2})
			if err != nil {
				return nil, err
			}
			tile, err = m.Translate(ctx, tile, r3.Vec{X: cx, Y: cy, Z: footHeight + PlatformHeight/2})
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block, tile)
		}
	}

	return m.Union(ctx, blocks[0], blocks[1:]...)
}

// buildFootBlock creates one cell's foot in an origin-centered frame.
// Boundary cells carry the outward stacking profile; interior cells are flat
// connectors filling the whole pitch.
func buildFootBlock(ctx context.Context, m modeler.Modeler, class CellClass) (modeler.Solid, error) {
	if class == CellInterior {
		return m.Box(ctx, r3.Vec{X: GridPitch, Y: GridPitch, Z: footHeight})
	}
	size := GridPitch - GridTolerance
	block, err := m.RoundedBox(ctx,
		r3.Vec{X: size, Y: size, Z: footHeight},
		GridCornerRadius-GridTolerance/2)
	if err != nil {
		return nil, err
	}
	return m.SweepProfile(ctx, block, modeler.DirTop, stackProfile(LipHeight3Bin), LipOffset, true)
}

// platformTile creates the cell's share of the connecting platform. The
// tile is shrunk by the platform inset on every side that faces outward, so
// neighbouring tiles merge while the outline stays inside the foot print.
func platformTile(ctx context.Context, m modeler.Modeler, grid GridDefinition, row, col int) (modeler.Solid, error) {
	const inset = GridTolerance / 2

	shrinkW, shrinkE, shrinkN, shrinkS := 0.0, 0.0, 0.0, 0.0
	if !grid.Occupied(row, col-1) {
		shrinkW = inset
	}
	if !grid.Occupied(row, col+1) {
		shrinkE = inset
	}
	if !grid.Occupied(row-1, col) {
		shrinkN = inset
	}
	if !grid.Occupied(row+1, col) {
		shrinkS = inset
	}

	size := r3.Vec{
		X: GridPitch - shrinkW - shrinkE,
		Y: GridPitch - shrinkN - shrinkS,
		Z: PlatformHeight,
	}

	var tile modeler.Solid
	var err error
	if grid.Classify(row, col) == CellInterior {
		tile, err = m.Box(ctx, size)
	} else {
		tile, err = m.RoundedBox(ctx, size, GridCornerRadius-inset)
	}
	if err != nil {
		return nil, err
	}
	// Re-center after asymmetric shrinking.
	offset := r3.Vec{X: (shrinkW - shrinkE) / 2, Y: (shrinkS - shrinkN) / 2}
	if offset.X == 0 && offset.Y == 0 {
		return tile, nil
	}
	return m.Translate(ctx, tile, offset)
}
