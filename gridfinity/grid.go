package gridfinity

import (
	"errors"
	"fmt"
)

// CellClass is the boundary classification of an occupied grid cell. It
// determines which block geometry the cell receives: corner and edge cells
// get the outward stacking-foot profile, interior cells a flat connector
// tile.
type CellClass int

const (
	CellInterior CellClass = iota
	CellEdge
	CellCorner
)

func (c CellClass) String() string {
	switch c {
	case CellInterior:
		return "interior"
	case CellEdge:
		return "edge"
	case CellCorner:
		return "corner"
	}
	return "unknown"
}

// GridDefinition is an ordered 2-D occupancy grid. Rows may have different
// lengths, representing non-rectangular footprints. A definition always
// contains at least one occupied cell.
type GridDefinition struct {
	cells [][]bool
	cols  int
	count int
}

// NewGridDefinition validates a cell matrix. Row 0 is the back row, column 0
// the left column.
func NewGridDefinition(cells [][]bool) (GridDefinition, error) {
	g := GridDefinition{cells: cells}
	for _, row := range cells {
		if len(row) > g.cols {
			g.cols = len(row)
		}
		for _, occupied := range row {
			if occupied {
				g.count++
			}
		}
	}
	if g.count == 0 {
		return GridDefinition{}, errors.New("grid definition has no occupied cells")
	}
	return g, nil
}

// NewGridEqual builds a fully occupied x by y rectangular grid.
func NewGridEqual(x, y int) (GridDefinition, error) {
	if x < 1 || y < 1 {
		return GridDefinition{}, fmt.Errorf("grid dimensions must be positive, got %dx%d", x, y)
	}
	cells := make([][]bool, y)
	for i := range cells {
		cells[i] = make([]bool, x)
		for j := range cells[i] {
			cells[i][j] = true
		}
	}
	return NewGridDefinition(cells)
}

// Rows returns the number of grid rows.
func (g GridDefinition) Rows() int { return len(g.cells) }

// Cols returns the length of the longest row.
func (g GridDefinition) Cols() int { return g.cols }

// Count returns the number of occupied cells.
func (g GridDefinition) Count() int { return g.count }

// Occupied reports whether the cell at (row, col) exists and is occupied.
// Coordinates outside the grid are unoccupied.
func (g GridDefinition) Occupied(row, col int) bool {
	if row < 0 || row >= len(g.cells) {
		return false
	}
	if col < 0 || col >= len(g.cells[row]) {
		return false
	}
	return g.cells[row][col]
}

// Classify inspects the four neighbours of an occupied cell. A cell missing
// two perpendicular neighbours is a corner, one missing any neighbour is an
// edge, and a fully surrounded cell is interior.
func (g GridDefinition) Classify(row, col int) CellClass {
	up := g.Occupied(row-1, col)
	down := g.Occupied(row+1, col)
	left := g.Occupied(row, col-1)
	right := g.Occupied(row, col+1)

	vertical := !up || !down
	horizontal := !left || !right

	switch {
	case vertical && horizontal:
		return CellCorner
	case vertical || horizontal:
		return CellEdge
	default:
		return CellInterior
	}
}

// SizeMM returns the nominal plan footprint of the grid at the standard
// pitch, before stacking tolerance.
func (g GridDefinition) SizeMM() (x, y float64) {
	return float64(g.cols) * GridPitch, float64(len(g.cells)) * GridPitch
}
