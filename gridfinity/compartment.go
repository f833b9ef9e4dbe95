package gridfinity

import (
	"context"
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// Compartment is one hollowed sub-region of a bin's top volume, optionally
// carrying label and scoop features.
type Compartment struct {
	Features []CompartmentFeature
}

// build creates the compartment cutter in an origin-centered frame.
func (c Compartment) build(ctx context.Context, m modeler.Modeler, sizeX, sizeY, height float64) (modeler.Solid, error) {
	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("compartment size %vx%v is not positive; walls exceed the usable face", sizeX, sizeY)
	}
	if height <= 0 {
		return nil, fmt.Errorf("compartment height must be positive, got %v", height)
	}
	cutter, err := m.Box(ctx, r3.Vec{X: sizeX, Y: sizeY, Z: height})
	if err != nil {
		return nil, err
	}
	for _, f := range c.Features {
		if cutter, err = f.ApplyToCompartment(ctx, m, cutter); err != nil {
			return nil, err
		}
	}
	// Round everything but the open top.
	return m.Fillet(ctx, cutter, modeler.EdgesBelowTop, CompartmentInnerRadius)
}

// Compartments partitions a bin's usable top face. The numbered grid assigns
// each cell to a compartment; a number spanning several contiguous cells
// makes one larger compartment, zero leaves the cell solid.
type Compartments struct {
	grid      [][]int
	list      []Compartment
	innerWall float64
	outerWall float64
}

// NewCompartments validates a numbered placement grid against the
// compartment list. A single-element list is reused for every number;
// otherwise the list length must equal the highest compartment number.
// Non-positive wall thicknesses fall back to the standard dimensions.
func NewCompartments(grid [][]int, list []Compartment, innerWall, outerWall float64) (*Compartments, error) {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, errors.New("compartment grid must not be empty")
	}
	cols := len(grid[0])
	maxN := 0
	for _, row := range grid {
		if len(row) != cols {
			return nil, errors.New("compartment grid rows must have equal length")
		}
		for _, n := range row {
			if n < 0 {
				return nil, fmt.Errorf("compartment numbers must not be negative, got %d", n)
			}
			if n > maxN {
				maxN = n
			}
		}
	}
	if maxN == 0 {
		return nil, errors.New("compartment grid assigns no compartments")
	}
	if len(list) == 0 {
		list = []Compartment{{}}
	}
	if len(list) > 1 && len(list) != maxN {
		return nil, fmt.Errorf("compartment list length %d does not match %d placed compartments", len(list), maxN)
	}
	if innerWall <= 0 {
		innerWall = InnerWall
	}
	if outerWall <= 0 {
		outerWall = OuterWall
	}
	return &Compartments{grid: grid, list: list, innerWall: innerWall, outerWall: outerWall}, nil
}

// NewCompartmentsEqual divides the face into divX by divY equal compartments
// in row-major order. The list must be empty (defaults everywhere), a single
// compartment reused for every slot, or exactly divX*divY entries.
func NewCompartmentsEqual(divX, divY int, list ...Compartment) (*Compartments, error) {
	if divX < 1 || divY < 1 {
		return nil, fmt.Errorf("compartment divisions must be at least 1, got %dx%d", divX, divY)
	}
	if len(list) > 1 && len(list) != divX*divY {
		return nil, fmt.Errorf("compartment list length %d does not match %d divisions", len(list), divX*divY)
	}
	grid := make([][]int, divY)
	n := 1
	for y := range grid {
		grid[y] = make([]int, divX)
		for x := range grid[y] {
			grid[y][x] = n
			n++
		}
	}
	if len(list) == 1 {
		single := list[0]
		list = make([]Compartment, divX*divY)
		for i := range list {
			list[i] = single
		}
	}
	return NewCompartments(grid, list, 0, 0)
}

// Count returns the number of placed compartments.
func (c *Compartments) Count() int {
	maxN := 0
	for _, row := range c.grid {
		for _, n := range row {
			if n > maxN {
				maxN = n
			}
		}
	}
	return maxN
}

// cut hollows the compartments out of the top of s, each to the given depth.
// Cutters subtract one at a time in compartment-number scan order.
func (c *Compartments) cut(ctx context.Context, m modeler.Modeler, s modeler.Solid, depth float64) (modeler.Solid, error) {
	bounds := s.Bounds()
	size := bounds.Size()
	center := bounds.Center()

	// Usable distribution area: the face minus the outer wall on each side;
	// one inner wall is shared back between the unit cells.
	areaX := size.X - 2*c.outerWall + c.innerWall
	areaY := size.Y - 2*c.outerWall + c.innerWall
	unitX := areaX / float64(len(c.grid[0]))
	unitY := areaY / float64(len(c.grid))

	seen := make(map[int]bool)
	for row, cells := range c.grid {
		for col, n := range cells {
			if n == 0 || seen[n] {
				continue
			}
			seen[n] = true

			spanX := sameInRow(c.grid[row], col)
			spanY := sameInColumn(c.grid, row, col)

			middleX := float64(2*col+spanX) / 2
			middleY := float64(2*row+spanY) / 2
			posX := center.X + middleX*unitX - areaX/2
			posY := center.Y + areaY/2 - middleY*unitY

			comp := c.list[0]
			if len(c.list) > 1 {
				comp = c.list[n-1]
			}
			cutter, err := comp.build(ctx, m,
				unitX*float64(spanX)-c.innerWall,
				unitY*float64(spanY)-c.innerWall,
				depth)
			if err != nil {
				return nil, fmt.Errorf("failed to build compartment %d: %w", n, err)
			}
			cutter, err = m.Translate(ctx, cutter, r3.Vec{X: posX, Y: posY, Z: bounds.Max.Z - depth/2})
			if err != nil {
				return nil, err
			}
			if s, err = m.Subtract(ctx, s, cutter); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}

// sameInRow counts the contiguous run of the number at row[col].
func sameInRow(row []int, col int) int {
	n := row[col]
	count := 0
	for _, v := range row[col:] {
		if v != n {
			break
		}
		count++
	}
	return count
}

// sameInColumn counts the contiguous run of the number at grid[row][col]
// going down.
func sameInColumn(grid [][]int, row, col int) int {
	n := grid[row][col]
	count := 0
	for _, cells := range grid[row:] {
		if col >= len(cells) || cells[col] != n {
			break
		}
		count++
	}
	return count
}
