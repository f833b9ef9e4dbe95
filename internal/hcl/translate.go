package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vk/gridfinitygo/internal/config"
)

func translateFile(root *fileRoot) ([]*config.Part, error) {
	var parts []*config.Part
	for _, b := range root.Bases {
		p, err := translateBase(b)
		if err != nil {
			return nil, fmt.Errorf("base %q: %w", b.Name, err)
		}
		parts = append(parts, p)
	}
	for _, b := range root.BasePlates {
		p, err := translateBasePlate(b)
		if err != nil {
			return nil, fmt.Errorf("baseplate %q: %w", b.Name, err)
		}
		parts = append(parts, p)
	}
	for _, b := range root.Bins {
		p, err := translateBin(b)
		if err != nil {
			return nil, fmt.Errorf("bin %q: %w", b.Name, err)
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func translateBase(b *baseBlock) (*config.Part, error) {
	p := &config.Part{Kind: config.KindBase, Name: b.Name}
	if err := translateGrid(p, b.GridX, b.GridY, b.Cells); err != nil {
		return nil, err
	}
	p.Features = translateFeatures(b.Features)
	return p, nil
}

func translateBasePlate(b *baseplateBlock) (*config.Part, error) {
	p := &config.Part{Kind: config.KindBasePlate, Name: b.Name}
	if err := translateGrid(p, b.GridX, b.GridY, b.Cells); err != nil {
		return nil, err
	}
	if b.Block != nil {
		p.PlateBlock = *b.Block
	}
	if b.Bottom != nil {
		p.PlateBottom = *b.Bottom
	}
	p.Features = translateFeatures(b.Features)
	return p, nil
}

func translateBin(b *binBlock) (*config.Part, error) {
	p := &config.Part{Kind: config.KindBin, Name: b.Name}
	if err := translateGrid(p, b.GridX, b.GridY, b.Cells); err != nil {
		return nil, err
	}
	if b.HeightMM != nil {
		p.HeightMM = *b.HeightMM
	}
	if b.HeightUnits != nil {
		p.HeightUnits = *b.HeightUnits
	}
	p.Lip = b.Lip != nil
	p.Features = translateFeatures(b.Features)

	if b.Compartments != nil {
		c := &config.Compartments{}
		if b.Compartments.DivX != nil {
			c.DivX = *b.Compartments.DivX
		}
		if b.Compartments.DivY != nil {
			c.DivY = *b.Compartments.DivY
		}
		cells, err := intMatrix(b.Compartments.Cells)
		if err != nil {
			return nil, fmt.Errorf("compartment cells: %w", err)
		}
		c.Cells = cells
		if b.Compartments.InnerWall != nil {
			c.InnerWall = *b.Compartments.InnerWall
		}
		if b.Compartments.OuterWall != nil {
			c.OuterWall = *b.Compartments.OuterWall
		}
		for _, cb := range b.Compartments.Compartments {
			comp := &config.Compartment{}
			if cb.Label != nil {
				comp.Label = &config.Label{}
				if cb.Label.Angle != nil {
					comp.Label.Angle = *cb.Label.Angle
				}
			}
			if cb.Scoop != nil {
				comp.Scoop = &config.Scoop{}
				if cb.Scoop.Radius != nil {
					comp.Scoop.Radius = *cb.Scoop.Radius
				}
				if cb.Scoop.WallCorrection != nil {
					comp.Scoop.WallCorrection = *cb.Scoop.WallCorrection
				}
			}
			c.List = append(c.List, comp)
		}
		p.Compartments = c
	}
	return p, nil
}

func translateGrid(p *config.Part, gridX, gridY *int, cells hcl.Expression) error {
	if gridX != nil {
		p.GridX = *gridX
	}
	if gridY != nil {
		p.GridY = *gridY
	}
	matrix, err := boolMatrix(cells)
	if err != nil {
		return fmt.Errorf("cells: %w", err)
	}
	p.Cells = matrix

	if p.Cells != nil && (p.GridX != 0 || p.GridY != 0) {
		return fmt.Errorf("grid_x/grid_y and cells are mutually exclusive")
	}
	if p.Cells == nil && p.GridX == 0 && p.GridY == 0 {
		// Bare blocks default to a single cell.
		p.GridX, p.GridY = 1, 1
	}
	return nil
}

func translateFeatures(blocks []*featureBlock) []*config.Feature {
	var out []*config.Feature
	for _, b := range blocks {
		f := &config.Feature{Kind: b.Kind}
		if b.Location != nil {
			f.Location = *b.Location
		}
		setF := func(dst *float64, src *float64) {
			if src != nil {
				*dst = *src
			}
		}
		setF(&f.Radius, b.Radius)
		setF(&f.Depth, b.Depth)
		setF(&f.SinkRadius, b.SinkRadius)
		setF(&f.SinkAngle, b.SinkAngle)
		setF(&f.BoreRadius, b.BoreRadius)
		setF(&f.BoreDepth, b.BoreDepth)
		setF(&f.Offset, b.Offset)
		if b.NX != nil {
			f.NX = *b.NX
		}
		if b.NY != nil {
			f.NY = *b.NY
		}
		out = append(out, f)
	}
	return out
}

// boolMatrix evaluates a cells expression into an occupancy matrix. Rows may
// have different lengths.
func boolMatrix(expr hcl.Expression) ([][]bool, error) {
	rows, err := matrixRows(expr)
	if err != nil || rows == nil {
		return nil, err
	}
	out := make([][]bool, 0, len(rows))
	for i, row := range rows {
		cells := make([]bool, 0, row.LengthInt())
		for it := row.ElementIterator(); it.Next(); {
			_, v := it.Element()
			v, err := convert.Convert(v, cty.Bool)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			var b bool
			if err := gocty.FromCtyValue(v, &b); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			cells = append(cells, b)
		}
		out = append(out, cells)
	}
	return out, nil
}

// intMatrix evaluates a cells expression into a compartment number matrix.
func intMatrix(expr hcl.Expression) ([][]int, error) {
	rows, err := matrixRows(expr)
	if err != nil || rows == nil {
		return nil, err
	}
	out := make([][]int, 0, len(rows))
	for i, row := range rows {
		cells := make([]int, 0, row.LengthInt())
		for it := row.ElementIterator(); it.Next(); {
			_, v := it.Element()
			v, err := convert.Convert(v, cty.Number)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			var n int
			if err := gocty.FromCtyValue(v, &n); err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			cells = append(cells, n)
		}
		out = append(out, cells)
	}
	return out, nil
}

// matrixRows evaluates the expression and unpacks the outer list. A nil or
// absent expression yields nil rows.
func matrixRows(expr hcl.Expression) ([]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		return nil, fmt.Errorf("expected a list of rows, got %s", val.Type().FriendlyName())
	}
	var rows []cty.Value
	for it := val.ElementIterator(); it.Next(); {
		_, row := it.Element()
		if !row.Type().IsTupleType() && !row.Type().IsListType() {
			return nil, fmt.Errorf("expected a list per row, got %s", row.Type().FriendlyName())
		}
		rows = append(rows, row)
	}
	return rows, nil
}
