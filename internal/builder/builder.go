package builder

import (
	"context"
	"fmt"

	"github.com/vk/gridfinitygo/gridfinity"
	"github.com/vk/gridfinitygo/internal/config"
	"github.com/vk/gridfinitygo/internal/ctxlog"
	"github.com/vk/gridfinitygo/modeler"
)

// Build constructs the solid for one declared part.
func Build(ctx context.Context, m modeler.Modeler, part *config.Part) (modeler.Solid, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building part.", "name", part.Name, "kind", part.Kind)

	grid, err := translateGrid(part)
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}
	features, err := translateFeatures(part.Features)
	if err != nil {
		return nil, fmt.Errorf("part %q: %w", part.Name, err)
	}

	switch part.Kind {
	case config.KindBase:
		base, err := gridfinity.NewBase(ctx, m, grid, features...)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		return base.Solid(), nil

	case config.KindBasePlate:
		// Plate features cut into every grid cell, so they attach to the
		// block rather than the unioned plate.
		block, err := translatePlateBlock(part, features)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		plate, err := gridfinity.NewBasePlate(ctx, m, grid, block)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		return plate.Solid(), nil

	case config.KindBin:
		base, err := gridfinity.NewBase(ctx, m, grid, features...)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		opts := gridfinity.BinOptions{
			HeightMM:    part.HeightMM,
			HeightUnits: part.HeightUnits,
			Lip:         part.Lip,
		}
		if part.Compartments != nil {
			comps, err := translateCompartments(part.Compartments)
			if err != nil {
				return nil, fmt.Errorf("part %q: %w", part.Name, err)
			}
			opts.Compartments = comps
		}
		bin, err := gridfinity.NewBin(ctx, m, base, opts)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", part.Name, err)
		}
		return bin.Solid(), nil

	default:
		return nil, fmt.Errorf("part %q: unknown kind %q", part.Name, part.Kind)
	}
}

func translateGrid(part *config.Part) (gridfinity.GridDefinition, error) {
	if part.Cells != nil {
		return gridfinity.NewGridDefinition(part.Cells)
	}
	return gridfinity.NewGridEqual(part.GridX, part.GridY)
}

func translateFeatures(decls []*config.Feature) ([]gridfinity.Feature, error) {
	var features []gridfinity.Feature
	for _, d := range decls {
		f, err := translateFeature(d)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	return features, nil
}

func translateFeature(d *config.Feature) (gridfinity.Feature, error) {
	loc, err := translateLocation(d)
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case "screw_hole":
		h := gridfinity.NewScrewHole(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		return h, nil
	case "magnet_hole":
		h := gridfinity.NewMagnetHole(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		return h, nil
	case "screw_hole_countersink":
		h := gridfinity.NewScrewHoleCountersink(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		if d.SinkRadius != 0 {
			h.SinkRadius = d.SinkRadius
		}
		if d.SinkAngle != 0 {
			h.SinkAngle = d.SinkAngle
		}
		return h, nil
	case "screw_hole_counterbore":
		h := gridfinity.NewScrewHoleCounterbore(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		if d.BoreRadius != 0 {
			h.BoreRadius = d.BoreRadius
		}
		if d.BoreDepth != 0 {
			h.BoreDepth = d.BoreDepth
		}
		return h, nil
	case "refined_screw_hole":
		h := gridfinity.NewRefinedScrewHole(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		if d.SinkRadius != 0 {
			h.SinkRadius = d.SinkRadius
		}
		if d.SinkAngle != 0 {
			h.SinkAngle = d.SinkAngle
		}
		return h, nil
	case "magnet_hole_pressfit":
		h := gridfinity.NewMagnetHolePressfit(loc)
		overrideHole(&h.Radius, &h.Depth, d)
		return h, nil
	case "magnet_hole_side":
		return &gridfinity.MagnetHoleSide{Location: loc}, nil
	case "connection_cutout":
		return &gridfinity.ConnectionCutout{Location: loc}, nil
	case "weighted":
		return &gridfinity.Weighted{Location: loc}, nil
	default:
		return nil, fmt.Errorf("unknown feature kind %q", d.Kind)
	}
}

func overrideHole(radius, depth *float64, d *config.Feature) {
	if d.Radius != 0 {
		*radius = d.Radius
	}
	if d.Depth != 0 {
		*depth = d.Depth
	}
}

func translateLocation(d *config.Feature) (gridfinity.FeatureLocation, error) {
	switch d.Location {
	case "top_middle":
		return gridfinity.TopMiddle{}, nil
	case "bottom_middle", "":
		return gridfinity.BottomMiddle{}, nil
	case "top_corners":
		return gridfinity.TopCorners{Offset: d.Offset}, nil
	case "bottom_corners":
		return gridfinity.BottomCorners{Offset: d.Offset}, nil
	case "bottom_sides":
		return gridfinity.BottomSides{NX: d.NX, NY: d.NY, Offset: d.Offset}, nil
	default:
		return nil, fmt.Errorf("unknown feature location %q", d.Location)
	}
}

func translatePlateBlock(part *config.Part, features []gridfinity.Feature) (gridfinity.BasePlateBlock, error) {
	switch part.PlateBlock {
	case "", "frame":
		return &gridfinity.BlockFrame{Features: features}, nil
	case "full":
		return &gridfinity.BlockFull{BottomHeight: part.PlateBottom, Features: features}, nil
	case "skeleton":
		return &gridfinity.BlockSkeleton{BottomHeight: part.PlateBottom, Features: features}, nil
	default:
		return nil, fmt.Errorf("unknown baseplate block %q", part.PlateBlock)
	}
}

func translateCompartments(d *config.Compartments) (*gridfinity.Compartments, error) {
	list, err := translateCompartmentList(d.List)
	if err != nil {
		return nil, err
	}
	if d.Cells != nil {
		return gridfinity.NewCompartments(d.Cells, list, d.InnerWall, d.OuterWall)
	}
	return gridfinity.NewCompartmentsEqual(d.DivX, d.DivY, list...)
}

func translateCompartmentList(decls []*config.Compartment) ([]gridfinity.Compartment, error) {
	list := make([]gridfinity.Compartment, 0, len(decls))
	for _, d := range decls {
		var c gridfinity.Compartment
		if d.Label != nil {
			label, err := gridfinity.NewLabel(d.Label.Angle)
			if err != nil {
				return nil, err
			}
			c.Features = append(c.Features, label)
		}
		if d.Scoop != nil {
			scoop := gridfinity.NewScoop()
			if d.Scoop.Radius != 0 {
				scoop.Radius = d.Scoop.Radius
			}
			scoop.WallCorrection = d.Scoop.WallCorrection
			c.Features = append(c.Features, scoop)
		}
		list = append(list, c)
	}
	if len(list) == 0 {
		// Bare compartments blocks still subdivide the bin.
		list = append(list, gridfinity.Compartment{})
	}
	return list, nil
}
