package modeler

import (
	"context"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Format identifies the serialization format requested from the kernel's
// export routines.
type Format string

const (
	FormatSTL  Format = "stl"
	FormatSTEP Format = "step"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSTL, FormatSTEP:
		return f, true
	}
	return "", false
}

// Direction selects a face of a solid by its outward normal.
type Direction int

const (
	DirTop Direction = iota
	DirBottom
	DirLeft
	DirRight
	DirFront
	DirBack
)

// Vector returns the unit normal of the direction.
func (d Direction) Vector() r3.Vec {
	switch d {
	case DirTop:
		return r3.Vec{Z: 1}
	case DirBottom:
		return r3.Vec{Z: -1}
	case DirLeft:
		return r3.Vec{X: -1}
	case DirRight:
		return r3.Vec{X: 1}
	case DirFront:
		return r3.Vec{Y: -1}
	case DirBack:
		return r3.Vec{Y: 1}
	}
	return r3.Vec{}
}

func (d Direction) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	case DirFront:
		return "front"
	case DirBack:
		return "back"
	}
	return "unknown"
}

// EdgeSet names a group of edges for fillet and chamfer operations. The
// selection semantics mirror the face/edge queries a B-rep kernel offers;
// they are deliberately coarse so the composition layer never has to carry
// kernel-specific edge handles.
type EdgeSet int

const (
	// EdgesVertical selects all edges parallel to the Z axis.
	EdgesVertical EdgeSet = iota
	// EdgesBelowTop selects every edge not part of the top face outline.
	EdgesBelowTop
	// EdgeTopBack selects the rear edge of the top face.
	EdgeTopBack
	// EdgeBottomFront selects the front edge of the bottom face.
	EdgeBottomFront
)

func (e EdgeSet) String() string {
	switch e {
	case EdgesVertical:
		return "vertical"
	case EdgesBelowTop:
		return "below_top"
	case EdgeTopBack:
		return "top_back"
	case EdgeBottomFront:
		return "bottom_front"
	}
	return "unknown"
}

// Box is an axis-aligned bounding box in millimetres.
type Box struct {
	Min, Max r3.Vec
}

// Size returns the extent of the box along each axis.
func (b Box) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// Center returns the midpoint of the box.
func (b Box) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: r3.Vec{X: min(b.Min.X, o.Min.X), Y: min(b.Min.Y, o.Min.Y), Z: min(b.Min.Z, o.Min.Z)},
		Max: r3.Vec{X: max(b.Max.X, o.Max.X), Y: max(b.Max.Y, o.Max.Y), Z: max(b.Max.Z, o.Max.Z)},
	}
}

// Contains reports whether p lies inside the box (boundary included).
func (b Box) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Solid is an opaque handle to a kernel-side solid. The only geometry the
// composition layer may observe is the bounding box.
type Solid interface {
	Bounds() Box
}

// Modeler is the capability surface expected from the external CAD kernel.
//
// Primitive solids (Box, RoundedBox, Cylinder, Cone) are centered on the
// origin in all three axes. ExtrudePolygon extrudes an XY outline from z=0
// towards +Z (or -Z for a negative height). All dimensions are millimetres,
// all angles degrees.
//
// Boolean operations and sweeps can be long-running inside a real kernel, so
// every operation takes a context.
type Modeler interface {
	Box(ctx context.Context, size r3.Vec) (Solid, error)
	RoundedBox(ctx context.Context, size r3.Vec, cornerRadius float64) (Solid, error)
	Cylinder(ctx context.Context, radius, height float64) (Solid, error)
	Cone(ctx context.Context, bottomRadius, topRadius, height float64) (Solid, error)
	ExtrudePolygon(ctx context.Context, outline []r2.Vec, height float64) (Solid, error)

	Translate(ctx context.Context, s Solid, offset r3.Vec) (Solid, error)
	RotateZ(ctx context.Context, s Solid, degrees float64) (Solid, error)

	Union(ctx context.Context, base Solid, others ...Solid) (Solid, error)
	Subtract(ctx context.Context, base Solid, cutters ...Solid) (Solid, error)

	// ExtrudeFace pushes the selected face of s outward by distance,
	// lengthening the solid. A negative distance shortens it.
	ExtrudeFace(ctx context.Context, s Solid, dir Direction, distance float64) (Solid, error)

	// SweepProfile sweeps a 2-D profile along the outer wire of the selected
	// face. The profile lives in a local (outward, along-normal) frame and may
	// be offset towards the interior before sweeping. When subtract is true
	// the swept volume is removed from s, otherwise it is fused on.
	SweepProfile(ctx context.Context, s Solid, dir Direction, profile []r2.Vec, offset float64, subtract bool) (Solid, error)

	Fillet(ctx context.Context, s Solid, edges EdgeSet, radius float64) (Solid, error)
	Chamfer(ctx context.Context, s Solid, edges EdgeSet, length, angle float64) (Solid, error)

	// Export hands the finished solid to the kernel's serialization routine.
	Export(ctx context.Context, s Solid, path string, format Format) error
}
