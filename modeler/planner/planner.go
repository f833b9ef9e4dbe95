package planner

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// solid is the planner's handle type. Bounds are the only observable geometry.
type solid struct {
	id     string
	bounds modeler.Box
}

func (s *solid) Bounds() modeler.Box { return s.bounds }

// Planner records a single build's kernel call trace. It is not safe for
// concurrent use; each build gets its own Planner.
type Planner struct {
	ops  []Op
	next int
}

// New creates an empty Planner.
func New() *Planner {
	return &Planner{}
}

// Ops returns a copy of the recorded trace.
func (p *Planner) Ops() []Op {
	out := make([]Op, len(p.ops))
	copy(out, p.ops)
	return out
}

// record appends an op and mints the output solid.
func (p *Planner) record(name string, args map[string]any, bounds modeler.Box, in ...modeler.Solid) *solid {
	out := &solid{id: fmt.Sprintf("s%d", p.next), bounds: bounds}
	p.next++

	ids := make([]string, 0, len(in))
	for _, s := range in {
		ids = append(ids, s.(*solid).id)
	}
	p.ops = append(p.ops, Op{
		Seq:  len(p.ops),
		Name: name,
		Args: args,
		In:   ids,
		Out:  out.id,
	})
	return out
}

func centered(size r3.Vec) modeler.Box {
	half := r3.Scale(0.5, size)
	return modeler.Box{Min: r3.Scale(-1, half), Max: half}
}

// Box creates an origin-centered box.
func (p *Planner) Box(ctx context.Context, size r3.Vec) (modeler.Solid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("planner: box size must be positive, got %v", size)
	}
	return p.record("box", map[string]any{"size": vec3(size)}, centered(size)), nil
}

// RoundedBox creates an origin-centered box with rounded vertical corners.
func (p *Planner) RoundedBox(ctx context.Context, size r3.Vec, cornerRadius float64) (modeler.Solid, error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("planner: rounded box size must be positive, got %v", size)
	}
	if cornerRadius < 0 || cornerRadius*2 > min(size.X, size.Y) {
		return nil, fmt.Errorf("planner: corner radius %v does not fit size %v", cornerRadius, size)
	}
	args := map[string]any{"size": vec3(size), "corner_radius": cornerRadius}
	return p.record("rounded_box", args, centered(size)), nil
}

// Cylinder creates an origin-centered cylinder with its axis along Z.
func (p *Planner) Cylinder(ctx context.Context, radius, height float64) (modeler.Solid, error) {
	if radius <= 0 || height <= 0 {
		return nil, fmt.Errorf("planner: cylinder radius and height must be positive, got r=%v h=%v", radius, height)
	}
	b := centered(r3.Vec{X: 2 * radius, Y: 2 * radius, Z: height})
	return p.record("cylinder", map[string]any{"radius": radius, "height": height}, b), nil
}

// Cone creates an origin-centered cone frustum with its axis along Z.
func (p *Planner) Cone(ctx context.Context, bottomRadius, topRadius, height float64) (modeler.Solid, error) {
	if bottomRadius <= 0 && topRadius <= 0 {
		return nil, fmt.Errorf("planner: cone needs at least one positive radius")
	}
	if height <= 0 {
		return nil, fmt.Errorf("planner: cone height must be positive, got %v", height)
	}
	r := max(bottomRadius, topRadius)
	b := centered(r3.Vec{X: 2 * r, Y: 2 * r, Z: height})
	args := map[string]any{"bottom_radius": bottomRadius, "top_radius": topRadius, "height": height}
	return p.record("cone", args, b), nil
}

// ExtrudePolygon extrudes an XY outline from z=0 towards +Z, or -Z when
// height is negative.
func (p *Planner) ExtrudePolygon(ctx context.Context, outline []r2.Vec, height float64) (modeler.Solid, error) {
	if len(outline) < 3 {
		return nil, fmt.Errorf("planner: polygon needs at least 3 points, got %d", len(outline))
	}
	if height == 0 {
		return nil, fmt.Errorf("planner: polygon extrusion height must be non-zero")
	}
	b := modeler.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	pts := make([][2]float64, 0, len(outline))
	for _, v := range outline {
		b.Min.X = min(b.Min.X, v.X)
		b.Min.Y = min(b.Min.Y, v.Y)
		b.Max.X = max(b.Max.X, v.X)
		b.Max.Y = max(b.Max.Y, v.Y)
		pts = append(pts, [2]float64{v.X, v.Y})
	}
	if height > 0 {
		b.Max.Z = height
	} else {
		b.Min.Z = height
	}
	return p.record("extrude_polygon", map[string]any{"outline": pts, "height": height}, b), nil
}

// Translate shifts a solid.
func (p *Planner) Translate(ctx context.Context, s modeler.Solid, offset r3.Vec) (modeler.Solid, error) {
	b := s.Bounds()
	b.Min = r3.Add(b.Min, offset)
	b.Max = r3.Add(b.Max, offset)
	return p.record("translate", map[string]any{"offset": vec3(offset)}, b, s), nil
}

// RotateZ rotates a solid about the Z axis through the origin.
func (p *Planner) RotateZ(ctx context.Context, s modeler.Solid, degrees float64) (modeler.Solid, error) {
	rad := degrees * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)

	in := s.Bounds()
	b := modeler.Box{
		Min: r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: in.Min.Z},
		Max: r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: in.Max.Z},
	}
	for _, x := range []float64{in.Min.X, in.Max.X} {
		for _, y := range []float64{in.Min.Y, in.Max.Y} {
			rx := x*cos - y*sin
			ry := x*sin + y*cos
			b.Min.X = min(b.Min.X, rx)
			b.Min.Y = min(b.Min.Y, ry)
			b.Max.X = max(b.Max.X, rx)
			b.Max.Y = max(b.Max.Y, ry)
		}
	}
	return p.record("rotate_z", map[string]any{"degrees": degrees}, b, s), nil
}

// Union fuses solids together.
func (p *Planner) Union(ctx context.Context, base modeler.Solid, others ...modeler.Solid) (modeler.Solid, error) {
	b := base.Bounds()
	for _, o := range others {
		b = b.Union(o.Bounds())
	}
	in := append([]modeler.Solid{base}, others...)
	return p.record("union", nil, b, in...), nil
}

// Subtract removes the cutters from base. The bounding box of a difference
// never grows, and shrink detection needs real geometry, so the base bounds
// carry over.
func (p *Planner) Subtract(ctx context.Context, base modeler.Solid, cutters ...modeler.Solid) (modeler.Solid, error) {
	if len(cutters) == 0 {
		return nil, fmt.Errorf("planner: subtract needs at least one cutter")
	}
	in := append([]modeler.Solid{base}, cutters...)
	return p.record("subtract", nil, base.Bounds(), in...), nil
}

// ExtrudeFace lengthens the solid along the selected face normal.
func (p *Planner) ExtrudeFace(ctx context.Context, s modeler.Solid, dir modeler.Direction, distance float64) (modeler.Solid, error) {
	b := s.Bounds()
	n := dir.Vector()
	grow := r3.Scale(distance, n)
	switch {
	case n.X > 0 || n.Y > 0 || n.Z > 0:
		b.Max = r3.Add(b.Max, grow)
	default:
		b.Min = r3.Add(b.Min, grow)
	}
	if b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z {
		return nil, fmt.Errorf("planner: face extrusion by %v degenerates the solid", distance)
	}
	args := map[string]any{"face": dir.String(), "distance": distance}
	return p.record("extrude_face", args, b, s), nil
}

// SweepProfile sweeps a profile along the outer wire of the selected face.
// When fusing, the bounds grow along the face normal by the profile height;
// a subtracting sweep carves within the existing bounds.
func (p *Planner) SweepProfile(ctx context.Context, s modeler.Solid, dir modeler.Direction, profile []r2.Vec, offset float64, subtract bool) (modeler.Solid, error) {
	if len(profile) < 3 {
		return nil, fmt.Errorf("planner: sweep profile needs at least 3 points, got %d", len(profile))
	}
	b := s.Bounds()
	if !subtract {
		var rise float64
		for _, v := range profile {
			rise = max(rise, v.Y)
		}
		n := dir.Vector()
		grow := r3.Scale(rise, n)
		if n.X > 0 || n.Y > 0 || n.Z > 0 {
			b.Max = r3.Add(b.Max, grow)
		} else {
			b.Min = r3.Add(b.Min, grow)
		}
	}
	pts := make([][2]float64, 0, len(profile))
	for _, v := range profile {
		pts = append(pts, [2]float64{v.X, v.Y})
	}
	args := map[string]any{"face": dir.String(), "profile": pts, "offset": offset, "subtract": subtract}
	return p.record("sweep_profile", args, b, s), nil
}

// Fillet rounds the selected edges. Fillets carve within the bounds.
func (p *Planner) Fillet(ctx context.Context, s modeler.Solid, edges modeler.EdgeSet, radius float64) (modeler.Solid, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("planner: fillet radius must be positive, got %v", radius)
	}
	args := map[string]any{"edges": edges.String(), "radius": radius}
	return p.record("fillet", args, s.Bounds(), s), nil
}

// Chamfer bevels the selected edges.
func (p *Planner) Chamfer(ctx context.Context, s modeler.Solid, edges modeler.EdgeSet, length, angle float64) (modeler.Solid, error) {
	if length <= 0 {
		return nil, fmt.Errorf("planner: chamfer length must be positive, got %v", length)
	}
	if angle <= 0 || angle >= 90 {
		return nil, fmt.Errorf("planner: chamfer angle must be in (0, 90), got %v", angle)
	}
	args := map[string]any{"edges": edges.String(), "length": length, "angle": angle}
	return p.record("chamfer", args, s.Bounds(), s), nil
}

func vec3(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }
