package gridfinity

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// Placement is one resolved feature position on a solid.
type Placement struct {
	// Pos is the anchor point on the face, in the parent's frame.
	Pos r3.Vec
	// RotZ orients the feature about the face normal, in degrees.
	RotZ float64
	// Flip marks a bottom-face placement: the feature is turned over so that
	// its cutting direction points up into the material.
	Flip bool
}

// FeatureLocation resolves a placement policy against the bounds of the block
// a feature is applied to. Every resolved coordinate must lie within those
// bounds; a policy that cannot fit is a construction-time input error.
type FeatureLocation interface {
	Resolve(bounds modeler.Box) ([]Placement, error)
}

// TopMiddle places a single feature at the center of the top face.
type TopMiddle struct{}

func (TopMiddle) Resolve(bounds modeler.Box) ([]Placement, error) {
	c := bounds.Center()
	return []Placement{{Pos: r3.Vec{X: c.X, Y: c.Y, Z: bounds.Max.Z}}}, nil
}

// BottomMiddle places a single feature at the center of the bottom face.
type BottomMiddle struct{}

func (BottomMiddle) Resolve(bounds modeler.Box) ([]Placement, error) {
	c := bounds.Center()
	return []Placement{{Pos: r3.Vec{X: c.X, Y: c.Y, Z: bounds.Min.Z}, Flip: true}}, nil
}

// TopCorners places four features at the corners of the top face, inset by
// Offset from each side. A zero Offset uses the standard hole inset.
type TopCorners struct {
	Offset float64
}

func (l TopCorners) Resolve(bounds modeler.Box) ([]Placement, error) {
	return cornerPlacements(bounds, l.Offset, bounds.Max.Z, false)
}

// BottomCorners places four features at the corners of the bottom face,
// inset by Offset from each side. A zero Offset uses the standard hole
// inset. This is the location of the standard magnet and screw holes.
type BottomCorners struct {
	Offset float64
}

func (l BottomCorners) Resolve(bounds modeler.Box) ([]Placement, error) {
	return cornerPlacements(bounds, l.Offset, bounds.Min.Z, true)
}

func cornerPlacements(bounds modeler.Box, offset, z float64, flip bool) ([]Placement, error) {
	if offset == 0 {
		offset = HoleFromSide
	}
	size := bounds.Size()
	dx := size.X/2 - offset
	dy := size.Y/2 - offset
	if dx < 0 || dy < 0 {
		return nil, fmt.Errorf("corner offset %v exceeds half the block size %vx%v", offset, size.X, size.Y)
	}

	c := bounds.Center()
	out := make([]Placement, 0, 4)
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			out = append(out, Placement{
				Pos:  r3.Vec{X: c.X + sx*dx, Y: c.Y + sy*dy, Z: z},
				Flip: flip,
			})
		}
	}
	return out, nil
}

// BottomSides distributes features along the edges of the bottom face: NX
// evenly spaced points on each of the front and back edges, NY on each of
// the left and right edges. Offset shifts every placement towards the face
// interior. Each placement is rotated so the feature's local +Y axis points
// inward.
type BottomSides struct {
	NX, NY int
	Offset float64
}

func (l BottomSides) Resolve(bounds modeler.Box) ([]Placement, error) {
	if l.NX < 0 || l.NY < 0 {
		return nil, fmt.Errorf("side counts must not be negative, got nx=%d ny=%d", l.NX, l.NY)
	}
	if l.NX == 0 && l.NY == 0 {
		return nil, fmt.Errorf("side placement needs at least one point per edge pair")
	}
	size := bounds.Size()
	if l.Offset < 0 || l.Offset > min(size.X, size.Y)/2 {
		return nil, fmt.Errorf("side offset %v does not fit block size %vx%v", l.Offset, size.X, size.Y)
	}

	z := bounds.Min.Z
	var out []Placement

	// Front and back edges run along X; fractions (2i+1)/2n keep the points
	// evenly spaced and away from the corners.
	for i := 0; i < l.NX; i++ {
		f := float64(2*i+1) / float64(2*l.NX)
		x := bounds.Min.X + f*size.X
		out = append(out,
			Placement{Pos: r3.Vec{X: x, Y: bounds.Min.Y + l.Offset, Z: z}, RotZ: 0, Flip: true},
			Placement{Pos: r3.Vec{X: x, Y: bounds.Max.Y - l.Offset, Z: z}, RotZ: 180, Flip: true},
		)
	}
	for i := 0; i < l.NY; i++ {
		f := float64(2*i+1) / float64(2*l.NY)
		y := bounds.Min.Y + f*size.Y
		out = append(out,
			Placement{Pos: r3.Vec{X: bounds.Min.X + l.Offset, Y: y, Z: z}, RotZ: 270, Flip: true},
			Placement{Pos: r3.Vec{X: bounds.Max.X - l.Offset, Y: y, Z: z}, RotZ: 90, Flip: true},
		)
	}

	for _, pl := range out {
		if !bounds.Contains(pl.Pos) {
			return nil, fmt.Errorf("side placement %v falls outside block bounds", pl.Pos)
		}
	}
	return out, nil
}
