package gridfinity

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/modeler"
)

// Feature is a unit of local geometry modification applied to a block during
// a root object's build. Features apply in caller-supplied order; later
// features see the result of earlier ones and overlaps are not detected.
type Feature interface {
	Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error)
}

// Hole subtracts a plain cylindrical hole at every resolved placement of its
// location.
type Hole struct {
	Location FeatureLocation
	Radius   float64
	Depth    float64
}

// NewScrewHole is a Hole with the standard M3 screw dimensions.
func NewScrewHole(loc FeatureLocation) *Hole {
	return &Hole{Location: loc, Radius: ScrewRadius, Depth: ScrewDepth}
}

// NewMagnetHole is a Hole sized for a standard 6.5x2.4 magnet.
func NewMagnetHole(loc FeatureLocation) *Hole {
	return &Hole{Location: loc, Radius: MagnetRadius, Depth: MagnetDepth}
}

func (h *Hole) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	if h.Radius <= 0 || h.Depth <= 0 {
		return nil, fmt.Errorf("hole radius and depth must be positive, got r=%v d=%v", h.Radius, h.Depth)
	}
	return subtractAtPlacements(ctx, m, parent, h.Location, func(ctx context.Context, _ bool) (modeler.Solid, float64, error) {
		c, err := m.Cylinder(ctx, h.Radius, h.Depth)
		return c, h.Depth, err
	})
}

// ScrewHoleCountersink is a screw hole with a conical countersink opening at
// the surface.
type ScrewHoleCountersink struct {
	Location   FeatureLocation
	Radius     float64
	SinkRadius float64
	Depth      float64
	SinkAngle  float64
}

// NewScrewHoleCountersink applies the standard countersink dimensions.
func NewScrewHoleCountersink(loc FeatureLocation) *ScrewHoleCountersink {
	return &ScrewHoleCountersink{
		Location:   loc,
		Radius:     1.75,
		SinkRadius: 4.25,
		Depth:      ScrewDepth,
		SinkAngle:  82,
	}
}

func (f *ScrewHoleCountersink) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	if f.Radius <= 0 || f.Depth <= 0 || f.SinkRadius <= f.Radius {
		return nil, fmt.Errorf("countersink dimensions invalid: r=%v sink=%v d=%v", f.Radius, f.SinkRadius, f.Depth)
	}
	if f.SinkAngle <= 0 || f.SinkAngle >= 180 {
		return nil, fmt.Errorf("countersink angle must be in (0, 180), got %v", f.SinkAngle)
	}
	// Cone height follows from the included angle.
	sinkDepth := (f.SinkRadius - f.Radius) / math.Tan(f.SinkAngle*math.Pi/360)

	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, flipped bool) (modeler.Solid, float64, error) {
		hole, err := m.Cylinder(ctx, f.Radius, f.Depth)
		if err != nil {
			return nil, 0, err
		}
		// The cone's wide end faces the placed surface, narrowing inward.
		var sink modeler.Solid
		if flipped {
			sink, err = m.Cone(ctx, f.SinkRadius, f.Radius, sinkDepth)
		} else {
			sink, err = m.Cone(ctx, f.Radius, f.SinkRadius, sinkDepth)
		}
		if err != nil {
			return nil, 0, err
		}
		sink, err = m.Translate(ctx, sink, r3.Vec{Z: surfaceOffset(flipped, f.Depth, sinkDepth)})
		if err != nil {
			return nil, 0, err
		}
		cutter, err := m.Union(ctx, hole, sink)
		return cutter, f.Depth, err
	})
}

// NewRefinedScrewHole is the large center screw hole of a Gridfinity Refined
// baseplate cell.
func NewRefinedScrewHole(loc FeatureLocation) *ScrewHoleCountersink {
	return &ScrewHoleCountersink{
		Location:   loc,
		Radius:     8,
		SinkRadius: 10.5,
		Depth:      6,
		SinkAngle:  90,
	}
}

// ScrewHoleCounterbore is a screw hole with a flat-bottomed enlarged bore at
// the surface.
type ScrewHoleCounterbore struct {
	Location   FeatureLocation
	Radius     float64
	BoreRadius float64
	BoreDepth  float64
	Depth      float64
}

// NewScrewHoleCounterbore applies the standard counterbore dimensions.
func NewScrewHoleCounterbore(loc FeatureLocation) *ScrewHoleCounterbore {
	return &ScrewHoleCounterbore{
		Location:   loc,
		Radius:     ScrewRadius,
		BoreRadius: ScrewRadius * 1.5,
		BoreDepth:  2,
		Depth:      ScrewDepth,
	}
}

func (f *ScrewHoleCounterbore) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	if f.Radius <= 0 || f.Depth <= 0 || f.BoreRadius <= f.Radius || f.BoreDepth <= 0 || f.BoreDepth > f.Depth {
		return nil, fmt.Errorf("counterbore dimensions invalid: r=%v bore=%v/%v d=%v", f.Radius, f.BoreRadius, f.BoreDepth, f.Depth)
	}
	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, flipped bool) (modeler.Solid, float64, error) {
		hole, err := m.Cylinder(ctx, f.Radius, f.Depth)
		if err != nil {
			return nil, 0, err
		}
		bore, err := m.Cylinder(ctx, f.BoreRadius, f.BoreDepth)
		if err != nil {
			return nil, 0, err
		}
		bore, err = m.Translate(ctx, bore, r3.Vec{Z: surfaceOffset(flipped, f.Depth, f.BoreDepth)})
		if err != nil {
			return nil, 0, err
		}
		cutter, err := m.Union(ctx, hole, bore)
		return cutter, f.Depth, err
	})
}

// Weighted is the baseplate cutout that accepts a standard steel weight: a
// square pocket with four clip appendixes, one per side.
type Weighted struct {
	Location FeatureLocation
}

func (f *Weighted) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	const (
		pocketSize     = 21.4
		pocketDepth    = 4.0
		appendixWidth  = 8.5
		appendixLength = 4.25
		appendixDepth  = 2.0
	)
	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, flipped bool) (modeler.Solid, float64, error) {
		pocket, err := m.Box(ctx, r3.Vec{X: pocketSize, Y: pocketSize, Z: pocketDepth})
		if err != nil {
			return nil, 0, err
		}

		// The clips engage the weight at the pocket opening, so they stay
		// flush with the placed surface.
		clipZ := pocketDepth/2 - appendixDepth
		if flipped {
			clipZ = -pocketDepth / 2
		}
		outline := []r2.Vec{
			{X: appendixLength, Y: appendixWidth / 2},
			{X: -appendixWidth / 2, Y: appendixWidth / 2},
			{X: -appendixWidth / 2, Y: -appendixWidth / 2},
			{X: appendixLength, Y: -appendixWidth / 2},
		}
		clips := make([]modeler.Solid, 0, 4)
		for i := 0; i < 4; i++ {
			clip, err := m.ExtrudePolygon(ctx, outline, appendixDepth)
			if err != nil {
				return nil, 0, err
			}
			clip, err = m.Translate(ctx, clip, r3.Vec{X: pocketSize / 2, Z: clipZ})
			if err != nil {
				return nil, 0, err
			}
			clip, err = m.RotateZ(ctx, clip, float64(i)*90)
			if err != nil {
				return nil, 0, err
			}
			clips = append(clips, clip)
		}
		cutter, err := m.Union(ctx, pocket, clips...)
		return cutter, pocketDepth, err
	})
}

// MagnetHolePressfit is the Gridfinity Refined magnet hole: a snug cylinder
// with a chamfered lead-in and a thin slit that lets air escape while the
// magnet is pressed home.
type MagnetHolePressfit struct {
	Location FeatureLocation
	Radius   float64
	Depth    float64
	// The slit runs across the hole at the surface.
	SlitLength float64
	SlitWidth  float64
	SlitDepth  float64
	Chamfer    float64
}

// NewMagnetHolePressfit applies the standard pressfit dimensions.
func NewMagnetHolePressfit(loc FeatureLocation) *MagnetHolePressfit {
	return &MagnetHolePressfit{
		Location:   loc,
		Radius:     3.05,
		Depth:      2.4,
		SlitLength: 0.1,
		SlitWidth:  10.1,
		SlitDepth:  2,
		Chamfer:    0.6,
	}
}

func (f *MagnetHolePressfit) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	if f.Radius <= 0 || f.Depth <= 0 {
		return nil, fmt.Errorf("pressfit hole radius and depth must be positive, got r=%v d=%v", f.Radius, f.Depth)
	}
	if f.Chamfer < 0 || f.Chamfer >= f.Depth || f.SlitDepth > f.Depth {
		return nil, fmt.Errorf("pressfit hole details do not fit depth %v", f.Depth)
	}
	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, flipped bool) (modeler.Solid, float64, error) {
		hole, err := m.Cylinder(ctx, f.Radius, f.Depth)
		if err != nil {
			return nil, 0, err
		}
		var details []modeler.Solid
		if f.SlitWidth > 0 && f.SlitLength > 0 && f.SlitDepth > 0 {
			slit, err := m.Box(ctx, r3.Vec{X: f.SlitWidth, Y: f.SlitLength, Z: f.SlitDepth})
			if err != nil {
				return nil, 0, err
			}
			slit, err = m.Translate(ctx, slit, r3.Vec{Z: surfaceOffset(flipped, f.Depth, f.SlitDepth)})
			if err != nil {
				return nil, 0, err
			}
			details = append(details, slit)
		}
		if f.Chamfer > 0 {
			// Lead-in widens towards the placed surface.
			var lead modeler.Solid
			if flipped {
				lead, err = m.Cone(ctx, f.Radius+f.Chamfer, f.Radius, f.Chamfer)
			} else {
				lead, err = m.Cone(ctx, f.Radius, f.Radius+f.Chamfer, f.Chamfer)
			}
			if err != nil {
				return nil, 0, err
			}
			lead, err = m.Translate(ctx, lead, r3.Vec{Z: surfaceOffset(flipped, f.Depth, f.Chamfer)})
			if err != nil {
				return nil, 0, err
			}
			details = append(details, lead)
		}
		cutter, err := m.Union(ctx, hole, details...)
		return cutter, f.Depth, err
	})
}

// MagnetHoleSide is the Gridfinity Refined bin magnet pocket: the magnet
// slides in through a channel from the outer wall and seats above a thin
// floor that keeps the print surface closed.
type MagnetHoleSide struct {
	Location FeatureLocation
}

func (f *MagnetHoleSide) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	const (
		seatRadius     = 5.86 / 2
		seatThickness  = 1.9
		floorThickness = 0.6
		channelWidth   = 5.86 - 2*1.68
		channelLength  = 5.6
	)
	depth := seatThickness + floorThickness

	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, flipped bool) (modeler.Solid, float64, error) {
		seat, err := m.Cylinder(ctx, seatRadius, seatThickness)
		if err != nil {
			return nil, 0, err
		}
		// The seat sits one floor thickness in from the placed surface.
		inset := surfaceOffset(flipped, depth, seatThickness)
		if flipped {
			inset += floorThickness
		} else {
			inset -= floorThickness
		}
		seat, err = m.Translate(ctx, seat, r3.Vec{Z: inset})
		if err != nil {
			return nil, 0, err
		}
		// The channel opens at the surface and runs out through the local -Y
		// side, towards the wall the magnet slides in from.
		channel, err := m.Box(ctx, r3.Vec{X: channelWidth, Y: channelLength, Z: depth})
		if err != nil {
			return nil, 0, err
		}
		channel, err = m.Translate(ctx, channel, r3.Vec{Y: -channelLength / 2})
		if err != nil {
			return nil, 0, err
		}
		cutter, err := m.Union(ctx, seat, channel)
		return cutter, depth, err
	})
}

// ConnectionCutout is the dovetail recess two neighbouring baseplates share
// so a connector clip can hold them together. The narrow throat faces the
// local -Y side, so side placements open it towards the plate edge.
type ConnectionCutout struct {
	Location FeatureLocation
}

func (f *ConnectionCutout) Apply(ctx context.Context, m modeler.Modeler, parent modeler.Solid) (modeler.Solid, error) {
	const thickness = 3.0
	outline := []r2.Vec{
		{X: 3, Y: 0},
		{X: 3, Y: 3},
		{X: 7, Y: 6},
		{X: 7, Y: 9},
		{X: -7, Y: 9},
		{X: -7, Y: 6},
		{X: -3, Y: 3},
		{X: -3, Y: 0},
	}
	return subtractAtPlacements(ctx, m, parent, f.Location, func(ctx context.Context, _ bool) (modeler.Solid, float64, error) {
		cutter, err := m.ExtrudePolygon(ctx, outline, thickness)
		if err != nil {
			return nil, 0, err
		}
		// Center the prism so placement sinks it from the placed face.
		cutter, err = m.Translate(ctx, cutter, r3.Vec{Z: -thickness / 2})
		return cutter, thickness, err
	})
}

// buildCutter creates an origin-centered cutter and returns its cutting
// depth along Z. The placed surface sits at the cutter-frame top for plain
// placements and at the cutter-frame bottom when flipped; builders orient
// their surface details accordingly.
type buildCutter func(ctx context.Context, flipped bool) (modeler.Solid, float64, error)

// surfaceOffset positions an origin-centered detail of height h flush with
// the placed surface of a cutter of the given depth.
func surfaceOffset(flipped bool, depth, h float64) float64 {
	if flipped {
		return h/2 - depth/2
	}
	return depth/2 - h/2
}

// subtractAtPlacements resolves the location against the parent bounds,
// instantiates one cutter per placement, and removes them all in a single
// boolean difference.
func subtractAtPlacements(ctx context.Context, m modeler.Modeler, parent modeler.Solid, loc FeatureLocation, build buildCutter) (modeler.Solid, error) {
	if loc == nil {
		return nil, fmt.Errorf("feature has no location")
	}
	placements, err := loc.Resolve(parent.Bounds())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve feature location: %w", err)
	}

	cutters := make([]modeler.Solid, 0, len(placements))
	for _, pl := range placements {
		cutter, depth, err := build(ctx, pl.Flip)
		if err != nil {
			return nil, err
		}
		if pl.RotZ != 0 {
			if cutter, err = m.RotateZ(ctx, cutter, pl.RotZ); err != nil {
				return nil, err
			}
		}
		// Cutters are origin-centered; sink them into the material from the
		// placed face.
		zShift := -depth / 2
		if pl.Flip {
			zShift = depth / 2
		}
		cutter, err = m.Translate(ctx, cutter, r3.Vec{X: pl.Pos.X, Y: pl.Pos.Y, Z: pl.Pos.Z + zShift})
		if err != nil {
			return nil, err
		}
		cutters = append(cutters, cutter)
	}
	return m.Subtract(ctx, parent, cutters...)
}

// CompartmentFeature modifies a compartment cutter before it is subtracted
// from a bin.
type CompartmentFeature interface {
	ApplyToCompartment(ctx context.Context, m modeler.Modeler, cutter modeler.Solid) (modeler.Solid, error)
}

// Label chamfers a shelf into the back top edge of a compartment for a
// label strip.
type Label struct {
	angle float64
}

// NewLabel validates the shelf angle; zero means the standard angle.
func NewLabel(angle float64) (*Label, error) {
	if angle < 0 || angle > 90 {
		return nil, fmt.Errorf("label angle must be between 0 and 90, got %v", angle)
	}
	if angle == 0 {
		angle = LabelAngle
	}
	return &Label{angle: angle}, nil
}

// Angle returns the shelf angle in degrees.
func (l *Label) Angle() float64 { return l.angle }

func (l *Label) ApplyToCompartment(ctx context.Context, m modeler.Modeler, cutter modeler.Solid) (modeler.Solid, error) {
	size := cutter.Bounds().Size()
	if size.Y <= LabelWidth {
		return nil, fmt.Errorf("compartment depth %v too small for a %vmm label shelf", size.Y, LabelWidth)
	}
	return m.Chamfer(ctx, cutter, modeler.EdgeTopBack, LabelWidth, l.angle)
}

// Scoop fillets the front bottom edge of a compartment into a ramp for
// picking out small parts.
type Scoop struct {
	Radius float64
	// WallCorrection thickens the front wall so the ramp lines up with a
	// stacking lip above it.
	WallCorrection float64
}

// NewScoop is a Scoop with the standard ramp radius.
func NewScoop() *Scoop {
	return &Scoop{Radius: ScoopRadius}
}

func (s *Scoop) ApplyToCompartment(ctx context.Context, m modeler.Modeler, cutter modeler.Solid) (modeler.Solid, error) {
	radius := s.Radius
	if radius <= 0 {
		return nil, fmt.Errorf("scoop radius must be positive, got %v", radius)
	}
	bounds := cutter.Bounds()
	if radius > min(bounds.Size().Y, bounds.Size().Z) {
		return nil, fmt.Errorf("scoop radius %v too large for compartment %v", radius, bounds.Size())
	}
	var err error
	if s.WallCorrection > 0 {
		cutter, err = m.ExtrudeFace(ctx, cutter, modeler.DirFront, -s.WallCorrection)
		if err != nil {
			return nil, err
		}
	}
	return m.Fillet(ctx, cutter, modeler.EdgeBottomFront, radius)
}
