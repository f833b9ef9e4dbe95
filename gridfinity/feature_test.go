package gridfinity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/vk/gridfinitygo/gridfinity"
	"github.com/vk/gridfinitygo/modeler"
	"github.com/vk/gridfinitygo/modeler/planner"
)

// newBlock creates a plain 42x42x5 block to apply features to.
func newBlock(t *testing.T, m modeler.Modeler) modeler.Solid {
	t.Helper()
	block, err := m.Box(context.Background(), r3.Vec{X: 42, Y: 42, Z: 5})
	require.NoError(t, err)
	return block
}

// traceShiftZ accumulates the Z translation applied downstream of the solid
// with the given id, following unions, rotations, and the final difference.
func traceShiftZ(ops []planner.Op, out string) float64 {
	var z float64
	cur := out
	for _, op := range ops {
		consumed := false
		for _, id := range op.In {
			if id == cur {
				consumed = true
				break
			}
		}
		if !consumed {
			continue
		}
		if op.Name == "translate" {
			z += op.Args["offset"].([3]float64)[2]
		}
		cur = op.Out
	}
	return z
}

// findOps returns every op with the given name.
func findOps(ops []planner.Op, name string) []planner.Op {
	var out []planner.Op
	for _, op := range ops {
		if op.Name == name {
			out = append(out, op)
		}
	}
	return out
}

// boxesOfSize returns every box op with the given size argument.
func boxesOfSize(ops []planner.Op, size [3]float64) []planner.Op {
	var out []planner.Op
	for _, op := range findOps(ops, "box") {
		if op.Args["size"].([3]float64) == size {
			out = append(out, op)
		}
	}
	return out
}

// cylinderRadii extracts the radius argument of every cylinder op in order.
func cylinderRadii(ops []planner.Op) []float64 {
	var radii []float64
	for _, op := range ops {
		if op.Name == "cylinder" {
			radii = append(radii, op.Args["radius"].(float64))
		}
	}
	return radii
}

func TestHole_CutsAtEveryCorner(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	hole := gridfinity.NewMagnetHole(gridfinity.BottomCorners{})

	// --- Act ---
	result, err := hole.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds(), "holes never grow the block")

	radii := cylinderRadii(m.Ops())
	assert.Equal(t, []float64{3.25, 3.25, 3.25, 3.25}, radii, "one magnet cutter per corner")

	// All four cutters are removed in a single difference.
	last := m.Ops()[len(m.Ops())-1]
	assert.Equal(t, "subtract", last.Name)
	assert.Len(t, last.In, 5)
}

func TestFeatures_ApplyInDeclarationOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	magnet := gridfinity.NewMagnetHole(gridfinity.BottomCorners{})
	screw := gridfinity.NewScrewHole(gridfinity.BottomMiddle{})

	// --- Act ---
	result, err := magnet.Apply(context.Background(), m, block)
	require.NoError(t, err)
	result, err = screw.Apply(context.Background(), m, result)
	require.NoError(t, err)

	// --- Assert ---
	// The trace keeps the declaration order: magnet cutters first, then the
	// screw cutter.
	require.NotNil(t, result)
	radii := cylinderRadii(m.Ops())
	assert.Equal(t, []float64{3.25, 3.25, 3.25, 3.25, 1.5}, radii)
}

func TestHole_RejectsNonPositiveDimensions(t *testing.T) {
	t.Parallel()

	m := planner.New()
	block := newBlock(t, m)
	hole := &gridfinity.Hole{Location: gridfinity.BottomMiddle{}, Radius: -1, Depth: 2}

	_, err := hole.Apply(context.Background(), m, block)
	require.Error(t, err)
}

func TestScrewHoleCountersink(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	sink := gridfinity.NewScrewHoleCountersink(gridfinity.BottomMiddle{})

	// --- Act ---
	result, err := sink.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds())

	var cones int
	for _, op := range m.Ops() {
		if op.Name == "cone" {
			cones++
			assert.Equal(t, 4.25, op.Args["bottom_radius"])
		}
	}
	assert.Equal(t, 1, cones, "the countersink flares with a single cone")
}

func TestScrewHoleCountersink_FlareOpensAtPlacedSurface(t *testing.T) {
	t.Parallel()

	t.Run("top placement", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		m := planner.New()
		block := newBlock(t, m)
		sink := gridfinity.NewScrewHoleCountersink(gridfinity.TopMiddle{})

		// --- Act ---
		_, err := sink.Apply(context.Background(), m, block)

		// --- Assert ---
		require.NoError(t, err)
		cones := findOps(m.Ops(), "cone")
		require.Len(t, cones, 1)
		// The wide end faces up, flush with the top face at z=2.5.
		assert.Equal(t, 4.25, cones[0].Args["top_radius"])
		assert.Equal(t, 1.75, cones[0].Args["bottom_radius"])

		height := cones[0].Args["height"].(float64)
		top := traceShiftZ(m.Ops(), cones[0].Out) + height/2
		assert.InDelta(t, 2.5, top, 1e-9)
	})

	t.Run("bottom placement", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		m := planner.New()
		block := newBlock(t, m)
		sink := gridfinity.NewScrewHoleCountersink(gridfinity.BottomMiddle{})

		// --- Act ---
		_, err := sink.Apply(context.Background(), m, block)

		// --- Assert ---
		require.NoError(t, err)
		cones := findOps(m.Ops(), "cone")
		require.Len(t, cones, 1)
		// The wide end faces down, flush with the bottom face at z=-2.5.
		assert.Equal(t, 4.25, cones[0].Args["bottom_radius"])
		assert.Equal(t, 1.75, cones[0].Args["top_radius"])

		height := cones[0].Args["height"].(float64)
		bottom := traceShiftZ(m.Ops(), cones[0].Out) - height/2
		assert.InDelta(t, -2.5, bottom, 1e-9)
	})
}

func TestScrewHoleCounterbore(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	bore := gridfinity.NewScrewHoleCounterbore(gridfinity.BottomCorners{})

	// --- Act ---
	_, err := bore.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	radii := cylinderRadii(m.Ops())
	// Each corner gets the narrow shaft plus the wider bore.
	require.Len(t, radii, 8)
	assert.Contains(t, radii, 1.5)
	assert.Contains(t, radii, 2.25)
}

func TestScrewHoleCounterbore_BoreOpensAtPlacedSurface(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	bore := gridfinity.NewScrewHoleCounterbore(gridfinity.TopMiddle{})

	// --- Act ---
	_, err := bore.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)

	var wide *planner.Op
	for _, op := range findOps(m.Ops(), "cylinder") {
		if op.Args["radius"] == 2.25 {
			op := op
			wide = &op
		}
	}
	require.NotNil(t, wide, "the enlarged bore is recorded")

	// The bore reaches the top face at z=2.5; the narrow shaft carries on
	// below it.
	height := wide.Args["height"].(float64)
	top := traceShiftZ(m.Ops(), wide.Out) + height/2
	assert.InDelta(t, 2.5, top, 1e-9)
}

func TestWeighted_CutsPocketAndClips(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	weighted := &gridfinity.Weighted{Location: gridfinity.BottomMiddle{}}

	// --- Act ---
	result, err := weighted.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds())

	var polygons int
	for _, op := range m.Ops() {
		if op.Name == "extrude_polygon" {
			polygons++
		}
	}
	assert.Equal(t, 4, polygons, "one clip cutout per pocket side")
}

func TestWeighted_ClipsEngageAtPlacedSurface(t *testing.T) {
	t.Parallel()

	t.Run("bottom placement", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		m := planner.New()
		block := newBlock(t, m)
		weighted := &gridfinity.Weighted{Location: gridfinity.BottomMiddle{}}

		// --- Act ---
		_, err := weighted.Apply(context.Background(), m, block)

		// --- Assert ---
		require.NoError(t, err)
		clips := findOps(m.Ops(), "extrude_polygon")
		require.Len(t, clips, 4)

		// Clips extrude over [0, 2] locally; placed, they stay flush with
		// the bottom face at z=-2.5 where the weight slides in, not at the
		// pocket's closed end.
		shift := traceShiftZ(m.Ops(), clips[0].Out)
		assert.InDelta(t, -2.5, shift, 1e-9)
		assert.InDelta(t, -0.5, shift+2, 1e-9)
	})

	t.Run("top placement", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		m := planner.New()
		block := newBlock(t, m)
		weighted := &gridfinity.Weighted{Location: gridfinity.TopMiddle{}}

		// --- Act ---
		_, err := weighted.Apply(context.Background(), m, block)

		// --- Assert ---
		require.NoError(t, err)
		clips := findOps(m.Ops(), "extrude_polygon")
		require.Len(t, clips, 4)

		shift := traceShiftZ(m.Ops(), clips[0].Out)
		assert.InDelta(t, 2.5, shift+2, 1e-9, "clips end flush with the top face")
	})
}

func TestMagnetHolePressfit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	hole := gridfinity.NewMagnetHolePressfit(gridfinity.BottomCorners{})

	// --- Act ---
	result, err := hole.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds())

	radii := cylinderRadii(m.Ops())
	assert.Equal(t, []float64{3.05, 3.05, 3.05, 3.05}, radii, "one snug hole per corner")

	slits := boxesOfSize(m.Ops(), [3]float64{10.1, 0.1, 2})
	assert.Len(t, slits, 4, "one air slit per hole")

	leads := findOps(m.Ops(), "cone")
	require.Len(t, leads, 4)
	// The lead-in widens towards the bottom face it is placed on.
	assert.InDelta(t, 3.65, leads[0].Args["bottom_radius"].(float64), 1e-9)
	assert.Equal(t, 3.05, leads[0].Args["top_radius"])

	height := leads[0].Args["height"].(float64)
	bottom := traceShiftZ(m.Ops(), leads[0].Out) - height/2
	assert.InDelta(t, -2.5, bottom, 1e-9)
}

func TestMagnetHoleSide(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	hole := &gridfinity.MagnetHoleSide{Location: gridfinity.BottomSides{NX: 1}}

	// --- Act ---
	result, err := hole.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds())

	seats := findOps(m.Ops(), "cylinder")
	require.Len(t, seats, 2, "one pocket per front and back edge")
	assert.Equal(t, 2.93, seats[0].Args["radius"])

	// The seat keeps a 0.6mm floor between the magnet and the bottom face.
	height := seats[0].Args["height"].(float64)
	bottom := traceShiftZ(m.Ops(), seats[0].Out) - height/2
	assert.InDelta(t, -1.9, bottom, 1e-9)

	channels := boxesOfSize(m.Ops(), [3]float64{2.5, 5.6, 2.5})
	assert.Len(t, channels, 2, "each pocket opens through a slide-in channel")
}

func TestConnectionCutout(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	block := newBlock(t, m)
	cutout := &gridfinity.ConnectionCutout{Location: gridfinity.BottomSides{NX: 1}}

	// --- Act ---
	result, err := cutout.Apply(context.Background(), m, block)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, block.Bounds(), result.Bounds())

	prisms := findOps(m.Ops(), "extrude_polygon")
	require.Len(t, prisms, 2, "one dovetail per front and back edge")
	assert.Equal(t, 3.0, prisms[0].Args["height"])

	last := m.Ops()[len(m.Ops())-1]
	assert.Equal(t, "subtract", last.Name)
	assert.Len(t, last.In, 3)
}

func TestNewLabel_ValidatesAngle(t *testing.T) {
	t.Parallel()

	// --- Act ---
	label, err := gridfinity.NewLabel(0)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 36.0, label.Angle(), "zero selects the standard angle")

	_, err = gridfinity.NewLabel(-5)
	require.Error(t, err)

	_, err = gridfinity.NewLabel(95)
	require.Error(t, err)
}

func TestLabel_RejectsShallowCompartment(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	cutter, err := m.Box(context.Background(), r3.Vec{X: 30, Y: 10, Z: 20})
	require.NoError(t, err)

	label, err := gridfinity.NewLabel(45)
	require.NoError(t, err)

	// --- Act ---
	_, err = label.ApplyToCompartment(context.Background(), m, cutter)

	// --- Assert ---
	require.Error(t, err, "a 10mm deep compartment cannot hold a 12mm shelf")
}

func TestScoop_FilletsFrontBottomEdge(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	cutter, err := m.Box(context.Background(), r3.Vec{X: 30, Y: 30, Z: 20})
	require.NoError(t, err)

	// --- Act ---
	result, err := gridfinity.NewScoop().ApplyToCompartment(context.Background(), m, cutter)

	// --- Assert ---
	require.NoError(t, err)
	require.NotNil(t, result)

	last := m.Ops()[len(m.Ops())-1]
	assert.Equal(t, "fillet", last.Name)
	assert.Equal(t, "bottom_front", last.Args["edges"])
	assert.Equal(t, 5.0, last.Args["radius"])
}
