package gridfinity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridfinitygo/gridfinity"
	"github.com/vk/gridfinitygo/modeler/planner"
)

func TestNewBin_HeightUnits(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 2, 1)
	require.NoError(t, err)

	// --- Act ---
	bin, err := gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{
		HeightUnits: 3,
	})

	// --- Assert ---
	require.NoError(t, err)

	size := bin.Solid().Bounds().Size()
	assert.InDelta(t, 83.5, size.X, 1e-9)
	assert.InDelta(t, 41.5, size.Y, 1e-9)
	// Three 7mm units, base included.
	assert.InDelta(t, 21.0, size.Z, 1e-9)
	assert.InDelta(t, 21.0, bin.Height(), 1e-9)
}

func TestNewBin_HeightMM(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 1, 1)
	require.NoError(t, err)

	// --- Act ---
	bin, err := gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{
		HeightMM: 30,
	})

	// --- Assert ---
	require.NoError(t, err)
	// Absolute wall height stacks on top of the base.
	assert.InDelta(t, base.Height()+30, bin.Height(), 1e-9)
}

func TestNewBin_LipGrowsAboveNominalHeight(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 1, 1)
	require.NoError(t, err)

	// --- Act ---
	bin, err := gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{
		HeightUnits: 2,
		Lip:         true,
	})

	// --- Assert ---
	require.NoError(t, err)
	// The stacking lip rises above the nominal height by the profile height.
	assert.InDelta(t, 14.0+4.4, bin.Height(), 1e-9)
}

func TestNewBin_Compartments(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 2, 1)
	require.NoError(t, err)

	comps, err := gridfinity.NewCompartmentsEqual(2, 1)
	require.NoError(t, err)

	opsBefore := len(m.Ops())

	// --- Act ---
	bin, err := gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{
		HeightUnits:  3,
		Compartments: comps,
	})

	// --- Assert ---
	require.NoError(t, err)
	assert.InDelta(t, 21.0, bin.Height(), 1e-9, "hollowing never changes the outer bounds")

	// One subtraction per compartment, in numbering order.
	var subtracts int
	for _, op := range m.Ops()[opsBefore:] {
		if op.Name == "subtract" {
			subtracts++
		}
	}
	assert.Equal(t, 2, subtracts)
}

func TestNewBin_SpanningCompartmentCutsOnce(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 2, 2)
	require.NoError(t, err)

	// Compartment 1 spans the whole back row.
	comps, err := gridfinity.NewCompartments([][]int{
		{1, 1},
		{2, 3},
	}, nil, 0, 0)
	require.NoError(t, err)

	opsBefore := len(m.Ops())

	// --- Act ---
	_, err = gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{
		HeightUnits:  4,
		Compartments: comps,
	})

	// --- Assert ---
	require.NoError(t, err)

	var subtracts int
	for _, op := range m.Ops()[opsBefore:] {
		if op.Name == "subtract" {
			subtracts++
		}
	}
	assert.Equal(t, 3, subtracts, "the spanning compartment is one cutter")
}

func TestNewBin_Validation(t *testing.T) {
	t.Parallel()

	m := planner.New()
	base, err := gridfinity.NewBaseEqual(context.Background(), m, 1, 1)
	require.NoError(t, err)

	_, err = gridfinity.NewBin(context.Background(), m, nil, gridfinity.BinOptions{HeightUnits: 3})
	require.Error(t, err, "a bin needs a base")

	_, err = gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{HeightMM: 20, HeightUnits: 3})
	require.Error(t, err, "millimetres and units are mutually exclusive")

	_, err = gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{HeightUnits: 1})
	require.Error(t, err, "one unit does not clear the base height")

	_, err = gridfinity.NewBin(context.Background(), m, base, gridfinity.BinOptions{HeightMM: -5})
	require.Error(t, err)
}
