package modeler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	f, ok := ParseFormat("stl")
	assert.True(t, ok)
	assert.Equal(t, FormatSTL, f)

	f, ok = ParseFormat("STEP")
	assert.True(t, ok)
	assert.Equal(t, FormatSTEP, f)

	_, ok = ParseFormat("obj")
	assert.False(t, ok)
}

func TestDirection_Vector(t *testing.T) {
	t.Parallel()

	assert.Equal(t, r3.Vec{Z: 1}, DirTop.Vector())
	assert.Equal(t, r3.Vec{Z: -1}, DirBottom.Vector())
	assert.Equal(t, r3.Vec{Y: -1}, DirFront.Vector())
	assert.Equal(t, r3.Vec{Y: 1}, DirBack.Vector())
}

func TestBox_Helpers(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a := Box{Min: r3.Vec{X: -1, Y: -2, Z: 0}, Max: r3.Vec{X: 1, Y: 2, Z: 4}}
	b := Box{Min: r3.Vec{X: 0, Y: 0, Z: -1}, Max: r3.Vec{X: 3, Y: 1, Z: 1}}

	// --- Assert ---
	assert.Equal(t, r3.Vec{X: 2, Y: 4, Z: 4}, a.Size())
	assert.Equal(t, r3.Vec{X: 0, Y: 0, Z: 2}, a.Center())

	u := a.Union(b)
	assert.Equal(t, r3.Vec{X: -1, Y: -2, Z: -1}, u.Min)
	assert.Equal(t, r3.Vec{X: 3, Y: 2, Z: 4}, u.Max)

	assert.True(t, a.Contains(r3.Vec{X: 0, Y: 0, Z: 0}))
	assert.True(t, a.Contains(a.Max), "the boundary is inside")
	assert.False(t, a.Contains(r3.Vec{X: 2, Y: 0, Z: 0}))
}
