package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridfinitygo/internal/config"
)

func writeHCL(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoader_LoadBin(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "bin.hcl", `
		bin "parts_bin" {
			grid_x       = 2
			grid_y       = 1
			height_units = 3

			feature "magnet_hole" {
				location = "bottom_corners"
			}

			compartments {
				div_x = 2
				div_y = 1

				compartment {
					label {}
					scoop {
						radius = 8
					}
				}
			}

			lip {}
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Parts, 1)

	part := model.Parts[0]
	assert.Equal(t, config.KindBin, part.Kind)
	assert.Equal(t, "parts_bin", part.Name)
	assert.Equal(t, 2, part.GridX)
	assert.Equal(t, 1, part.GridY)
	assert.Equal(t, 3, part.HeightUnits)
	assert.True(t, part.Lip)

	require.Len(t, part.Features, 1)
	assert.Equal(t, "magnet_hole", part.Features[0].Kind)
	assert.Equal(t, "bottom_corners", part.Features[0].Location)

	require.NotNil(t, part.Compartments)
	assert.Equal(t, 2, part.Compartments.DivX)
	assert.Equal(t, 1, part.Compartments.DivY)
	require.Len(t, part.Compartments.List, 1)
	require.NotNil(t, part.Compartments.List[0].Label)
	require.NotNil(t, part.Compartments.List[0].Scoop)
	assert.Equal(t, 8.0, part.Compartments.List[0].Scoop.Radius)
}

func TestLoader_LoadCellsMatrix(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	path := writeHCL(t, tempDir, "base.hcl", `
		base "l_base" {
			cells = [
				[true, true, true],
				[true, false, false],
			]
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Parts, 1)

	part := model.Parts[0]
	assert.Equal(t, config.KindBase, part.Kind)
	assert.Equal(t, [][]bool{
		{true, true, true},
		{true, false, false},
	}, part.Cells)
	assert.Zero(t, part.GridX)
}

func TestLoader_LoadBaseplate(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "plate.hcl", `
		baseplate "desk_plate" {
			grid_x        = 4
			grid_y        = 3
			block         = "full"
			bottom_height = 8

			feature "weighted" {
				location = "bottom_middle"
			}
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Parts, 1)

	part := model.Parts[0]
	assert.Equal(t, config.KindBasePlate, part.Kind)
	assert.Equal(t, "full", part.PlateBlock)
	assert.Equal(t, 8.0, part.PlateBottom)
	require.Len(t, part.Features, 1)
	assert.Equal(t, "weighted", part.Features[0].Kind)
}

func TestLoader_NumberedCompartmentCells(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "bin.hcl", `
		bin "split_bin" {
			grid_x    = 3
			grid_y    = 2
			height_mm = 40

			compartments {
				cells = [
					[1, 1, 2],
					[3, 3, 3],
				]
			}
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.NoError(t, err)
	part := model.Parts[0]
	require.NotNil(t, part.Compartments)
	assert.Equal(t, [][]int{{1, 1, 2}, {3, 3, 3}}, part.Compartments.Cells)
	assert.Equal(t, 40.0, part.HeightMM)
}

func TestLoader_DefaultsToSingleCell(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "bin.hcl", `
		bin "tiny" {
			height_units = 2
		}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 1, model.Parts[0].GridX)
	assert.Equal(t, 1, model.Parts[0].GridY)
}

func TestLoader_RejectsGridAndCellsTogether(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "bad.hcl", `
		base "conflicted" {
			grid_x = 2
			cells  = [[true]]
		}
	`)

	// --- Act ---
	_, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestLoader_RejectsDuplicateNames(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "a.hcl", `
		bin "twin" {
			height_units = 2
		}

		base "twin" {}
	`)

	// --- Act ---
	_, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate part name")
}

func TestLoader_RejectsMalformedFile(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "broken.hcl", `
		bin "broken" {
	`)

	// --- Act ---
	_, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLoader_RejectsMissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestLoader_MergesMultipleFiles(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	tempDir := t.TempDir()
	writeHCL(t, tempDir, "a.hcl", `
		bin "first" {
			height_units = 2
		}
	`)
	writeHCL(t, tempDir, "b.hcl", `
		baseplate "second" {}
	`)

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), tempDir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Len(t, model.Parts, 2)
}
