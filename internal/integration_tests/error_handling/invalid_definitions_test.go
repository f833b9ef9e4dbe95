package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/gridfinitygo/internal/testutil"
)

func TestErrorHandling_MalformedHCLFailsStartup(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"broken.hcl": `
			bin "broken" {
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "application startup panicked")
	assert.Contains(t, result.Err.Error(), "failed to parse")
}

func TestErrorHandling_UnknownFeatureKindFailsBuild(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"bin.hcl": `
			bin "bad_feature" {
				height_units = 2

				feature "laser_pocket" {}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "unknown feature kind")
}

func TestErrorHandling_BinShorterThanBaseFailsBuild(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"bin.hcl": `
			bin "too_short" {
				height_units = 1
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "does not clear the base height")
}

func TestErrorHandling_ConflictingGridDeclarations(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"base.hcl": `
			base "conflicted" {
				grid_x = 2
				cells  = [[true]]
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "mutually exclusive")
}

func TestErrorHandling_CompartmentListMismatch(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{
		"bin.hcl": `
			bin "mismatch" {
				grid_x       = 2
				grid_y       = 1
				height_units = 3

				compartments {
					div_x = 2
					div_y = 2

					compartment {
						label {}
					}
					compartment {}
					compartment {}
				}
			}
		`,
	}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.Contains(t, result.Err.Error(), "does not match")
}
