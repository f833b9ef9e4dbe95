package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/gridfinitygo/modeler/planner"
)

// ReadPlan loads the exported build plan for one part from a harness run.
func ReadPlan(t *testing.T, result *HarnessResult, partName string) *planner.Plan {
	t.Helper()

	path := filepath.Join(result.OutputDir, partName+".plan.json")
	data, err := os.ReadFile(path)
	require.NoError(t, err, "expected a build plan for part %q", partName)

	var plan planner.Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	return &plan
}
