package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vk/gridfinitygo/modeler"
)

// Op is a single recorded kernel call.
type Op struct {
	Seq  int            `json:"seq"`
	Name string         `json:"op"`
	Args map[string]any `json:"args,omitempty"`
	In   []string       `json:"in,omitempty"`
	Out  string         `json:"out,omitempty"`
}

// Plan is the serialized form of a build: the full kernel call trace plus the
// bounds of the final solid, stamped with a unique identifier.
type Plan struct {
	ID      string     `json:"id"`
	Created time.Time  `json:"created"`
	Format  string     `json:"format"`
	Result  string     `json:"result"`
	Bounds  planBounds `json:"bounds"`
	Ops     []Op       `json:"ops"`
}

type planBounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Export writes the recorded trace for s as a JSON build plan. A real kernel
// binding serializes geometry here instead; the planner serializes the calls
// the kernel would receive.
func (p *Planner) Export(ctx context.Context, s modeler.Solid, path string, format modeler.Format) error {
	sol, ok := s.(*solid)
	if !ok {
		return fmt.Errorf("planner: cannot export foreign solid %T", s)
	}

	b := sol.bounds
	plan := Plan{
		ID:      uuid.NewString(),
		Created: time.Now().UTC(),
		Format:  string(format),
		Result:  sol.id,
		Bounds: planBounds{
			Min: [3]float64{b.Min.X, b.Min.Y, b.Min.Z},
			Max: [3]float64{b.Max.X, b.Max.Y, b.Max.Z},
		},
		Ops: p.Ops(),
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("planner: failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("planner: failed to write plan %s: %w", path, err)
	}
	return nil
}
