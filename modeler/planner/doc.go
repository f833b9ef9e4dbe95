// Package planner provides an in-process modeler.Modeler that evaluates
// axis-aligned bounding boxes and records every kernel call in order. Export
// serializes the recorded trace as a JSON build plan instead of producing
// real geometry, which makes the planner both the CLI's dry-run backend and
// the test double for the composition layer.
package planner
