// Package testutil provides shared helpers for integration tests: a
// temp-directory harness that builds HCL part definitions end to end and
// utilities for inspecting the exported build plans.
package testutil
