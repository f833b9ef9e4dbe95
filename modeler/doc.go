// Package modeler defines the boundary to the external CAD kernel. The
// composition layer in package gridfinity issues primitive-solid, boolean,
// and sweep calls through the Modeler interface and never inspects geometry
// beyond axis-aligned bounds.
//
// A concrete binding to a B-rep kernel lives outside this repository; the
// in-process implementation in modeler/planner evaluates bounding boxes and
// records the full kernel call trace instead.
package modeler
