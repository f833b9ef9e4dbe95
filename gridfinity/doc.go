// Package gridfinity composes Gridfinity storage components (bases,
// baseplates, and bins) out of primitive calls to an external CAD kernel
// behind the modeler.Modeler interface.
//
// Root objects (Base, BasePlate, Bin) are built once at construction from a
// grid definition, a feature list, and optional compartments, and are
// immutable afterwards. All validation of user-supplied arguments happens at
// construction time; geometric failures propagate unmodified from the kernel.
package gridfinity
