// Package hcl loads part definition files written in HCL and translates
// them into the format-agnostic config model. A definition file contains
// top-level `bin`, `base`, and `baseplate` blocks with nested `feature`,
// `compartments`, and `lip` blocks.
package hcl
