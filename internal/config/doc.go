// Package config defines the format-agnostic model of declared parts, along
// with the Loader interface for reading part definitions from various
// sources. The model is the single source of truth for the builder package;
// the concrete HCL implementation lives in internal/hcl.
package config
