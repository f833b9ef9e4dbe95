// Package builder translates declared parts from the config model into
// gridfinity constructions executed against a modeler.
package builder
