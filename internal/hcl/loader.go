package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/gridfinitygo/internal/config"
	"github.com/vk/gridfinitygo/internal/ctxlog"
	"github.com/vk/gridfinitygo/internal/fsutil"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL part definition loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file under the given paths and merges all declared
// parts into one model.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := fsutil.FindByExt(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("error scanning directory %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	logger.Debug("Discovered definition files.", "count", len(files))

	model := &config.Model{}
	parser := hclparse.NewParser()
	seen := make(map[string]struct{})

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode %s: %w", file, diags)
		}

		parts, err := translateFile(&root)
		if err != nil {
			return nil, fmt.Errorf("invalid part definition in %s: %w", file, err)
		}
		for _, part := range parts {
			if _, dup := seen[part.Name]; dup {
				return nil, fmt.Errorf("duplicate part name %q in %s", part.Name, file)
			}
			seen[part.Name] = struct{}{}
			model.Parts = append(model.Parts, part)
		}
	}

	logger.Debug("HCL loading complete.", "parts", len(model.Parts))
	return model, nil
}
