// Package fsutil provides file system helpers for locating part definition
// files.
package fsutil

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FindByExt walks root and returns the full paths of every regular file with
// the given extension, in lexical walk order. The leading dot is optional.
// Hidden directories are skipped so editor and VCS internals never surface
// as definition files.
func FindByExt(root, ext string) ([]string, error) {
	if ext == "" {
		return nil, fmt.Errorf("fsutil: extension must not be empty")
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(d.Name()) == ext {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
