// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"log/slog"
	"path/filepath"

	"github.com/uribo/uribo/pkg/uribofile"
)

// Ancestors returns dir followed by each of its parents, ending at the
// filesystem root. dir must be absolute. The root is the first directory
// whose parent is itself, so the chain always terminates.
func Ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	chain := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		chain = append(chain, parent)
		dir = parent
	}
	return chain
}

// loadInDir loads the .uribo file in dir. A missing file yields a nil
// mapping and no error; a malformed one is returned as a ParseError.
func (r *Resolver) loadInDir(dir string) (uribofile.Mapping, string, error) {
	return r.loadFile(uribofile.PathIn(dir))
}

// loadFile loads the command file at path, treating absence as "no commands".
func (r *Resolver) loadFile(path string) (uribofile.Mapping, string, error) {
	exists, err := r.store.Exists(path)
	if err != nil {
		return nil, path, err
	}
	if !exists {
		return nil, path, nil
	}

	slog.Debug("loading command file", "path", path)
	m, err := r.store.Load(path)
	if err != nil {
		return nil, path, err
	}
	return m, path, nil
}
