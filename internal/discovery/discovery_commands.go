// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/uribo/uribo/pkg/uribofile"
)

// Resolve finds the nearest definition of name.
//
// The ancestor chain is probed from the start directory upward and the first
// file defining name wins. Only when no ancestor defines it is the fallback
// file consulted. A file that exists but fails to parse aborts resolution.
func (r *Resolver) Resolve(ctx context.Context, name uribofile.CommandName) (LookupResult, error) {
	for _, dir := range Ancestors(r.startDir) {
		if err := ctx.Err(); err != nil {
			return LookupResult{}, fmt.Errorf("resolve %q canceled: %w", string(name), err)
		}

		m, path, err := r.loadInDir(dir)
		if err != nil {
			return LookupResult{}, err
		}
		if cmd, ok := m.Get(name); ok {
			slog.Debug("resolved command", "name", name, "path", path)
			return LookupResult{Name: name, Command: cmd, Dir: dir, Path: path, Source: SourceAncestor}, nil
		}
	}

	if r.fallback != "" {
		m, path, err := r.loadFile(r.fallback)
		if err != nil {
			return LookupResult{}, err
		}
		if cmd, ok := m.Get(name); ok {
			slog.Debug("resolved command from fallback file", "name", name, "path", path)
			return LookupResult{Name: name, Command: cmd, Dir: filepath.Dir(path), Path: path, Source: SourceFallback}, nil
		}
	}

	return LookupResult{}, &NotFoundError{Name: name}
}

// List returns every command visible from the start directory, nearest
// definition first. Names shadowed by a nearer file are omitted. Fallback
// commands come last and only for names no ancestor defines.
func (r *Resolver) List(ctx context.Context) ([]LookupResult, error) {
	seen := make(map[uribofile.CommandName]bool)
	var results []LookupResult

	collect := func(m uribofile.Mapping, dir, path string, source Source) {
		for _, name := range m.Names() {
			if seen[name] {
				continue
			}
			seen[name] = true
			results = append(results, LookupResult{Name: name, Command: m[name], Dir: dir, Path: path, Source: source})
		}
	}

	for _, dir := range Ancestors(r.startDir) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("list commands canceled: %w", err)
		}
		m, path, err := r.loadInDir(dir)
		if err != nil {
			return nil, err
		}
		collect(m, dir, path, SourceAncestor)
	}

	if r.fallback != "" {
		m, path, err := r.loadFile(r.fallback)
		if err != nil {
			return nil, err
		}
		collect(m, filepath.Dir(path), path, SourceFallback)
	}

	return results, nil
}
