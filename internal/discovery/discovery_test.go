// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/spf13/afero"

	"github.com/uribo/uribo/pkg/uribofile"
)

// memTree builds an in-memory filesystem with the given .uribo contents,
// keyed by directory.
func memTree(t *testing.T, files map[string]string, dirs ...string) *uribofile.Store {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("in-memory tree uses POSIX absolute paths")
	}

	fsys := afero.NewMemMapFs()
	for _, dir := range dirs {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s) error: %v", dir, err)
		}
	}
	for dir, content := range files {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s) error: %v", dir, err)
		}
		if err := afero.WriteFile(fsys, uribofile.PathIn(dir), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) error: %v", dir, err)
		}
	}
	return uribofile.NewStore(fsys)
}

func mustResolver(t *testing.T, store *uribofile.Store, opts ...Option) *Resolver {
	t.Helper()
	r, err := New(store, opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return r
}

func TestAncestors(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX paths")
	}
	t.Parallel()

	tests := []struct {
		dir  string
		want []string
	}{
		{dir: "/", want: []string{"/"}},
		{dir: "/a", want: []string{"/a", "/"}},
		{dir: "/a/b/c", want: []string{"/a/b/c", "/a/b", "/a", "/"}},
		{dir: "/a/b/../c/", want: []string{"/a/c", "/a", "/"}},
	}

	for _, tt := range tests {
		if got := Ancestors(tt.dir); !slices.Equal(got, tt.want) {
			t.Errorf("Ancestors(%q) = %v, want %v", tt.dir, got, tt.want)
		}
	}
}

func TestResolveNearestAncestorWins(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/A":   `{"x": {"command": "from-a", "args": []}}`,
		"/A/B": `{"x": {"command": "from-b", "args": []}}`,
	}, "/A/B/C")

	r := mustResolver(t, store, WithStartDir("/A/B/C"))
	got, err := r.Resolve(context.Background(), "x")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Command.Program != "from-b" {
		t.Errorf("Resolve() program = %q, want from-b", got.Command.Program)
	}
	if got.Dir != "/A/B" || got.Path != "/A/B/.uribo" {
		t.Errorf("Resolve() dir/path = %q/%q, want /A/B and /A/B/.uribo", got.Dir, got.Path)
	}
	if got.Source != SourceAncestor {
		t.Errorf("Resolve() source = %v, want ancestor", got.Source)
	}
}

func TestResolveStartDirShadowsGrandparent(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/p":     `{"x": "echo grandparent"}`,
		"/p/q/r": `{"x": "echo here"}`,
	})

	r := mustResolver(t, store, WithStartDir("/p/q/r"))
	got, err := r.Resolve(context.Background(), "x")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Command.Script != "echo here" {
		t.Errorf("Resolve() script = %q, want %q", got.Command.Script, "echo here")
	}
}

func TestResolveSkipsFilesWithoutName(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/p":   `{"x": "echo p"}`,
		"/p/q": `{"other": "echo q"}`,
	})

	r := mustResolver(t, store, WithStartDir("/p/q"))
	got, err := r.Resolve(context.Background(), "x")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if got.Path != "/p/.uribo" {
		t.Errorf("Resolve() path = %q, want /p/.uribo", got.Path)
	}
}

func TestResolveFallback(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/proj":       `{"local": "echo local", "shared": "echo local shared"}`,
		"/home/u/cfg": `{"shared": "echo global", "global": {"command": "g"}}`,
	}, "/proj/sub")
	fallback := "/home/u/cfg/.uribo"

	r := mustResolver(t, store, WithStartDir("/proj/sub"), WithFallback(fallback))

	t.Run("used when no ancestor defines the name", func(t *testing.T) {
		got, err := r.Resolve(context.Background(), "global")
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if got.Source != SourceFallback || got.Path != fallback || got.Dir != "/home/u/cfg" {
			t.Errorf("Resolve() = %+v, want fallback result in /home/u/cfg", got)
		}
	})

	t.Run("not a tie-break among ancestors", func(t *testing.T) {
		got, err := r.Resolve(context.Background(), "shared")
		if err != nil {
			t.Fatalf("Resolve() error: %v", err)
		}
		if got.Source != SourceAncestor || got.Command.Script != "echo local shared" {
			t.Errorf("Resolve() = %+v, want the ancestor definition", got)
		}
	})

	t.Run("not found anywhere", func(t *testing.T) {
		_, err := r.Resolve(context.Background(), "nope")
		if !errors.Is(err, ErrCommandNotFound) {
			t.Fatalf("Resolve() error = %v, want ErrCommandNotFound", err)
		}
		var nf *NotFoundError
		if !errors.As(err, &nf) || nf.Name != "nope" {
			t.Errorf("Resolve() error = %#v, want NotFoundError{nope}", err)
		}
		if err.Error() != `"nope" command is not defined` {
			t.Errorf("Resolve() error text = %q", err.Error())
		}
	})
}

func TestResolveMissingFallbackIsNotFound(t *testing.T) {
	t.Parallel()

	store := memTree(t, nil, "/proj")
	r := mustResolver(t, store, WithStartDir("/proj"), WithFallback("/nowhere/.uribo"))

	_, err := r.Resolve(context.Background(), "x")
	if !errors.Is(err, ErrCommandNotFound) {
		t.Errorf("Resolve() error = %v, want ErrCommandNotFound", err)
	}
}

func TestResolveMalformedAncestorAbortsWalk(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/A":   `{"x": "echo far"}`,
		"/A/B": `{"x": `,
	}, "/A/B/C")

	r := mustResolver(t, store, WithStartDir("/A/B/C"))
	_, err := r.Resolve(context.Background(), "x")
	if !errors.Is(err, uribofile.ErrParse) {
		t.Fatalf("Resolve() error = %v, want ErrParse", err)
	}
	var pe *uribofile.ParseError
	if !errors.As(err, &pe) || pe.Path != "/A/B/.uribo" {
		t.Errorf("Resolve() error = %#v, want ParseError for /A/B/.uribo", err)
	}
}

func TestResolveMalformedFallback(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{"/cfg": `not json`}, "/proj")
	r := mustResolver(t, store, WithStartDir("/proj"), WithFallback("/cfg/.uribo"))

	_, err := r.Resolve(context.Background(), "x")
	if !errors.Is(err, uribofile.ErrParse) {
		t.Errorf("Resolve() error = %v, want ErrParse", err)
	}
}

func TestResolveCanceled(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{"/proj": `{"x": "true"}`})
	r := mustResolver(t, store, WithStartDir("/proj"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Resolve(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Errorf("Resolve() error = %v, want context.Canceled", err)
	}
}

func TestNewRelativeFallbackJoinsStartDir(t *testing.T) {
	t.Parallel()

	store := memTree(t, nil, "/proj")
	r := mustResolver(t, store, WithStartDir("/proj"), WithFallback("shared/.uribo"))
	if want := filepath.Join("/proj", "shared", ".uribo"); r.Fallback() != want {
		t.Errorf("Fallback() = %q, want %q", r.Fallback(), want)
	}
	if r.StartDir() != "/proj" {
		t.Errorf("StartDir() = %q, want /proj", r.StartDir())
	}
}

func TestList(t *testing.T) {
	t.Parallel()

	store := memTree(t, map[string]string{
		"/p":   `{"build": "make", "lint": "golangci-lint run"}`,
		"/p/q": `{"build": {"command": "go", "args": ["build"]}, "test": "go test"}`,
		"/cfg": `{"lint": "never shown", "up": "docker compose up"}`,
	})

	r := mustResolver(t, store, WithStartDir("/p/q"), WithFallback("/cfg/.uribo"))
	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	type row struct {
		name   uribofile.CommandName
		path   string
		source Source
	}
	want := []row{
		{"build", "/p/q/.uribo", SourceAncestor},
		{"test", "/p/q/.uribo", SourceAncestor},
		{"lint", "/p/.uribo", SourceAncestor},
		{"up", "/cfg/.uribo", SourceFallback},
	}
	if len(got) != len(want) {
		t.Fatalf("List() returned %d results, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Name != w.name || got[i].Path != w.path || got[i].Source != w.source {
			t.Errorf("List()[%d] = {%s %s %v}, want %+v", i, got[i].Name, got[i].Path, got[i].Source, w)
		}
	}
}

func TestSourceString(t *testing.T) {
	t.Parallel()

	if SourceAncestor.String() != "ancestor" || SourceFallback.String() != "fallback" || Source(7).String() != "unknown" {
		t.Error("Source.String() returned unexpected names")
	}
}
