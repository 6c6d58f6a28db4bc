// SPDX-License-Identifier: MPL-2.0

package uribofile

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
)

func newMemStore(t *testing.T) (*Store, afero.Fs) {
	t.Helper()
	fsys := afero.NewMemMapFs()
	if err := fsys.MkdirAll("/proj", 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	return NewStore(fsys), fsys
}

func TestStoreLoadMissingFile(t *testing.T) {
	t.Parallel()

	store, _ := newMemStore(t)
	_, err := store.Load("/proj/.uribo")
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrFileNotFound", err)
	}

	var notFound *FileNotFoundError
	if !errors.As(err, &notFound) || notFound.Path != "/proj/.uribo" {
		t.Errorf("Load() error = %#v, want FileNotFoundError for /proj/.uribo", err)
	}
}

func TestStoreLoadOrEmpty(t *testing.T) {
	t.Parallel()

	store, _ := newMemStore(t)
	m, err := store.LoadOrEmpty("/proj/.uribo")
	if err != nil {
		t.Fatalf("LoadOrEmpty() error: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("LoadOrEmpty() = %v, want empty non-nil mapping", m)
	}
}

func TestStoreSaveFormat(t *testing.T) {
	t.Parallel()

	store, fsys := newMemStore(t)
	m := Mapping{
		"test":  NewExec("go", []string{"test", "./..."}, "src"),
		"build": NewExec("echo", []string{"hi"}, ""),
		"old":   NewShell("make all"),
	}
	if err := store.Save("/proj/.uribo", m); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := afero.ReadFile(fsys, "/proj/.uribo")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}

	want := `{
  "build": {
    "command": "echo",
    "args": [
      "hi"
    ]
  },
  "old": "make all",
  "test": {
    "command": "go",
    "args": [
      "test",
      "./..."
    ],
    "working_dir": "src"
  }
}
`
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("saved file mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreSaveLeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	store, fsys := newMemStore(t)
	if err := store.Save("/proj/.uribo", Mapping{"a": NewShell("true")}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := afero.ReadDir(fsys, "/proj")
	if err != nil {
		t.Fatalf("ReadDir() error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != FileName {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory entries = %v, want only %s", names, FileName)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cmd  Command
	}{
		{name: "no args", cmd: NewExec("ls", nil, "")},
		{name: "args", cmd: NewExec("echo", []string{"a b", "--flag", ""}, "")},
		{name: "relative workdir", cmd: NewExec("make", []string{"all"}, "sub/dir")},
		{name: "absolute workdir", cmd: NewExec("make", nil, "/opt/build")},
		{name: "shell text", cmd: NewShell("echo $HOME && ls | wc -l")},
		{name: "unicode", cmd: NewExec("printf", []string{"héllo", "世界"}, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _ := newMemStore(t)
			path := "/proj/.uribo"

			before := Mapping{"keep": NewExec("true", nil, "")}
			if err := store.Save(path, before); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			m, err := store.Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			m.Put("x", tt.cmd)
			if err := store.Save(path, m); err != nil {
				t.Fatalf("Save() error: %v", err)
			}

			reloaded, err := store.Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			got, ok := reloaded.Get("x")
			if !ok {
				t.Fatal("reloaded mapping lacks \"x\"")
			}
			if diff := cmp.Diff(tt.cmd, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
			if len(reloaded) != 2 {
				t.Errorf("reloaded mapping has %d entries, want 2", len(reloaded))
			}
		})
	}
}

func TestStoreAbsentWorkDirStaysAbsent(t *testing.T) {
	t.Parallel()

	store, fsys := newMemStore(t)
	if err := store.Save("/proj/.uribo", Mapping{"build": NewExec("echo", []string{"hi"}, "")}); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := afero.ReadFile(fsys, "/proj/.uribo")
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if strings.Contains(string(data), "working_dir") {
		t.Errorf("saved file mentions working_dir for an unset value:\n%s", data)
	}

	m, err := store.Load("/proj/.uribo")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if m["build"].WorkDir.IsSet() {
		t.Errorf("WorkDir = %q after round trip, want unset", m["build"].WorkDir)
	}
}

func TestStoreSaveIsIdempotent(t *testing.T) {
	t.Parallel()

	store, fsys := newMemStore(t)
	m := Mapping{"build": NewExec("echo", []string{"hi"}, "")}

	if err := store.Save("/proj/.uribo", m); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	first, _ := afero.ReadFile(fsys, "/proj/.uribo")

	m.Put("build", NewExec("echo", []string{"hi"}, ""))
	if err := store.Save("/proj/.uribo", m); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	second, _ := afero.ReadFile(fsys, "/proj/.uribo")

	if string(first) != string(second) {
		t.Errorf("second save changed file:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		content   string
		want      Mapping
		wantParse bool
	}{
		{
			name:    "empty object",
			content: "{}\n",
			want:    Mapping{},
		},
		{
			name:    "structured record without args",
			content: `{"build": {"command": "make"}}`,
			want:    Mapping{"build": NewExec("make", nil, "")},
		},
		{
			name:    "legacy string record",
			content: `{"build": "make all"}`,
			want:    Mapping{"build": NewShell("make all")},
		},
		{
			name: "comments and trailing commas",
			content: `{
  // build the thing
  "build": {
    "command": "make",
    "args": ["all",], /* fixed args */
  },
}`,
			want: Mapping{"build": NewExec("make", []string{"all"}, "")},
		},
		{name: "empty file", content: "", wantParse: true},
		{name: "null", content: "null", wantParse: true},
		{name: "array", content: `["make"]`, wantParse: true},
		{name: "number record", content: `{"build": 1}`, wantParse: true},
		{name: "missing command", content: `{"build": {"args": ["x"]}}`, wantParse: true},
		{name: "blank shell text", content: `{"build": "   "}`, wantParse: true},
		{name: "blank name", content: `{" ": "make"}`, wantParse: true},
		{name: "whitespace workdir", content: `{"b": {"command": "make", "working_dir": " "}}`, wantParse: true},
		{name: "args not strings", content: `{"b": {"command": "make", "args": [1]}}`, wantParse: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode([]byte(tt.content), "/p/.uribo")
			if tt.wantParse {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("Decode() error = %v, want ErrParse", err)
				}
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Path != "/p/.uribo" {
					t.Errorf("Decode() error = %#v, want ParseError with path", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStoreExists(t *testing.T) {
	t.Parallel()

	store, fsys := newMemStore(t)

	ok, err := store.Exists("/proj/.uribo")
	if err != nil || ok {
		t.Fatalf("Exists() on missing file = %v, %v; want false, nil", ok, err)
	}

	if err := afero.WriteFile(fsys, "/proj/.uribo", []byte("{}"), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	ok, err = store.Exists("/proj/.uribo")
	if err != nil || !ok {
		t.Fatalf("Exists() on file = %v, %v; want true, nil", ok, err)
	}

	if err := fsys.MkdirAll("/other/.uribo", 0o755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	_, err = store.Exists("/other/.uribo")
	if !errors.Is(err, ErrIO) {
		t.Errorf("Exists() on directory error = %v, want ErrIO", err)
	}
}

func TestEncodeNil(t *testing.T) {
	t.Parallel()

	data, err := Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if string(data) != "{}\n" {
		t.Errorf("Encode(nil) = %q, want %q", data, "{}\n")
	}
}
