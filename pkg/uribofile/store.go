// SPDX-License-Identifier: MPL-2.0

package uribofile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"
)

const (
	// FileName is the fixed name of a command file inside a directory.
	FileName = ".uribo"

	// MaxFileSize bounds how much of a .uribo file is decoded.
	MaxFileSize = 4 << 20

	defaultFileMode fs.FileMode = 0o644
)

// Store reads and writes .uribo files on a filesystem.
// It holds no state besides the filesystem; every call opens its own handle.
type Store struct {
	fs afero.Fs
}

// NewStore creates a Store on the given filesystem. A nil fs selects the OS filesystem.
func NewStore(fsys afero.Fs) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fs: fsys}
}

// Fs returns the filesystem the store operates on.
func (s *Store) Fs() afero.Fs { return s.fs }

// PathIn returns the command file path inside dir.
func PathIn(dir string) string {
	return filepath.Join(dir, FileName)
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) (bool, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &IOError{Path: path, Op: "stat", Cause: err}
	}
	if info.IsDir() {
		return false, &IOError{Path: path, Op: "read", Cause: fmt.Errorf("%s is a directory", FileName)}
	}
	return true, nil
}

// Load reads and decodes the mapping stored at path.
func (s *Store) Load(path string) (Mapping, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &FileNotFoundError{Path: path}
		}
		return nil, &IOError{Path: path, Op: "read", Cause: err}
	}
	return Decode(data, path)
}

// LoadOrEmpty is Load, except that a missing file yields an empty mapping.
func (s *Store) LoadOrEmpty(path string) (Mapping, error) {
	m, err := s.Load(path)
	if errors.Is(err, ErrFileNotFound) {
		return Mapping{}, nil
	}
	return m, err
}

// Save encodes m and replaces the file at path. The content is written to a
// temporary file in the same directory and renamed over the target, so a
// concurrent reader sees either the old or the new file.
func (s *Store) Save(path string, m Mapping) error {
	data, err := Encode(m)
	if err != nil {
		return err
	}

	mode := defaultFileMode
	if info, statErr := s.fs.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := afero.TempFile(s.fs, dir, FileName+"-*.tmp")
	if err != nil {
		return &IOError{Path: path, Op: "create temp file for", Cause: err}
	}
	tmpPath := tmp.Name()
	renamed := false
	defer func() {
		if !renamed {
			_ = s.fs.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return &IOError{Path: path, Op: "write", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Path: path, Op: "write", Cause: err}
	}
	if err := s.fs.Chmod(tmpPath, mode); err != nil {
		return &IOError{Path: path, Op: "chmod", Cause: err}
	}
	if err := s.fs.Rename(tmpPath, path); err != nil {
		return &IOError{Path: path, Op: "replace", Cause: err}
	}
	renamed = true

	return nil
}

// Decode parses file content into a Mapping. Comments and trailing commas are
// tolerated. The result is validated; any failure is reported as a ParseError.
func Decode(data []byte, path string) (Mapping, error) {
	if len(data) > MaxFileSize {
		return nil, &ParseError{
			Path:  path,
			Cause: fmt.Errorf("file size %d bytes exceeds maximum %d bytes", len(data), MaxFileSize),
		}
	}

	plain := jsonc.ToJSON(data)
	if bytes.Equal(bytes.TrimSpace(plain), []byte("null")) {
		return nil, &ParseError{Path: path, Cause: errors.New("expected an object of commands, got null")}
	}

	var m Mapping
	if err := json.Unmarshal(plain, &m); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}
	if m == nil {
		m = Mapping{}
	}
	if err := m.Validate(); err != nil {
		return nil, &ParseError{Path: path, Cause: err}
	}

	return m, nil
}

// Encode serializes m as indented JSON with sorted keys and a trailing newline.
func Encode(m Mapping) ([]byte, error) {
	if m == nil {
		m = Mapping{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("failed to encode commands: %w", err)
	}
	return buf.Bytes(), nil
}
