// Package store persists the panel configuration as a single JSON
// document on disk. There is no locking: two concurrent saves race and
// the later writer wins. This is an accepted risk for a low-concurrency
// internal tool; a future rewrite can swap this repository for a real
// datastore with transactional writes.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrNotFound means the backing file is absent. At startup this is a
	// fatal configuration error; the panel never creates the store itself.
	ErrNotFound = errors.New("config store not found")

	// ErrRead means the backing file exists but could not be read
	// (permissions, I/O).
	ErrRead = errors.New("config store read error")

	// ErrParse means the backing file is not valid JSON.
	ErrParse = errors.New("config store parse error")

	// ErrWrite means the document could not be written back.
	ErrWrite = errors.New("config store write error")
)

// Store reads and writes one JSON document at a fixed path. The whole
// document is rewritten on every Save.
type Store struct {
	path string
}

// New returns a Store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path, for logging.
func (s *Store) Path() string { return s.path }

// Load decodes the document into v.
func (s *Store) Load(v any) error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return fmt.Errorf("%w: %v", ErrRead, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrParse, err)
	}
	return nil
}

// Save serializes v and rewrites the backing file. Output is
// pretty-printed with HTML escaping disabled, so domains and inline
// markup survive round-trips unmangled.
func (s *Store) Save(v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := os.WriteFile(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}
