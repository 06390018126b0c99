package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type testDoc struct {
	Websites []testSite `json:"websites"`
}

type testSite struct {
	ID     int    `json:"id"`
	Domain string `json:"domain"`
}

func TestLoad_NotFound(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.json"))

	var doc testDoc
	err := s.Load(&doc)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var doc testDoc
	err := New(path).Load(&doc)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("Load() error = %v, want ErrParse", err)
	}
}

func TestLoad_ReadError(t *testing.T) {
	// A directory at the store path exists but cannot be read as a
	// file, which must classify as a read failure, not corrupt JSON.
	s := New(t.TempDir())

	var doc testDoc
	err := s.Load(&doc)
	if !errors.Is(err, ErrRead) {
		t.Fatalf("Load() error = %v, want ErrRead", err)
	}
	if errors.Is(err, ErrParse) || errors.Is(err, ErrNotFound) {
		t.Errorf("read failure misclassified: %v", err)
	}
}

func TestSave_WriteError(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "no", "such", "dir", "config.json"))

	err := s.Save(testDoc{})
	if !errors.Is(err, ErrWrite) {
		t.Fatalf("Save() error = %v, want ErrWrite", err)
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := New(path)

	orig := testDoc{Websites: []testSite{
		{ID: 1, Domain: "alpha.example.com"},
		{ID: 2, Domain: "beta.example.com"},
	}}
	if err := s.Save(orig); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	var loaded testDoc
	if err := s.Load(&loaded); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(orig, loaded) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, orig)
	}
}

func TestSave_NoHTMLEscaping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := New(path)

	if err := s.Save(map[string]string{"url": "https://a.example.com/<b>"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), `<`) {
		t.Errorf("output HTML-escaped: %s", data)
	}
	if !strings.Contains(string(data), "https://a.example.com/<b>") {
		t.Errorf("expected unescaped URL in output, got: %s", data)
	}
}

func TestSave_PrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	s := New(path)

	if err := s.Save(testDoc{Websites: []testSite{{ID: 1, Domain: "a"}}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n    ") {
		t.Errorf("expected indented output, got: %s", data)
	}
}
