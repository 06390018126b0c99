package core

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/streamside/panel/internal/icons"
)

// DocumentStore abstracts the JSON document repository so a rewrite can
// later swap in a datastore with transactional writes.
type DocumentStore interface {
	Load(v any) error
	Save(v any) error
}

// IconIngester stores a validated, normalized icon and returns its
// generated filename.
type IconIngester interface {
	Ingest(up *icons.Upload, dir string) (string, error)
}

// Notifier announces panel events to an external collaborator. Outcomes
// never affect the operation that fired them.
type Notifier interface {
	CategoryAdded(ctx context.Context, siteName, category string) error
}

// Service owns every mutation of the shared configuration document.
type Service struct {
	store    DocumentStore
	icons    IconIngester
	notifier Notifier
	iconsDir string
}

// NewService wires the store, icon pipeline and notifier together.
// iconsDir is where icon files live; filenames inside the document are
// relative to it.
func NewService(store DocumentStore, ingester IconIngester, notifier Notifier, iconsDir string) *Service {
	return &Service{
		store:    store,
		icons:    ingester,
		notifier: notifier,
		iconsDir: iconsDir,
	}
}

// IconsDir returns the directory icon files are written to.
func (s *Service) IconsDir() string { return s.iconsDir }

// Document loads the current configuration document.
func (s *Service) Document() (*ConfigDocument, error) {
	var doc ConfigDocument
	if err := s.store.Load(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// mutate runs one read-modify-write cycle: load, apply fn in memory,
// save, then reload so rendered state reflects exactly what is now on
// disk. There is no locking; concurrent mutations are last-writer-wins.
func (s *Service) mutate(fn func(doc *ConfigDocument) error) (*ConfigDocument, error) {
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	if err := fn(doc); err != nil {
		return nil, err
	}
	if err := s.store.Save(doc); err != nil {
		return nil, err
	}
	return s.Document()
}

// removeIconFile deletes an icon from disk, best-effort. A failed delete
// leaves an orphaned file, which is not user-visible.
func (s *Service) removeIconFile(name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.iconsDir, name)); err != nil && !os.IsNotExist(err) {
		slog.Debug("icon delete failed", "file", name, "error", err)
	}
}
