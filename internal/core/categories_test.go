package core

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/streamside/panel/internal/icons"
	"github.com/streamside/panel/internal/store"
)

const svgSample = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10"><circle cx="5" cy="5" r="4"/></svg>`

func svgUpload() *icons.Upload {
	return &icons.Upload{Filename: "icon.svg", Data: []byte(svgSample)}
}

// newTestService builds a service over a real JSON store and icon
// pipeline in a temp dir, seeded with one site.
func newTestService(t *testing.T) (*Service, string) {
	t.Helper()

	dir := t.TempDir()
	iconsDir := filepath.Join(dir, "icons")
	if err := os.MkdirAll(iconsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	st := store.New(filepath.Join(dir, "config.json"))
	doc := &ConfigDocument{
		Websites: []Site{{
			ID:               1,
			Domain:           "alpha.example.com",
			SiteName:         "Alpha Streams",
			Status:           StatusActive,
			SportsCategories: []string{"A", "Football", "B"},
			SportsIcons:      map[string]string{},
			PagesSEO:         PagesSEO{Sports: map[string]PageSEO{}},
		}},
	}
	if err := st.Save(doc); err != nil {
		t.Fatal(err)
	}

	return NewService(st, icons.NewPipeline(), nil, iconsDir), iconsDir
}

// checkConsistency asserts the cross-field invariant: every icon key and
// every SEO slug corresponds to a current category.
func checkConsistency(t *testing.T, site *Site) {
	t.Helper()

	for key := range site.SportsIcons {
		if !site.hasCategory(key) {
			t.Errorf("stale icon key %q not in categories %v", key, site.SportsCategories)
		}
	}

	slugs := map[string]bool{}
	for _, c := range site.SportsCategories {
		slugs[Slug(c)] = true
	}
	for key := range site.PagesSEO.Sports {
		if !slugs[key] {
			t.Errorf("stale SEO slug %q not derived from categories %v", key, site.SportsCategories)
		}
	}
}

func TestAddCategory(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.AddCategory(1, "Tennis", nil)
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}

	site := doc.Site(1)
	want := []string{"A", "Football", "B", "Tennis"}
	if !reflect.DeepEqual(site.SportsCategories, want) {
		t.Errorf("categories = %v, want %v", site.SportsCategories, want)
	}
	if _, ok := site.SportsIcons["Tennis"]; ok {
		t.Error("category without upload should have no icon entry")
	}
	checkConsistency(t, site)
}

func TestAddCategory_Duplicate(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddCategory(1, "Football", nil); !errors.Is(err, ErrDuplicateCategory) {
		t.Fatalf("err = %v, want ErrDuplicateCategory", err)
	}

	doc, err := svc.Document()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(doc.Site(1).SportsCategories); got != 3 {
		t.Errorf("category count changed on failed add: %d", got)
	}
}

func TestAddCategory_WithIcon(t *testing.T) {
	svc, iconsDir := newTestService(t)

	doc, err := svc.AddCategory(1, "Tennis", svgUpload())
	if err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}

	site := doc.Site(1)
	filename, ok := site.SportsIcons["Tennis"]
	if !ok {
		t.Fatal("icon entry missing after upload")
	}
	if _, err := os.Stat(filepath.Join(iconsDir, filename)); err != nil {
		t.Errorf("icon file missing on disk: %v", err)
	}
	checkConsistency(t, site)
}

func TestAddCategory_EmptyName(t *testing.T) {
	svc, _ := newTestService(t)

	for _, name := range []string{"", "   ", "\t\n"} {
		if _, err := svc.AddCategory(1, name, nil); !errors.Is(err, ErrEmptyName) {
			t.Errorf("name %q: err = %v, want ErrEmptyName", name, err)
		}
	}

	doc, err := svc.Document()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(doc.Site(1).SportsCategories); got != 3 {
		t.Errorf("category count changed on rejected add: %d", got)
	}
}

func TestAddCategory_UnknownSite(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddCategory(99, "Tennis", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// blockingNotifier records calls so the fire-and-forget goroutine can be
// awaited, and fails every call to prove failures never surface.
type blockingNotifier struct {
	calls chan string
}

func (n *blockingNotifier) CategoryAdded(_ context.Context, _, category string) error {
	n.calls <- category
	return errors.New("webhook down")
}

func TestAddCategory_NotifierFailureIgnored(t *testing.T) {
	svc, _ := newTestService(t)
	n := &blockingNotifier{calls: make(chan string, 1)}
	svc.notifier = n

	if _, err := svc.AddCategory(1, "Tennis", nil); err != nil {
		t.Fatalf("AddCategory() error = %v", err)
	}

	select {
	case got := <-n.calls:
		if got != "Tennis" {
			t.Errorf("notified category = %q, want %q", got, "Tennis")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestRenameCategory_PreservesPosition(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.RenameCategory(1, "Football", "Soccer")
	if err != nil {
		t.Fatalf("RenameCategory() error = %v", err)
	}

	want := []string{"A", "Soccer", "B"}
	if got := doc.Site(1).SportsCategories; !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}
}

func TestRenameCategory_MigratesIconAndSeo(t *testing.T) {
	svc, iconsDir := newTestService(t)

	if _, err := svc.SetCategoryIcon(1, "Football", svgUpload()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdatePageSeo(1, SeoScopeSports, "football", "Watch Football", "Live football streams"); err != nil {
		t.Fatal(err)
	}

	docBefore, _ := svc.Document()
	oldFile := docBefore.Site(1).SportsIcons["Football"]

	doc, err := svc.RenameCategory(1, "Football", "Soccer")
	if err != nil {
		t.Fatalf("RenameCategory() error = %v", err)
	}
	site := doc.Site(1)

	// Logical key remapped; physical filename untouched.
	if got := site.SportsIcons["Soccer"]; got != oldFile {
		t.Errorf("icon filename = %q, want %q", got, oldFile)
	}
	if _, ok := site.SportsIcons["Football"]; ok {
		t.Error("old icon key still present after rename")
	}
	if _, err := os.Stat(filepath.Join(iconsDir, oldFile)); err != nil {
		t.Errorf("icon file lost during rename: %v", err)
	}

	if _, ok := site.PagesSEO.Sports["football"]; ok {
		t.Error("old SEO slug still present after rename")
	}
	if got := site.PagesSEO.Sports["soccer"].Title; got != "Watch Football" {
		t.Errorf("SEO entry not migrated, title = %q", got)
	}
	checkConsistency(t, site)
}

func TestRenameCategory_Errors(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.RenameCategory(1, "Cricket", "Darts"); !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("missing old name: err = %v, want ErrCategoryNotFound", err)
	}
	if _, err := svc.RenameCategory(1, "Football", "A"); !errors.Is(err, ErrDuplicateCategory) {
		t.Errorf("taken new name: err = %v, want ErrDuplicateCategory", err)
	}
	if _, err := svc.RenameCategory(1, "Football", "  "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank new name: err = %v, want ErrEmptyName", err)
	}
}

func TestDeleteCategory(t *testing.T) {
	svc, iconsDir := newTestService(t)

	if _, err := svc.SetCategoryIcon(1, "Football", svgUpload()); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdatePageSeo(1, SeoScopeSports, "football", "Watch", "Streams"); err != nil {
		t.Fatal(err)
	}
	docBefore, _ := svc.Document()
	iconFile := docBefore.Site(1).SportsIcons["Football"]

	doc, err := svc.DeleteCategory(1, "Football")
	if err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	site := doc.Site(1)

	want := []string{"A", "B"}
	if !reflect.DeepEqual(site.SportsCategories, want) {
		t.Errorf("categories = %v, want %v", site.SportsCategories, want)
	}
	if _, ok := site.SportsIcons["Football"]; ok {
		t.Error("icon entry survived delete")
	}
	if _, ok := site.PagesSEO.Sports["football"]; ok {
		t.Error("SEO entry survived delete")
	}
	if _, err := os.Stat(filepath.Join(iconsDir, iconFile)); !os.IsNotExist(err) {
		t.Errorf("icon file survived delete: %v", err)
	}
	checkConsistency(t, site)
}

func TestDeleteCategory_AbsentIsNoop(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.DeleteCategory(1, "Cricket")
	if err != nil {
		t.Fatalf("delete of absent category should succeed, got %v", err)
	}
	if got := len(doc.Site(1).SportsCategories); got != 3 {
		t.Errorf("category count = %d, want 3", got)
	}
}

func TestReorderCategories(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.ReorderCategories(1, []string{"B", "Football", "A"})
	if err != nil {
		t.Fatalf("ReorderCategories() error = %v", err)
	}

	want := []string{"B", "Football", "A"}
	if got := doc.Site(1).SportsCategories; !reflect.DeepEqual(got, want) {
		t.Errorf("categories = %v, want %v", got, want)
	}

	// Nothing else on the site changes.
	site := doc.Site(1)
	if site.Domain != "alpha.example.com" || len(site.SportsIcons) != 0 {
		t.Error("reorder mutated unrelated fields")
	}
}

func TestReorderCategories_Invalid(t *testing.T) {
	svc, _ := newTestService(t)

	cases := [][]string{
		nil,
		{},
		{"A", "B"},                        // dropped one
		{"A", "Football", "B", "Tennis"},  // invented one
		{"A", "A", "B"},                   // duplicate replacing Football
	}
	for _, order := range cases {
		if _, err := svc.ReorderCategories(1, order); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("order %v: err = %v, want ErrInvalidOrder", order, err)
		}
	}
}

func TestConsistency_OverOperationSequence(t *testing.T) {
	svc, _ := newTestService(t)

	steps := []func() (*ConfigDocument, error){
		func() (*ConfigDocument, error) { return svc.AddCategory(1, "Tennis", svgUpload()) },
		func() (*ConfigDocument, error) {
			return svc.UpdatePageSeo(1, SeoScopeSports, "tennis", "Tennis", "Tennis live")
		},
		func() (*ConfigDocument, error) { return svc.RenameCategory(1, "Tennis", "Table Tennis") },
		func() (*ConfigDocument, error) { return svc.SetCategoryIcon(1, "A", svgUpload()) },
		func() (*ConfigDocument, error) { return svc.DeleteCategory(1, "A") },
		func() (*ConfigDocument, error) { return svc.ReorderCategories(1, []string{"B", "Table Tennis", "Football"}) },
		func() (*ConfigDocument, error) { return svc.DeleteCategory(1, "Table Tennis") },
	}
	for i, step := range steps {
		doc, err := step()
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		checkConsistency(t, doc.Site(1))
	}
}
