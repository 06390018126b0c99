package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestUpdatePageSeo_ScopesAndTrim(t *testing.T) {
	svc, _ := newTestService(t)

	doc, err := svc.UpdatePageSeo(1, SeoScopeHome, "", "  Alpha live  ", "\tAll sports, one place\n")
	if err != nil {
		t.Fatalf("UpdatePageSeo(home) error = %v", err)
	}
	home := doc.Site(1).PagesSEO.Home
	if home.Title != "Alpha live" || home.Description != "All sports, one place" {
		t.Errorf("fields not trimmed: %+v", home)
	}

	doc, err = svc.UpdatePageSeo(1, SeoScopeFavorites, "", "Favorites", "")
	if err != nil {
		t.Fatalf("UpdatePageSeo(favorites) error = %v", err)
	}
	if got := doc.Site(1).PagesSEO.Favorites.Title; got != "Favorites" {
		t.Errorf("favorites title = %q", got)
	}

	doc, err = svc.UpdatePageSeo(1, SeoScopeSports, "football", "Football", "Matches")
	if err != nil {
		t.Fatalf("UpdatePageSeo(sports) error = %v", err)
	}
	if got := doc.Site(1).PagesSEO.Sports["football"].Description; got != "Matches" {
		t.Errorf("sports description = %q", got)
	}
}

func TestUpdatePageSeo_EmptyIsValid(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.UpdatePageSeo(1, SeoScopeHome, "", "Title", "Desc"); err != nil {
		t.Fatal(err)
	}
	doc, err := svc.UpdatePageSeo(1, SeoScopeHome, "", "", "")
	if err != nil {
		t.Fatalf("clearing fields should succeed, got %v", err)
	}
	if got := doc.Site(1).PagesSEO.Home.Status(); got != SeoEmpty {
		t.Errorf("status after clear = %q, want %q", got, SeoEmpty)
	}
}

func TestSeoStatus(t *testing.T) {
	cases := []struct {
		entry PageSEO
		want  SeoStatus
	}{
		{PageSEO{}, SeoEmpty},
		{PageSEO{Title: "t"}, SeoPartial},
		{PageSEO{Description: "d"}, SeoPartial},
		{PageSEO{Title: "t", Description: "d"}, SeoComplete},
	}
	for _, tc := range cases {
		if got := tc.entry.Status(); got != tc.want {
			t.Errorf("Status(%+v) = %q, want %q", tc.entry, got, tc.want)
		}
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Football":     "football",
		"Ice Hockey":   "ice-hockey",
		"ice-hockey":   "ice-hockey",
		"Table Tennis": "table-tennis",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

// Two names colliding on slug share one SEO entry; the second write
// overwrites the first. This is the documented policy, not an accident.
func TestSlugCollision_LastWriteWins(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.AddCategory(1, "Ice Hockey", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddCategory(1, "ice-hockey", nil); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdatePageSeo(1, SeoScopeSports, Slug("Ice Hockey"), "First", "one"); err != nil {
		t.Fatal(err)
	}
	doc, err := svc.UpdatePageSeo(1, SeoScopeSports, Slug("ice-hockey"), "Second", "two")
	if err != nil {
		t.Fatal(err)
	}

	sports := doc.Site(1).PagesSEO.Sports
	if len(sports) != 1 {
		t.Fatalf("SEO entries = %d, want 1 shared slug", len(sports))
	}
	if got := sports["ice-hockey"].Title; got != "Second" {
		t.Errorf("title = %q, want last write %q", got, "Second")
	}
}

func TestSetHomeIcon_ReplacesPrevious(t *testing.T) {
	svc, iconsDir := newTestService(t)

	doc, err := svc.SetHomeIcon(1, svgUpload())
	if err != nil {
		t.Fatalf("SetHomeIcon() error = %v", err)
	}
	first := doc.Site(1).PagesSEO.HomeIcon
	if first == "" {
		t.Fatal("home icon not recorded")
	}

	doc, err = svc.SetHomeIcon(1, svgUpload())
	if err != nil {
		t.Fatal(err)
	}
	second := doc.Site(1).PagesSEO.HomeIcon
	if second == first {
		t.Fatal("expected a new filename on replacement")
	}
	if _, err := os.Stat(filepath.Join(iconsDir, first)); !os.IsNotExist(err) {
		t.Errorf("replaced icon file not deleted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(iconsDir, second)); err != nil {
		t.Errorf("new icon file missing: %v", err)
	}
}

func TestSetCategoryIcon_ReplacesPrevious(t *testing.T) {
	svc, iconsDir := newTestService(t)

	doc, err := svc.SetCategoryIcon(1, "Football", svgUpload())
	if err != nil {
		t.Fatalf("SetCategoryIcon() error = %v", err)
	}
	first := doc.Site(1).SportsIcons["Football"]

	doc, err = svc.SetCategoryIcon(1, "Football", svgUpload())
	if err != nil {
		t.Fatal(err)
	}
	second := doc.Site(1).SportsIcons["Football"]

	if _, err := os.Stat(filepath.Join(iconsDir, first)); !os.IsNotExist(err) {
		t.Errorf("replaced icon file not deleted: %v", err)
	}
	if _, err := os.Stat(filepath.Join(iconsDir, second)); err != nil {
		t.Errorf("new icon file missing: %v", err)
	}
}
