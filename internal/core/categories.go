package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/streamside/panel/internal/icons"
)

// AddCategory appends name to the site's category list. An optional icon
// upload is normalized and stored; a nil upload means no icon. On success
// the notifier is fired in the background; its outcome never affects the
// add.
func (s *Service) AddCategory(siteID int, name string, up *icons.Upload) (*ConfigDocument, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	var siteName string
	doc, err := s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		if site.hasCategory(name) {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
		}

		if up != nil {
			filename, err := s.icons.Ingest(up, s.iconsDir)
			if err != nil {
				return err
			}
			if site.SportsIcons == nil {
				site.SportsIcons = map[string]string{}
			}
			site.SportsIcons[name] = filename
		}

		site.SportsCategories = append(site.SportsCategories, name)
		siteName = site.SiteName
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = s.notifier.CategoryAdded(ctx, siteName, name)
		}()
	}
	return doc, nil
}

// RenameCategory replaces oldName with newName at its existing position.
// The icon mapping and the SEO entry follow the category to its new key.
// The physical icon filename is kept immutable; only the logical key is
// remapped, so a failed file rename can never strand the file.
func (s *Service) RenameCategory(siteID int, oldName, newName string) (*ConfigDocument, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, ErrEmptyName
	}

	return s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}

		pos := -1
		for i, c := range site.SportsCategories {
			if c == oldName {
				pos = i
				break
			}
		}
		if pos == -1 {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, oldName)
		}
		if newName != oldName && site.hasCategory(newName) {
			return fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
		}

		site.SportsCategories[pos] = newName

		if filename, ok := site.SportsIcons[oldName]; ok {
			delete(site.SportsIcons, oldName)
			site.SportsIcons[newName] = filename
		}

		oldSlug, newSlug := Slug(oldName), Slug(newName)
		if seo, ok := site.PagesSEO.Sports[oldSlug]; ok && oldSlug != newSlug {
			delete(site.PagesSEO.Sports, oldSlug)
			site.PagesSEO.Sports[newSlug] = seo
		}
		return nil
	})
}

// DeleteCategory removes name from the site, along with its icon file,
// icon mapping and SEO entry. Deleting an absent category is a uniform
// success no-op; the relative order of the remaining categories is
// preserved.
func (s *Service) DeleteCategory(siteID int, name string) (*ConfigDocument, error) {
	var removedIcon string
	doc, err := s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		if !site.hasCategory(name) {
			return nil
		}

		kept := site.SportsCategories[:0]
		for _, c := range site.SportsCategories {
			if c != name {
				kept = append(kept, c)
			}
		}
		site.SportsCategories = kept

		removedIcon = site.SportsIcons[name]
		delete(site.SportsIcons, name)
		delete(site.PagesSEO.Sports, Slug(name))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.removeIconFile(removedIcon)
	return doc, nil
}

// ReorderCategories replaces the stored order wholesale. The new order
// must be a non-empty permutation of the current category set; blind
// replacement could silently drop or invent categories.
func (s *Service) ReorderCategories(siteID int, newOrder []string) (*ConfigDocument, error) {
	return s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		if len(newOrder) == 0 || !samePermutation(site.SportsCategories, newOrder) {
			return ErrInvalidOrder
		}
		site.SportsCategories = append([]string(nil), newOrder...)
		return nil
	})
}

// samePermutation reports multiset equality of a and b.
func samePermutation(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, v := range a {
		counts[v]++
	}
	for _, v := range b {
		counts[v]--
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
