package core

import (
	"fmt"
	"strings"

	"github.com/streamside/panel/internal/icons"
)

// SeoScope selects which page's SEO entry an update targets.
type SeoScope string

const (
	SeoScopeHome      SeoScope = "home"
	SeoScopeFavorites SeoScope = "favorites"
	SeoScopeSports    SeoScope = "sports"
)

// UpdatePageSeo upserts the title/description pair for one page. key is
// the category slug and only used with SeoScopeSports. Fields are
// trimmed; empty strings are valid and mean "not yet filled".
func (s *Service) UpdatePageSeo(siteID int, scope SeoScope, key, title, description string) (*ConfigDocument, error) {
	entry := PageSEO{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	return s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		switch scope {
		case SeoScopeHome:
			site.PagesSEO.Home = entry
		case SeoScopeFavorites:
			site.PagesSEO.Favorites = entry
		case SeoScopeSports:
			if site.PagesSEO.Sports == nil {
				site.PagesSEO.Sports = map[string]PageSEO{}
			}
			site.PagesSEO.Sports[key] = entry
		default:
			return fmt.Errorf("unknown seo scope %q", scope)
		}
		return nil
	})
}

// SetHomeIcon normalizes and stores the uploaded home-page icon,
// replacing and deleting the previous file if any.
func (s *Service) SetHomeIcon(siteID int, up *icons.Upload) (*ConfigDocument, error) {
	var replaced string
	doc, err := s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		filename, err := s.icons.Ingest(up, s.iconsDir)
		if err != nil {
			return err
		}
		if site.PagesSEO.HomeIcon != filename {
			replaced = site.PagesSEO.HomeIcon
		}
		site.PagesSEO.HomeIcon = filename
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.removeIconFile(replaced)
	return doc, nil
}

// SetCategoryIcon replaces the icon of an existing category, deleting
// the file the new one replaces.
func (s *Service) SetCategoryIcon(siteID int, name string, up *icons.Upload) (*ConfigDocument, error) {
	var replaced string
	doc, err := s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(siteID)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, siteID)
		}
		if !site.hasCategory(name) {
			return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
		}
		filename, err := s.icons.Ingest(up, s.iconsDir)
		if err != nil {
			return err
		}
		if site.SportsIcons == nil {
			site.SportsIcons = map[string]string{}
		}
		if old := site.SportsIcons[name]; old != filename {
			replaced = old
		}
		site.SportsIcons[name] = filename
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.removeIconFile(replaced)
	return doc, nil
}
