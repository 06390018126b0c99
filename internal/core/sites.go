package core

import (
	"fmt"
	"strings"
)

// SiteFields are the editable fields of a site record. Create and update
// both take the full set; update replaces them wholesale.
type SiteFields struct {
	Domain         string
	SiteName       string
	Logo           string
	PrimaryColor   string
	SecondaryColor string
	SEOTitle       string
	SEODescription string
	SEOKeywords    string
	Language       string
	SidebarContent string
	Status         SiteStatus
}

func (f SiteFields) apply(site *Site) {
	site.Domain = strings.TrimSpace(f.Domain)
	site.SiteName = f.SiteName
	site.Logo = f.Logo
	site.PrimaryColor = f.PrimaryColor
	site.SecondaryColor = f.SecondaryColor
	site.SEOTitle = f.SEOTitle
	site.SEODescription = f.SEODescription
	site.SEOKeywords = f.SEOKeywords
	site.Language = f.Language
	site.SidebarContent = f.SidebarContent
	site.Status = f.Status
	if site.Status != StatusActive && site.Status != StatusInactive {
		site.Status = StatusInactive
	}
}

// CreateSite appends a new site record. Domain uniqueness is enforced
// here, at creation only. The id is max(existing)+1 and immutable.
func (s *Service) CreateSite(fields SiteFields) (*ConfigDocument, error) {
	domain := strings.TrimSpace(fields.Domain)
	return s.mutate(func(doc *ConfigDocument) error {
		for _, site := range doc.Websites {
			if site.Domain == domain {
				return fmt.Errorf("%w: %s", ErrDuplicateDomain, domain)
			}
		}
		site := Site{
			ID:               nextSiteID(doc),
			SportsCategories: []string{},
			SportsIcons:      map[string]string{},
			PagesSEO:         PagesSEO{Sports: map[string]PageSEO{}},
		}
		fields.apply(&site)
		doc.Websites = append(doc.Websites, site)
		return nil
	})
}

// UpdateSite replaces all editable fields of the site with the given id.
func (s *Service) UpdateSite(id int, fields SiteFields) (*ConfigDocument, error) {
	return s.mutate(func(doc *ConfigDocument) error {
		site := doc.Site(id)
		if site == nil {
			return fmt.Errorf("%w: id %d", ErrNotFound, id)
		}
		fields.apply(site)
		return nil
	})
}

// DeleteSite removes the record by id unconditionally. Icon files and
// other uploaded assets for the site are not cleaned up; that gap is
// acknowledged, not hidden.
func (s *Service) DeleteSite(id int) (*ConfigDocument, error) {
	return s.mutate(func(doc *ConfigDocument) error {
		kept := doc.Websites[:0]
		for _, site := range doc.Websites {
			if site.ID != id {
				kept = append(kept, site)
			}
		}
		doc.Websites = kept
		return nil
	})
}
