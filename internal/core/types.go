// Package core provides the business logic for the streaming-site panel.
// This package has no UI dependencies and can be used by any frontend.
package core

import "strings"

// SiteStatus marks a site as live or parked.
type SiteStatus string

const (
	StatusActive   SiteStatus = "active"
	StatusInactive SiteStatus = "inactive"
)

// ConfigDocument is the root of the persisted configuration.
// The whole document is rewritten on every mutation; there are no
// partial updates.
type ConfigDocument struct {
	Websites []Site         `json:"websites"`
	Admins   []AdminAccount `json:"admins"`
}

// Site is one managed streaming website.
type Site struct {
	ID             int        `json:"id"`
	Domain         string     `json:"domain"`
	SiteName       string     `json:"site_name"`
	Logo           string     `json:"logo"`
	PrimaryColor   string     `json:"primary_color"`
	SecondaryColor string     `json:"secondary_color"`
	SEOTitle       string     `json:"seo_title"`
	SEODescription string     `json:"seo_description"`
	SEOKeywords    string     `json:"seo_keywords"`
	Language       string     `json:"language"`
	SidebarContent string     `json:"sidebar_content"`
	Status         SiteStatus `json:"status"`

	// SportsCategories is the ordered category list; the order drives
	// the navigation menu and is user-reorderable.
	SportsCategories []string `json:"sports_categories"`

	// SportsIcons maps a category name to a stored icon filename.
	// A missing entry means the category has no icon.
	SportsIcons map[string]string `json:"sports_icons"`

	PagesSEO PagesSEO `json:"pages_seo"`
}

// PagesSEO holds per-page SEO metadata for a site. Sports entries are
// keyed by category slug, not by category name.
type PagesSEO struct {
	Home      PageSEO            `json:"home"`
	Favorites PageSEO            `json:"favorites"`
	Sports    map[string]PageSEO `json:"sports"`
	HomeIcon  string             `json:"home_icon"`
}

// PageSEO is the title/description pair for a single page.
type PageSEO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SeoStatus is the completeness indicator shown next to each page.
// It is display-only; nothing is enforced from it.
type SeoStatus string

const (
	SeoEmpty    SeoStatus = "empty"
	SeoPartial  SeoStatus = "partial"
	SeoComplete SeoStatus = "complete"
)

// Status reports whether the page SEO is empty, partially filled, or
// complete. Freely reversible: clearing a field moves the page back.
func (p PageSEO) Status() SeoStatus {
	switch {
	case p.Title != "" && p.Description != "":
		return SeoComplete
	case p.Title == "" && p.Description == "":
		return SeoEmpty
	default:
		return SeoPartial
	}
}

// AdminAccount is a panel operator. Password holds a bcrypt hash,
// never a plaintext value.
type AdminAccount struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Slug normalizes a category name into the key used for pages_seo.sports:
// lowercased, spaces replaced by hyphens. Slugs are derived on the fly
// and never stored. Two names that collide on slug share one SEO entry;
// the last write wins.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// Site returns a pointer to the site with the given id, or nil.
func (d *ConfigDocument) Site(id int) *Site {
	for i := range d.Websites {
		if d.Websites[i].ID == id {
			return &d.Websites[i]
		}
	}
	return nil
}

// nextSiteID assigns ids as max(existing)+1, starting at 1.
func nextSiteID(doc *ConfigDocument) int {
	max := 0
	for _, s := range doc.Websites {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

func nextAdminID(doc *ConfigDocument) int {
	max := 0
	for _, a := range doc.Admins {
		if a.ID > max {
			max = a.ID
		}
	}
	return max + 1
}

// hasCategory reports whether name is present (exact, case-sensitive).
func (s *Site) hasCategory(name string) bool {
	for _, c := range s.SportsCategories {
		if c == name {
			return true
		}
	}
	return false
}
