package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/logging"
	"github.com/streamside/panel/internal/web/templates"
)

// handleDashboard lists all managed sites.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.Document()
	if err != nil {
		s.renderFatal(w, r, err)
		return
	}
	templates.Dashboard(doc.Websites).Render(r.Context(), w)
}

// handleNewSiteForm renders an empty site editor.
func (s *Server) handleNewSiteForm(w http.ResponseWriter, r *http.Request) {
	templates.SiteEditor(core.Site{Status: core.StatusActive}, true, "").Render(r.Context(), w)
}

// handleCreateSite creates a site record and redirects to its editor.
func (s *Server) handleCreateSite(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	fields := siteFieldsFromForm(r)

	doc, err := s.service.CreateSite(fields)
	if err != nil {
		site := core.Site{Status: fields.Status}
		fieldsPreview(&site, fields)
		templates.SiteEditor(site, true, core.MapError(err).Message).Render(r.Context(), w)
		return
	}

	created := doc.Websites[len(doc.Websites)-1]
	logging.FromContext(r.Context()).Info("site created", "id", created.ID, "domain", created.Domain)
	http.Redirect(w, r, "/sites/"+strconv.Itoa(created.ID), http.StatusSeeOther)
}

// handleSiteForm renders the editor for one site.
func (s *Server) handleSiteForm(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}
	templates.SiteEditor(*site, false, "").Render(r.Context(), w)
}

// handleUpdateSite replaces the editable fields of one site.
func (s *Server) handleUpdateSite(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	doc, err := s.service.UpdateSite(site.ID, siteFieldsFromForm(r))
	if err != nil {
		templates.SiteEditor(*site, false, core.MapError(err).Message).Render(r.Context(), w)
		return
	}
	templates.SiteEditor(*doc.Site(site.ID), false, "Site saved").Render(r.Context(), w)
}

// handleDeleteSite removes a site record. Uploaded assets are not
// cascaded; see the service docs.
func (s *Server) handleDeleteSite(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}
	if _, err := s.service.DeleteSite(site.ID); err != nil {
		s.renderFatal(w, r, err)
		return
	}
	logging.FromContext(r.Context()).Info("site deleted", "id", site.ID, "domain", site.Domain)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// siteFromURL resolves {siteID} against the current document. On any
// failure it has already written a response.
func (s *Server) siteFromURL(w http.ResponseWriter, r *http.Request) (*core.Site, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "siteID"))
	if err != nil {
		http.Error(w, "bad site id", http.StatusBadRequest)
		return nil, false
	}
	doc, err := s.service.Document()
	if err != nil {
		s.renderFatal(w, r, err)
		return nil, false
	}
	site := doc.Site(id)
	if site == nil {
		http.NotFound(w, r)
		return nil, false
	}
	return site, true
}

// renderFatal reports a store-level failure. The operator sees the
// mapped message; the technical error goes to the log.
func (s *Server) renderFatal(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("store failure", "error", err)
	http.Error(w, core.MapError(err).Message, http.StatusInternalServerError)
}

// siteFieldsFromForm collects the editable site fields wholesale.
func siteFieldsFromForm(r *http.Request) core.SiteFields {
	return core.SiteFields{
		Domain:         r.FormValue("domain"),
		SiteName:       r.FormValue("site_name"),
		Logo:           r.FormValue("logo"),
		PrimaryColor:   r.FormValue("primary_color"),
		SecondaryColor: r.FormValue("secondary_color"),
		SEOTitle:       r.FormValue("seo_title"),
		SEODescription: r.FormValue("seo_description"),
		SEOKeywords:    r.FormValue("seo_keywords"),
		Language:       r.FormValue("language"),
		SidebarContent: r.FormValue("sidebar_content"),
		Status:         core.SiteStatus(r.FormValue("status")),
	}
}

// fieldsPreview copies submitted fields onto a site so a failed create
// re-renders with the operator's input intact.
func fieldsPreview(site *core.Site, f core.SiteFields) {
	site.Domain = f.Domain
	site.SiteName = f.SiteName
	site.Logo = f.Logo
	site.PrimaryColor = f.PrimaryColor
	site.SecondaryColor = f.SecondaryColor
	site.SEOTitle = f.SEOTitle
	site.SEODescription = f.SEODescription
	site.SEOKeywords = f.SEOKeywords
	site.Language = f.Language
	site.SidebarContent = f.SidebarContent
}
