package web

import (
	"errors"
	"net/http"

	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/icons"
	"github.com/streamside/panel/internal/web/templates"
)

// handlePagesSeoForm renders the per-page SEO editor for one site.
func (s *Server) handlePagesSeoForm(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}
	templates.PagesSeoEditor(*site, "").Render(r.Context(), w)
}

// handlePagesSeoUpdate upserts one page's SEO entry, or replaces the
// home icon when the form carries an icon upload.
func (s *Server) handlePagesSeoUpdate(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	if err := r.ParseMultipartForm(s.cfg.Upload.MaxFileSize); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			templates.PagesSeoEditor(*site, core.MapError(icons.ErrTransport).Message).Render(r.Context(), w)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
	}

	var (
		doc *core.ConfigDocument
		err error
	)
	if r.FormValue("action") == "home_icon" {
		doc, err = s.service.SetHomeIcon(site.ID, formUpload(r, "icon"))
	} else {
		doc, err = s.service.UpdatePageSeo(
			site.ID,
			core.SeoScope(r.FormValue("scope")),
			r.FormValue("key"),
			r.FormValue("title"),
			r.FormValue("description"),
		)
	}

	if err != nil {
		templates.PagesSeoEditor(*site, core.MapError(err).Message).Render(r.Context(), w)
		return
	}
	templates.PagesSeoEditor(*doc.Site(site.ID), "").Render(r.Context(), w)
}
