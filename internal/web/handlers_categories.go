package web

import (
	"net/http"

	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/logging"
	"github.com/streamside/panel/internal/web/templates"
)

// handleCategoriesForm renders the category manager for one site.
func (s *Server) handleCategoriesForm(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}
	templates.CategoryManager(*site, "").Render(r.Context(), w)
}

// handleCategoryCommand parses the submitted form into a tagged command
// and dispatches it. Every path ends by re-rendering the category
// manager from freshly reloaded state.
func (s *Server) handleCategoryCommand(w http.ResponseWriter, r *http.Request) {
	site, ok := s.siteFromURL(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Upload.MaxFileSize)
	cmd, err := parseCategoryCommand(r, s.cfg.Upload.MaxFileSize)
	if err != nil {
		templates.CategoryManager(*site, core.MapError(err).Message).Render(r.Context(), w)
		return
	}

	var doc *core.ConfigDocument
	switch cmd.Kind {
	case CmdAddCategory:
		doc, err = s.service.AddCategory(site.ID, cmd.Name, cmd.Icon)
	case CmdRenameCategory:
		doc, err = s.service.RenameCategory(site.ID, cmd.Name, cmd.NewName)
	case CmdDeleteCategory:
		doc, err = s.service.DeleteCategory(site.ID, cmd.Name)
	case CmdSetIcon:
		doc, err = s.service.SetCategoryIcon(site.ID, cmd.Name, cmd.Icon)
	case CmdReorder:
		doc, err = s.service.ReorderCategories(site.ID, cmd.Order)
	}

	if err != nil {
		logging.FromContext(r.Context()).Warn("category command failed",
			"site", site.ID, "action", cmd.Kind, "error", err)
		templates.CategoryManager(*site, core.MapError(err).Message).Render(r.Context(), w)
		return
	}

	templates.CategoryManager(*doc.Site(site.ID), "").Render(r.Context(), w)
}
