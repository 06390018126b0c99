package web

import (
	"net/http"
	"strconv"

	"github.com/streamside/panel/internal/core"
	"github.com/streamside/panel/internal/logging"
	"github.com/streamside/panel/internal/web/templates"
)

// handleLoginForm renders the login page.
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	templates.Login("").Render(r.Context(), w)
}

// handleLogin verifies credentials and starts a session.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	admin, err := s.service.Authenticate(username, r.FormValue("password"))
	if err != nil {
		logging.FromContext(r.Context()).Warn("login failed", "username", username)
		templates.Login(core.MapError(err).Message).Render(r.Context(), w)
		return
	}

	token := s.sessions.create(admin.Username)
	s.sessions.setCookie(w, token)
	logging.FromContext(r.Context()).Info("login", "username", admin.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleLogout drops the session and clears the cookie.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cfg.Session.CookieName); err == nil {
		s.sessions.drop(cookie.Value)
	}
	s.sessions.clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleAdminsForm lists operator accounts.
func (s *Server) handleAdminsForm(w http.ResponseWriter, r *http.Request) {
	doc, err := s.service.Document()
	if err != nil {
		s.renderFatal(w, r, err)
		return
	}
	templates.Admins(doc.Admins, "").Render(r.Context(), w)
}

// handleAdminCommand creates, updates or deletes an operator account
// based on the explicit action field.
func (s *Server) handleAdminCommand(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	var (
		doc *core.ConfigDocument
		err error
	)
	switch r.FormValue("action") {
	case "create":
		doc, err = s.service.CreateAdmin(
			r.FormValue("username"), r.FormValue("password"), r.FormValue("email"))
	case "password":
		var id int
		id, err = strconv.Atoi(r.FormValue("id"))
		if err == nil {
			doc, err = s.service.UpdateAdminPassword(id, r.FormValue("password"))
		}
	case "delete":
		var id int
		id, err = strconv.Atoi(r.FormValue("id"))
		if err == nil {
			doc, err = s.service.DeleteAdmin(id)
		}
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	if err != nil {
		docNow, loadErr := s.service.Document()
		if loadErr != nil {
			s.renderFatal(w, r, loadErr)
			return
		}
		templates.Admins(docNow.Admins, core.MapError(err).Message).Render(r.Context(), w)
		return
	}
	templates.Admins(doc.Admins, "").Render(r.Context(), w)
}
