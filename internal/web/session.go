package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streamside/panel/internal/config"
)

// sessionStore keeps operator sessions in memory, keyed by an opaque
// cookie token. Sessions do not survive a restart; operators log in
// again, which is acceptable for an internal tool.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]session
	cfg      config.SessionConfig
}

type session struct {
	username string
	expires  time.Time
}

func newSessionStore(cfg config.SessionConfig) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]session),
		cfg:      cfg,
	}
}

// create starts a session for username and returns the cookie token.
func (st *sessionStore) create(username string) string {
	token := uuid.NewString()
	st.mu.Lock()
	st.sessions[token] = session{
		username: username,
		expires:  time.Now().Add(st.cfg.TTL),
	}
	st.mu.Unlock()
	return token
}

// lookup returns the session's username and whether it is still valid.
func (st *sessionStore) lookup(token string) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok {
		return "", false
	}
	if time.Now().After(s.expires) {
		delete(st.sessions, token)
		return "", false
	}
	return s.username, true
}

// drop terminates a session.
func (st *sessionStore) drop(token string) {
	st.mu.Lock()
	delete(st.sessions, token)
	st.mu.Unlock()
}

// setCookie writes the session cookie on a login response.
func (st *sessionStore) setCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     st.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   st.cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(st.cfg.TTL / time.Second),
	})
}

// clearCookie expires the session cookie on logout.
func (st *sessionStore) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     st.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// require redirects unauthenticated requests to the login form.
func (st *sessionStore) require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(st.cfg.CookieName)
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if _, ok := st.lookup(cookie.Value); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
