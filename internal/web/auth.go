package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/uniewms/carrierboard/internal/session"
	"github.com/uniewms/carrierboard/internal/store"
)

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Sign in"})
}

// LoginSubmit handles POST /login. Credentials are forwarded to the upstream
// login endpoint; on success the upstream token is stored server-side and a
// signed session cookie is set.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Enter your email and password.",
		})
		return
	}

	resp, err := s.Freight.Login(r.Context(), email, password)
	if err != nil {
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: err.Error(),
		})
		return
	}

	token, jti, err := session.GenerateToken(s.Secret, resp.User, s.SessionTTL)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign-in failed. Try again.",
		})
		return
	}

	expiresAt := time.Now().Add(s.SessionTTL)
	if err := store.CreateSession(r.Context(), s.DB, jti, resp.Token, resp.User, expiresAt); err != nil {
		slog.Error("failed to create session", "error", err)
		s.Templates.Render(w, "login.html", &PageData{
			Title: "Sign in",
			Error: "Sign-in failed. Try again.",
		})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.SessionTTL / time.Second),
	})

	slog.Info("carrier signed in", "email", resp.User.Email)
	http.Redirect(w, r, "/opportunities", http.StatusSeeOther)
}

// Logout handles POST /logout: the session row is revoked and the cookie
// cleared.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if viewer := GetViewer(r.Context()); viewer != nil {
		if err := store.DeleteSession(r.Context(), s.DB, viewer.JTI); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
