package web

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
	webembed "github.com/uniewms/carrierboard/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, client *freight.Client, secret string, sessionTTL time.Duration) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:         db,
		Templates:  templates,
		Secret:     secret,
		Freight:    client,
		SessionTTL: sessionTTL,
	}

	mux := http.NewServeMux()
	cookieAuth := CookieAuthMiddleware(secret, db)
	authed := func(h http.HandlerFunc) http.Handler { return cookieAuth(h) }

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)

	// Authenticated routes.
	mux.Handle("POST /logout", authed(s.Logout))
	mux.Handle("GET /{$}", authed(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/opportunities", http.StatusSeeOther)
	}))

	mux.Handle("GET /opportunities", authed(s.OpportunitiesPage))
	mux.Handle("GET /opportunities/{id}", authed(s.JobDetailPage))
	mux.Handle("POST /opportunities/{id}/offer", authed(s.OfferSubmit))
	mux.Handle("POST /opportunities/{id}/offer/update", authed(s.OfferUpdateSubmit))
	mux.Handle("POST /opportunities/{id}/offer/cancel", authed(s.OfferCancelSubmit))
	mux.Handle("POST /opportunities/{id}/not-interested", authed(s.NotInterestedSubmit))
	mux.Handle("POST /opportunities/{id}/dispute", authed(s.DisputeSubmit))

	mux.Handle("GET /active", authed(s.ActiveJobsPage))
	mux.Handle("POST /active/details", authed(s.ActiveDetailsSubmit))

	mux.Handle("GET /scheduled", authed(s.ScheduledPage))
	mux.Handle("GET /financial", authed(s.FinancialPage))

	mux.Handle("GET /inbox", authed(s.InboxPage))
	mux.Handle("POST /inbox/send", authed(s.InboxSendSubmit))

	mux.Handle("GET /notifications", authed(s.NotificationsPage))
	mux.Handle("POST /notifications/{id}/read", authed(s.NotificationReadSubmit))

	mux.Handle("GET /feedback", authed(s.FeedbackPage))

	mux.Handle("GET /profile", authed(s.ProfilePage))
	mux.Handle("POST /profile", authed(s.ProfileSubmit))
	mux.Handle("POST /profile/password", authed(s.PasswordSubmit))
	mux.Handle("POST /profile/image", authed(s.ProfileImageSubmit))

	mux.Handle("GET /company", authed(s.CompanyPage))
	mux.Handle("POST /company", authed(s.CompanySubmit))

	mux.Handle("GET /subusers", authed(s.SubUsersPage))
	mux.Handle("POST /subusers", authed(s.SubUserCreateSubmit))

	mux.Handle("GET /files", authed(s.FilesPage))
	mux.Handle("POST /files", authed(s.FileCreateSubmit))

	return mux, nil
}
