package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
)

// subUsersData is the template data for the sub-users page.
type subUsersData struct {
	PageData
	SubUsers []freight.SubUser
}

// SubUsersPage lists restricted accounts under the carrier's company.
func (s *Server) SubUsersPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := subUsersData{
		PageData: PageData{Title: "Sub-users", User: &viewer.User},
	}
	flashFromQuery(&data.PageData, r)

	subUsers, err := s.Freight.ListSubUsers(r.Context(), viewer.Token)
	if err != nil {
		slog.Error("failed to list sub-users", "error", err)
		data.Error = loadErrorMessage("sub-users", err)
		s.Templates.Render(w, "subusers.html", data)
		return
	}

	data.SubUsers = subUsers
	s.Templates.Render(w, "subusers.html", data)
}

// SubUserCreateSubmit creates a new sub-user account.
func (s *Server) SubUserCreateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	if viewer.User.IsSubUser {
		redirectWithError(w, r, "/subusers", "sub-user accounts cannot manage sub-users")
		return
	}

	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	name := strings.TrimSpace(r.FormValue("name"))
	password := r.FormValue("password")
	if email == "" || password == "" {
		redirectWithError(w, r, "/subusers", "email and password are required")
		return
	}

	if err := s.Freight.CreateSubUser(r.Context(), viewer.Token, email, name, password); err != nil {
		slog.Error("failed to create sub-user", "error", err)
		redirectWithError(w, r, "/subusers", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/subusers", "sub-user created")
}
