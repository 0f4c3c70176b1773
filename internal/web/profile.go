package web

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
	"github.com/uniewms/carrierboard/internal/imaging"
)

// maxProfileImageUpload caps the accepted upload body.
const maxProfileImageUpload = 10 << 20

// profileData is the template data for the profile page.
type profileData struct {
	PageData
	Profile *freight.Profile
}

// loadProfileData fetches the profile for the profile and company pages.
func (s *Server) loadProfileData(r *http.Request, title string) profileData {
	viewer := GetViewer(r.Context())

	data := profileData{
		PageData: PageData{Title: title, User: &viewer.User},
	}
	flashFromQuery(&data.PageData, r)

	profile, err := s.Freight.GetProfile(r.Context(), viewer.Token)
	if err != nil {
		slog.Error("failed to load profile", "error", err)
		data.Error = loadErrorMessage("profile", err)
		return data
	}
	data.Profile = profile
	return data
}

// ProfilePage shows contact details, password change, and photo upload.
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "profile.html", s.loadProfileData(r, "Profile"))
}

// ProfileSubmit patches the carrier's contact fields.
func (s *Server) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	update := freight.ProfileUpdate{
		CompanyName:  strings.TrimSpace(r.FormValue("company_name")),
		ContactName:  strings.TrimSpace(r.FormValue("contact_name")),
		ContactEmail: strings.TrimSpace(r.FormValue("contact_email")),
		Phone:        strings.TrimSpace(r.FormValue("phone")),
	}

	if err := s.Freight.UpdateProfile(r.Context(), viewer.Token, update); err != nil {
		slog.Error("failed to update profile", "error", err)
		redirectWithError(w, r, "/profile", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/profile", "profile updated")
}

// PasswordSubmit changes the account password.
func (s *Server) PasswordSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	current := r.FormValue("current_password")
	updated := r.FormValue("new_password")
	if current == "" || updated == "" {
		redirectWithError(w, r, "/profile", "current and new password are required")
		return
	}
	if updated != r.FormValue("confirm_password") {
		redirectWithError(w, r, "/profile", "new passwords do not match")
		return
	}

	if err := s.Freight.ChangePassword(r.Context(), viewer.Token, current, updated); err != nil {
		slog.Error("failed to change password", "error", err)
		redirectWithError(w, r, "/profile", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/profile", "password changed")
}

// ProfileImageSubmit normalizes an uploaded photo and stores it on the
// profile as a data URL.
func (s *Server) ProfileImageSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxProfileImageUpload)
	if err := r.ParseMultipartForm(maxProfileImageUpload); err != nil {
		redirectWithError(w, r, "/profile", "image too large")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		redirectWithError(w, r, "/profile", "choose an image to upload")
		return
	}
	defer file.Close()

	photo, err := imaging.Normalize(file)
	if err != nil {
		redirectWithError(w, r, "/profile", "unsupported image format")
		return
	}

	dataURL := "data:" + photo.MIME + ";base64," + base64.StdEncoding.EncodeToString(photo.Data)
	update := freight.ProfileUpdate{ProfileImageURL: dataURL}
	if err := s.Freight.UpdateProfile(r.Context(), viewer.Token, update); err != nil {
		slog.Error("failed to store profile image", "error", err)
		redirectWithError(w, r, "/profile", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/profile", "photo updated")
}
