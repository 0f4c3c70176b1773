package web

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
)

// businessFileTypes are the accepted document categories.
var businessFileTypes = []string{"insurance", "authority", "w9", "other"}

// filesData is the template data for the business files page.
type filesData struct {
	PageData
	Files []freight.BusinessFile
	Types []string
}

// FilesPage lists the carrier's uploaded business documents.
func (s *Server) FilesPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := filesData{
		PageData: PageData{Title: "Business Files", User: &viewer.User},
		Types:    businessFileTypes,
	}
	flashFromQuery(&data.PageData, r)

	files, err := s.Freight.ListBusinessFiles(r.Context(), viewer.Token)
	if err != nil {
		slog.Error("failed to list business files", "error", err)
		data.Error = loadErrorMessage("business files", err)
		s.Templates.Render(w, "files.html", data)
		return
	}

	data.Files = files
	s.Templates.Render(w, "files.html", data)
}

// FileCreateSubmit registers a document by reference URL.
func (s *Server) FileCreateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	fileType := r.FormValue("type")
	fileURL := strings.TrimSpace(r.FormValue("url"))
	if fileType == "" || fileURL == "" {
		redirectWithError(w, r, "/files", "document type and URL are required")
		return
	}

	upload := freight.BusinessFileUpload{
		Type:      fileType,
		URL:       fileURL,
		ExpiresAt: strings.TrimSpace(r.FormValue("expires_at")),
	}
	if err := s.Freight.CreateBusinessFile(r.Context(), viewer.Token, upload); err != nil {
		slog.Error("failed to create business file", "error", err)
		redirectWithError(w, r, "/files", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/files", "document added")
}
