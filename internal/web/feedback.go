package web

import (
	"log/slog"
	"net/http"

	"github.com/uniewms/carrierboard/internal/freight"
)

// feedbackData is the template data for the feedback page.
type feedbackData struct {
	PageData
	Feedback []freight.Feedback
	Overall  float64
}

// FeedbackPage lists warehouse ratings with the overall average.
func (s *Server) FeedbackPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := feedbackData{
		PageData: PageData{Title: "Feedback", User: &viewer.User},
	}
	flashFromQuery(&data.PageData, r)

	feedback, err := s.Freight.ListFeedback(r.Context(), viewer.Token)
	if err != nil {
		slog.Error("failed to list feedback", "error", err)
		data.Error = loadErrorMessage("feedback", err)
		s.Templates.Render(w, "feedback.html", data)
		return
	}

	data.Feedback = feedback
	for _, f := range feedback {
		data.Overall += f.Average()
	}
	if len(feedback) > 0 {
		data.Overall /= float64(len(feedback))
	}
	s.Templates.Render(w, "feedback.html", data)
}
