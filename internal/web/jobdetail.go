package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
)

// jobDetailData is the template data for a single opportunity.
type jobDetailData struct {
	PageData
	Job     *freight.Job
	MyOffer *freight.Offer
}

// findOfferForJob returns the carrier's offer against the given job, if any.
func (s *Server) findOfferForJob(r *http.Request, token, jobID string) *freight.Offer {
	list, err := s.Freight.ListMyOffers(r.Context(), token, "")
	if err != nil {
		slog.Error("failed to list offers", "error", err)
		return nil
	}
	for i := range list.Data {
		if list.Data[i].JobID() == jobID {
			return &list.Data[i]
		}
	}
	return nil
}

// JobDetailPage shows one opportunity with the carrier's quote, if any.
// Opening the page marks the job viewed.
func (s *Server) JobDetailPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")

	data := jobDetailData{
		PageData: PageData{Title: "Opportunity", User: &viewer.User},
	}
	flashFromQuery(&data.PageData, r)

	job, err := s.Freight.GetJob(r.Context(), viewer.Token, jobID)
	if err != nil {
		slog.Error("failed to load job", "job", jobID, "error", err)
		data.Error = loadErrorMessage("opportunity", err)
		s.Templates.Render(w, "job_detail.html", data)
		return
	}

	if !job.Viewed {
		if err := s.Freight.MarkJobViewed(r.Context(), viewer.Token, jobID); err != nil {
			slog.Warn("failed to mark job viewed", "job", jobID, "error", err)
		} else {
			job.Viewed = true
		}
	}

	data.Job = job
	if job.Title != "" {
		data.Title = job.Title
	}
	if job.MyOfferStatus != "" {
		data.MyOffer = s.findOfferForJob(r, viewer.Token, jobID)
	}
	s.Templates.Render(w, "job_detail.html", data)
}

// parseAmount parses a positive form amount.
func parseAmount(raw string) (float64, bool) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// OfferSubmit submits a new quote against a job.
func (s *Server) OfferSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")
	page := "/opportunities/" + url.PathEscape(jobID)

	if viewer.User.IsSubUser {
		redirectWithError(w, r, page, "sub-user accounts cannot submit quotes")
		return
	}

	amount, ok := parseAmount(r.FormValue("amount"))
	if !ok {
		redirectWithError(w, r, page, "enter a valid quote amount")
		return
	}

	err := s.Freight.SubmitOffer(r.Context(), viewer.Token, jobID, amount,
		r.FormValue("currency"), strings.TrimSpace(r.FormValue("notes")))
	if err != nil {
		slog.Error("failed to submit offer", "job", jobID, "error", err)
		redirectWithError(w, r, page, actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, page, "quote submitted")
}

// OfferUpdateSubmit edits the carrier's pending quote.
func (s *Server) OfferUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")
	page := "/opportunities/" + url.PathEscape(jobID)

	amount, ok := parseAmount(r.FormValue("amount"))
	if !ok {
		redirectWithError(w, r, page, "enter a valid quote amount")
		return
	}

	err := s.Freight.UpdateOffer(r.Context(), viewer.Token, jobID, amount,
		strings.TrimSpace(r.FormValue("notes")))
	if err != nil {
		slog.Error("failed to update offer", "job", jobID, "error", err)
		redirectWithError(w, r, page, actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, page, "quote updated")
}

// OfferCancelSubmit withdraws the carrier's quote.
func (s *Server) OfferCancelSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")
	page := "/opportunities/" + url.PathEscape(jobID)

	if err := s.Freight.CancelOffer(r.Context(), viewer.Token, jobID); err != nil {
		slog.Error("failed to cancel offer", "job", jobID, "error", err)
		redirectWithError(w, r, page, actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, page, "quote withdrawn")
}

// NotInterestedSubmit hides the job from the carrier's default listing.
func (s *Server) NotInterestedSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")

	if err := s.Freight.MarkNotInterested(r.Context(), viewer.Token, jobID); err != nil {
		slog.Error("failed to mark not interested", "job", jobID, "error", err)
		redirectWithError(w, r, "/opportunities/"+url.PathEscape(jobID), actionErrorMessage(err))
		return
	}
	http.Redirect(w, r, "/opportunities", http.StatusSeeOther)
}

// DisputeSubmit opens a payment dispute against the carrier's offer.
func (s *Server) DisputeSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	jobID := r.PathValue("id")
	page := "/opportunities/" + url.PathEscape(jobID)

	offerID := r.FormValue("offer_id")
	reason := r.FormValue("reason")
	description := strings.TrimSpace(r.FormValue("description"))
	if offerID == "" || reason == "" {
		redirectWithError(w, r, page, "select a dispute reason")
		return
	}

	err := s.Freight.CreateDispute(r.Context(), viewer.Token, offerID, reason, description)
	if err != nil {
		slog.Error("failed to create dispute", "offer", offerID, "error", err)
		redirectWithError(w, r, page, actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, page, "dispute opened, track it in your inbox")
}
