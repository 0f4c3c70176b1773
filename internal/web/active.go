package web

import (
	"log/slog"
	"net/http"

	"github.com/uniewms/carrierboard/internal/freight"
)

// jobStatuses lists carrier job statuses in lifecycle order for forms.
var jobStatuses = []string{
	freight.JobStatusAssigned,
	freight.JobStatusDispatched,
	freight.JobStatusInTransit,
	freight.JobStatusDelivered,
}

// activeData is the template data for the active jobs page.
type activeData struct {
	PageData
	Offers       []freight.Offer
	StatusFilter string
	ApprovedSum  float64
	JobStatuses  []string
	TruckTypes   []string
}

// ActiveJobsPage lists the carrier's offers, defaulting to approved ones,
// with per-job truck and status forms.
func (s *Server) ActiveJobsPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	status := r.URL.Query().Get("status")
	if status == "" {
		status = freight.OfferStatusApproved
	}
	if status == "all" {
		status = ""
	}

	data := activeData{
		PageData:     PageData{Title: "Active Jobs", User: &viewer.User},
		StatusFilter: status,
		JobStatuses:  jobStatuses,
	}
	flashFromQuery(&data.PageData, r)

	list, err := s.Freight.ListMyOffers(r.Context(), viewer.Token, status)
	if err != nil {
		slog.Error("failed to list offers", "error", err)
		data.Error = loadErrorMessage("active jobs", err)
		s.Templates.Render(w, "active.html", data)
		return
	}

	for _, offer := range list.Data {
		if offer.Status == freight.OfferStatusApproved {
			data.ApprovedSum += offer.Amount
		}
	}
	data.Offers = list.Data

	if profile, err := s.Freight.GetProfile(r.Context(), viewer.Token); err == nil {
		data.TruckTypes = profile.TruckTypes()
	} else {
		slog.Warn("failed to load profile for truck types", "error", err)
	}

	s.Templates.Render(w, "active.html", data)
}

// ActiveDetailsSubmit patches truck, driver, status, and proposed pickup
// on an approved job, then returns to the active listing.
func (s *Server) ActiveDetailsSubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	jobID := r.FormValue("job_id")
	warehouseCode := r.FormValue("warehouse_code")
	if jobID == "" || warehouseCode == "" {
		redirectWithError(w, r, "/active", "job and warehouse are required")
		return
	}

	details := freight.ActiveJobDetails{
		TruckDescription:          r.FormValue("truck_description"),
		TruckType:                 r.FormValue("truck_type"),
		LicensePlate:              r.FormValue("license_plate"),
		DriverName:                r.FormValue("driver_name"),
		CarrierJobStatus:          r.FormValue("job_status"),
		CarrierProposedPickupDate: r.FormValue("pickup_date"),
		CarrierProposedPickupTime: r.FormValue("pickup_time"),
	}

	err := s.Freight.UpdateActiveJobDetails(r.Context(), viewer.Token, warehouseCode, jobID, details)
	if err != nil {
		slog.Error("failed to update active job details", "job", jobID, "error", err)
		redirectWithError(w, r, "/active", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/active", "job details updated")
}
