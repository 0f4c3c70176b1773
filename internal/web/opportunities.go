package web

import (
	"log/slog"
	"net/http"

	"github.com/uniewms/carrierboard/internal/freight"
	"github.com/uniewms/carrierboard/internal/store"
)

const jobPageSize = 100

// opportunitiesData is the template data for the opportunities listing.
type opportunitiesData struct {
	PageData
	Jobs          []freight.Job
	Total         int
	Restricted    bool
	States        []string
	Type          string
	State         string
	ViewStatus    string
	Sort          string
	IncludeHidden bool
	SubUser       bool
}

// matchesViewStatus applies the client-side view-status filter to one job.
func matchesViewStatus(job freight.Job, status string) bool {
	switch status {
	case "unviewed":
		return !job.Viewed
	case "viewed":
		return job.Viewed
	case "offered":
		return job.MyOfferStatus == freight.OfferStatusPending ||
			job.MyOfferStatus == freight.OfferStatusApproved
	case "denied":
		return job.MyOfferStatus == freight.OfferStatusRejected
	case "not_interested":
		return job.NotInterested
	default:
		return true
	}
}

// OpportunitiesPage lists open shipment opportunities with filters.
// Sub-user accounts cannot browse or quote, so the listing is withheld.
func (s *Server) OpportunitiesPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := opportunitiesData{
		PageData: PageData{Title: "Opportunities", User: &viewer.User},
		States:   usStates,
	}
	flashFromQuery(&data.PageData, r)

	if viewer.User.IsSubUser {
		data.SubUser = true
		s.Templates.Render(w, "opportunities.html", data)
		return
	}

	q := r.URL.Query()
	data.Type = q.Get("type")
	data.State = q.Get("state")
	data.ViewStatus = q.Get("view")
	data.Sort = q.Get("sort")
	data.IncludeHidden = q.Get("include_hidden") == "1"

	carrierID := viewer.User.FreightCarrierID
	if len(q) == 0 && carrierID != "" {
		prefs, err := store.GetFilterPrefs(r.Context(), s.DB, carrierID)
		if err != nil {
			slog.Error("failed to load filter prefs", "error", err)
		} else {
			data.Type = prefs.JobType
			data.State = prefs.DestinationState
			data.Sort = prefs.Sort
		}
	} else if carrierID != "" {
		err := store.SaveFilterPrefs(r.Context(), s.DB, carrierID, store.FilterPrefs{
			JobType:          data.Type,
			DestinationState: data.State,
			Sort:             data.Sort,
		})
		if err != nil {
			slog.Error("failed to save filter prefs", "error", err)
		}
	}

	list, err := s.Freight.ListJobs(r.Context(), viewer.Token, freight.ListJobsParams{
		Type:                  data.Type,
		DestinationState:      data.State,
		Sort:                  data.Sort,
		Limit:                 jobPageSize,
		IncludeNotInterested:  data.IncludeHidden,
		ShowOnlyNotInterested: data.ViewStatus == "not_interested",
	})
	if err != nil {
		slog.Error("failed to list jobs", "error", err)
		data.Error = loadErrorMessage("opportunities", err)
		s.Templates.Render(w, "opportunities.html", data)
		return
	}

	jobs := list.Data
	if data.ViewStatus != "" && data.ViewStatus != "all" {
		filtered := make([]freight.Job, 0, len(jobs))
		for _, job := range jobs {
			if matchesViewStatus(job, data.ViewStatus) {
				filtered = append(filtered, job)
			}
		}
		jobs = filtered
	}

	data.Jobs = jobs
	data.Total = list.Total
	data.Restricted = list.Restricted
	s.Templates.Render(w, "opportunities.html", data)
}
