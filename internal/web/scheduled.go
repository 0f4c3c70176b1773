package web

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
	"github.com/uniewms/carrierboard/internal/schedule"
	"github.com/uniewms/carrierboard/internal/search"
)

// pickupRow is one scheduled pickup on the schedule page.
type pickupRow struct {
	Offer      freight.Offer
	Pickup     time.Time
	Resolvable bool
	Status     schedule.Status
}

// scheduledData is the template data for the pickup schedule page.
type scheduledData struct {
	PageData
	Rows    []pickupRow
	Summary schedule.Summary
	Query   string
}

// buildScheduleRows keeps approved offers that carry both a proposed pickup
// date and time, classifies each, and orders them soonest first with
// unresolvable pickups last.
func buildScheduleRows(offers []freight.Offer, now time.Time) []pickupRow {
	var rows []pickupRow
	for _, offer := range offers {
		if offer.Job == nil {
			continue
		}
		date := offer.Job.CarrierProposedPickupDate
		clock := offer.Job.CarrierProposedPickupTime
		if date == "" || clock == "" {
			continue
		}

		row := pickupRow{Offer: offer, Status: schedule.StatusFor(date, clock, now)}
		row.Pickup, row.Resolvable = schedule.PickupTime(date, clock)
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Resolvable != rows[j].Resolvable {
			return rows[i].Resolvable
		}
		return rows[i].Pickup.Before(rows[j].Pickup)
	})
	return rows
}

// ScheduledPage shows approved pickups ordered by urgency, with
// today/tomorrow/rest-of-week counts and a search box.
func (s *Server) ScheduledPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())
	now := time.Now()

	data := scheduledData{
		PageData: PageData{Title: "Scheduled Pickups", User: &viewer.User},
		Query:    r.URL.Query().Get("q"),
	}
	flashFromQuery(&data.PageData, r)

	list, err := s.Freight.ListMyOffers(r.Context(), viewer.Token, freight.OfferStatusApproved)
	if err != nil {
		slog.Error("failed to list approved offers", "error", err)
		data.Error = loadErrorMessage("scheduled pickups", err)
		s.Templates.Render(w, "scheduled.html", data)
		return
	}

	rows := buildScheduleRows(list.Data, now)

	var pickups []time.Time
	for _, row := range rows {
		if row.Resolvable {
			pickups = append(pickups, row.Pickup)
		}
	}
	data.Summary = schedule.Summarize(pickups, now)

	if data.Query != "" {
		filtered := make([]pickupRow, 0, len(rows))
		for _, row := range rows {
			if search.Matches(search.IndexOffer(row.Offer), data.Query) {
				filtered = append(filtered, row)
			}
		}
		rows = filtered
	}

	data.Rows = rows
	s.Templates.Render(w, "scheduled.html", data)
}
