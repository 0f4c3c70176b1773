package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
)

// companyData is the template data for the company page.
type companyData struct {
	profileData
	States []string
}

// CompanyPage shows states served, fleet per state, and delivery coverage.
func (s *Server) CompanyPage(w http.ResponseWriter, r *http.Request) {
	data := companyData{
		profileData: s.loadProfileData(r, "Company"),
		States:      usStates,
	}
	s.Templates.Render(w, "company.html", data)
}

// parseFleet reads the parallel fleet form rows (state, truck type, count)
// and folds them into per-state truck maps. Empty rows are skipped.
func parseFleet(r *http.Request) []freight.FleetEntry {
	states := r.Form["fleet_state"]
	trucks := r.Form["fleet_truck"]
	counts := r.Form["fleet_count"]

	byState := map[string]map[string]int{}
	var order []string
	for i := range states {
		if i >= len(trucks) || i >= len(counts) {
			break
		}
		state := strings.TrimSpace(states[i])
		truck := strings.TrimSpace(trucks[i])
		count, err := strconv.Atoi(strings.TrimSpace(counts[i]))
		if state == "" || truck == "" || err != nil || count <= 0 {
			continue
		}
		if byState[state] == nil {
			byState[state] = map[string]int{}
			order = append(order, state)
		}
		byState[state][truck] += count
	}

	entries := make([]freight.FleetEntry, 0, len(order))
	for _, state := range order {
		entries = append(entries, freight.FleetEntry{State: state, Trucks: byState[state]})
	}
	return entries
}

// parseCoverage reads the parallel coverage form rows (state, mode, zips).
func parseCoverage(r *http.Request) []freight.CoverageEntry {
	states := r.Form["coverage_state"]
	modes := r.Form["coverage_mode"]
	zips := r.Form["coverage_zips"]

	var entries []freight.CoverageEntry
	for i := range states {
		if i >= len(modes) {
			break
		}
		state := strings.TrimSpace(states[i])
		if state == "" {
			continue
		}

		entry := freight.CoverageEntry{State: state, Mode: "statewide"}
		if modes[i] == "zips" && i < len(zips) {
			entry.Mode = "zips"
			for _, zip := range strings.Split(zips[i], ",") {
				if zip = strings.TrimSpace(zip); zip != "" {
					entry.Zips = append(entry.Zips, zip)
				}
			}
			if len(entry.Zips) == 0 {
				continue
			}
		}
		entries = append(entries, entry)
	}
	return entries
}

// CompanySubmit patches states served, fleet, and coverage.
func (s *Server) CompanySubmit(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	if err := r.ParseForm(); err != nil {
		redirectWithError(w, r, "/company", "invalid form submission")
		return
	}

	update := freight.ProfileUpdate{
		StatesServed:     r.Form["states"],
		FleetPerState:    parseFleet(r),
		DeliveryCoverage: parseCoverage(r),
	}

	if err := s.Freight.UpdateProfile(r.Context(), viewer.Token, update); err != nil {
		slog.Error("failed to update company profile", "error", err)
		redirectWithError(w, r, "/company", actionErrorMessage(err))
		return
	}
	redirectWithSuccess(w, r, "/company", "company details updated")
}
