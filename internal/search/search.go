// Package search flattens offer rows into lowercase text for the visual
// search boxes. Matching is a plain substring test; there is no tokenization
// or ranking.
package search

import (
	"strconv"
	"strings"

	"github.com/uniewms/carrierboard/internal/freight"
)

// StatusLabels maps carrier job statuses to their display labels.
var StatusLabels = map[string]string{
	freight.JobStatusAssigned:   "Assigned",
	freight.JobStatusDispatched: "Dispatched",
	freight.JobStatusInTransit:  "In transit",
	freight.JobStatusDelivered:  "Delivered",
}

// IndexOffer joins every human-meaningful field of an offer and its embedded
// job into one lowercase string. Empty fields are omitted rather than
// rendered as placeholders, so placeholder text can never match a query.
func IndexOffer(o freight.Offer) string {
	var parts []string
	add := func(values ...string) {
		for _, v := range values {
			if v != "" {
				parts = append(parts, strings.ToLower(v))
			}
		}
	}

	job := o.Job
	if job == nil {
		job = &freight.Job{}
	}
	add(job.ID, job.AltID, job.Reference, job.DisplayID, job.Title, job.Type,
		job.DestinationWarehouseCode, job.DestinationState, job.DestinationCity,
		job.WarehouseCode, job.ClientName,
		job.CarrierJobStatus, StatusLabels[job.CarrierJobStatus])

	if spec := job.Spec; spec != nil {
		if spec.OriginAddress != nil {
			addAddress(&parts, *spec.OriginAddress)
		}
		if spec.DestinationAddress != nil {
			addAddress(&parts, *spec.DestinationAddress)
		}
		add(spec.ClientName)
	}

	add(job.CarrierTruckType, job.CarrierDriverName, job.CarrierLicensePlate)
	add(strconv.FormatFloat(o.Amount, 'f', -1, 64))
	add(o.ID)

	return strings.Join(parts, " ")
}

func addAddress(parts *[]string, a freight.Address) {
	for _, v := range []string{a.Name, a.City, a.State, a.Street, a.ZipCode, a.Country} {
		if v != "" {
			*parts = append(*parts, strings.ToLower(v))
		}
	}
}

// Matches reports whether the indexed text contains the trimmed, lowercased
// query. An empty query matches everything.
func Matches(text, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(text, q)
}
