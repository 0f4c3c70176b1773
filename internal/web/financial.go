package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
	"github.com/uniewms/carrierboard/internal/report"
)

const (
	weeklyBuckets  = 4
	monthlyBuckets = 3
)

// financialData is the template data for the financial summary page.
type financialData struct {
	PageData
	Total      float64
	TotalCount int
	Weekly     []report.Bucket
	Monthly    []report.Bucket
	Offers     []freight.Offer
}

// revenueRecords turns approved offers into bucketer records. The approval
// time (updatedAt) places an offer in a bucket, falling back to createdAt;
// offers with neither still count toward the unfiltered total.
func revenueRecords(offers []freight.Offer) []report.Record {
	records := make([]report.Record, 0, len(offers))
	for _, offer := range offers {
		ts := offer.UpdatedAt
		if ts == nil {
			ts = offer.CreatedAt
		}
		records = append(records, report.Record{Amount: offer.Amount, Timestamp: ts})
	}
	return records
}

// FinancialPage shows total approved revenue, recent weekly and monthly
// revenue buckets, and the approved offers behind them.
func (s *Server) FinancialPage(w http.ResponseWriter, r *http.Request) {
	viewer := GetViewer(r.Context())

	data := financialData{
		PageData: PageData{Title: "Financial", User: &viewer.User},
	}
	flashFromQuery(&data.PageData, r)

	list, err := s.Freight.ListMyOffers(r.Context(), viewer.Token, freight.OfferStatusApproved)
	if err != nil {
		slog.Error("failed to list approved offers", "error", err)
		data.Error = loadErrorMessage("financial summary", err)
		s.Templates.Render(w, "financial.html", data)
		return
	}

	records := revenueRecords(list.Data)
	now := time.Now()

	data.Total, data.TotalCount = report.Total(records)
	data.Weekly = report.Revenue(now, report.Weekly, weeklyBuckets, records)
	data.Monthly = report.Revenue(now, report.Monthly, monthlyBuckets, records)
	data.Offers = list.Data

	s.Templates.Render(w, "financial.html", data)
}
