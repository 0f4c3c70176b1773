package search

import (
	"strings"
	"testing"

	"github.com/uniewms/carrierboard/internal/freight"
)

func offerWithZip(zip string) freight.Offer {
	return freight.Offer{
		ID:     "offer-1",
		Amount: 450.50,
		Job: &freight.Job{
			ID:    "job-1",
			Title: "Pallets to Reno",
			Type:  freight.JobTypeFTL,
			Spec: &freight.JobSpec{
				OriginAddress: &freight.Address{
					City:    "Beverly Hills",
					State:   "CA",
					ZipCode: zip,
				},
			},
		},
	}
}

func TestZipMatching(t *testing.T) {
	hit := IndexOffer(offerWithZip("90210"))
	miss := IndexOffer(offerWithZip("90211"))

	if !Matches(hit, "90210") {
		t.Error("expected 90210 to match origin zip 90210")
	}
	if Matches(miss, "90210") {
		t.Error("expected 90210 not to match origin zip 90211")
	}
}

func TestMatchIsCaseInsensitiveAndTrimmed(t *testing.T) {
	text := IndexOffer(offerWithZip("90210"))
	for _, q := range []string{"RENO", "  reno  ", "Beverly", "ftl"} {
		if !Matches(text, q) {
			t.Errorf("expected %q to match", q)
		}
	}
}

func TestEmptyQueryMatchesAll(t *testing.T) {
	if !Matches("anything", "") || !Matches("anything", "   ") {
		t.Error("empty query should match everything")
	}
}

func TestEmptyFieldsOmitted(t *testing.T) {
	text := IndexOffer(freight.Offer{})
	if strings.Contains(text, "—") {
		t.Error("placeholder text leaked into the index")
	}
	if strings.Contains(text, "  ") {
		t.Errorf("empty fields produced double spaces: %q", text)
	}
}

func TestAmountAndStatusIndexed(t *testing.T) {
	o := offerWithZip("90210")
	o.Job.CarrierJobStatus = freight.JobStatusInTransit
	text := IndexOffer(o)

	if !Matches(text, "450.5") {
		t.Error("amount not searchable")
	}
	if !Matches(text, "in transit") {
		t.Error("status label not searchable")
	}
	if !Matches(text, "in_transit") {
		t.Error("status enum not searchable")
	}
}

func TestZeroAmountIndexed(t *testing.T) {
	o := offerWithZip("90210")
	o.Amount = 0
	if !Matches(IndexOffer(o), "0") {
		t.Error("zero amount not searchable")
	}
}
