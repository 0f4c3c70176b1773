package freight

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/freight-carrier/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok-1",
			User:  User{ID: "u-1", Email: "ops@example.com", Role: "freight-carrier"},
		})
	}))
	defer server.Close()

	resp, err := client.Login(context.Background(), "  Ops@Example.COM ", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "tok-1" {
		t.Errorf("token = %q", resp.Token)
	}
	if gotBody["email"] != "ops@example.com" {
		t.Errorf("email not normalized: %q", gotBody["email"])
	}
}

func TestLoginRejectsOtherRoles(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(LoginResponse{
			Token: "tok-1",
			User:  User{ID: "u-1", Email: "w@example.com", Role: "warehouse"},
		})
	}))
	defer server.Close()

	if _, err := client.Login(context.Background(), "w@example.com", "x"); err == nil {
		t.Error("expected error for non-carrier role")
	}
}

func TestLoginSurfacesServerError(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
	}))
	defer server.Close()

	_, err := client.Login(context.Background(), "a@b.c", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized || apiErr.Message != "Invalid credentials" {
		t.Errorf("apiErr = %+v", apiErr)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Errorf("authorization header = %q", got)
		}
		json.NewEncoder(w).Encode(OfferList{})
	}))
	defer server.Close()

	if _, err := client.ListMyOffers(context.Background(), "tok-9", ""); err != nil {
		t.Fatalf("ListMyOffers: %v", err)
	}
}

func TestListJobsQueryParams(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("type") != "FTL" || q.Get("destinationState") != "CA" ||
			q.Get("limit") != "100" || q.Get("sort") != "createdAt_desc" ||
			q.Get("includeNotInterested") != "true" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(JobList{Data: []Job{{ID: "j-1"}}, Total: 1, Restricted: true})
	}))
	defer server.Close()

	list, err := client.ListJobs(context.Background(), "tok", ListJobsParams{
		Type: "FTL", DestinationState: "CA", Limit: 100, Sort: "createdAt_desc", IncludeNotInterested: true,
	})
	if err != nil {
		t.Fatalf("ListJobs: %v", err)
	}
	if len(list.Data) != 1 || list.Total != 1 || !list.Restricted {
		t.Errorf("list = %+v", list)
	}
}

func TestListMyOffersDecodesNestedJob(t *testing.T) {
	payload := `{"data":[{"_id":"o-1","amount":450.5,"currency":"USD","status":"approved",
		"job":{"_id":"j-1","type":"FTL","warehouseCode":"LAX1",
		"carrierProposedPickupDate":"2025-06-10","carrierProposedPickupTime":"2:30 PM",
		"spec":{"palletCount":4,"originAddress":{"city":"Reno","state":"NV","zipCode":"89501"}}}}],"total":1}`
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("status") != "approved" {
			t.Errorf("status filter missing")
		}
		w.Write([]byte(payload))
	}))
	defer server.Close()

	list, err := client.ListMyOffers(context.Background(), "tok", "approved")
	if err != nil {
		t.Fatalf("ListMyOffers: %v", err)
	}
	offer := list.Data[0]
	if offer.Amount != 450.5 || offer.Status != "approved" {
		t.Errorf("offer = %+v", offer)
	}
	if offer.Job == nil || offer.Job.CarrierProposedPickupTime != "2:30 PM" {
		t.Fatalf("job not decoded: %+v", offer.Job)
	}
	if offer.Job.Spec == nil || offer.Job.Spec.OriginAddress.ZipCode != "89501" {
		t.Errorf("spec not decoded: %+v", offer.Job.Spec)
	}
	if offer.Job.Spec.PalletCount == nil || *offer.Job.Spec.PalletCount != 4 {
		t.Errorf("pallet count = %v", offer.Job.Spec.PalletCount)
	}
}

func TestUpdateActiveJobDetailsBody(t *testing.T) {
	var got map[string]any
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPatch || r.URL.Path != "/freight-carrier/active-jobs/details" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	err := client.UpdateActiveJobDetails(context.Background(), "tok", "LAX1", "j-1", ActiveJobDetails{
		DriverName:                "Sam",
		CarrierJobStatus:          JobStatusDispatched,
		CarrierProposedPickupDate: "2025-06-10",
	})
	if err != nil {
		t.Fatalf("UpdateActiveJobDetails: %v", err)
	}
	if got["warehouseCode"] != "LAX1" || got["jobId"] != "j-1" || got["driverName"] != "Sam" {
		t.Errorf("body = %v", got)
	}
	if _, present := got["truckType"]; present {
		t.Error("empty fields should be omitted from the patch")
	}
}

func TestJobIDFallbacks(t *testing.T) {
	if (Job{ID: "a", AltID: "b"}).JobID() != "a" {
		t.Error("primary id should win")
	}
	if (Job{AltID: "b"}).JobID() != "b" {
		t.Error("alt id should be the fallback")
	}
	o := Offer{FreightJobID: "f-1"}
	if o.JobID() != "f-1" {
		t.Error("offer should fall back to freightJobId")
	}
}

func TestFeedbackAverage(t *testing.T) {
	f := Feedback{RatingPricing: 5, RatingCommunication: 4, RatingOnTimeDelivery: 4, RatingProfessionalism: 3}
	if f.Average() != 4 {
		t.Errorf("average = %v", f.Average())
	}
}

func TestProfileTruckTypes(t *testing.T) {
	p := Profile{FleetPerState: []FleetEntry{
		{State: "CA", Trucks: map[string]int{"dry van": 3, "reefer": 1}},
		{State: "NV", Trucks: map[string]int{"dry van": 2, "flatbed": 1}},
	}}
	got := p.TruckTypes()
	want := []string{"dry van", "flatbed", "reefer"}
	if len(got) != len(want) {
		t.Fatalf("truck types = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("truck types = %v, want %v", got, want)
		}
	}
}
