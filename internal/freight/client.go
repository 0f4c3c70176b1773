package freight

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to the remote freight-management API. All entity state lives
// upstream; the client only fetches and submits on behalf of a carrier whose
// bearer token is passed per call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the given API base URL (e.g.
// "https://api.example.com/api/v1").
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-2xx response from the upstream API, carrying the
// server-reported message so it can be surfaced to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed (%d)", e.StatusCode)
}

// apiErrorBody is the error envelope upstream uses on failures.
type apiErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do issues one JSON request. A non-2xx status is returned as *APIError;
// transport failures are returned as-is.
func (c *Client) do(ctx context.Context, token, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e apiErrorBody
		_ = json.NewDecoder(resp.Body).Decode(&e)
		msg := e.Error
		if msg == "" {
			msg = e.Message
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return nil
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Login authenticates a carrier and returns the bearer token and account.
// Only freight-carrier accounts may use this dashboard.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	var resp LoginResponse
	err := c.do(ctx, "", http.MethodPost, "/auth/freight-carrier/login", nil,
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.User.Email == "" {
		return nil, fmt.Errorf("invalid response from server")
	}
	if resp.User.Role != "freight-carrier" {
		return nil, fmt.Errorf("this login is for freight carriers only")
	}
	return &resp, nil
}

// ListJobsParams filters the open-jobs listing.
type ListJobsParams struct {
	Type                  string
	DestinationState      string
	Limit                 int
	Offset                int
	Sort                  string
	IncludeNotInterested  bool
	ShowOnlyNotInterested bool
}

// JobList is a page of jobs plus listing metadata.
type JobList struct {
	Data       []Job `json:"data"`
	Total      int   `json:"total"`
	Restricted bool  `json:"restricted"`
}

// ListJobs fetches open shipment opportunities.
func (c *Client) ListJobs(ctx context.Context, token string, params ListJobsParams) (*JobList, error) {
	q := url.Values{}
	if params.Type != "" {
		q.Set("type", params.Type)
	}
	if params.DestinationState != "" {
		q.Set("destinationState", params.DestinationState)
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		q.Set("offset", strconv.Itoa(params.Offset))
	}
	if params.Sort != "" {
		q.Set("sort", params.Sort)
	}
	if params.IncludeNotInterested {
		q.Set("includeNotInterested", "true")
	}
	if params.ShowOnlyNotInterested {
		q.Set("showOnlyNotInterested", "true")
	}

	var list JobList
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/jobs", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetJob fetches one job by id.
func (c *Client) GetJob(ctx context.Context, token, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/jobs/"+url.PathEscape(id), nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// MarkJobViewed records that the carrier opened the job.
func (c *Client) MarkJobViewed(ctx context.Context, token, jobID string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/jobs/"+url.PathEscape(jobID)+"/view", nil, nil, nil)
}

// MarkNotInterested hides the job from the carrier's default listing.
func (c *Client) MarkNotInterested(ctx context.Context, token, jobID string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/jobs/"+url.PathEscape(jobID)+"/not-interested", nil, nil, nil)
}

// SubmitOffer submits a new price quote against a job.
func (c *Client) SubmitOffer(ctx context.Context, token, jobID string, amount float64, currency, notes string) error {
	body := map[string]any{"amount": amount}
	if currency != "" {
		body["currency"] = currency
	}
	if notes != "" {
		body["notes"] = notes
	}
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/jobs/"+url.PathEscape(jobID)+"/offers", nil, body, nil)
}

// UpdateOffer edits the carrier's pending quote on a job.
func (c *Client) UpdateOffer(ctx context.Context, token, jobID string, amount float64, notes string) error {
	body := map[string]any{"amount": amount}
	if notes != "" {
		body["notes"] = notes
	}
	return c.do(ctx, token, http.MethodPatch, "/freight-carrier/jobs/"+url.PathEscape(jobID)+"/offer", nil, body, nil)
}

// CancelOffer withdraws the carrier's quote on a job.
func (c *Client) CancelOffer(ctx context.Context, token, jobID string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/jobs/"+url.PathEscape(jobID)+"/offer/cancel", nil, nil, nil)
}

// OfferList is a page of the carrier's offers.
type OfferList struct {
	Data  []Offer `json:"data"`
	Total int     `json:"total"`
}

// ListMyOffers fetches the carrier's offers, optionally filtered by status.
func (c *Client) ListMyOffers(ctx context.Context, token, status string) (*OfferList, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	var list OfferList
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/offers", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ActiveJobDetails are the carrier-editable fields of an approved job.
// Empty fields are omitted from the patch.
type ActiveJobDetails struct {
	TruckDescription          string `json:"truckDescription,omitempty"`
	TruckType                 string `json:"truckType,omitempty"`
	LicensePlate              string `json:"licensePlate,omitempty"`
	DriverName                string `json:"driverName,omitempty"`
	CarrierJobStatus          string `json:"carrierJobStatus,omitempty"`
	CarrierProposedPickupDate string `json:"carrierProposedPickupDate,omitempty"`
	CarrierProposedPickupTime string `json:"carrierProposedPickupTime,omitempty"`
}

// UpdateActiveJobDetails patches truck, driver, status, and proposed pickup
// on an approved job.
func (c *Client) UpdateActiveJobDetails(ctx context.Context, token, warehouseCode, jobID string, details ActiveJobDetails) error {
	body := struct {
		WarehouseCode string `json:"warehouseCode"`
		JobID         string `json:"jobId"`
		ActiveJobDetails
	}{warehouseCode, jobID, details}
	return c.do(ctx, token, http.MethodPatch, "/freight-carrier/active-jobs/details", nil, body, nil)
}

// GetProfile fetches the carrier's company profile.
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/profile", nil, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ProfileUpdate is a partial profile patch; nil slices leave fields unchanged.
type ProfileUpdate struct {
	StatesServed     []string        `json:"statesServed,omitempty"`
	ContactName      string          `json:"contactName,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	CompanyName      string          `json:"companyName,omitempty"`
	ContactEmail     string          `json:"contactEmail,omitempty"`
	ProfileImageURL  string          `json:"profileImageUrl,omitempty"`
	FleetPerState    []FleetEntry    `json:"fleetPerState,omitempty"`
	DeliveryCoverage []CoverageEntry `json:"deliveryCoverage,omitempty"`
}

// UpdateProfile patches the carrier's profile.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) error {
	return c.do(ctx, token, http.MethodPatch, "/freight-carrier/profile", nil, update, nil)
}

// ChangePassword changes the carrier account password.
func (c *Client) ChangePassword(ctx context.Context, token, current, updated string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/change-password", nil,
		map[string]string{"currentPassword": current, "newPassword": updated}, nil)
}

// ListFeedback fetches warehouse ratings of the carrier.
func (c *Client) ListFeedback(ctx context.Context, token string) ([]Feedback, error) {
	var resp struct {
		Data []Feedback `json:"data"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/feedback", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// NotificationList is the notifications payload with the unread counter.
type NotificationList struct {
	Data        []Notification `json:"data"`
	UnreadCount int            `json:"unreadCount"`
}

// ListNotifications fetches platform notifications.
func (c *Client) ListNotifications(ctx context.Context, token string, unreadOnly bool, limit int) (*NotificationList, error) {
	q := url.Values{}
	if unreadOnly {
		q.Set("unreadOnly", "true")
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var list NotificationList
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/notifications", q, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, token, id string) error {
	return c.do(ctx, token, http.MethodPut, "/freight-carrier/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

// ListBusinessFiles fetches the carrier's uploaded documents.
func (c *Client) ListBusinessFiles(ctx context.Context, token string) ([]BusinessFile, error) {
	var resp struct {
		Data []BusinessFile `json:"data"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/business-files", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// BusinessFileUpload registers an uploaded document.
type BusinessFileUpload struct {
	Type      string `json:"type"`
	URL       string `json:"url,omitempty"`
	FileID    string `json:"fileId,omitempty"`
	ExpiresAt string `json:"expiresAt,omitempty"`
}

// CreateBusinessFile registers a document upload with the platform.
func (c *Client) CreateBusinessFile(ctx context.Context, token string, upload BusinessFileUpload) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/business-files", nil, upload, nil)
}

// ListSubUsers fetches the carrier's sub-user accounts.
func (c *Client) ListSubUsers(ctx context.Context, token string) ([]SubUser, error) {
	var resp struct {
		Data []SubUser `json:"data"`
	}
	if err := c.do(ctx, token, http.MethodGet, "/freight-carrier/sub-users", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateSubUser creates a restricted account under the carrier's company.
func (c *Client) CreateSubUser(ctx context.Context, token, email, name, password string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/sub-users", nil,
		map[string]string{"email": email, "name": name, "password": password}, nil)
}

// CreateDispute opens a dispute on a paid or unpaid offer.
func (c *Client) CreateDispute(ctx context.Context, token, offerID, reasonCategory, description string) error {
	return c.do(ctx, token, http.MethodPost, "/freight-carrier/disputes", nil,
		map[string]string{
			"offerId":        offerID,
			"reasonCategory": reasonCategory,
			"description":    description,
		}, nil)
}
