package freight

import (
	"sort"
	"time"
)

// Offer statuses.
const (
	OfferStatusPending  = "pending"
	OfferStatusApproved = "approved"
	OfferStatusRejected = "rejected"
)

// Payment statuses.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusDisputed = "disputed"
)

// Carrier job statuses, in lifecycle order.
const (
	JobStatusAssigned   = "assigned"
	JobStatusDispatched = "dispatched"
	JobStatusInTransit  = "in_transit"
	JobStatusDelivered  = "delivered"
)

// Job types.
const (
	JobTypeLTL = "LTL"
	JobTypeFTL = "FTL"
)

// Address is a pickup or delivery location attached to a job spec.
type Address struct {
	Name    string `json:"name,omitempty"`
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// JobSpec holds the shipment requirements of a job.
type JobSpec struct {
	PalletCount        *int       `json:"palletCount,omitempty"`
	BoxesInPallet      *int       `json:"boxesInPallet,omitempty"`
	TotalBoxes         *int       `json:"totalBoxes,omitempty"`
	ClientCount        *int       `json:"clientCount,omitempty"`
	SKUCount           *int       `json:"skuCount,omitempty"`
	ClientName         string     `json:"clientName,omitempty"`
	PickupDate         *time.Time `json:"pickupDate,omitempty"`
	DeliverBy          *time.Time `json:"deliverBy,omitempty"`
	Capabilities       []string   `json:"capabilities,omitempty"`
	OriginAddress      *Address   `json:"originAddress,omitempty"`
	DestinationAddress *Address   `json:"destinationAddress,omitempty"`
}

// Job is a shipment opportunity or assignment. The carrier-assigned fields
// (truck, driver, status, proposed pickup) are only meaningful once the
// parent offer has been approved.
type Job struct {
	ID                        string     `json:"_id,omitempty"`
	AltID                     string     `json:"id,omitempty"`
	Reference                 string     `json:"reference,omitempty"`
	DisplayID                 string     `json:"displayId,omitempty"`
	Title                     string     `json:"title,omitempty"`
	Type                      string     `json:"type,omitempty"`
	WarehouseCode             string     `json:"warehouseCode,omitempty"`
	DestinationWarehouseCode  string     `json:"destinationWarehouseCode,omitempty"`
	DestinationState          string     `json:"destinationState,omitempty"`
	DestinationCity           string     `json:"destinationCity,omitempty"`
	ClientName                string     `json:"clientName,omitempty"`
	Viewed                    bool       `json:"viewed,omitempty"`
	NotInterested             bool       `json:"notInterested,omitempty"`
	MyOfferStatus             string     `json:"myOfferStatus,omitempty"`
	Spec                      *JobSpec   `json:"spec,omitempty"`
	TruckDescription          string     `json:"truckDescription,omitempty"`
	CarrierTruckType          string     `json:"carrierTruckType,omitempty"`
	CarrierLicensePlate       string     `json:"carrierLicensePlate,omitempty"`
	CarrierDriverName         string     `json:"carrierDriverName,omitempty"`
	CarrierJobStatus          string     `json:"carrierJobStatus,omitempty"`
	CarrierProposedPickupDate string     `json:"carrierProposedPickupDate,omitempty"`
	CarrierProposedPickupTime string     `json:"carrierProposedPickupTime,omitempty"`
	CreatedAt                 *time.Time `json:"createdAt,omitempty"`
}

// JobID returns the canonical identifier, preferring the primary id.
func (j Job) JobID() string {
	if j.ID != "" {
		return j.ID
	}
	return j.AltID
}

// Offer is a carrier's price quote against a job.
type Offer struct {
	ID            string     `json:"_id,omitempty"`
	FreightJobID  string     `json:"freightJobId,omitempty"`
	SnapshotID    string     `json:"snapshotId,omitempty"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Status        string     `json:"status,omitempty"`
	PaymentStatus string     `json:"paymentStatus,omitempty"`
	Job           *Job       `json:"job,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
}

// JobID returns the identifier of the offer's job, falling back to the
// denormalized freight job id when the job is not embedded.
func (o Offer) JobID() string {
	if o.Job != nil {
		if id := o.Job.JobID(); id != "" {
			return id
		}
	}
	return o.FreightJobID
}

// FleetEntry describes the trucks a carrier runs in one state.
type FleetEntry struct {
	State  string         `json:"state"`
	Trucks map[string]int `json:"trucks,omitempty"`
}

// CoverageEntry describes delivery coverage for one state.
type CoverageEntry struct {
	State string   `json:"state"`
	Mode  string   `json:"mode"` // "statewide" or "zips"
	Zips  []string `json:"zips,omitempty"`
}

// Profile is the carrier's company profile.
type Profile struct {
	CompanyName      string          `json:"companyName,omitempty"`
	ContactName      string          `json:"contactName,omitempty"`
	ContactEmail     string          `json:"contactEmail,omitempty"`
	Phone            string          `json:"phone,omitempty"`
	StatesServed     []string        `json:"statesServed,omitempty"`
	FleetPerState    []FleetEntry    `json:"fleetPerState,omitempty"`
	DeliveryCoverage []CoverageEntry `json:"deliveryCoverage,omitempty"`
	ProfileImageURL  string          `json:"profileImageUrl,omitempty"`
}

// TruckTypes returns the unique truck types across the fleet, sorted.
func (p Profile) TruckTypes() []string {
	seen := map[string]bool{}
	var types []string
	for _, entry := range p.FleetPerState {
		for name := range entry.Trucks {
			if name != "" && !seen[name] {
				seen[name] = true
				types = append(types, name)
			}
		}
	}
	sort.Strings(types)
	return types
}

// User is the authenticated carrier account returned by login.
type User struct {
	ID               string `json:"id"`
	Email            string `json:"email"`
	Name             string `json:"name,omitempty"`
	Role             string `json:"role"`
	WarehouseCode    string `json:"warehouseCode,omitempty"`
	FreightCarrierID string `json:"freightCarrierId,omitempty"`
	Grade            *int   `json:"grade,omitempty"`
	GradeStatus      string `json:"gradeStatus,omitempty"`
	IsSubUser        bool   `json:"isSubUser,omitempty"`
	ProfileImageURL  string `json:"profileImageUrl,omitempty"`
}

// Notification is a carrier-facing notice from the platform.
type Notification struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title,omitempty"`
	Body      string     `json:"body,omitempty"`
	Read      bool       `json:"read"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// Feedback is a warehouse rating of a completed job.
type Feedback struct {
	ID                    string     `json:"_id"`
	WarehouseCode         string     `json:"warehouseCode,omitempty"`
	RatingPricing         float64    `json:"ratingPricing"`
	RatingCommunication   float64    `json:"ratingCommunication"`
	RatingOnTimeDelivery  float64    `json:"ratingOnTimeDelivery"`
	RatingProfessionalism float64    `json:"ratingProfessionalism"`
	Comments              string     `json:"comments,omitempty"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
}

// Average returns the mean of the four rating dimensions.
func (f Feedback) Average() float64 {
	return (f.RatingPricing + f.RatingCommunication + f.RatingOnTimeDelivery + f.RatingProfessionalism) / 4
}

// MessageMetadata links a mailbox message to freight entities.
type MessageMetadata struct {
	FreightJobID     string `json:"freightJobId,omitempty"`
	FreightCarrierID string `json:"freightCarrierId,omitempty"`
}

// Message is one mailbox message, part of a thread.
type Message struct {
	ID        string           `json:"_id"`
	MessageID string           `json:"messageId,omitempty"`
	ThreadID  string           `json:"threadId,omitempty"`
	InReplyTo string           `json:"inReplyTo,omitempty"`
	Subject   string           `json:"subject,omitempty"`
	Body      string           `json:"body,omitempty"`
	Direction string           `json:"direction,omitempty"` // "inbound" or "outbound"
	FromEmail string           `json:"fromEmail,omitempty"`
	ToEmails  []string         `json:"toEmails,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt *time.Time       `json:"createdAt,omitempty"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// DisputeThreadInfo describes the dispute behind a dispute thread.
type DisputeThreadInfo struct {
	DisputeID      string `json:"disputeId"`
	WarehouseCode  string `json:"warehouseCode,omitempty"`
	CarrierName    string `json:"carrierName,omitempty"`
	Status         string `json:"status,omitempty"`
	ReasonCategory string `json:"reasonCategory,omitempty"`
}

// BusinessFile is an uploaded carrier document (insurance, authority, W-9).
type BusinessFile struct {
	ID        string     `json:"_id"`
	Type      string     `json:"type"`
	URL       string     `json:"url,omitempty"`
	FileID    string     `json:"fileId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// SubUser is a restricted account under the carrier's company.
type SubUser struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
