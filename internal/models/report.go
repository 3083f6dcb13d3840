package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportReason is the category a reporter selects.
type ReportReason string

const (
	ReportReasonScam          ReportReason = "scam"
	ReportReasonInappropriate ReportReason = "inappropriate"
	ReportReasonOther         ReportReason = "other"
)

// Valid returns true if the reason is a known value.
func (r ReportReason) Valid() bool {
	switch r {
	case ReportReasonScam, ReportReasonInappropriate, ReportReasonOther:
		return true
	default:
		return false
	}
}

// ReportStatus tracks the moderation lifecycle. The application only ever
// writes "pending"; review happens in an external workflow.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// Report flags a listing for moderation. ListingTitle is a denormalized
// snapshot taken at submission time.
type Report struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	ListingID     uuid.UUID    `json:"listing_id" db:"listing_id"`
	ListingTitle  string       `json:"listing_title" db:"listing_title"`
	ReportedBy    uuid.UUID    `json:"reported_by" db:"reported_by"`
	ReporterEmail string       `json:"reporter_email" db:"reporter_email"`
	Reason        ReportReason `json:"reason" db:"reason"`
	Details       *string      `json:"details,omitempty" db:"details"`
	Status        ReportStatus `json:"status" db:"status"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
	ReviewedAt    *time.Time   `json:"reviewed_at,omitempty" db:"reviewed_at"`
	ReviewedBy    *uuid.UUID   `json:"reviewed_by,omitempty" db:"reviewed_by"`
}
