package models

import (
	"time"

	"github.com/google/uuid"
)

type BidStatusType string

const (
	BidStatusPending  BidStatusType = "pending"
	BidStatusAccepted BidStatusType = "accepted"
	BidStatusRejected BidStatusType = "rejected"
)

// Bid is a contractor's priced, dated proposal to perform a Job. The
// contractor fields are a snapshot of the bidder's identity at submission
// time; later profile changes do not rewrite history.
type Bid struct {
	ID             uuid.UUID     `json:"id"`
	JobID          uuid.UUID     `json:"job_id"`
	ContractorID   uuid.UUID     `json:"contractor_id"`
	ContractorName string        `json:"contractor_name"`
	CompanyName    string        `json:"company_name"`
	Price          float64       `json:"price"`
	EstimatedDate  time.Time     `json:"estimated_date"`
	Notes          string        `json:"notes,omitempty"`
	Status         BidStatusType `json:"status"`

	CreatedAt time.Time `json:"created_at"`
}

func (b *Bid) GetID() string {
	return b.ID.String()
}
