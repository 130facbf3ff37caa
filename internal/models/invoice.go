package models

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatusType string

const (
	InvoiceStatusPending InvoiceStatusType = "pending"
	InvoiceStatusPaid    InvoiceStatusType = "paid"
)

// Invoice is the billing record created when a job completes. Job and bid
// fields are denormalized snapshots; Status (and PaidAt) is the only part
// that changes after creation.
type Invoice struct {
	ID             uuid.UUID         `json:"id"`
	JobID          uuid.UUID         `json:"job_id"`
	JobTitle       string            `json:"job_title"`
	BidID          uuid.UUID         `json:"bid_id"`
	AgentID        uuid.UUID         `json:"agent_id"`
	ContractorID   uuid.UUID         `json:"contractor_id"`
	ContractorName string            `json:"contractor_name"`
	Amount         float64           `json:"amount"`
	Status         InvoiceStatusType `json:"status"`
	PaidAt         *time.Time        `json:"paid_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (inv *Invoice) GetID() string {
	return inv.ID.String()
}
