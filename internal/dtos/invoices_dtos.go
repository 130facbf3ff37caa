package dtos

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceDTO struct {
	InvoiceID      uuid.UUID  `json:"invoice_id"`
	JobID          uuid.UUID  `json:"job_id"`
	JobTitle       string     `json:"job_title"`
	BidID          uuid.UUID  `json:"bid_id"`
	AgentID        uuid.UUID  `json:"agent_id"`
	ContractorID   uuid.UUID  `json:"contractor_id"`
	ContractorName string     `json:"contractor_name"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"status"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

/*
ListInvoicesResponse carries the caller's invoices plus the pending/paid
totals the dashboard stat cards show.
*/
type ListInvoicesResponse struct {
	Results      []InvoiceDTO `json:"results"`
	Total        int          `json:"total"`
	PendingTotal float64      `json:"pending_total"`
	PaidTotal    float64      `json:"paid_total"`
}

/*
InvoiceActionRequest is the "invoice_id" payload for POST /api/v1/invoices/pay.
*/
type InvoiceActionRequest struct {
	InvoiceID uuid.UUID `json:"invoice_id"`
}

type InvoiceActionResponse struct {
	Updated InvoiceDTO `json:"updated"`
}
