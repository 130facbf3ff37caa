package dtos

import (
	"time"

	"github.com/google/uuid"
)

/*
SubmitBidRequest is the payload for POST /api/v1/bids. Contractor identity
is not part of the payload; it comes from the authenticated caller.
*/
type SubmitBidRequest struct {
	JobID         uuid.UUID `json:"job_id" validate:"required"`
	Price         float64   `json:"price" validate:"required,gt=0"`
	EstimatedDate time.Time `json:"estimated_date" validate:"required"`
	Notes         string    `json:"notes" validate:"max=500"`
}

type BidDTO struct {
	BidID          uuid.UUID `json:"bid_id"`
	JobID          uuid.UUID `json:"job_id"`
	ContractorID   uuid.UUID `json:"contractor_id"`
	ContractorName string    `json:"contractor_name"`
	CompanyName    string    `json:"company_name"`
	Price          float64   `json:"price"`
	EstimatedDate  time.Time `json:"estimated_date"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type ListBidsResponse struct {
	Results []BidDTO `json:"results"`
	Total   int      `json:"total"`
}

/*
BidActionRequest is the "bid_id" payload for POST /api/v1/bids/accept.
*/
type BidActionRequest struct {
	BidID uuid.UUID `json:"bid_id"`
}

/*
AcceptBidResponse returns the accepted bid and the job it moved to
in_progress. Sibling bids were rejected in the same operation; clients
re-fetch the job's bids to see them.
*/
type AcceptBidResponse struct {
	UpdatedJob  JobDTO `json:"updated_job"`
	AcceptedBid BidDTO `json:"accepted_bid"`
}
