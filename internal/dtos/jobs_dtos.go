package dtos

import (
	"time"

	"github.com/google/uuid"
)

/*
CreateJobRequest is the payload for POST /api/v1/jobs. Field-level
validation happens here at the boundary; the ledger receives only
pre-validated input.
*/
type CreateJobRequest struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"required,max=2000"`
	Location    string `json:"location" validate:"required,max=255"`
	Urgency     string `json:"urgency" validate:"required,oneof=low high emergency"`
}

/*
JobDTO is used by responses listing or returning a single job.
*/
type JobDTO struct {
	JobID       uuid.UUID  `json:"job_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Urgency     string     `json:"urgency"`
	Status      string     `json:"status"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	AssignedTo  *uuid.UUID `json:"assigned_to,omitempty"`

	// Number of bids submitted so far; the marketplace listing shows it.
	BidCount int `json:"bid_count"`

	CreatedAt time.Time `json:"created_at"`
}

type ListJobsResponse struct {
	Results []JobDTO `json:"results"`
	Total   int      `json:"total"`
}

/*
JobDetailResponse is the response for GET /api/v1/jobs/{id}: the job plus
its bids in submission order.
*/
type JobDetailResponse struct {
	Job  JobDTO   `json:"job"`
	Bids []BidDTO `json:"bids"`
}

/*
JobActionRequest is the simple "job_id" payload for endpoints like complete.
*/
type JobActionRequest struct {
	JobID uuid.UUID `json:"job_id"`
}

/*
JobCompletionResponse returns the completed job together with the invoice
the completion generated.
*/
type JobCompletionResponse struct {
	Updated JobDTO     `json:"updated"`
	Invoice InvoiceDTO `json:"invoice"`
}
