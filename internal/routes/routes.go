package routes

const (
	// Health
	Health = "/health"

	// Job endpoints
	JobsBase     = "/api/v1/jobs"
	JobsOpen     = "/api/v1/jobs/open"
	JobsMy       = "/api/v1/jobs/my"
	JobsComplete = "/api/v1/jobs/complete"
	JobByID      = "/api/v1/jobs/{id}"
	JobBids      = "/api/v1/jobs/{id}/bids"

	// Bid endpoints
	BidsBase   = "/api/v1/bids"
	BidsMy     = "/api/v1/bids/my"
	BidsAccept = "/api/v1/bids/accept"

	// Invoice endpoints
	InvoicesBase = "/api/v1/invoices"
	InvoicesPay  = "/api/v1/invoices/pay"
)
