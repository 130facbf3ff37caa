package utils

import "errors"

/*
Sentinel errors for marketplace domain logic.
The controller can do: if errors.Is(err, ErrXYZ) { ... }
*/
var (
	ErrJobNotFound     = errors.New("job_not_found")
	ErrBidNotFound     = errors.New("bid_not_found")
	ErrInvoiceNotFound = errors.New("invoice_not_found")

	// completeJob called while no bid on the job is accepted.
	ErrNoAcceptedBid = errors.New("no_accepted_bid")

	// Entity exists but is not in a status the operation applies to
	// (bid already resolved, job not open, invoice already paid, ...).
	ErrWrongStatus = errors.New("wrong_status")

	// Caller's role does not permit the operation, or the caller does not
	// own the record the operation targets.
	ErrForbiddenRole = errors.New("forbidden_role")

	ErrInvalidPayload = errors.New("invalid_payload")
)
