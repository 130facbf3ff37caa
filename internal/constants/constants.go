package constants

import "time"

const (
	// An emergency job still open with zero bids after this long triggers
	// an on-call alert.
	EmergencyEscalationAfter = 30 * time.Minute

	// Cron schedule for the escalation sweep.
	EscalationSweepSpec = "@every 2m"
)
