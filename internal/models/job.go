package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobUrgencyType string

const (
	JobUrgencyLow       JobUrgencyType = "low"
	JobUrgencyHigh      JobUrgencyType = "high"
	JobUrgencyEmergency JobUrgencyType = "emergency"
)

// ParseJobUrgency converts strings ("low", "high", "emergency") to the enum.
func ParseJobUrgency(s string) (JobUrgencyType, error) {
	switch JobUrgencyType(s) {
	case JobUrgencyLow, JobUrgencyHigh, JobUrgencyEmergency:
		return JobUrgencyType(s), nil
	default:
		return "", fmt.Errorf("invalid urgency: %q", s)
	}
}

type JobStatusType string

const (
	JobStatusOpen JobStatusType = "open"

	// JobStatusAssigned is a valid status for historical records, but no
	// operation currently transitions a job into it. Accepting a bid moves
	// the job straight to in_progress.
	JobStatusAssigned JobStatusType = "assigned"

	JobStatusInProgress JobStatusType = "in_progress"
	JobStatusCompleted  JobStatusType = "completed"
)

type Job struct {
	ID          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Urgency     JobUrgencyType `json:"urgency"`
	Status      JobStatusType  `json:"status"`
	CreatedBy   uuid.UUID      `json:"created_by"`
	AssignedTo  *uuid.UUID     `json:"assigned_to,omitempty"`

	// Set once by the escalation sweep so an alert fires only once per job.
	EscalatedAt *time.Time `json:"escalated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (j *Job) GetID() string {
	return j.ID.String()
}
