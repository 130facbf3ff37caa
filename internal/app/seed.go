package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/Prakash-Shridharan/handshake/internal/ledger"
	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
Deterministic demo identities so tokens minted for local frontends line up
with the seeded records across restarts.
*/
var (
	DemoAgentID       = uuid.MustParse("a0000000-0000-4000-8000-000000000001")
	DemoContractor1ID = uuid.MustParse("c0000000-0000-4000-8000-000000000001")
	DemoContractor2ID = uuid.MustParse("c0000000-0000-4000-8000-000000000002")

	demoJob1ID = uuid.MustParse("10000000-0000-4000-8000-000000000001")
	demoJob2ID = uuid.MustParse("10000000-0000-4000-8000-000000000002")
	demoJob3ID = uuid.MustParse("10000000-0000-4000-8000-000000000003")
	demoJob4ID = uuid.MustParse("10000000-0000-4000-8000-000000000004")
	demoJob5ID = uuid.MustParse("10000000-0000-4000-8000-000000000005")

	demoBid1ID = uuid.MustParse("20000000-0000-4000-8000-000000000001")
	demoBid2ID = uuid.MustParse("20000000-0000-4000-8000-000000000002")

	demoInvoice1ID = uuid.MustParse("30000000-0000-4000-8000-000000000001")
)

// SeedDemoData loads the demo marketplace fixtures: five jobs across every
// lifecycle stage, two competing bids on the open plumbing job, and one paid
// invoice on the completed job.
func SeedDemoData(l *ledger.Ledger) {
	day := func(d string) time.Time {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			utils.Logger.WithError(err).Fatalf("bad seed date %q", d)
		}
		return t.UTC()
	}

	l.SeedJob(&models.Job{
		ID:          demoJob4ID,
		Title:       "Exterior Paint Touch-Up",
		Description: "Touch up paint on exterior trim and door frames.",
		Location:    "321 Elm Street",
		Urgency:     models.JobUrgencyLow,
		Status:      models.JobStatusCompleted,
		CreatedBy:   DemoAgentID,
		AssignedTo:  utils.Ptr(DemoContractor1ID),
		CreatedAt:   day("2024-01-05"),
	})
	l.SeedJob(&models.Job{
		ID:          demoJob2ID,
		Title:       "HVAC System Maintenance",
		Description: "Annual HVAC inspection and filter replacement for the property.",
		Location:    "456 Maple Avenue",
		Urgency:     models.JobUrgencyLow,
		Status:      models.JobStatusAssigned,
		CreatedBy:   DemoAgentID,
		AssignedTo:  utils.Ptr(DemoContractor1ID),
		CreatedAt:   day("2024-01-10"),
	})
	l.SeedJob(&models.Job{
		ID:          demoJob1ID,
		Title:       "Kitchen Sink Leak Repair",
		Description: "Water leaking from under the kitchen sink. Tenant reports water pooling daily.",
		Location:    "123 Oak Street, Apt 4B",
		Urgency:     models.JobUrgencyHigh,
		Status:      models.JobStatusOpen,
		CreatedBy:   DemoAgentID,
		CreatedAt:   day("2024-01-15"),
	})
	l.SeedJob(&models.Job{
		ID:          demoJob5ID,
		Title:       "Roof Inspection",
		Description: "Annual roof inspection after recent storms.",
		Location:    "654 Cedar Lane",
		Urgency:     models.JobUrgencyHigh,
		Status:      models.JobStatusOpen,
		CreatedBy:   DemoAgentID,
		CreatedAt:   day("2024-01-17"),
	})
	l.SeedJob(&models.Job{
		ID:          demoJob3ID,
		Title:       "Emergency Pipe Burst",
		Description: "Main water pipe burst in basement. Immediate attention required.",
		Location:    "789 Pine Road, Unit 12",
		Urgency:     models.JobUrgencyEmergency,
		Status:      models.JobStatusInProgress,
		CreatedBy:   DemoAgentID,
		AssignedTo:  utils.Ptr(DemoContractor2ID),
		CreatedAt:   day("2024-01-18"),
	})

	l.SeedBid(&models.Bid{
		ID:             demoBid1ID,
		JobID:          demoJob1ID,
		ContractorID:   DemoContractor1ID,
		ContractorName: "Mike Rodriguez",
		CompanyName:    "QuickFix Pro Services",
		Price:          250,
		EstimatedDate:  day("2024-01-20"),
		Notes:          "Can complete within 24 hours of acceptance.",
		Status:         models.BidStatusPending,
		CreatedAt:      day("2024-01-16"),
	})
	l.SeedBid(&models.Bid{
		ID:             demoBid2ID,
		JobID:          demoJob1ID,
		ContractorID:   DemoContractor2ID,
		ContractorName: "Lisa Chen",
		CompanyName:    "Premier Plumbing",
		Price:          320,
		EstimatedDate:  day("2024-01-19"),
		Notes:          "Includes full pipe inspection.",
		Status:         models.BidStatusPending,
		CreatedAt:      day("2024-01-16"),
	})

	l.SeedInvoice(&models.Invoice{
		ID:             demoInvoice1ID,
		JobID:          demoJob4ID,
		JobTitle:       "Exterior Paint Touch-Up",
		BidID:          uuid.MustParse("20000000-0000-4000-8000-0000000000ff"),
		AgentID:        DemoAgentID,
		ContractorID:   DemoContractor1ID,
		ContractorName: "Mike Rodriguez",
		Amount:         450,
		Status:         models.InvoiceStatusPaid,
		PaidAt:         utils.Ptr(day("2024-01-09")),
		CreatedAt:      day("2024-01-08"),
	})
}
