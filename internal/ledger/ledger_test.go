package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

func newTestJob(t *testing.T, l *Ledger, agentID uuid.UUID) *models.Job {
	t.Helper()
	return l.CreateJob("Kitchen Sink Leak Repair", "Water pooling daily.", "123 Oak Street, Apt 4B", models.JobUrgencyHigh, agentID)
}

func newTestBid(t *testing.T, l *Ledger, jobID, contractorID uuid.UUID, price float64) *models.Bid {
	t.Helper()
	bid, err := l.CreateBid(jobID, contractorID, "Mike Rodriguez", "QuickFix Pro Services", price, time.Now().Add(48*time.Hour), "")
	require.NoError(t, err)
	return bid
}

func TestCreateJobStartsOpen(t *testing.T) {
	l := New()
	agent := uuid.New()

	job := newTestJob(t, l, agent)

	require.Equal(t, models.JobStatusOpen, job.Status)
	require.Equal(t, agent, job.CreatedBy)
	require.Nil(t, job.AssignedTo)
	require.NotEqual(t, uuid.Nil, job.ID)
	require.False(t, job.CreatedAt.IsZero())
}

func TestListJobsNewestFirst(t *testing.T) {
	l := New()
	agent := uuid.New()

	first := newTestJob(t, l, agent)
	second := newTestJob(t, l, agent)
	third := newTestJob(t, l, agent)

	jobs := l.ListJobs()
	require.Len(t, jobs, 3)
	require.Equal(t, third.ID, jobs[0].ID)
	require.Equal(t, second.ID, jobs[1].ID)
	require.Equal(t, first.ID, jobs[2].ID)
}

func TestCreateBidUnknownJob(t *testing.T) {
	l := New()

	_, err := l.CreateBid(uuid.New(), uuid.New(), "Lisa Chen", "Premier Plumbing", 320, time.Now(), "")
	require.ErrorIs(t, err, utils.ErrJobNotFound)
}

func TestCreateBidStartsPending(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())

	bid := newTestBid(t, l, job.ID, uuid.New(), 250)

	require.Equal(t, models.BidStatusPending, bid.Status)
	require.Equal(t, job.ID, bid.JobID)

	// Submitting a bid does not touch the job.
	got, err := l.GetJobByID(job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusOpen, got.Status)
}

func TestAcceptBidFanOut(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())
	winner := uuid.New()

	b1 := newTestBid(t, l, job.ID, winner, 250)
	b2 := newTestBid(t, l, job.ID, uuid.New(), 320)
	b3 := newTestBid(t, l, job.ID, uuid.New(), 300)

	updatedJob, acceptedBid, err := l.AcceptBid(b1.ID)
	require.NoError(t, err)

	require.Equal(t, models.BidStatusAccepted, acceptedBid.Status)
	require.Equal(t, models.JobStatusInProgress, updatedJob.Status)
	require.NotNil(t, updatedJob.AssignedTo)
	require.Equal(t, winner, *updatedJob.AssignedTo)

	// Every sibling got rejected in the same operation.
	for _, id := range []uuid.UUID{b2.ID, b3.ID} {
		sibling, gErr := l.GetBidByID(id)
		require.NoError(t, gErr)
		require.Equal(t, models.BidStatusRejected, sibling.Status)
	}

	// Exactly one accepted bid exists on the job.
	accepted := 0
	for _, b := range l.ListBidsByJob(job.ID) {
		if b.Status == models.BidStatusAccepted {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)
}

func TestAcceptBidTerminalStatuses(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())

	b1 := newTestBid(t, l, job.ID, uuid.New(), 250)
	b2 := newTestBid(t, l, job.ID, uuid.New(), 320)

	_, _, err := l.AcceptBid(b1.ID)
	require.NoError(t, err)

	// Accepting an already-accepted bid fails.
	_, _, err = l.AcceptBid(b1.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	// A rejected sibling can never be accepted afterwards.
	_, _, err = l.AcceptBid(b2.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)
}

func TestAcceptBidUnknownBid(t *testing.T) {
	l := New()
	_, _, err := l.AcceptBid(uuid.New())
	require.ErrorIs(t, err, utils.ErrBidNotFound)
}

func TestCompleteJobRequiresAcceptedBid(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())
	newTestBid(t, l, job.ID, uuid.New(), 250)

	_, _, err := l.CompleteJob(job.ID)
	require.ErrorIs(t, err, utils.ErrNoAcceptedBid)

	_, _, err = l.CompleteJob(uuid.New())
	require.ErrorIs(t, err, utils.ErrJobNotFound)
}

func TestCompleteJobIssuesOneInvoice(t *testing.T) {
	l := New()
	agent := uuid.New()
	job := newTestJob(t, l, agent)
	contractor := uuid.New()
	bid := newTestBid(t, l, job.ID, contractor, 250)

	_, _, err := l.AcceptBid(bid.ID)
	require.NoError(t, err)

	updatedJob, invoice, err := l.CompleteJob(job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusCompleted, updatedJob.Status)

	require.Equal(t, models.InvoiceStatusPending, invoice.Status)
	require.Equal(t, bid.Price, invoice.Amount)
	require.Equal(t, job.ID, invoice.JobID)
	require.Equal(t, job.Title, invoice.JobTitle)
	require.Equal(t, bid.ID, invoice.BidID)
	require.Equal(t, agent, invoice.AgentID)
	require.Equal(t, contractor, invoice.ContractorID)

	// Completing again must fail and must not mint a second invoice.
	_, _, err = l.CompleteJob(job.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)
	require.Len(t, l.ListInvoicesByAgent(agent), 1)
}

func TestMarkInvoicePaid(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())
	bid := newTestBid(t, l, job.ID, uuid.New(), 250)
	_, _, err := l.AcceptBid(bid.ID)
	require.NoError(t, err)
	_, invoice, err := l.CompleteJob(job.ID)
	require.NoError(t, err)

	paid, err := l.MarkInvoicePaid(invoice.ID)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = l.MarkInvoicePaid(invoice.ID)
	require.ErrorIs(t, err, utils.ErrWrongStatus)

	_, err = l.MarkInvoicePaid(uuid.New())
	require.ErrorIs(t, err, utils.ErrInvoiceNotFound)
}

func TestListOpenJobsExcludesOthers(t *testing.T) {
	l := New()
	agent := uuid.New()

	open := newTestJob(t, l, agent)
	claimed := newTestJob(t, l, agent)
	bid := newTestBid(t, l, claimed.ID, uuid.New(), 100)
	_, _, err := l.AcceptBid(bid.ID)
	require.NoError(t, err)

	jobs := l.ListOpenJobs()
	require.Len(t, jobs, 1)
	require.Equal(t, open.ID, jobs[0].ID)
}

func TestListJobsByParty(t *testing.T) {
	l := New()
	agentA := uuid.New()
	agentB := uuid.New()
	contractor := uuid.New()

	jobA := newTestJob(t, l, agentA)
	newTestJob(t, l, agentB)

	bid := newTestBid(t, l, jobA.ID, contractor, 200)
	_, _, err := l.AcceptBid(bid.ID)
	require.NoError(t, err)

	byAgent := l.ListJobsByAgent(agentA)
	require.Len(t, byAgent, 1)
	require.Equal(t, jobA.ID, byAgent[0].ID)

	byContractor := l.ListJobsByContractor(contractor)
	require.Len(t, byContractor, 1)
	require.Equal(t, jobA.ID, byContractor[0].ID)
}

func TestListBidsByJobSubmissionOrder(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())

	b1 := newTestBid(t, l, job.ID, uuid.New(), 250)
	b2 := newTestBid(t, l, job.ID, uuid.New(), 320)

	bids := l.ListBidsByJob(job.ID)
	require.Len(t, bids, 2)
	require.Equal(t, b1.ID, bids[0].ID)
	require.Equal(t, b2.ID, bids[1].ID)
}

func TestQueryResultsAreCopies(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())

	got, err := l.GetJobByID(job.ID)
	require.NoError(t, err)
	got.Status = models.JobStatusCompleted
	got.Title = "mutated"

	fresh, err := l.GetJobByID(job.ID)
	require.NoError(t, err)
	require.Equal(t, models.JobStatusOpen, fresh.Status)
	require.Equal(t, "Kitchen Sink Leak Repair", fresh.Title)
}

func TestMarkJobEscalated(t *testing.T) {
	l := New()
	job := newTestJob(t, l, uuid.New())

	at := time.Now().UTC()
	require.NoError(t, l.MarkJobEscalated(job.ID, at))

	got, err := l.GetJobByID(job.ID)
	require.NoError(t, err)
	require.NotNil(t, got.EscalatedAt)
	require.True(t, got.EscalatedAt.Equal(at))

	require.ErrorIs(t, l.MarkJobEscalated(uuid.New(), at), utils.ErrJobNotFound)
}
