package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
Ledger owns the Job, Bid and Invoice collections and every transition
between their statuses. It is constructed once at process start and injected
by reference; there is no persistence, so state lives for the life of the
process.

A single RWMutex serializes mutating operations. The multi-record updates in
AcceptBid and CompleteJob happen entirely inside one critical section, so
callers either observe the full transition or none of it. No I/O happens
while the lock is held.

Field-level input validation (title length, price positivity, urgency enum)
is the boundary's job; the ledger assumes pre-validated input and enforces
only referential and status rules.

All query and mutation results are copies. The ledger keeps the canonical
records private so nothing outside this package can mutate shared state.
*/
type Ledger struct {
	mu sync.RWMutex

	jobs     map[uuid.UUID]*models.Job
	bids     map[uuid.UUID]*models.Bid
	invoices map[uuid.UUID]*models.Invoice

	// Insertion order, oldest first. Job and invoice listings reverse these
	// so the newest record comes back first; bid listings keep them as-is.
	jobOrder     []uuid.UUID
	bidOrder     []uuid.UUID
	invoiceOrder []uuid.UUID

	// Guards the one-invoice-per-completed-job rule.
	invoiceByJob map[uuid.UUID]uuid.UUID
}

func New() *Ledger {
	return &Ledger{
		jobs:         make(map[uuid.UUID]*models.Job),
		bids:         make(map[uuid.UUID]*models.Bid),
		invoices:     make(map[uuid.UUID]*models.Invoice),
		invoiceByJob: make(map[uuid.UUID]uuid.UUID),
	}
}

// ----------------------------------------------------------------
// Mutations
// ----------------------------------------------------------------

// CreateJob allocates a new job in "open" status and returns a copy of it.
func (l *Ledger) CreateJob(
	title, description, location string,
	urgency models.JobUrgencyType,
	createdBy uuid.UUID,
) *models.Job {
	l.mu.Lock()
	defer l.mu.Unlock()

	job := &models.Job{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Location:    location,
		Urgency:     urgency,
		Status:      models.JobStatusOpen,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	}
	l.jobs[job.ID] = job
	l.jobOrder = append(l.jobOrder, job.ID)
	return copyJob(job)
}

// CreateBid records a pending bid against an existing job. The job itself is
// not mutated. Submitting against an unknown job fails with ErrJobNotFound.
func (l *Ledger) CreateBid(
	jobID, contractorID uuid.UUID,
	contractorName, companyName string,
	price float64,
	estimatedDate time.Time,
	notes string,
) (*models.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.jobs[jobID]; !ok {
		return nil, utils.ErrJobNotFound
	}

	bid := &models.Bid{
		ID:             uuid.New(),
		JobID:          jobID,
		ContractorID:   contractorID,
		ContractorName: contractorName,
		CompanyName:    companyName,
		Price:          price,
		EstimatedDate:  estimatedDate,
		Notes:          notes,
		Status:         models.BidStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	l.bids[bid.ID] = bid
	l.bidOrder = append(l.bidOrder, bid.ID)
	return copyBid(bid), nil
}

// AcceptBid accepts the target bid, rejects every other bid on the same job,
// and moves the job to in_progress with the bidder assigned. The whole
// fan-out is applied atomically. The target bid must still be pending and
// its job still open; accepted/rejected are terminal.
func (l *Ledger) AcceptBid(bidID uuid.UUID) (*models.Job, *models.Bid, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	bid, ok := l.bids[bidID]
	if !ok {
		return nil, nil, utils.ErrBidNotFound
	}
	job, ok := l.jobs[bid.JobID]
	if !ok {
		return nil, nil, utils.ErrJobNotFound
	}
	if bid.Status != models.BidStatusPending {
		return nil, nil, utils.ErrWrongStatus
	}
	if job.Status != models.JobStatusOpen {
		return nil, nil, utils.ErrWrongStatus
	}

	for _, id := range l.bidOrder {
		other := l.bids[id]
		if other.JobID == job.ID && other.ID != bid.ID {
			other.Status = models.BidStatusRejected
		}
	}
	bid.Status = models.BidStatusAccepted

	assigned := bid.ContractorID
	job.Status = models.JobStatusInProgress
	job.AssignedTo = &assigned

	return copyJob(job), copyBid(bid), nil
}

// CompleteJob moves the job to completed and creates exactly one pending
// invoice snapshotting the accepted bid. Completing a job twice fails with
// ErrWrongStatus, so no second invoice can ever appear. A job with no
// accepted bid cannot complete.
func (l *Ledger) CompleteJob(jobID uuid.UUID) (*models.Job, *models.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs[jobID]
	if !ok {
		return nil, nil, utils.ErrJobNotFound
	}
	if job.Status == models.JobStatusCompleted {
		return nil, nil, utils.ErrWrongStatus
	}

	var accepted *models.Bid
	for _, id := range l.bidOrder {
		b := l.bids[id]
		if b.JobID == jobID && b.Status == models.BidStatusAccepted {
			accepted = b
			break
		}
	}
	if accepted == nil {
		return nil, nil, utils.ErrNoAcceptedBid
	}
	if _, exists := l.invoiceByJob[jobID]; exists {
		return nil, nil, utils.ErrWrongStatus
	}

	job.Status = models.JobStatusCompleted

	inv := &models.Invoice{
		ID:             uuid.New(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		BidID:          accepted.ID,
		AgentID:        job.CreatedBy,
		ContractorID:   accepted.ContractorID,
		ContractorName: accepted.ContractorName,
		Amount:         accepted.Price,
		Status:         models.InvoiceStatusPending,
		CreatedAt:      time.Now().UTC(),
	}
	l.invoices[inv.ID] = inv
	l.invoiceOrder = append(l.invoiceOrder, inv.ID)
	l.invoiceByJob[jobID] = inv.ID

	return copyJob(job), copyInvoice(inv), nil
}

// MarkInvoicePaid moves a pending invoice to paid and stamps PaidAt.
func (l *Ledger) MarkInvoicePaid(invoiceID uuid.UUID) (*models.Invoice, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	inv, ok := l.invoices[invoiceID]
	if !ok {
		return nil, utils.ErrInvoiceNotFound
	}
	if inv.Status != models.InvoiceStatusPending {
		return nil, utils.ErrWrongStatus
	}
	now := time.Now().UTC()
	inv.Status = models.InvoiceStatusPaid
	inv.PaidAt = &now
	return copyInvoice(inv), nil
}

// MarkJobEscalated records that the escalation sweep alerted on this job.
func (l *Ledger) MarkJobEscalated(jobID uuid.UUID, at time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, ok := l.jobs[jobID]
	if !ok {
		return utils.ErrJobNotFound
	}
	job.EscalatedAt = &at
	return nil
}

// ----------------------------------------------------------------
// Queries
// ----------------------------------------------------------------

func (l *Ledger) GetJobByID(id uuid.UUID) (*models.Job, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	job, ok := l.jobs[id]
	if !ok {
		return nil, utils.ErrJobNotFound
	}
	return copyJob(job), nil
}

func (l *Ledger) GetBidByID(id uuid.UUID) (*models.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bid, ok := l.bids[id]
	if !ok {
		return nil, utils.ErrBidNotFound
	}
	return copyBid(bid), nil
}

func (l *Ledger) GetInvoiceByID(id uuid.UUID) (*models.Invoice, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inv, ok := l.invoices[id]
	if !ok {
		return nil, utils.ErrInvoiceNotFound
	}
	return copyInvoice(inv), nil
}

// ListJobs returns every job, newest first.
func (l *Ledger) ListJobs() []*models.Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listJobsLocked(func(*models.Job) bool { return true })
}

// ListOpenJobs returns jobs still accepting bids, newest first.
func (l *Ledger) ListOpenJobs() []*models.Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listJobsLocked(func(j *models.Job) bool {
		return j.Status == models.JobStatusOpen
	})
}

// ListJobsByAgent returns jobs posted by the given agent, newest first.
func (l *Ledger) ListJobsByAgent(agentID uuid.UUID) []*models.Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listJobsLocked(func(j *models.Job) bool {
		return j.CreatedBy == agentID
	})
}

// ListJobsByContractor returns jobs assigned to the given contractor,
// newest first.
func (l *Ledger) ListJobsByContractor(contractorID uuid.UUID) []*models.Job {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listJobsLocked(func(j *models.Job) bool {
		return j.AssignedTo != nil && *j.AssignedTo == contractorID
	})
}

// ListBidsByJob returns all bids referencing the job in submission order.
// The result is computed fresh on every call, not a cached snapshot.
func (l *Ledger) ListBidsByJob(jobID uuid.UUID) []*models.Bid {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listBidsLocked(func(b *models.Bid) bool {
		return b.JobID == jobID
	})
}

// ListBidsByContractor returns the contractor's bids in submission order.
func (l *Ledger) ListBidsByContractor(contractorID uuid.UUID) []*models.Bid {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listBidsLocked(func(b *models.Bid) bool {
		return b.ContractorID == contractorID
	})
}

// ListInvoicesByAgent returns invoices billed to the agent, newest first.
func (l *Ledger) ListInvoicesByAgent(agentID uuid.UUID) []*models.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listInvoicesLocked(func(inv *models.Invoice) bool {
		return inv.AgentID == agentID
	})
}

// ListInvoicesByContractor returns invoices payable to the contractor,
// newest first.
func (l *Ledger) ListInvoicesByContractor(contractorID uuid.UUID) []*models.Invoice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.listInvoicesLocked(func(inv *models.Invoice) bool {
		return inv.ContractorID == contractorID
	})
}

func (l *Ledger) listJobsLocked(keep func(*models.Job) bool) []*models.Job {
	out := make([]*models.Job, 0, len(l.jobOrder))
	for i := len(l.jobOrder) - 1; i >= 0; i-- {
		j := l.jobs[l.jobOrder[i]]
		if keep(j) {
			out = append(out, copyJob(j))
		}
	}
	return out
}

func (l *Ledger) listBidsLocked(keep func(*models.Bid) bool) []*models.Bid {
	out := make([]*models.Bid, 0)
	for _, id := range l.bidOrder {
		b := l.bids[id]
		if keep(b) {
			out = append(out, copyBid(b))
		}
	}
	return out
}

func (l *Ledger) listInvoicesLocked(keep func(*models.Invoice) bool) []*models.Invoice {
	out := make([]*models.Invoice, 0)
	for i := len(l.invoiceOrder) - 1; i >= 0; i-- {
		inv := l.invoices[l.invoiceOrder[i]]
		if keep(inv) {
			out = append(out, copyInvoice(inv))
		}
	}
	return out
}

// ----------------------------------------------------------------
// Seeding
// ----------------------------------------------------------------

// SeedJob inserts a fixture job as-given, including its status and
// timestamps. Demo/seed use only; normal creation goes through CreateJob.
func (l *Ledger) SeedJob(job *models.Job) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := copyJob(job)
	l.jobs[cp.ID] = cp
	l.jobOrder = append(l.jobOrder, cp.ID)
}

// SeedBid inserts a fixture bid as-given.
func (l *Ledger) SeedBid(bid *models.Bid) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := copyBid(bid)
	l.bids[cp.ID] = cp
	l.bidOrder = append(l.bidOrder, cp.ID)
}

// SeedInvoice inserts a fixture invoice as-given.
func (l *Ledger) SeedInvoice(inv *models.Invoice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := copyInvoice(inv)
	l.invoices[cp.ID] = cp
	l.invoiceOrder = append(l.invoiceOrder, cp.ID)
	l.invoiceByJob[cp.JobID] = cp.ID
}

// ----------------------------------------------------------------
// Copy helpers
// ----------------------------------------------------------------

func copyJob(j *models.Job) *models.Job {
	cp := *j
	if j.AssignedTo != nil {
		v := *j.AssignedTo
		cp.AssignedTo = &v
	}
	if j.EscalatedAt != nil {
		t := *j.EscalatedAt
		cp.EscalatedAt = &t
	}
	return &cp
}

func copyBid(b *models.Bid) *models.Bid {
	cp := *b
	return &cp
}

func copyInvoice(inv *models.Invoice) *models.Invoice {
	cp := *inv
	if inv.PaidAt != nil {
		t := *inv.PaidAt
		cp.PaidAt = &t
	}
	return &cp
}
