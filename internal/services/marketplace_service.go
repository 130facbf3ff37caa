package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/dtos"
	"github.com/Prakash-Shridharan/handshake/internal/ledger"
	"github.com/Prakash-Shridharan/handshake/internal/middleware"
	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
MarketplaceService owns the job/bid/invoice lifecycle. Agents post jobs,
accept bids, complete jobs and settle invoices; contractors bid on open
jobs. Role and ownership checks live here so the controllers stay thin.
*/
type MarketplaceService struct {
	cfg    *config.Config
	ledger *ledger.Ledger
}

func NewMarketplaceService(cfg *config.Config, l *ledger.Ledger) *MarketplaceService {
	return &MarketplaceService{cfg: cfg, ledger: l}
}

func (s *MarketplaceService) CreateJob(ctx context.Context, identity middleware.Identity, req dtos.CreateJobRequest) (*dtos.JobDTO, error) {
	if identity.Role != models.UserRoleAgent {
		return nil, utils.ErrForbiddenRole
	}

	urgency, err := models.ParseJobUrgency(req.Urgency)
	if err != nil {
		return nil, utils.ErrInvalidPayload
	}

	job := s.ledger.CreateJob(req.Title, req.Description, req.Location, urgency, identity.ID)
	utils.Logger.Infof("Job %s created by agent %s", job.ID, identity.ID)

	dto := s.buildJobDTO(job)
	return &dto, nil
}

func (s *MarketplaceService) ListOpenJobs(ctx context.Context, identity middleware.Identity) (*dtos.ListJobsResponse, error) {
	jobs := s.ledger.ListOpenJobs()
	return s.buildJobList(jobs), nil
}

/*
ListMyJobs returns the jobs the caller is a party to: jobs they posted
for agents, jobs assigned to them for contractors. Newest first.
*/
func (s *MarketplaceService) ListMyJobs(ctx context.Context, identity middleware.Identity) (*dtos.ListJobsResponse, error) {
	var jobs []*models.Job
	switch identity.Role {
	case models.UserRoleAgent:
		jobs = s.ledger.ListJobsByAgent(identity.ID)
	case models.UserRoleContractor:
		jobs = s.ledger.ListJobsByContractor(identity.ID)
	default:
		return nil, utils.ErrForbiddenRole
	}
	return s.buildJobList(jobs), nil
}

func (s *MarketplaceService) GetJob(ctx context.Context, identity middleware.Identity, jobID uuid.UUID) (*dtos.JobDetailResponse, error) {
	job, err := s.ledger.GetJobByID(jobID)
	if err != nil {
		return nil, err
	}

	bids := s.ledger.ListBidsByJob(jobID)
	bidDTOs := make([]dtos.BidDTO, 0, len(bids))
	for _, b := range bids {
		bidDTOs = append(bidDTOs, buildBidDTO(b))
	}

	return &dtos.JobDetailResponse{
		Job:  s.buildJobDTO(job),
		Bids: bidDTOs,
	}, nil
}

func (s *MarketplaceService) SubmitBid(ctx context.Context, identity middleware.Identity, req dtos.SubmitBidRequest) (*dtos.BidDTO, error) {
	if identity.Role != models.UserRoleContractor {
		return nil, utils.ErrForbiddenRole
	}

	bid, err := s.ledger.CreateBid(
		req.JobID,
		identity.ID,
		identity.Name,
		identity.CompanyName,
		req.Price,
		req.EstimatedDate,
		req.Notes,
	)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Bid %s submitted on job %s by contractor %s", bid.ID, req.JobID, identity.ID)

	dto := buildBidDTO(bid)
	return &dto, nil
}

/*
AcceptBid accepts one bid and, in the same step, rejects every other
pending bid on the job and assigns the job to the winning contractor.
Only the agent who posted the job may accept.
*/
func (s *MarketplaceService) AcceptBid(ctx context.Context, identity middleware.Identity, bidID uuid.UUID) (*dtos.AcceptBidResponse, error) {
	if identity.Role != models.UserRoleAgent {
		return nil, utils.ErrForbiddenRole
	}

	bid, err := s.ledger.GetBidByID(bidID)
	if err != nil {
		return nil, err
	}
	job, err := s.ledger.GetJobByID(bid.JobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != identity.ID {
		return nil, utils.ErrForbiddenRole
	}

	updatedJob, acceptedBid, err := s.ledger.AcceptBid(bidID)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Bid %s accepted on job %s, contractor %s assigned", bidID, updatedJob.ID, acceptedBid.ContractorID)

	return &dtos.AcceptBidResponse{
		UpdatedJob:  s.buildJobDTO(updatedJob),
		AcceptedBid: buildBidDTO(acceptedBid),
	}, nil
}

/*
CompleteJob marks an in-progress job completed and issues the pending
invoice for the accepted bid's price. Calling it again on the same job
fails rather than issuing a second invoice.
*/
func (s *MarketplaceService) CompleteJob(ctx context.Context, identity middleware.Identity, jobID uuid.UUID) (*dtos.JobCompletionResponse, error) {
	if identity.Role != models.UserRoleAgent {
		return nil, utils.ErrForbiddenRole
	}

	job, err := s.ledger.GetJobByID(jobID)
	if err != nil {
		return nil, err
	}
	if job.CreatedBy != identity.ID {
		return nil, utils.ErrForbiddenRole
	}

	updatedJob, invoice, err := s.ledger.CompleteJob(jobID)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Job %s completed, invoice %s issued for %.2f", jobID, invoice.ID, invoice.Amount)

	return &dtos.JobCompletionResponse{
		Updated: s.buildJobDTO(updatedJob),
		Invoice: buildInvoiceDTO(invoice),
	}, nil
}

func (s *MarketplaceService) ListMyBids(ctx context.Context, identity middleware.Identity) (*dtos.ListBidsResponse, error) {
	if identity.Role != models.UserRoleContractor {
		return nil, utils.ErrForbiddenRole
	}

	bids := s.ledger.ListBidsByContractor(identity.ID)
	results := make([]dtos.BidDTO, 0, len(bids))
	for _, b := range bids {
		results = append(results, buildBidDTO(b))
	}
	return &dtos.ListBidsResponse{Results: results, Total: len(results)}, nil
}

/*
ListInvoices returns the caller's invoices with running pending/paid
totals. Agents see invoices on jobs they posted, contractors see
invoices addressed to them.
*/
func (s *MarketplaceService) ListInvoices(ctx context.Context, identity middleware.Identity) (*dtos.ListInvoicesResponse, error) {
	var invoices []*models.Invoice
	switch identity.Role {
	case models.UserRoleAgent:
		invoices = s.ledger.ListInvoicesByAgent(identity.ID)
	case models.UserRoleContractor:
		invoices = s.ledger.ListInvoicesByContractor(identity.ID)
	default:
		return nil, utils.ErrForbiddenRole
	}

	resp := &dtos.ListInvoicesResponse{
		Results: make([]dtos.InvoiceDTO, 0, len(invoices)),
		Total:   len(invoices),
	}
	for _, inv := range invoices {
		resp.Results = append(resp.Results, buildInvoiceDTO(inv))
		switch inv.Status {
		case models.InvoiceStatusPending:
			resp.PendingTotal += inv.Amount
		case models.InvoiceStatusPaid:
			resp.PaidTotal += inv.Amount
		}
	}
	return resp, nil
}

func (s *MarketplaceService) MarkInvoicePaid(ctx context.Context, identity middleware.Identity, invoiceID uuid.UUID) (*dtos.InvoiceActionResponse, error) {
	if identity.Role != models.UserRoleAgent {
		return nil, utils.ErrForbiddenRole
	}

	invoice, err := s.ledger.GetInvoiceByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.AgentID != identity.ID {
		return nil, utils.ErrForbiddenRole
	}

	updated, err := s.ledger.MarkInvoicePaid(invoiceID)
	if err != nil {
		return nil, err
	}
	utils.Logger.Infof("Invoice %s marked paid by agent %s", invoiceID, identity.ID)

	return &dtos.InvoiceActionResponse{Updated: buildInvoiceDTO(updated)}, nil
}

func (s *MarketplaceService) buildJobDTO(job *models.Job) dtos.JobDTO {
	return dtos.JobDTO{
		JobID:       job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Urgency:     string(job.Urgency),
		Status:      string(job.Status),
		CreatedBy:   job.CreatedBy,
		AssignedTo:  job.AssignedTo,
		BidCount:    len(s.ledger.ListBidsByJob(job.ID)),
		CreatedAt:   job.CreatedAt,
	}
}

func (s *MarketplaceService) buildJobList(jobs []*models.Job) *dtos.ListJobsResponse {
	results := make([]dtos.JobDTO, 0, len(jobs))
	for _, j := range jobs {
		results = append(results, s.buildJobDTO(j))
	}
	return &dtos.ListJobsResponse{Results: results, Total: len(results)}
}

func buildBidDTO(bid *models.Bid) dtos.BidDTO {
	return dtos.BidDTO{
		BidID:          bid.ID,
		JobID:          bid.JobID,
		ContractorID:   bid.ContractorID,
		ContractorName: bid.ContractorName,
		CompanyName:    bid.CompanyName,
		Price:          bid.Price,
		EstimatedDate:  bid.EstimatedDate,
		Notes:          bid.Notes,
		Status:         string(bid.Status),
		CreatedAt:      bid.CreatedAt,
	}
}

func buildInvoiceDTO(invoice *models.Invoice) dtos.InvoiceDTO {
	return dtos.InvoiceDTO{
		InvoiceID:      invoice.ID,
		JobID:          invoice.JobID,
		JobTitle:       invoice.JobTitle,
		BidID:          invoice.BidID,
		AgentID:        invoice.AgentID,
		ContractorID:   invoice.ContractorID,
		ContractorName: invoice.ContractorName,
		Amount:         invoice.Amount,
		Status:         string(invoice.Status),
		PaidAt:         invoice.PaidAt,
		CreatedAt:      invoice.CreatedAt,
	}
}
