package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Prakash-Shridharan/handshake/internal/dtos"
	"github.com/Prakash-Shridharan/handshake/internal/middleware"
	"github.com/Prakash-Shridharan/handshake/internal/services"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

type JobsController struct {
	marketplaceService *services.MarketplaceService
}

func NewJobsController(ms *services.MarketplaceService) *JobsController {
	return &JobsController{marketplaceService: ms}
}

// ----------------------------------------------------------------
// POST /api/v1/jobs
// ----------------------------------------------------------------
func (c *JobsController) CreateJobHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req dtos.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err,
		)
		return
	}
	if err := utils.Validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error(), err,
		)
		return
	}

	job, err := c.marketplaceService.CreateJob(ctx, identity, req)
	if err != nil {
		respondServiceError(w, "Failed to create job", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, job)
}

// ----------------------------------------------------------------
// GET /api/v1/jobs/open
// ----------------------------------------------------------------
func (c *JobsController) ListOpenJobsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	resp, err := c.marketplaceService.ListOpenJobs(ctx, identity)
	if err != nil {
		respondServiceError(w, "Failed to list open jobs", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/jobs/my
// ----------------------------------------------------------------
func (c *JobsController) ListMyJobsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	resp, err := c.marketplaceService.ListMyJobs(ctx, identity)
	if err != nil {
		respondServiceError(w, "Failed to list jobs", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/jobs/{id}
// ----------------------------------------------------------------
func (c *JobsController) GetJobHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid job id", nil, err,
		)
		return
	}

	resp, svcErr := c.marketplaceService.GetJob(ctx, identity, jobID)
	if svcErr != nil {
		respondServiceError(w, "Failed to fetch job", svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/jobs/{id}/bids
// ----------------------------------------------------------------
func (c *JobsController) ListJobBidsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	jobID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid job id", nil, err,
		)
		return
	}

	detail, svcErr := c.marketplaceService.GetJob(ctx, identity, jobID)
	if svcErr != nil {
		respondServiceError(w, "Failed to fetch job bids", svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListBidsResponse{
		Results: detail.Bids,
		Total:   len(detail.Bids),
	})
}

// ----------------------------------------------------------------
// POST /api/v1/jobs/complete
// ----------------------------------------------------------------
func (c *JobsController) CompleteJobHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req dtos.JobActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err,
		)
		return
	}
	if req.JobID == uuid.Nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "job_id is required", nil, nil,
		)
		return
	}

	resp, err := c.marketplaceService.CompleteJob(ctx, identity, req.JobID)
	if err != nil {
		respondServiceError(w, "Failed to complete job", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
