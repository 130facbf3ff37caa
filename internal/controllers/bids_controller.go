package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/Prakash-Shridharan/handshake/internal/dtos"
	"github.com/Prakash-Shridharan/handshake/internal/middleware"
	"github.com/Prakash-Shridharan/handshake/internal/services"
	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

type BidsController struct {
	marketplaceService *services.MarketplaceService
}

func NewBidsController(ms *services.MarketplaceService) *BidsController {
	return &BidsController{marketplaceService: ms}
}

// ----------------------------------------------------------------
// POST /api/v1/bids
// ----------------------------------------------------------------
func (c *BidsController) SubmitBidHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req dtos.SubmitBidRequest
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

	bid, err := c.marketplaceService.SubmitBid(ctx, identity, req)
	if err != nil {
		respondServiceError(w, "Failed to submit bid", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, bid)
}

// ----------------------------------------------------------------
// GET /api/v1/bids/my
// ----------------------------------------------------------------
func (c *BidsController) ListMyBidsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	resp, err := c.marketplaceService.ListMyBids(ctx, identity)
	if err != nil {
		respondServiceError(w, "Failed to list bids", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/bids/accept
// ----------------------------------------------------------------
func (c *BidsController) AcceptBidHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req dtos.BidActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err,
		)
		return
	}
	if req.BidID == uuid.Nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "bid_id is required", nil, nil,
		)
		return
	}

	resp, err := c.marketplaceService.AcceptBid(ctx, identity, req.BidID)
	if err != nil {
		respondServiceError(w, "Failed to accept bid", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
