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

type InvoicesController struct {
	marketplaceService *services.MarketplaceService
}

func NewInvoicesController(ms *services.MarketplaceService) *InvoicesController {
	return &InvoicesController{marketplaceService: ms}
}

// ----------------------------------------------------------------
// GET /api/v1/invoices
// ----------------------------------------------------------------
func (c *InvoicesController) ListInvoicesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	resp, err := c.marketplaceService.ListInvoices(ctx, identity)
	if err != nil {
		respondServiceError(w, "Failed to list invoices", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// POST /api/v1/invoices/pay
// ----------------------------------------------------------------
func (c *InvoicesController) PayInvoiceHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, ok := middleware.IdentityFromContext(ctx)
	if !ok {
		respondUnauthorized(w)
		return
	}

	var req dtos.InvoiceActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err,
		)
		return
	}
	if req.InvoiceID == uuid.Nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "invoice_id is required", nil, nil,
		)
		return
	}

	resp, err := c.marketplaceService.MarkInvoicePaid(ctx, identity, req.InvoiceID)
	if err != nil {
		respondServiceError(w, "Failed to mark invoice paid", err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
