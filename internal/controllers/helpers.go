package controllers

import (
	"errors"
	"net/http"

	"github.com/Prakash-Shridharan/handshake/internal/utils"
)

/*
respondServiceError maps the marketplace sentinel errors onto HTTP statuses.
Every handler funnels service failures through here so the error envelope
stays uniform across endpoints.
*/
func respondServiceError(w http.ResponseWriter, publicMessage string, err error) {
	switch {
	case errors.Is(err, utils.ErrJobNotFound),
		errors.Is(err, utils.ErrBidNotFound),
		errors.Is(err, utils.ErrInvoiceNotFound):
		utils.RespondErrorWithCode(
			w, http.StatusNotFound, utils.ErrCodeNotFound, err.Error(), nil, err,
		)
	case errors.Is(err, utils.ErrForbiddenRole):
		utils.RespondErrorWithCode(
			w, http.StatusForbidden, utils.ErrCodeForbidden, "Caller may not perform this operation", nil, err,
		)
	case errors.Is(err, utils.ErrWrongStatus),
		errors.Is(err, utils.ErrNoAcceptedBid):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, err.Error(), publicMessage, nil, err,
		)
	case errors.Is(err, utils.ErrInvalidPayload):
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, publicMessage, nil, err,
		)
	default:
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMessage, nil, err,
		)
	}
}

func respondUnauthorized(w http.ResponseWriter) {
	utils.RespondErrorWithCode(
		w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No identity in context", nil, nil,
	)
}
