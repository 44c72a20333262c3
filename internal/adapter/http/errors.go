package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
)

// Machine readable error codes.
const (
	codeBadRequest      = "BAD_REQUEST"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeInternal        = "INTERNAL"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrCampaignNotFound, http.StatusNotFound, "CAMPAIGN_NOT_FOUND"},
	{domain.ErrNotCampaignOwner, http.StatusForbidden, "NOT_CAMPAIGN_OWNER"},
	{domain.ErrCustodyAccount, http.StatusForbidden, "CUSTODY_ACCOUNT"},

	{domain.ErrAlreadyWithdrawn, http.StatusConflict, "ALREADY_WITHDRAWN"},
	{domain.ErrNothingToWithdraw, http.StatusConflict, "NOTHING_TO_WITHDRAW"},
	{domain.ErrGoalMet, http.StatusConflict, "GOAL_MET"},
	{domain.ErrGoalNotMet, http.StatusConflict, "GOAL_NOT_MET"},
	{domain.ErrDeadlinePassed, http.StatusConflict, "DEADLINE_PASSED"},
	{domain.ErrDeadlineNotReached, http.StatusConflict, "DEADLINE_NOT_REACHED"},
	{domain.ErrRefundsStarted, http.StatusConflict, "REFUNDS_STARTED"},

	{domain.ErrInvalidOwner, http.StatusUnprocessableEntity, "INVALID_OWNER"},
	{domain.ErrInvalidDeadline, http.StatusUnprocessableEntity, "INVALID_DEADLINE"},
	{domain.ErrInvalidMetadataURI, http.StatusUnprocessableEntity, "INVALID_METADATA_URI"},
	{domain.ErrBelowMinimumDonation, http.StatusUnprocessableEntity, "BELOW_MINIMUM_DONATION"},
	{domain.ErrCustodyDonation, http.StatusUnprocessableEntity, "CUSTODY_DONATION"},
	{domain.ErrInsufficientBalance, http.StatusUnprocessableEntity, "INSUFFICIENT_BALANCE"},
	{domain.ErrInsufficientAllowance, http.StatusUnprocessableEntity, "INSUFFICIENT_ALLOWANCE"},
	{domain.ErrInvalidRecipient, http.StatusUnprocessableEntity, "INVALID_RECIPIENT"},
	{domain.ErrInvalidSpender, http.StatusUnprocessableEntity, "INVALID_SPENDER"},
	{domain.ErrAmountOverflow, http.StatusUnprocessableEntity, "AMOUNT_OVERFLOW"},
	{domain.ErrInvalidAddress, http.StatusUnprocessableEntity, "INVALID_ADDRESS"},
}

// writeError maps a use case failure to its status and code. Unknown
// errors are logged and reported without detail.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error(), Code: codeInternal}
	status := http.StatusInternalServerError
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			status, resp.Code = m.status, m.code
			break
		}
	}
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "ledger error",
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err),
		)
		resp.Error = "internal error"
	}

	var campaignErr *domain.CampaignError
	if errors.As(err, &campaignErr) {
		id := campaignErr.CampaignID
		resp.CampaignID = &id
	}
	h.writeJSON(w, r, status, resp)
}

func (h *Handler) writeProblem(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	h.writeJSON(w, r, status, ErrorResponse{Error: msg, Code: code})
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// encoding should rarely fail; the status line is already out
		h.logger.ErrorContext(r.Context(), "encode response error", slog.Any("error", err))
	}
}

// decode reads a JSON body into v and answers 400 when it is malformed.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid JSON: "+err.Error())
		return false
	}
	return true
}
