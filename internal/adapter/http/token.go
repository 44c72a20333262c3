package httpadapter

import "net/http"

func (h *Handler) handleTotalSupply(w http.ResponseWriter, r *http.Request) {
	supply, err := h.tokens.TotalSupply(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, SupplyResponse{TotalSupply: supply})
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	account, ok := h.addressParam(w, r, "account")
	if !ok {
		return
	}
	balance, err := h.tokens.BalanceOf(r.Context(), account)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, BalanceResponse{Account: account, Balance: balance})
}

func (h *Handler) handleAllowance(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.addressParam(w, r, "owner")
	if !ok {
		return
	}
	spender, ok := h.addressParam(w, r, "spender")
	if !ok {
		return
	}
	allowance, err := h.tokens.Allowance(r.Context(), owner, spender)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, AllowanceResponse{Owner: owner, Spender: spender, Allowance: allowance})
}

// handleApprove sets the allowance the caller grants to a spender. Donors
// approve the custody account before donating.
func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	var body ApproveRequest
	if !h.decode(w, r, &body) {
		return
	}
	caller := Account(r.Context())
	if err := h.tokens.Approve(r.Context(), caller, body.Spender, body.Amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, AllowanceResponse{Owner: caller, Spender: body.Spender, Allowance: body.Amount})
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	var body TransferRequest
	if !h.decode(w, r, &body) {
		return
	}
	caller := Account(r.Context())
	if err := h.tokens.Transfer(r.Context(), caller, body.To, body.Amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	balance, err := h.tokens.BalanceOf(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, BalanceResponse{Account: caller, Balance: balance})
}
