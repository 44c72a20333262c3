package httpadapter

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/domain"
	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

func (h *Handler) handleTime(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, TimeResponse{Now: h.svc.Now()})
}

func (h *Handler) handleLedgerInfo(w http.ResponseWriter, r *http.Request) {
	policy := h.svc.Policy()
	h.writeJSON(w, r, http.StatusOK, LedgerInfoResponse{
		Now:                 h.svc.Now(),
		Custody:             h.svc.Custody(),
		MinDonation:         policy.MinDonation,
		MinDeadlineLead:     policy.MinDeadlineLead.String(),
		CollectRequiresGoal: policy.CollectRequiresGoal,
	})
}

// handleListCampaigns returns campaigns ordered by id. It accepts optional
// `offset` and `limit` query parameters; limit defaults to 100 and is capped
// at 1000.
func (h *Handler) handleListCampaigns(w http.ResponseWriter, r *http.Request) {
	var (
		q      = r.URL.Query()
		offset uint64
		limit  uint64 = defaultPageSize
		err    error
	)
	if v := q.Get("offset"); v != "" {
		if offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid 'offset'")
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.ParseUint(v, 10, 64); err != nil || limit == 0 {
			h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid 'limit'")
			return
		}
	}
	limit = min(limit, maxPageSize)

	list, err := h.svc.ListCampaigns(r.Context(), offset, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	now := h.svc.Now()
	resp := make([]CampaignResponse, 0, len(list))
	for i := range list {
		resp = append(resp, newCampaignResponse(&list[i], now))
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) handleCampaignCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.CampaignCount(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, CountResponse{Count: n})
}

// handleCreateCampaign creates a campaign for the authenticated caller, or
// only reports the id it would get when `dry_run=true`.
func (h *Handler) handleCreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body CreateCampaignRequest
	if !h.decode(w, r, &body) {
		return
	}
	dryRun, err := parseBool(r.URL.Query().Get("dry_run"))
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid 'dry_run'")
		return
	}

	caller := Account(r.Context())
	req := port.CreateCampaignReq{
		Owner:       caller,
		Goal:        body.Goal,
		Deadline:    body.Deadline,
		MetadataURI: body.MetadataURI,
	}
	if body.Owner != nil {
		req.Owner = *body.Owner
	}

	if dryRun {
		id, err := h.svc.SimulateCreateCampaign(r.Context(), caller, req)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		h.writeJSON(w, r, http.StatusOK, CreateCampaignResponse{ID: id, DryRun: true})
		return
	}

	id, err := h.svc.CreateCampaign(r.Context(), caller, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/v1/campaigns/"+strconv.FormatUint(id, 10))
	h.writeJSON(w, r, http.StatusCreated, CreateCampaignResponse{ID: id})
}

func (h *Handler) handleGetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	c, err := h.svc.GetCampaignByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, newCampaignResponse(c, h.svc.Now()))
}

func (h *Handler) handleDonate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	var body AmountRequest
	if !h.decode(w, r, &body) {
		return
	}
	caller := Account(r.Context())
	if err := h.svc.DonateToCampaign(r.Context(), caller, id, body.Amount); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ContributionResponse{CampaignID: id, Donor: caller, Amount: body.Amount})
}

func (h *Handler) handleWithdrawCollected(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	caller := Account(r.Context())
	amount, err := h.svc.WithdrawCollectedFunds(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, WithdrawalResponse{CampaignID: id, Account: caller, Amount: amount})
}

func (h *Handler) handleWithdrawDonated(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	caller := Account(r.Context())
	amount, err := h.svc.WithdrawDonatedFunds(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, WithdrawalResponse{CampaignID: id, Account: caller, Amount: amount})
}

func (h *Handler) handleListContributions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListContributions(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	resp := make([]ContributionResponse, 0, len(list))
	for _, c := range list {
		resp = append(resp, ContributionResponse{CampaignID: c.CampaignID, Donor: c.Donor, Amount: c.Amount})
	}
	h.writeJSON(w, r, http.StatusOK, resp)
}

func (h *Handler) handleGetContribution(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	donor, ok := h.addressParam(w, r, "donor")
	if !ok {
		return
	}
	amount, err := h.svc.GetContribution(r.Context(), id, donor)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, ContributionResponse{CampaignID: id, Donor: donor, Amount: amount})
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	id, ok := h.campaignID(w, r)
	if !ok {
		return
	}
	list, err := h.svc.ListEvents(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, http.StatusOK, list)
}

func (h *Handler) campaignID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid campaign id")
		return 0, false
	}
	return id, true
}

func (h *Handler) addressParam(w http.ResponseWriter, r *http.Request, name string) (domain.Address, bool) {
	addr, err := domain.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		h.writeProblem(w, r, http.StatusBadRequest, codeBadRequest, "invalid '"+name+"' address")
		return domain.ZeroAddress, false
	}
	return addr, true
}

func parseBool(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
