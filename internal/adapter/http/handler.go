package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moonman369/Crowd-Funding-Contract/internal/core/port"
)

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the campaign and token use cases, the secret that verifies bearer
// tokens and a logger for structured logging. Routes are registered on a
// chi.Router for convenient method handling.
type Handler struct {
	svc    port.CrowdfundingUseCase
	tokens port.TokenUseCase
	secret string
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured. State-changing
// routes require a bearer token signed with secret; the token subject is the
// acting account.
func NewHandler(svc port.CrowdfundingUseCase, tokens port.TokenUseCase, secret string, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, tokens: tokens, secret: secret, logger: logger}
	r := chi.NewRouter()
	r.Use(h.requestID, h.logRequests, middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/time", h.handleTime)
		r.Get("/ledger", h.handleLedgerInfo)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Get("/count", h.handleCampaignCount)
			r.With(h.requireAccount).Post("/", h.handleCreateCampaign)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.handleGetCampaign)
				r.Get("/contributions", h.handleListContributions)
				r.Get("/contributions/{donor}", h.handleGetContribution)
				r.Get("/events", h.handleListEvents)

				r.Group(func(r chi.Router) {
					r.Use(h.requireAccount)
					r.Post("/donations", h.handleDonate)
					r.Post("/collect", h.handleWithdrawCollected)
					r.Post("/refund", h.handleWithdrawDonated)
				})
			})
		})

		r.Route("/tokens", func(r chi.Router) {
			r.Get("/supply", h.handleTotalSupply)
			r.Get("/balances/{account}", h.handleBalance)
			r.Get("/allowances/{owner}/{spender}", h.handleAllowance)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAccount)
				r.Post("/approve", h.handleApprove)
				r.Post("/transfer", h.handleTransfer)
			})
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
