package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func NewRouter(handler *Handler, jwtSecret string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ok", nil) })
	r.Get("/readyz", func(w http.ResponseWriter, _ *http.Request) { writeSuccess(w, http.StatusOK, "ready", nil) })
	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware(jwtSecret))
			r.Post("/crowdfunds", handler.createCampaign)
			r.Get("/crowdfunds/{campaign_id}", handler.getCampaign)
			r.Get("/crowdfunds/{campaign_id}/summary", handler.campaignSummary)
			r.Post("/crowdfunds/{campaign_id}/pledges", handler.openPledge)
			r.Post("/crowdfunds/{campaign_id}/pledges/pledge", handler.pledge)
			r.Post("/crowdfunds/{campaign_id}/pledges/unpledge", handler.unpledge)
			r.Get("/crowdfunds/{campaign_id}/pledges/{pledger_id}", handler.getPledge)
			r.Post("/crowdfunds/{campaign_id}/claims", handler.claim)
			r.Get("/wallet/balance", handler.walletBalance)
			r.Post("/wallet/deposits", handler.deposit)
		})
	})
	return r
}
