package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/viralforge/crowdfund-ledger-service/internal/application"
	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
	"github.com/viralforge/crowdfund-ledger-service/internal/domain"
)

type Handler struct {
	service *application.Service
	// baseUnitScale is the number of decimal places between display units
	// and base units (9 mirrors token↔smallest-unit scaling).
	baseUnitScale int32
}

func NewHandler(service *application.Service, baseUnitScale int32) *Handler {
	if baseUnitScale <= 0 {
		baseUnitScale = 9
	}
	return &Handler{service: service, baseUnitScale: baseUnitScale}
}

func (h *Handler) createCampaign(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	goal, err := resolveAmount(req.Goal, req.GoalDecimal, h.baseUnitScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid goal amount", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	campaign, err := h.service.CreateCampaign(r.Context(), actor, application.CreateCampaignInput{
		Title:    req.Title,
		Goal:     goal,
		StartsAt: time.Unix(req.StartsAt, 0).UTC(),
		EndsAt:   time.Unix(req.EndsAt, 0).UTC(),
		Treasury: req.Treasury,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "campaign created", toCampaignResponse(campaign))
}

func (h *Handler) getCampaign(w http.ResponseWriter, r *http.Request) {
	campaign, err := h.service.GetCampaign(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "campaign", toCampaignResponse(campaign))
}

func (h *Handler) campaignSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetCampaignSummary(r.Context(), chi.URLParam(r, "campaign_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "campaign summary", contracts.CampaignSummaryResponse{
		CampaignID:       summary.CampaignID,
		Goal:             summary.Goal,
		PledgeCount:      summary.PledgeCount,
		TotalOutstanding: summary.TotalOutstanding,
		TotalClaimed:     summary.TotalClaimed,
		GoalReached:      summary.GoalReached,
		CalculatedAt:     summary.CalculatedAt.Unix(),
	})
}

func (h *Handler) openPledge(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	pledge, err := h.service.OpenPledge(r.Context(), actor, application.OpenPledgeInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusCreated, "pledge account created", toPledgeResponse(pledge))
}

func (h *Handler) pledge(w http.ResponseWriter, r *http.Request) {
	var req contracts.PledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	amount, err := resolveAmount(req.Amount, req.AmountDecimal, h.baseUnitScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid pledge amount", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	pledge, err := h.service.Pledge(r.Context(), actor, application.PledgeInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		Amount:     amount,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "pledged", toPledgeResponse(pledge))
}

func (h *Handler) unpledge(w http.ResponseWriter, r *http.Request) {
	var req contracts.UnpledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	amount, err := resolveAmount(req.Amount, req.AmountDecimal, h.baseUnitScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid unpledge amount", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	pledge, err := h.service.Unpledge(r.Context(), actor, application.UnpledgeInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		Amount:     amount,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "unpledged", toPledgeResponse(pledge))
}

func (h *Handler) getPledge(w http.ResponseWriter, r *http.Request) {
	pledge, err := h.service.GetPledge(r.Context(), chi.URLParam(r, "campaign_id"), chi.URLParam(r, "pledger_id"))
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "pledge", toPledgeResponse(pledge))
}

func (h *Handler) claim(w http.ResponseWriter, r *http.Request) {
	var req contracts.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	pledge, err := h.service.Claim(r.Context(), actor, application.ClaimInput{
		CampaignID: chi.URLParam(r, "campaign_id"),
		Pledger:    req.Pledger,
		Treasury:   req.Treasury,
	})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "claimed", toPledgeResponse(pledge))
}

func (h *Handler) walletBalance(w http.ResponseWriter, r *http.Request) {
	actor := actorFromContext(r.Context())
	balance, err := h.service.GetWalletBalance(r.Context(), actor)
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "wallet balance", toWalletBalanceResponse(balance))
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	var req contracts.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid json body", requestIDFromContext(r.Context()))
		return
	}
	amount, err := resolveAmount(req.Amount, req.AmountDecimal, h.baseUnitScale)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "invalid deposit amount", requestIDFromContext(r.Context()))
		return
	}
	actor := actorFromContext(r.Context())
	balance, err := h.service.DepositFunds(r.Context(), actor, application.DepositInput{Amount: amount})
	if err != nil {
		status, code := mapDomainError(err)
		writeError(w, status, code, err.Error(), requestIDFromContext(r.Context()))
		return
	}
	writeSuccess(w, http.StatusOK, "deposited", toWalletBalanceResponse(balance))
}

func toWalletBalanceResponse(balance application.WalletBalance) contracts.WalletBalanceResponse {
	return contracts.WalletBalanceResponse{
		Account:      balance.Account,
		Balance:      balance.Balance,
		CalculatedAt: balance.CalculatedAt.Unix(),
	}
}

func toCampaignResponse(campaign domain.Campaign) contracts.CampaignResponse {
	return contracts.CampaignResponse{
		CampaignID: campaign.CampaignID,
		Owner:      campaign.Owner,
		Treasury:   campaign.Treasury,
		Title:      campaign.Title,
		Goal:       campaign.Goal,
		StartsAt:   campaign.StartsAt.Unix(),
		EndsAt:     campaign.EndsAt.Unix(),
		CreatedAt:  campaign.CreatedAt.Unix(),
	}
}

func toPledgeResponse(pledge domain.Pledge) contracts.PledgeResponse {
	out := contracts.PledgeResponse{
		PledgeID:      pledge.PledgeID,
		CampaignID:    pledge.CampaignID,
		Pledger:       pledge.Pledger,
		Balance:       pledge.Balance,
		Claimed:       pledge.Claimed,
		ClaimedAmount: pledge.ClaimedAmount,
	}
	if pledge.ClaimedAt != nil {
		out.ClaimedAt = pledge.ClaimedAt.Unix()
	}
	return out
}
