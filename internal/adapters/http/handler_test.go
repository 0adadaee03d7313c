package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/ledger"
	"github.com/viralforge/crowdfund-ledger-service/internal/adapters/memory"
	"github.com/viralforge/crowdfund-ledger-service/internal/application"
	"github.com/viralforge/crowdfund-ledger-service/internal/contracts"
)

const testSecret = "test-secret"

type testEnv struct {
	router http.Handler
	ledger *ledger.MemoryLedger
	clock  time.Time
	keySeq int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		ledger: ledger.NewMemoryLedger(),
		clock:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	repos := memory.NewRepositories()
	svc := application.NewService(application.Dependencies{
		Config:      application.Config{MinimumGoal: 1_000_000_000},
		Campaigns:   repos.Campaigns,
		Pledges:     repos.Pledges,
		Idempotency: repos.Idempotency,
		Outbox:      repos.Outbox,
		Ledger:      env.ledger,
		Now:         func() time.Time { return env.clock },
	})
	env.router = NewRouter(NewHandler(svc, 9), testSecret)
	return env
}

func (e *testEnv) token(t *testing.T, subject string) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return raw
}

func (e *testEnv) do(t *testing.T, method, path, subject string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if subject != "" {
		req.Header.Set("Authorization", "Bearer "+e.token(t, subject))
	}
	if method != http.MethodGet {
		e.keySeq++
		req.Header.Set("Idempotency-Key", fmt.Sprintf("idem-%d", e.keySeq))
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var wrapper struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &wrapper); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	var out T
	if err := json.Unmarshal(wrapper.Data, &out); err != nil {
		t.Fatalf("decode data: %v (%s)", err, rec.Body.String())
	}
	return out
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var wrapper contracts.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &wrapper); err != nil {
		t.Fatalf("decode error envelope: %v (%s)", err, rec.Body.String())
	}
	return wrapper.Error.Code
}

func (e *testEnv) createCampaign(t *testing.T) contracts.CampaignResponse {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/v1/crowdfunds", "owner_1", contracts.CreateCampaignRequest{
		Title:    "community garden fund",
		Goal:     5_000_000_000,
		StartsAt: e.clock.Add(time.Hour).Unix(),
		EndsAt:   e.clock.Add(24 * time.Hour).Unix(),
		Treasury: "treasury_1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: %d %s", rec.Code, rec.Body.String())
	}
	return decodeData[contracts.CampaignResponse](t, rec)
}

func TestCreateCampaignEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	campaign := env.createCampaign(t)
	if campaign.Owner != "owner_1" || campaign.Goal != 5_000_000_000 {
		t.Fatalf("unexpected campaign: %+v", campaign)
	}

	rec := env.do(t, http.MethodGet, "/v1/crowdfunds/"+campaign.CampaignID, "owner_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get campaign: %d %s", rec.Code, rec.Body.String())
	}
}

func TestCreateCampaignDecimalGoal(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/crowdfunds", "owner_1", contracts.CreateCampaignRequest{
		Title:       "river cleanup drive",
		GoalDecimal: "2.5",
		StartsAt:    env.clock.Add(time.Hour).Unix(),
		EndsAt:      env.clock.Add(24 * time.Hour).Unix(),
		Treasury:    "treasury_1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create campaign: %d %s", rec.Code, rec.Body.String())
	}
	campaign := decodeData[contracts.CampaignResponse](t, rec)
	if campaign.Goal != 2_500_000_000 {
		t.Fatalf("decimal goal not scaled to base units: %d", campaign.Goal)
	}
}

func TestAuthRequired(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/v1/crowdfunds", "", contracts.CreateCampaignRequest{})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != "unauthorized" {
		t.Fatalf("expected unauthorized code, got %q", code)
	}
}

func TestBadTokenRejected(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/wallet/balance", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPledgeFlowOverHTTP(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	campaign := env.createCampaign(t)
	env.clock = env.clock.Add(2 * time.Hour)

	rec := env.do(t, http.MethodPost, "/v1/wallet/deposits", "alice", contracts.DepositRequest{Amount: 10_000_000_000})
	if rec.Code != http.StatusOK {
		t.Fatalf("deposit: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges", "alice", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("open pledge: %d %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges/pledge", "alice", contracts.PledgeRequest{AmountDecimal: "2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("pledge: %d %s", rec.Code, rec.Body.String())
	}
	pledge := decodeData[contracts.PledgeResponse](t, rec)
	if pledge.Balance != 2_000_000_000 {
		t.Fatalf("pledge balance = %d", pledge.Balance)
	}

	rec = env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges/unpledge", "alice", contracts.UnpledgeRequest{Amount: 3_000_000_000})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for over-unpledge, got %d %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "not_enough_balance" {
		t.Fatalf("expected not_enough_balance, got %q", code)
	}

	rec = env.do(t, http.MethodGet, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges/alice", "alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get pledge: %d %s", rec.Code, rec.Body.String())
	}

	env.clock = env.clock.Add(23 * time.Hour)

	rec = env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/claims", "owner_1", contracts.ClaimRequest{Pledger: "alice", Treasury: "treasury_1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("claim: %d %s", rec.Code, rec.Body.String())
	}
	claimed := decodeData[contracts.PledgeResponse](t, rec)
	if !claimed.Claimed || claimed.ClaimedAmount != 2_000_000_000 {
		t.Fatalf("unexpected claimed pledge: %+v", claimed)
	}

	rec = env.do(t, http.MethodGet, "/v1/crowdfunds/"+campaign.CampaignID+"/summary", "owner_1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary: %d %s", rec.Code, rec.Body.String())
	}
	summary := decodeData[contracts.CampaignSummaryResponse](t, rec)
	if summary.PledgeCount != 1 || summary.TotalClaimed != 2_000_000_000 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestClaimForbiddenForNonOwner(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	campaign := env.createCampaign(t)
	env.clock = env.clock.Add(2 * time.Hour)
	if rec := env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges", "alice", nil); rec.Code != http.StatusCreated {
		t.Fatalf("open pledge: %d", rec.Code)
	}
	env.clock = env.clock.Add(23 * time.Hour)

	rec := env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/claims", "alice", contracts.ClaimRequest{Pledger: "alice", Treasury: "treasury_1"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d %s", rec.Code, rec.Body.String())
	}
	if code := errorCode(t, rec); code != "only_owner" {
		t.Fatalf("expected only_owner, got %q", code)
	}
}

func TestAmountAndDecimalMutuallyExclusive(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	campaign := env.createCampaign(t)
	env.clock = env.clock.Add(2 * time.Hour)
	if rec := env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges", "alice", nil); rec.Code != http.StatusCreated {
		t.Fatalf("open pledge: %d", rec.Code)
	}

	rec := env.do(t, http.MethodPost, "/v1/crowdfunds/"+campaign.CampaignID+"/pledges/pledge", "alice", contracts.PledgeRequest{Amount: 100, AmountDecimal: "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}
}
