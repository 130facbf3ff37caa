package controllers

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/Prakash-Shridharan/handshake/internal/config"
	"github.com/Prakash-Shridharan/handshake/internal/dtos"
	"github.com/Prakash-Shridharan/handshake/internal/ledger"
	"github.com/Prakash-Shridharan/handshake/internal/middleware"
	"github.com/Prakash-Shridharan/handshake/internal/models"
	"github.com/Prakash-Shridharan/handshake/internal/routes"
	"github.com/Prakash-Shridharan/handshake/internal/services"
)

type testEnv struct {
	router *mux.Router
	key    *rsa.PrivateKey
}

// newTestEnv assembles the same router main builds, minus CORS and cron.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{AppName: "handshake-test", RSAPublicKey: &key.PublicKey}
	marketplaceService := services.NewMarketplaceService(cfg, ledger.New())

	jobsController := NewJobsController(marketplaceService)
	bidsController := NewBidsController(marketplaceService)
	invoicesController := NewInvoicesController(marketplaceService)
	healthController := NewHealthController(cfg)

	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthController.HealthHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))
	secured.HandleFunc(routes.JobsBase, jobsController.CreateJobHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.JobsOpen, jobsController.ListOpenJobsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobsMy, jobsController.ListMyJobsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobsComplete, jobsController.CompleteJobHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.JobByID, jobsController.GetJobHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.JobBids, jobsController.ListJobBidsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.BidsBase, bidsController.SubmitBidHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.BidsMy, bidsController.ListMyBidsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.BidsAccept, bidsController.AcceptBidHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.InvoicesBase, invoicesController.ListInvoicesHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.InvoicesPay, invoicesController.PayInvoiceHandler).Methods(http.MethodPost)

	return &testEnv{router: router, key: key}
}

func (e *testEnv) token(t *testing.T, userID uuid.UUID, role models.UserRoleType, name, company string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":     userID.String(),
		"role":    string(role),
		"name":    name,
		"company": company,
		"iss":     middleware.TokenIssuer,
		"exp":     time.Now().Add(time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(e.key)
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec.Code
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var resp dtos.HealthResponse
	code := env.do(t, http.MethodGet, routes.Health, "", nil, &resp)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "ok", resp.Status)
	require.Equal(t, "handshake-test", resp.AppName)
}

func TestSecuredRoutesRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	code := env.do(t, http.MethodGet, routes.JobsOpen, "", nil, nil)
	require.Equal(t, http.StatusUnauthorized, code)
}

func TestMarketplaceFlowEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	agentToken := env.token(t, uuid.New(), models.UserRoleAgent, "Sarah Mitchell", "Premier Properties")
	mikeToken := env.token(t, uuid.New(), models.UserRoleContractor, "Mike Rodriguez", "QuickFix Pro Services")
	lisaToken := env.token(t, uuid.New(), models.UserRoleContractor, "Lisa Chen", "Premier Plumbing")

	// Agent posts a job.
	var job dtos.JobDTO
	code := env.do(t, http.MethodPost, routes.JobsBase, agentToken, dtos.CreateJobRequest{
		Title:       "Kitchen Sink Leak Repair",
		Description: "Water leaking from under the kitchen sink.",
		Location:    "123 Oak Street, Apt 4B",
		Urgency:     "high",
	}, &job)
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, "open", job.Status)

	// The job shows up on the open marketplace for contractors.
	var openJobs dtos.ListJobsResponse
	code = env.do(t, http.MethodGet, routes.JobsOpen, mikeToken, nil, &openJobs)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, openJobs.Total)

	// Two contractors bid.
	var mikeBid, lisaBid dtos.BidDTO
	code = env.do(t, http.MethodPost, routes.BidsBase, mikeToken, dtos.SubmitBidRequest{
		JobID:         job.JobID,
		Price:         250,
		EstimatedDate: time.Now().Add(48 * time.Hour),
		Notes:         "Can complete within 24 hours of acceptance.",
	}, &mikeBid)
	require.Equal(t, http.StatusCreated, code)
	code = env.do(t, http.MethodPost, routes.BidsBase, lisaToken, dtos.SubmitBidRequest{
		JobID:         job.JobID,
		Price:         320,
		EstimatedDate: time.Now().Add(24 * time.Hour),
	}, &lisaBid)
	require.Equal(t, http.StatusCreated, code)

	// Contractors cannot accept bids.
	code = env.do(t, http.MethodPost, routes.BidsAccept, mikeToken, dtos.BidActionRequest{BidID: mikeBid.BidID}, nil)
	require.Equal(t, http.StatusForbidden, code)

	// The agent accepts Mike's bid; Lisa's gets rejected in the fan-out.
	var accept dtos.AcceptBidResponse
	code = env.do(t, http.MethodPost, routes.BidsAccept, agentToken, dtos.BidActionRequest{BidID: mikeBid.BidID}, &accept)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "in_progress", accept.UpdatedJob.Status)
	require.Equal(t, "accepted", accept.AcceptedBid.Status)

	var jobBids dtos.ListBidsResponse
	code = env.do(t, http.MethodGet, routes.JobsBase+"/"+job.JobID.String()+"/bids", agentToken, nil, &jobBids)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 2, jobBids.Total)
	for _, b := range jobBids.Results {
		if b.BidID == lisaBid.BidID {
			require.Equal(t, "rejected", b.Status)
		}
	}

	// Lisa sees her rejection under /bids/my.
	var lisaBids dtos.ListBidsResponse
	code = env.do(t, http.MethodGet, routes.BidsMy, lisaToken, nil, &lisaBids)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, lisaBids.Total)
	require.Equal(t, "rejected", lisaBids.Results[0].Status)

	// Accepting an already-resolved bid is a 400.
	code = env.do(t, http.MethodPost, routes.BidsAccept, agentToken, dtos.BidActionRequest{BidID: lisaBid.BidID}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	// Completion issues the invoice at the accepted price.
	var completion dtos.JobCompletionResponse
	code = env.do(t, http.MethodPost, routes.JobsComplete, agentToken, dtos.JobActionRequest{JobID: job.JobID}, &completion)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "completed", completion.Updated.Status)
	require.Equal(t, 250.0, completion.Invoice.Amount)
	require.Equal(t, "pending", completion.Invoice.Status)

	// Completing again must not mint a second invoice.
	code = env.do(t, http.MethodPost, routes.JobsComplete, agentToken, dtos.JobActionRequest{JobID: job.JobID}, nil)
	require.Equal(t, http.StatusBadRequest, code)

	var agentInvoices dtos.ListInvoicesResponse
	code = env.do(t, http.MethodGet, routes.InvoicesBase, agentToken, nil, &agentInvoices)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, agentInvoices.Total)
	require.Equal(t, 250.0, agentInvoices.PendingTotal)

	// Agent settles the invoice.
	var paid dtos.InvoiceActionResponse
	code = env.do(t, http.MethodPost, routes.InvoicesPay, agentToken, dtos.InvoiceActionRequest{InvoiceID: completion.Invoice.InvoiceID}, &paid)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "paid", paid.Updated.Status)

	// Mike sees the paid invoice on his side.
	var mikeInvoices dtos.ListInvoicesResponse
	code = env.do(t, http.MethodGet, routes.InvoicesBase, mikeToken, nil, &mikeInvoices)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, mikeInvoices.Total)
	require.Equal(t, 250.0, mikeInvoices.PaidTotal)
}

func TestCreateJobValidation(t *testing.T) {
	env := newTestEnv(t)
	agentToken := env.token(t, uuid.New(), models.UserRoleAgent, "Sarah Mitchell", "")

	code := env.do(t, http.MethodPost, routes.JobsBase, agentToken, dtos.CreateJobRequest{
		Title:   "Missing fields",
		Urgency: "whenever",
	}, nil)
	require.Equal(t, http.StatusBadRequest, code)
}

func TestSubmitBidUnknownJob(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New(), models.UserRoleContractor, "Mike Rodriguez", "QuickFix Pro Services")

	code := env.do(t, http.MethodPost, routes.BidsBase, token, dtos.SubmitBidRequest{
		JobID:         uuid.New(),
		Price:         100,
		EstimatedDate: time.Now().Add(time.Hour),
	}, nil)
	require.Equal(t, http.StatusNotFound, code)
}

func TestContractorCannotCreateJob(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, uuid.New(), models.UserRoleContractor, "Mike Rodriguez", "QuickFix Pro Services")

	code := env.do(t, http.MethodPost, routes.JobsBase, token, dtos.CreateJobRequest{
		Title:       "Not allowed",
		Description: "Contractors cannot post jobs.",
		Location:    "Nowhere",
		Urgency:     "low",
	}, nil)
	require.Equal(t, http.StatusForbidden, code)
}

func TestGetJobDetailEndpoint(t *testing.T) {
	env := newTestEnv(t)
	agentToken := env.token(t, uuid.New(), models.UserRoleAgent, "Sarah Mitchell", "")

	var job dtos.JobDTO
	code := env.do(t, http.MethodPost, routes.JobsBase, agentToken, dtos.CreateJobRequest{
		Title:       "Roof Inspection",
		Description: "Annual roof inspection after recent storms.",
		Location:    "654 Cedar Lane",
		Urgency:     "high",
	}, &job)
	require.Equal(t, http.StatusCreated, code)

	var detail dtos.JobDetailResponse
	code = env.do(t, http.MethodGet, routes.JobsBase+"/"+job.JobID.String(), agentToken, nil, &detail)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, job.JobID, detail.Job.JobID)
	require.Empty(t, detail.Bids)

	code = env.do(t, http.MethodGet, routes.JobsBase+"/"+uuid.NewString(), agentToken, nil, nil)
	require.Equal(t, http.StatusNotFound, code)

	code = env.do(t, http.MethodGet, routes.JobsBase+"/not-a-uuid", agentToken, nil, nil)
	require.Equal(t, http.StatusBadRequest, code)
}
