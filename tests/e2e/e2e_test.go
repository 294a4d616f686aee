//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/config"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/infra"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.Run(ctx, "postgres:15-alpine",
		tcPostgres.WithDatabase("pharmapos_test"),
		tcPostgres.WithUsername("pharmapos"),
		tcPostgres.WithPassword("pharmapos"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		PDFStoragePath:     t.TempDir(),
		LowStockThreshold:  10,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Bootstrap the admin through the public register endpoint, then log in.
	regResp := do(t, srv, "POST", "/api/v1/auth/register", jsonBody(t, map[string]string{
		"name":     "Admin E2E",
		"email":    "admin@e2e.test",
		"password": "pharmapos2026",
		"role":     "admin",
	}), "")
	require.Equal(t, http.StatusCreated, regResp.StatusCode)
	regResp.Body.Close()

	loginResp := do(t, srv, "POST", "/api/v1/auth/login", jsonBody(t, map[string]string{
		"email":    "admin@e2e.test",
		"password": "pharmapos2026",
	}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func createMedicine(t *testing.T, env *testEnv, name string, qty int, price float64) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/v1/medicines", jsonBody(t, map[string]any{
		"name":           name,
		"category":       "analgesic",
		"batch_number":   "B-E2E",
		"expiry_date":    time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		"quantity":       qty,
		"purchase_price": price / 2,
		"selling_price":  price,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var med struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &med)
	return med.ID
}

func medicineQuantity(t *testing.T, env *testEnv, id string) int {
	t.Helper()
	resp := do(t, env.server, "GET", "/api/v1/medicines/"+id, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var med struct {
		Quantity int `json:"quantity"`
	}
	decodeJSON(t, resp, &med)
	return med.Quantity
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleFlow(t *testing.T) {
	env := setupTestEnv(t)

	a := createMedicine(t, env, "Paracetamol 500mg", 20, 3.00)
	b := createMedicine(t, env, "Ibuprofen 400mg", 10, 5.50)

	saleResp := do(t, env.server, "POST", "/api/v1/sales", jsonBody(t, map[string]any{
		"lines": []map[string]any{
			{"medicine_id": a, "quantity": 3},
			{"medicine_id": b, "quantity": 2},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID          string `json:"id"`
		TotalAmount string `json:"total_amount"`
		Lines       []struct {
			MedicineName string `json:"medicine_name"`
			UnitPrice    string `json:"unit_price"`
		} `json:"lines"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, "20", sale.TotalAmount) // 3×3.00 + 2×5.50
	assert.Len(t, sale.Lines, 2)

	assert.Equal(t, 17, medicineQuantity(t, env, a))
	assert.Equal(t, 8, medicineQuantity(t, env, b))

	// The sale is retrievable with its snapshots
	getResp := do(t, env.server, "GET", "/api/v1/sales/"+sale.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	getResp.Body.Close()

	// Daily total reflects the committed sale
	dailyResp := do(t, env.server, "GET", "/api/v1/sales/daily-total", nil, env.token)
	require.Equal(t, http.StatusOK, dailyResp.StatusCode)
	var daily struct {
		Total string `json:"total"`
		Count int64  `json:"count"`
	}
	decodeJSON(t, dailyResp, &daily)
	assert.Equal(t, int64(1), daily.Count)
	assert.Equal(t, "20", daily.Total)

	// The decrement left an audit trail
	movResp := do(t, env.server, "GET", "/api/v1/medicines/"+a+"/movements", nil, env.token)
	require.Equal(t, http.StatusOK, movResp.StatusCode)
	var movements []struct {
		Type  string `json:"type"`
		Delta int    `json:"delta"`
	}
	decodeJSON(t, movResp, &movements)
	require.NotEmpty(t, movements)
	assert.Equal(t, "sale", movements[0].Type)
	assert.Equal(t, -3, movements[0].Delta)
}

func TestE2E_InsufficientStockLeavesDataIntact(t *testing.T) {
	env := setupTestEnv(t)
	id := createMedicine(t, env, "Cetirizine 10mg", 2, 4.00)

	resp := do(t, env.server, "POST", "/api/v1/sales", jsonBody(t, map[string]any{
		"lines": []map[string]any{{"medicine_id": id, "quantity": 5}},
	}), env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	assert.Equal(t, 2, medicineQuantity(t, env, id))

	dailyResp := do(t, env.server, "GET", "/api/v1/sales/daily-total", nil, env.token)
	var daily struct {
		Count int64 `json:"count"`
	}
	decodeJSON(t, dailyResp, &daily)
	assert.Equal(t, int64(0), daily.Count)
}

func TestE2E_UnknownMedicineRollsBackWholeBasket(t *testing.T) {
	env := setupTestEnv(t)
	id := createMedicine(t, env, "Aspirin 100mg", 10, 1.20)

	resp := do(t, env.server, "POST", "/api/v1/sales", jsonBody(t, map[string]any{
		"lines": []map[string]any{
			{"medicine_id": id, "quantity": 4},
			{"medicine_id": "8b7d2f50-0000-4000-8000-000000000000", "quantity": 1},
		},
	}), env.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// Rolled back: the known medicine was not decremented
	assert.Equal(t, 10, medicineQuantity(t, env, id))
}

func TestE2E_ConcurrentSalesNeverOversell(t *testing.T) {
	env := setupTestEnv(t)

	const stock = 5
	const buyers = 20
	id := createMedicine(t, env, "Limited batch serum", stock, 30.00)

	var wg sync.WaitGroup
	statuses := make([]int, buyers)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			body := jsonBody(t, map[string]any{
				"lines": []map[string]any{{"medicine_id": id, "quantity": 1}},
			})
			req, err := http.NewRequest("POST", env.server.URL+"/api/v1/sales", body)
			if err != nil {
				return
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+env.token)
			resp, err := env.server.Client().Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			statuses[n] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	var sold, rejected int
	for _, code := range statuses {
		switch code {
		case http.StatusCreated:
			sold++
		case http.StatusConflict:
			rejected++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	assert.Equal(t, stock, sold, "exactly the available units must sell")
	assert.Equal(t, buyers-stock, rejected)
	assert.Equal(t, 0, medicineQuantity(t, env, id))

	listResp := do(t, env.server, "GET", fmt.Sprintf("/api/v1/sales?from=%s", time.Now().Format("2006-01-02")), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(stock), list.Total)
}

func TestE2E_StockAdjustmentAndLowStockReport(t *testing.T) {
	env := setupTestEnv(t)
	id := createMedicine(t, env, "Insulin pen", 3, 25.00)

	adjResp := do(t, env.server, "PATCH", "/api/v1/medicines/"+id+"/stock", jsonBody(t, map[string]any{
		"delta":  20,
		"reason": "weekly delivery",
	}), env.token)
	require.Equal(t, http.StatusOK, adjResp.StatusCode)
	adjResp.Body.Close()
	assert.Equal(t, 23, medicineQuantity(t, env, id))

	// A write-off below zero is rejected by the guarded update
	badResp := do(t, env.server, "PATCH", "/api/v1/medicines/"+id+"/stock", jsonBody(t, map[string]any{
		"delta":  -50,
		"reason": "impossible write-off",
	}), env.token)
	assert.Equal(t, http.StatusConflict, badResp.StatusCode)
	badResp.Body.Close()
	assert.Equal(t, 23, medicineQuantity(t, env, id))

	lowResp := do(t, env.server, "GET", "/api/v1/medicines/low-stock", nil, env.token)
	require.Equal(t, http.StatusOK, lowResp.StatusCode)
	lowResp.Body.Close()
}
