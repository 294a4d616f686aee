package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/apierror"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/handler"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/middleware"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSaleService returns a canned result so the handler's error-to-status
// mapping can be asserted in isolation.
type fakeSaleService struct {
	resp *dto.SaleResponse
	err  error
}

func (s *fakeSaleService) CreateSale(_ context.Context, _ uuid.UUID, _ dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	return s.resp, s.err
}

func (s *fakeSaleService) GetSale(_ context.Context, _ uuid.UUID) (*dto.SaleResponse, error) {
	return s.resp, s.err
}

func (s *fakeSaleService) ListSales(_ context.Context, _ dto.SaleFilter) (*dto.SaleListResponse, error) {
	return &dto.SaleListResponse{}, s.err
}

func (s *fakeSaleService) DailyTotal(_ context.Context) (*dto.DailyTotalResponse, error) {
	return &dto.DailyTotalResponse{}, s.err
}

var _ service.SaleService = (*fakeSaleService)(nil)

func newSalesRouter(svc service.SaleService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Inject claims the way JWTAuth would, without a real token.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{
			UserID: uuid.New().String(),
			Role:   "staff",
		})
	})
	h := handler.NewSalesHandler(svc)
	r.POST("/sales", h.CreateSale)
	r.GET("/sales", h.ListSales)
	return r
}

func postSale(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/sales", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBasket() string {
	return fmt.Sprintf(`{"lines":[{"medicine_id":%q,"quantity":1}]}`, uuid.New())
}

func TestCreateSaleHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid basket", fmt.Errorf("%w: basket is empty", apierror.ErrInvalidBasket), http.StatusBadRequest},
		{"unknown medicine", &apierror.NotFoundError{Resource: "medicine", ID: uuid.New()}, http.StatusNotFound},
		{"insufficient stock", &apierror.InsufficientStockError{MedicineName: "Aspirin", Requested: 5, Available: 2}, http.StatusConflict},
		{"storage down", fmt.Errorf("%w: decrement stock: timeout", apierror.ErrUnavailable), http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newSalesRouter(&fakeSaleService{err: tc.err})
			w := postSale(t, r, validBasket())
			assert.Equal(t, tc.status, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestCreateSaleHandler_Success(t *testing.T) {
	resp := &dto.SaleResponse{
		ID:          uuid.New().String(),
		TotalAmount: decimal.NewFromFloat(7.50),
	}
	r := newSalesRouter(&fakeSaleService{resp: resp})

	w := postSale(t, r, validBasket())
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), resp.ID)
}

func TestCreateSaleHandler_MalformedJSON(t *testing.T) {
	r := newSalesRouter(&fakeSaleService{})
	w := postSale(t, r, `{"lines": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSaleHandler_ValidationFailure(t *testing.T) {
	r := newSalesRouter(&fakeSaleService{})

	// quantity below minimum
	w := postSale(t, r, fmt.Sprintf(`{"lines":[{"medicine_id":%q,"quantity":0}]}`, uuid.New()))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// not a uuid
	w = postSale(t, r, `{"lines":[{"medicine_id":"not-a-uuid","quantity":1}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestListSalesHandler_FilterValidation(t *testing.T) {
	r := newSalesRouter(&fakeSaleService{})

	getSales := func(query string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/sales"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// Malformed dates must be rejected before reaching storage.
	w := getSales("?from=not-a-date")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "From")

	w = getSales("?to=2026-13-99")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = getSales("?limit=5000")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = getSales("?from=2026-08-01&to=2026-08-31&page=2&limit=10")
	assert.Equal(t, http.StatusOK, w.Code)
}
