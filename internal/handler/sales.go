package handler

import (
	"net/http"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/apierror"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/middleware"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// CreateSale godoc
// @Summary      Register a new sale
// @Description  Atomically decrements stock for every basket line and persists the sale with price snapshots. All-or-nothing: any failing line leaves stock untouched.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateSaleRequest true "Basket"
// @Success      201  {object} dto.SaleResponse
// @Failure      400  {object} apierror.APIError "invalid basket"
// @Failure      404  {object} apierror.APIError "unknown medicine"
// @Failure      409  {object} apierror.APIError "insufficient stock"
// @Router       /api/v1/sales [post]
func (h *SalesHandler) CreateSale(c *gin.Context) {
	var req dto.CreateSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreateSale(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSales godoc
// @Summary      List sales
// @Description  Returns a paginated list of sales filtered by date range.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        from  query string false "From date YYYY-MM-DD"
// @Param        to    query string false "To date YYYY-MM-DD"
// @Param        page  query int    false "Page (default 1)"
// @Param        limit query int    false "Records per page (default 50)"
// @Success      200   {object} dto.SaleListResponse
// @Router       /api/v1/sales [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetByID returns a single sale with its line snapshots.
func (h *SalesHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid id"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DailyTotal returns today's aggregated sales total and count.
func (h *SalesHandler) DailyTotal(c *gin.Context) {
	resp, err := h.svc.DailyTotal(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
