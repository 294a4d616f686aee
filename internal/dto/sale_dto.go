package dto

import "github.com/shopspring/decimal"

// ─── Requests ────────────────────────────────────────────────────────────────

type SaleLineRequest struct {
	MedicineID string `json:"medicine_id" validate:"required,uuid"`
	Quantity   int    `json:"quantity"    validate:"required,min=1"`
}

type CreateSaleRequest struct {
	Lines        []SaleLineRequest `json:"lines"         validate:"required,min=1,dive"`
	CustomerName *string           `json:"customer_name" validate:"omitempty,min=2"`
	// CustomerEmail is optional; when present, the receipt worker mails the PDF.
	CustomerEmail *string `json:"customer_email" validate:"omitempty,email"`
}

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	From  string `form:"from"  validate:"omitempty,datetime=2006-01-02"`
	To    string `form:"to"    validate:"omitempty,datetime=2006-01-02"`
	Page  int    `form:"page,default=1"   validate:"min=1"`
	Limit int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Responses ───────────────────────────────────────────────────────────────

type SaleLineResponse struct {
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type SaleResponse struct {
	ID           string             `json:"id"`
	Lines        []SaleLineResponse `json:"lines"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	CustomerName *string            `json:"customer_name,omitempty"`
	CreatedBy    string             `json:"created_by"`
	CashierName  string             `json:"cashier_name,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type DailyTotalResponse struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
	Date  string          `json:"date"`
}
