package dto

import "github.com/shopspring/decimal"

type CreateMedicineRequest struct {
	Name          string          `json:"name"           validate:"required,min=2"`
	Category      string          `json:"category"       validate:"required"`
	BatchNumber   string          `json:"batch_number"   validate:"required"`
	ExpiryDate    string          `json:"expiry_date"    validate:"required,datetime=2006-01-02"`
	Quantity      int             `json:"quantity"       validate:"min=0"`
	MinQuantity   *int            `json:"min_quantity"   validate:"omitempty,min=0"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"required,min=0"`
	SellingPrice  decimal.Decimal `json:"selling_price"  validate:"required,gt=0"`
	SupplierID    *string         `json:"supplier_id"    validate:"omitempty,uuid"`
}

type UpdateMedicineRequest struct {
	Name          string           `json:"name"           validate:"omitempty,min=2"`
	Category      string           `json:"category"`
	BatchNumber   string           `json:"batch_number"`
	ExpiryDate    string           `json:"expiry_date"    validate:"omitempty,datetime=2006-01-02"`
	MinQuantity   *int             `json:"min_quantity"   validate:"omitempty,min=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price" validate:"omitempty,min=0"`
	SellingPrice  *decimal.Decimal `json:"selling_price"  validate:"omitempty,gt=0"`
	SupplierID    *string          `json:"supplier_id"    validate:"omitempty,uuid"`
}

// AdjustStockRequest covers restocks (positive delta) and manual corrections
// (either sign). The repository rejects any delta that would drive the
// quantity below zero.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

type MedicineFilter struct {
	Search     string `form:"search"`
	Category   string `form:"category"`
	SupplierID string `form:"supplier_id"`
	Active     string `form:"active"` // "false" | "all" | default active only
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type MedicineResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	BatchNumber   string          `json:"batch_number"`
	ExpiryDate    string          `json:"expiry_date"`
	Quantity      int             `json:"quantity"`
	MinQuantity   int             `json:"min_quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	SupplierName  *string         `json:"supplier_name,omitempty"`
	Active        bool            `json:"active"`
	CreatedAt     string          `json:"created_at"`
}

type MedicineListResponse struct {
	Data  []MedicineResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

type StockMovementResponse struct {
	ID           string  `json:"id"`
	MedicineID   string  `json:"medicine_id"`
	MedicineName string  `json:"medicine_name,omitempty"`
	Type         string  `json:"type"`
	Delta        int     `json:"delta"`
	QtyBefore    int     `json:"qty_before"`
	QtyAfter     int     `json:"qty_after"`
	Reason       string  `json:"reason,omitempty"`
	SaleID       *string `json:"sale_id,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
