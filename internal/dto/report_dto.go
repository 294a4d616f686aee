package dto

import "github.com/shopspring/decimal"

// SummaryResponse feeds the dashboard cards: catalog size, value of stock on
// hand, today's sales, and the two attention lists.
type SummaryResponse struct {
	MedicineCount   int64           `json:"medicine_count"`
	StockValue      decimal.Decimal `json:"stock_value"`
	TodaySalesTotal decimal.Decimal `json:"today_sales_total"`
	TodaySalesCount int64           `json:"today_sales_count"`
	LowStockCount   int64           `json:"low_stock_count"`
	ExpiringSoon    int64           `json:"expiring_soon_count"`
	SupplierCount   int64           `json:"supplier_count"`
}
