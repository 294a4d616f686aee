package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a stock ledger entry. Quantity is only ever changed through
// stock-adjustment paths (sale decrement, restock, manual correction) so the
// quantity >= 0 invariant holds; the check constraint backs the guarded
// UPDATEs in the repository.
type Medicine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"index;not null"`
	Category    string    `gorm:"index;not null"`
	BatchNumber string    `gorm:"not null"`
	ExpiryDate  time.Time `gorm:"type:date;index;not null"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0"`
	// MinQuantity is the reorder threshold used by the low-stock report and alerts
	MinQuantity   int             `gorm:"not null;default:10"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
