package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is an immutable record of a completed transaction. There is no update
// path: a correction is a new compensating sale, never an edit.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CustomerName *string
	CreatedBy    uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt    time.Time `gorm:"index"`

	Lines   []SaleLine `gorm:"foreignKey:SaleID"`
	Cashier *User      `gorm:"foreignKey:CreatedBy"`
}

// SaleLine snapshots name and unit price at the moment of sale. MedicineID is
// a weak reference: the medicine may later be edited or deactivated without
// rewriting historical sales.
type SaleLine struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	MedicineName string          `gorm:"not null"`
	Quantity     int             `gorm:"not null;check:quantity > 0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}
