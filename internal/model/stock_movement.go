package model

import (
	"time"

	"github.com/google/uuid"
)

// StockMovement records every quantity change on a medicine.
// Created on sales, restocks and manual corrections.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MedicineID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type       string    `gorm:"not null"` // "sale" | "restock" | "adjustment"
	Delta      int       `gorm:"not null"` // positive = in, negative = out
	QtyBefore  int       `gorm:"not null"`
	QtyAfter   int       `gorm:"not null"`
	Reason     string
	SaleID     *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
}

// TableName overrides GORM's default pluralization (stock_movements is fine,
// but keep it explicit since reports query it by name).
func (StockMovement) TableName() string { return "stock_movements" }
