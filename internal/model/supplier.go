package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier holds contact data for a medicine provider. Medicines reference
// suppliers by id only (non-owning relation).
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"not null"`
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Medicines []Medicine `gorm:"foreignKey:SupplierID"`
}
