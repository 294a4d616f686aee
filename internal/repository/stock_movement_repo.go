package repository

import (
	"context"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StockMovementRepository interface {
	Create(ctx context.Context, m *model.StockMovement) error
	// CreateTx is used inside the sale transaction so the movement commits or
	// rolls back together with the decrement it describes.
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByMedicine(ctx context.Context, medicineID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) Create(ctx context.Context, m *model.StockMovement) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByMedicine(ctx context.Context, medicineID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit < 1 {
		limit = 100
	}
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("medicine_id = ?", medicineID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}
