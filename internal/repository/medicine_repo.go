package repository

import (
	"context"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MedicineRepository defines the data access contract for the stock ledger.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error)
	Update(ctx context.Context, m *model.Medicine) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	ListLowStock(ctx context.Context, threshold int) ([]model.Medicine, error)
	ListExpiringWithin(ctx context.Context, days int) ([]model.Medicine, error)

	// Dashboard aggregates
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context, threshold int) (int64, error)
	CountExpiringWithin(ctx context.Context, days int) (int64, error)
	StockValue(ctx context.Context) (decimal.Decimal, error)

	// Used inside transactions; callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error)

	// DecrementStockTx is the atomic "decrement if sufficient" primitive.
	// It issues a single conditional UPDATE guarded by quantity >= qty and
	// reports whether a row was actually updated; callers distinguish
	// not-found from insufficient stock by re-reading on a miss.
	DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error)

	// IncrementStockTx restores quantity unconditionally. Used by the sale
	// flow to reverse decrements when a later basket line fails.
	IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error

	// AdjustStock applies a signed delta outside a sale. Negative deltas are
	// guarded the same way so a correction can never drive quantity below zero.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Preload("Supplier").First(&m, "id = ?", id).Error
	return &m, err
}

func (r *medicineRepo) List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error) {
	var medicines []model.Medicine
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Medicine{})

	// Active filter: "false" = inactive, "all" = everything, default active only
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Search != "" {
		q = q.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Supplier").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&medicines).Error
	return medicines, total, err
}

func (r *medicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Medicine{}).Where("id = ?", id).Update("active", false).Error
}

func (r *medicineRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Medicine{}).Where("id = ?", id).Update("active", true).Error
}

func (r *medicineRepo) ListLowStock(ctx context.Context, threshold int) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).
		Where("active = true AND quantity <= GREATEST(min_quantity, ?)", threshold).
		Order("quantity ASC").
		Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) ListExpiringWithin(ctx context.Context, days int) ([]model.Medicine, error) {
	var medicines []model.Medicine
	// date + integer is day arithmetic in Postgres
	err := r.db.WithContext(ctx).
		Where("active = true AND expiry_date <= CURRENT_DATE + ?", days).
		Order("expiry_date ASC").
		Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).Where("active = true").Count(&n).Error
	return n, err
}

func (r *medicineRepo) CountLowStock(ctx context.Context, threshold int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).
		Where("active = true AND quantity <= GREATEST(min_quantity, ?)", threshold).
		Count(&n).Error
	return n, err
}

func (r *medicineRepo) CountExpiringWithin(ctx context.Context, days int) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).
		Where("active = true AND expiry_date <= CURRENT_DATE + ?", days).
		Count(&n).Error
	return n, err
}

// StockValue sums quantity * selling_price over the active catalog.
func (r *medicineRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var row struct{ Value decimal.Decimal }
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).
		Select("COALESCE(SUM(quantity * selling_price), 0) AS value").
		Where("active = true").
		Scan(&row).Error
	return row.Value, err
}

func (r *medicineRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := tx.First(&m, "id = ?", id).Error
	return &m, err
}

func (r *medicineRepo) DecrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) (bool, error) {
	res := tx.Model(&model.Medicine{}).
		Where("id = ? AND active = true AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *medicineRepo) IncrementStockTx(tx *gorm.DB, id uuid.UUID, qty int) error {
	return tx.Model(&model.Medicine{}).Where("id = ?", id).
		Update("quantity", gorm.Expr("quantity + ?", qty)).Error
}

func (r *medicineRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Medicine{}).
		Where("id = ? AND active = true AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *medicineRepo) DB() *gorm.DB { return r.db }
