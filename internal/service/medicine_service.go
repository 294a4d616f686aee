package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/apierror"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MedicineService covers catalog CRUD plus the non-sale stock adjustment
// paths (restock, manual correction). Sale decrements live in SaleService.
type MedicineService interface {
	Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	List(ctx context.Context, filter dto.MedicineFilter) (*dto.MedicineListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MedicineResponse, error)
	ListLowStock(ctx context.Context) ([]dto.MedicineResponse, error)
	ListExpiring(ctx context.Context, days int) ([]dto.MedicineResponse, error)
	ListMovements(ctx context.Context, medicineID uuid.UUID, limit int) ([]dto.StockMovementResponse, error)
}

type medicineService struct {
	repo         repository.MedicineRepository
	movementRepo repository.StockMovementRepository
	supplierRepo repository.SupplierRepository
	lowStockAt   int
}

func NewMedicineService(
	repo repository.MedicineRepository,
	movementRepo repository.StockMovementRepository,
	supplierRepo repository.SupplierRepository,
	lowStockThreshold int,
) MedicineService {
	return &medicineService{
		repo:         repo,
		movementRepo: movementRepo,
		supplierRepo: supplierRepo,
		lowStockAt:   lowStockThreshold,
	}
}

func (s *medicineService) Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry_date: %w", err)
	}

	var supplierID *uuid.UUID
	if req.SupplierID != nil {
		id, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		if _, err := s.supplierRepo.FindByID(ctx, id); err != nil {
			return nil, &apierror.NotFoundError{Resource: "supplier", ID: id}
		}
		supplierID = &id
	}

	m := &model.Medicine{
		Name:          req.Name,
		Category:      req.Category,
		BatchNumber:   req.BatchNumber,
		ExpiryDate:    expiry,
		Quantity:      req.Quantity,
		MinQuantity:   s.lowStockAt,
		PurchasePrice: req.PurchasePrice,
		SellingPrice:  req.SellingPrice,
		SupplierID:    supplierID,
		Active:        true,
	}
	if req.MinQuantity != nil {
		m.MinQuantity = *req.MinQuantity
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	// Opening stock is a movement too, so the ledger starts auditable.
	if m.Quantity > 0 {
		err := s.movementRepo.Create(ctx, &model.StockMovement{
			MedicineID: m.ID,
			Type:       "restock",
			Delta:      m.Quantity,
			QtyBefore:  0,
			QtyAfter:   m.Quantity,
			Reason:     "initial stock",
		})
		if err != nil {
			log.Warn().Err(err).
				Str("medicine_id", m.ID.String()).
				Msg("opening stock movement not recorded")
		}
	}

	return medicineToResponse(m), nil
}

func (s *medicineService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Resource: "medicine", ID: id}
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) List(ctx context.Context, filter dto.MedicineFilter) (*dto.MedicineListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	medicines, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		items = append(items, *medicineToResponse(&medicines[i]))
	}
	return &dto.MedicineListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *medicineService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Resource: "medicine", ID: id}
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Category != "" {
		m.Category = req.Category
	}
	if req.BatchNumber != "" {
		m.BatchNumber = req.BatchNumber
	}
	if req.ExpiryDate != "" {
		expiry, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("invalid expiry_date: %w", err)
		}
		m.ExpiryDate = expiry
	}
	if req.MinQuantity != nil {
		m.MinQuantity = *req.MinQuantity
	}
	if req.PurchasePrice != nil {
		m.PurchasePrice = *req.PurchasePrice
	}
	if req.SellingPrice != nil {
		// Past sale lines keep their snapshotted price; only future sales see this.
		m.SellingPrice = *req.SellingPrice
	}
	if req.SupplierID != nil {
		sid, err := uuid.Parse(*req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		if _, err := s.supplierRepo.FindByID(ctx, sid); err != nil {
			return nil, &apierror.NotFoundError{Resource: "supplier", ID: sid}
		}
		m.SupplierID = &sid
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return medicineToResponse(m), nil
}

func (s *medicineService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return &apierror.NotFoundError{Resource: "medicine", ID: id}
	}
	// Soft delete: historical sale lines keep their snapshots either way,
	// but the row stays for movement history and reactivation.
	return s.repo.SoftDelete(ctx, id)
}

func (s *medicineService) Reactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivate(ctx, id)
}

func (s *medicineService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MedicineResponse, error) {
	if req.Delta == 0 {
		return nil, errors.New("delta must be non-zero")
	}

	before, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &apierror.NotFoundError{Resource: "medicine", ID: id}
	}

	ok, err := s.repo.AdjustStock(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &apierror.InsufficientStockError{
			MedicineID:   before.ID,
			MedicineName: before.Name,
			Requested:    -req.Delta,
			Available:    before.Quantity,
		}
	}

	movType := "restock"
	if req.Delta < 0 {
		movType = "adjustment"
	}
	err = s.movementRepo.Create(ctx, &model.StockMovement{
		MedicineID: id,
		Type:       movType,
		Delta:      req.Delta,
		QtyBefore:  before.Quantity,
		QtyAfter:   before.Quantity + req.Delta,
		Reason:     req.Reason,
	})
	if err != nil {
		// Adjustments must stay auditable, reverse the stock change.
		if _, revErr := s.repo.AdjustStock(ctx, id, -req.Delta); revErr != nil {
			log.Error().Err(revErr).
				Str("medicine_id", id.String()).
				Msg("failed to reverse stock adjustment after movement write error")
		}
		return nil, fmt.Errorf("%w: record stock movement: %v", apierror.ErrUnavailable, err)
	}

	after, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return medicineToResponse(after), nil
}

func (s *medicineService) ListLowStock(ctx context.Context) ([]dto.MedicineResponse, error) {
	medicines, err := s.repo.ListLowStock(ctx, s.lowStockAt)
	if err != nil {
		return nil, err
	}
	return medicinesToResponses(medicines), nil
}

func (s *medicineService) ListExpiring(ctx context.Context, days int) ([]dto.MedicineResponse, error) {
	if days < 1 {
		days = 30
	}
	medicines, err := s.repo.ListExpiringWithin(ctx, days)
	if err != nil {
		return nil, err
	}
	return medicinesToResponses(medicines), nil
}

func (s *medicineService) ListMovements(ctx context.Context, medicineID uuid.UUID, limit int) ([]dto.StockMovementResponse, error) {
	movements, err := s.movementRepo.ListByMedicine(ctx, medicineID, limit)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.StockMovementResponse, 0, len(movements))
	for _, mv := range movements {
		item := dto.StockMovementResponse{
			ID:         mv.ID.String(),
			MedicineID: mv.MedicineID.String(),
			Type:       mv.Type,
			Delta:      mv.Delta,
			QtyBefore:  mv.QtyBefore,
			QtyAfter:   mv.QtyAfter,
			Reason:     mv.Reason,
			CreatedAt:  mv.CreatedAt.Format(time.RFC3339),
		}
		if mv.SaleID != nil {
			sid := mv.SaleID.String()
			item.SaleID = &sid
		}
		if mv.Medicine != nil {
			item.MedicineName = mv.Medicine.Name
		}
		resp = append(resp, item)
	}
	return resp, nil
}

func medicinesToResponses(medicines []model.Medicine) []dto.MedicineResponse {
	resp := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		resp = append(resp, *medicineToResponse(&medicines[i]))
	}
	return resp
}

func medicineToResponse(m *model.Medicine) *dto.MedicineResponse {
	resp := &dto.MedicineResponse{
		ID:            m.ID.String(),
		Name:          m.Name,
		Category:      m.Category,
		BatchNumber:   m.BatchNumber,
		ExpiryDate:    m.ExpiryDate.Format("2006-01-02"),
		Quantity:      m.Quantity,
		MinQuantity:   m.MinQuantity,
		PurchasePrice: m.PurchasePrice,
		SellingPrice:  m.SellingPrice,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.SupplierID != nil {
		sid := m.SupplierID.String()
		resp.SupplierID = &sid
	}
	if m.Supplier != nil {
		resp.SupplierName = &m.Supplier.Name
	}
	return resp
}
