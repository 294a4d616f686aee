package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/apierror"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SaleService interface {
	CreateSale(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	DailyTotal(ctx context.Context) (*dto.DailyTotalResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	medicineRepo repository.MedicineRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
	rdb          *redis.Client
}

func NewSaleService(
	repo repository.SaleRepository,
	medicineRepo repository.MedicineRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
	rdb *redis.Client,
) SaleService {
	return &saleService{
		repo:         repo,
		medicineRepo: medicineRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
		rdb:          rdb,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

const dailyCacheTTL = 60 * time.Second

// basketLine is a validated, coalesced request line.
type basketLine struct {
	medicineID uuid.UUID
	quantity   int
}

// ── CreateSale ────────────────────────────────────────────────────────────────
// The one flow where getting it wrong corrupts data, so the rules are strict:
//   1. Validate and coalesce the basket (duplicate medicine ids are summed
//      into one line, so a single request never races against itself).
//   2. Sort lines by ascending medicine id, a fixed lock order across
//      concurrent baskets that overlap.
//   3. In one DB transaction, per line: conditional "decrement if quantity
//      sufficient" UPDATE, then re-read for the name/price snapshot and the
//      movement record. A line that cannot decrement aborts the whole basket;
//      earlier decrements are explicitly reversed before returning, and the
//      surrounding transaction discards everything on error as well.
//   4. The sale row and its line snapshots commit together with the
//      decrements: sale persisted ⇔ stock decremented.
//   5. Post-commit: enqueue receipt and low-stock jobs (best effort).

func (s *saleService) CreateSale(ctx context.Context, userID uuid.UUID, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	lines, err := coalesceBasket(req.Lines)
	if err != nil {
		return nil, err
	}

	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		type appliedLine struct {
			line      model.SaleLine
			qtyBefore int
		}
		var applied []appliedLine

		// Reverses the decrements applied so far. Inside a live transaction
		// the rollback would discard them anyway; doing it explicitly keeps
		// the nil-tx unit-test path honest and covers storage engines where
		// the conditional UPDATE autocommits.
		compensate := func() {
			for _, a := range applied {
				_ = s.medicineRepo.IncrementStockTx(tx, a.line.MedicineID, a.line.Quantity)
			}
		}

		total := decimal.Zero
		for _, l := range lines {
			ok, err := s.medicineRepo.DecrementStockTx(tx, l.medicineID, l.quantity)
			if err != nil {
				compensate()
				return fmt.Errorf("%w: decrement stock: %v", apierror.ErrUnavailable, err)
			}
			if !ok {
				// Re-read to tell an unknown medicine from a shortfall.
				m, ferr := s.medicineRepo.FindByIDTx(tx, l.medicineID)
				compensate()
				if ferr != nil || !m.Active {
					if ferr != nil && !errors.Is(ferr, gorm.ErrRecordNotFound) {
						return fmt.Errorf("%w: read medicine: %v", apierror.ErrUnavailable, ferr)
					}
					return &apierror.NotFoundError{Resource: "medicine", ID: l.medicineID}
				}
				return &apierror.InsufficientStockError{
					MedicineID:   m.ID,
					MedicineName: m.Name,
					Requested:    l.quantity,
					Available:    m.Quantity,
				}
			}

			// Snapshot name and price as they are at the moment of sale.
			m, err := s.medicineRepo.FindByIDTx(tx, l.medicineID)
			if err != nil {
				compensate()
				return fmt.Errorf("%w: read medicine: %v", apierror.ErrUnavailable, err)
			}

			lineTotal := m.SellingPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
			total = total.Add(lineTotal)
			applied = append(applied, appliedLine{
				line: model.SaleLine{
					MedicineID:   m.ID,
					MedicineName: m.Name,
					Quantity:     l.quantity,
					UnitPrice:    m.SellingPrice,
					LineTotal:    lineTotal,
				},
				qtyBefore: m.Quantity + l.quantity,
			})
		}

		sale = model.Sale{
			TotalAmount:  total,
			CustomerName: req.CustomerName,
			CreatedBy:    userID,
		}
		for _, a := range applied {
			sale.Lines = append(sale.Lines, a.line)
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			compensate()
			return fmt.Errorf("%w: persist sale: %v", apierror.ErrUnavailable, err)
		}

		for _, a := range applied {
			saleRef := sale.ID
			mov := &model.StockMovement{
				MedicineID: a.line.MedicineID,
				Type:       "sale",
				Delta:      -a.line.Quantity,
				QtyBefore:  a.qtyBefore,
				QtyAfter:   a.qtyBefore - a.line.Quantity,
				Reason:     fmt.Sprintf("Sale %s", sale.ID),
				SaleID:     &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				compensate()
				return fmt.Errorf("%w: record movement: %v", apierror.ErrUnavailable, err)
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	s.invalidateDailyCache(ctx)

	// Async jobs are best effort and never fail a committed sale.
	if s.dispatcher != nil {
		ids := make([]string, 0, len(lines))
		for _, l := range lines {
			ids = append(ids, l.medicineID.String())
		}
		_ = s.dispatcher.EnqueueLowStockCheck(ctx, worker.LowStockJobPayload{MedicineIDs: ids})

		email := ""
		if req.CustomerEmail != nil {
			email = *req.CustomerEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, worker.ReceiptJobPayload{
			SaleID:        sale.ID.String(),
			CustomerEmail: email,
		})
	}

	return saleToResponse(&sale), nil
}

// coalesceBasket validates the request lines and merges duplicate medicine
// ids into single lines with summed quantities, returning them in ascending
// medicine-id order.
func coalesceBasket(reqLines []dto.SaleLineRequest) ([]basketLine, error) {
	if len(reqLines) == 0 {
		return nil, fmt.Errorf("%w: basket is empty", apierror.ErrInvalidBasket)
	}

	byID := make(map[uuid.UUID]int, len(reqLines))
	for _, rl := range reqLines {
		if rl.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apierror.ErrInvalidBasket)
		}
		id, err := uuid.Parse(rl.MedicineID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid medicine id %q", apierror.ErrInvalidBasket, rl.MedicineID)
		}
		byID[id] += rl.Quantity
	}

	lines := make([]basketLine, 0, len(byID))
	for id, qty := range byID {
		lines = append(lines, basketLine{medicineID: id, quantity: qty})
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].medicineID.String() < lines[j].medicineID.String()
	})
	return lines, nil
}

func (s *saleService) GetSale(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apierror.NotFoundError{Resource: "sale", ID: id}
		}
		return nil, fmt.Errorf("%w: find sale: %v", apierror.ErrUnavailable, err)
	}
	return saleToResponse(sale), nil
}

// ListSales returns a paginated list filtered by date range.
func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: list sales: %v", apierror.ErrUnavailable, err)
	}
	items := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		items = append(items, *saleToResponse(&sales[i]))
	}
	return &dto.SaleListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// DailyTotal aggregates today's sales. The result is cached briefly in Redis
// since the dashboard polls it.
func (s *saleService) DailyTotal(ctx context.Context) (*dto.DailyTotalResponse, error) {
	today := time.Now()
	key := dailyCacheKey(today)

	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.DailyTotalResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	total, count, err := s.repo.DailyTotal(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%w: daily total: %v", apierror.ErrUnavailable, err)
	}
	resp := &dto.DailyTotalResponse{
		Total: total,
		Count: count,
		Date:  today.Format("2006-01-02"),
	}

	if s.rdb != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, key, data, dailyCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *saleService) invalidateDailyCache(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, dailyCacheKey(time.Now())).Err()
	}
}

func dailyCacheKey(day time.Time) string {
	return "sales:daily:" + day.Format("2006-01-02")
}

func saleToResponse(s *model.Sale) *dto.SaleResponse {
	lines := make([]dto.SaleLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, dto.SaleLineResponse{
			MedicineID:   l.MedicineID.String(),
			MedicineName: l.MedicineName,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			TotalPrice:   l.LineTotal,
		})
	}
	cashierName := ""
	if s.Cashier != nil {
		cashierName = s.Cashier.Name
	}
	return &dto.SaleResponse{
		ID:           s.ID.String(),
		Lines:        lines,
		TotalAmount:  s.TotalAmount,
		CustomerName: s.CustomerName,
		CreatedBy:    s.CreatedBy.String(),
		CashierName:  cashierName,
		CreatedAt:    s.CreatedAt.Format(time.RFC3339),
	}
}
