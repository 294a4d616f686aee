package service

import (
	"context"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"
)

// expiringSoonWindow is the dashboard's definition of "expiring soon".
const expiringSoonWindow = 30

// ReportService produces the read-only dashboard aggregates. Everything here
// is derived from data the sale and catalog flows already persist.
type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
}

type reportService struct {
	medicineRepo repository.MedicineRepository
	saleRepo     repository.SaleRepository
	supplierRepo repository.SupplierRepository
	lowStockAt   int
}

func NewReportService(
	medicineRepo repository.MedicineRepository,
	saleRepo repository.SaleRepository,
	supplierRepo repository.SupplierRepository,
	lowStockThreshold int,
) ReportService {
	return &reportService{
		medicineRepo: medicineRepo,
		saleRepo:     saleRepo,
		supplierRepo: supplierRepo,
		lowStockAt:   lowStockThreshold,
	}
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	medicineCount, err := s.medicineRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	stockValue, err := s.medicineRepo.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	todayTotal, todayCount, err := s.saleRepo.DailyTotal(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	lowStock, err := s.medicineRepo.CountLowStock(ctx, s.lowStockAt)
	if err != nil {
		return nil, err
	}
	expiring, err := s.medicineRepo.CountExpiringWithin(ctx, expiringSoonWindow)
	if err != nil {
		return nil, err
	}
	supplierCount, err := s.supplierRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SummaryResponse{
		MedicineCount:   medicineCount,
		StockValue:      stockValue,
		TodaySalesTotal: todayTotal,
		TodaySalesCount: todayCount,
		LowStockCount:   lowStock,
		ExpiringSoon:    expiring,
		SupplierCount:   supplierCount,
	}, nil
}
