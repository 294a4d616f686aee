package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/dto"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_AggregatesInventoryAndSales(t *testing.T) {
	medicineRepo := newStubMedicineRepo()
	saleRepo := newStubSaleRepo()
	supplierRepo := newStubSupplierRepo()

	// Catalog: one healthy, one low on stock, one expiring soon, one inactive.
	seedMedicine(medicineRepo, "Paracetamol 500mg", 100, 2.00) // value 200
	seedMedicine(medicineRepo, "Bandages", 3, 0.50)            // low stock, value 1.50
	expiring := seedMedicine(medicineRepo, "Probiotic", 20, 5.00)
	expiring.ExpiryDate = time.Now().AddDate(0, 0, 7) // value 100
	inactive := seedMedicine(medicineRepo, "Recalled lotion", 50, 9.99)
	inactive.Active = false

	require.NoError(t, supplierRepo.Create(context.Background(), &model.Supplier{Name: "MedSupply", Active: true}))

	saleSvc := service.NewSaleService(saleRepo, medicineRepo, &stubMovementRepo{}, nil, nil)
	reportSvc := service.NewReportService(medicineRepo, saleRepo, supplierRepo, 10)

	// One sale today
	first := firstActiveMedicine(medicineRepo)
	_, err := saleSvc.CreateSale(context.Background(), uuid.New(), dto.CreateSaleRequest{
		Lines: []dto.SaleLineRequest{{MedicineID: first.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	summary, err := reportSvc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), summary.MedicineCount)
	assert.Equal(t, int64(1), summary.SupplierCount)
	assert.Equal(t, int64(1), summary.LowStockCount)
	assert.Equal(t, int64(1), summary.ExpiringSoon)
	assert.Equal(t, int64(1), summary.TodaySalesCount)
	assert.True(t, summary.TodaySalesTotal.IsPositive())
	assert.True(t, summary.StockValue.IsPositive())
}

func firstActiveMedicine(repo *stubMedicineRepo) *model.Medicine {
	for _, m := range repo.medicines {
		if m.Active {
			return m
		}
	}
	return nil
}
