package router

import (
	"time"

	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/config"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/handler"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/middleware"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/model"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/repository"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/service"
	"github.com/RaunaKSharma-err/Pharmacy-Management-System/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher, injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	medicineSvc := service.NewMedicineService(medicineRepo, movementRepo, supplierRepo, cfg.LowStockThreshold)
	saleSvc := service.NewSaleService(saleRepo, medicineRepo, movementRepo, dispatcher, rdb)
	supplierSvc := service.NewSupplierService(supplierRepo)
	reportSvc := service.NewReportService(medicineRepo, saleRepo, supplierRepo, cfg.LowStockThreshold)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	medicinesH := handler.NewMedicinesHandler(medicineSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	reportsH := handler.NewReportsHandler(reportSvc)
	usersH := handler.NewUsersHandler(authSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	staff := middleware.RequireRole(model.RoleStaff, model.RoleAdmin)
	admin := middleware.RequireRole(model.RoleAdmin)

	v1 := r.Group("/api/v1", jwtMW)
	{
		v1.GET("/auth/me", authH.Me)

		// Sales: any authenticated staff member can sell and consult history
		v1.POST("/sales", staff, salesH.CreateSale)
		v1.GET("/sales", staff, salesH.ListSales)
		v1.GET("/sales/daily-total", staff, salesH.DailyTotal)
		v1.GET("/sales/:id", staff, salesH.GetByID)

		// Medicines: reads and stock adjustments for staff, writes admin-only
		v1.GET("/medicines", staff, medicinesH.List)
		v1.GET("/medicines/low-stock", staff, medicinesH.LowStock)
		v1.GET("/medicines/expiring", staff, medicinesH.Expiring)
		v1.GET("/medicines/:id", staff, medicinesH.GetByID)
		v1.GET("/medicines/:id/movements", staff, medicinesH.Movements)
		v1.PATCH("/medicines/:id/stock", staff, medicinesH.AdjustStock)
		meds := v1.Group("/medicines", admin)
		{
			meds.POST("", medicinesH.Create)
			meds.PUT("/:id", medicinesH.Update)
			meds.DELETE("/:id", medicinesH.Deactivate)
			meds.PATCH("/:id/reactivate", medicinesH.Reactivate)
		}

		// Suppliers: staff can read, writes are admin-only
		v1.GET("/suppliers", staff, suppliersH.List)
		v1.GET("/suppliers/:id", staff, suppliersH.GetByID)
		sup := v1.Group("/suppliers", admin)
		{
			sup.POST("", suppliersH.Create)
			sup.PUT("/:id", suppliersH.Update)
			sup.DELETE("/:id", suppliersH.Delete)
		}

		// Reports
		v1.GET("/reports/summary", staff, reportsH.Summary)

		// User management: admin only
		users := v1.Group("/users", admin)
		{
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.PATCH("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI is only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
