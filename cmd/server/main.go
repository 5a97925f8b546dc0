// Package main is the entry point for the catalog service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	appauditlog "github.com/mutugading/catalog-service/internal/application/auditlog"
	appcategory "github.com/mutugading/catalog-service/internal/application/category"
	appmanufacturer "github.com/mutugading/catalog-service/internal/application/manufacturer"
	apppricing "github.com/mutugading/catalog-service/internal/application/pricing"
	appproduct "github.com/mutugading/catalog-service/internal/application/product"
	appsupplier "github.com/mutugading/catalog-service/internal/application/supplier"
	appupload "github.com/mutugading/catalog-service/internal/application/upload"
	"github.com/mutugading/catalog-service/internal/domain/event"
	"github.com/mutugading/catalog-service/internal/infrastructure/audit"
	"github.com/mutugading/catalog-service/internal/infrastructure/config"
	"github.com/mutugading/catalog-service/internal/infrastructure/eventbus"
	"github.com/mutugading/catalog-service/internal/infrastructure/postgres"
	"github.com/mutugading/catalog-service/internal/infrastructure/storage"
	"github.com/mutugading/catalog-service/internal/infrastructure/tracing"
	"github.com/mutugading/catalog-service/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Service failed")
	}
}

// Handlers aggregates every application use case. Delivery layers (HTTP,
// gRPC, jobs) receive this struct and bind their routes to it.
type Handlers struct {
	CategoryCreate *appcategory.CreateHandler
	CategoryUpdate *appcategory.UpdateHandler
	CategoryDelete *appcategory.DeleteHandler
	CategoryGet    *appcategory.GetHandler
	CategoryList   *appcategory.ListHandler
	CategoryExport *appcategory.ExportHandler

	ProductCreate *appproduct.CreateHandler
	ProductUpdate *appproduct.UpdateHandler
	ProductDelete *appproduct.DeleteHandler
	ProductGet    *appproduct.GetHandler
	ProductList   *appproduct.ListHandler
	ProductExport *appproduct.ExportHandler

	ManufacturerCreate *appmanufacturer.CreateHandler
	ManufacturerUpdate *appmanufacturer.UpdateHandler
	ManufacturerDelete *appmanufacturer.DeleteHandler
	ManufacturerGet    *appmanufacturer.GetHandler
	ManufacturerList   *appmanufacturer.ListHandler

	SupplierCreate *appsupplier.CreateHandler
	SupplierUpdate *appsupplier.UpdateHandler
	SupplierDelete *appsupplier.DeleteHandler
	SupplierGet    *appsupplier.GetHandler
	SupplierList   *appsupplier.ListHandler

	PricingCreate *apppricing.CreateHandler
	PricingUpdate *apppricing.UpdateHandler
	PricingDelete *apppricing.DeleteHandler
	PricingGet    *apppricing.GetHandler
	PricingList   *apppricing.ListHandler

	UploadCreate *appupload.CreateHandler
	UploadDelete *appupload.DeleteHandler
	UploadGet    *appupload.GetHandler
	UploadList   *appupload.ListHandler

	AuditLogList *appauditlog.ListHandler
}

// run contains the main application logic, separated for cleaner error
// handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger.Setup(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.PrettyJSON)

	log.Info().
		Str("service", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Env).
		Msg("Starting catalog service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupTracing := setupTracing(ctx, cfg)
	defer cleanupTracing()

	db, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database connection")
		}
	}()

	store, err := storage.NewMinIOStorage(&cfg.Storage)
	if err != nil {
		return err
	}

	bus, closeBus, err := setupEventBus(cfg)
	if err != nil {
		return err
	}
	defer closeBus()

	_ = buildHandlers(db, store, bus)

	// Delivery wiring (HTTP/gRPC routing) is intentionally out of scope
	// here; the process stays alive until it receives a shutdown signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")
	return nil
}

// buildHandlers wires the full application object graph.
func buildHandlers(db *postgres.DB, store *storage.MinIOStorage, bus event.Bus) *Handlers {
	uow := postgres.NewUnitOfWork(db)
	auditor := audit.NewPostgresLogger(db)

	categoryRepo := postgres.NewCategoryRepository(db)
	productRepo := postgres.NewProductRepository(db)
	manufacturerRepo := postgres.NewManufacturerRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	pricingRepo := postgres.NewPricingRepository(db)
	uploadRepo := postgres.NewUploadRepository(db)

	return &Handlers{
		CategoryCreate: appcategory.NewCreateHandler(categoryRepo, uploadRepo, uow, store, auditor, bus),
		CategoryUpdate: appcategory.NewUpdateHandler(categoryRepo, uploadRepo, uow, store, auditor, bus),
		CategoryDelete: appcategory.NewDeleteHandler(categoryRepo, uow, store, auditor, bus),
		CategoryGet:    appcategory.NewGetHandler(categoryRepo, store),
		CategoryList:   appcategory.NewListHandler(categoryRepo, store),
		CategoryExport: appcategory.NewExportHandler(categoryRepo, store),

		ProductCreate: appproduct.NewCreateHandler(productRepo, categoryRepo, manufacturerRepo, supplierRepo, uploadRepo, uow, store, auditor, bus),
		ProductUpdate: appproduct.NewUpdateHandler(productRepo, categoryRepo, manufacturerRepo, supplierRepo, uploadRepo, uow, store, auditor, bus),
		ProductDelete: appproduct.NewDeleteHandler(productRepo, uow, store, auditor, bus),
		ProductGet:    appproduct.NewGetHandler(productRepo, store),
		ProductList:   appproduct.NewListHandler(productRepo, store),
		ProductExport: appproduct.NewExportHandler(productRepo, store),

		ManufacturerCreate: appmanufacturer.NewCreateHandler(manufacturerRepo, uow, auditor, bus),
		ManufacturerUpdate: appmanufacturer.NewUpdateHandler(manufacturerRepo, uow, auditor, bus),
		ManufacturerDelete: appmanufacturer.NewDeleteHandler(manufacturerRepo, uow, auditor, bus),
		ManufacturerGet:    appmanufacturer.NewGetHandler(manufacturerRepo),
		ManufacturerList:   appmanufacturer.NewListHandler(manufacturerRepo),

		SupplierCreate: appsupplier.NewCreateHandler(supplierRepo, uow, auditor, bus),
		SupplierUpdate: appsupplier.NewUpdateHandler(supplierRepo, uow, auditor, bus),
		SupplierDelete: appsupplier.NewDeleteHandler(supplierRepo, uow, auditor, bus),
		SupplierGet:    appsupplier.NewGetHandler(supplierRepo),
		SupplierList:   appsupplier.NewListHandler(supplierRepo),

		PricingCreate: apppricing.NewCreateHandler(pricingRepo, categoryRepo, uow, auditor, bus),
		PricingUpdate: apppricing.NewUpdateHandler(pricingRepo, uow, auditor, bus),
		PricingDelete: apppricing.NewDeleteHandler(pricingRepo, uow, auditor, bus),
		PricingGet:    apppricing.NewGetHandler(pricingRepo),
		PricingList:   apppricing.NewListHandler(pricingRepo),

		UploadCreate: appupload.NewCreateHandler(uploadRepo, uow, store, auditor, bus),
		UploadDelete: appupload.NewDeleteHandler(uploadRepo, uow, store, auditor, bus),
		UploadGet:    appupload.NewGetHandler(uploadRepo, store),
		UploadList:   appupload.NewListHandler(uploadRepo, store),

		AuditLogList: appauditlog.NewListHandler(auditor),
	}
}

// setupEventBus selects the bus implementation from config.
func setupEventBus(cfg *config.Config) (event.Bus, func(), error) {
	switch cfg.EventBus.Driver {
	case "amqp":
		bus, err := eventbus.NewAMQPBus(&cfg.AMQP, cfg.EventBus.Channel)
		if err != nil {
			return nil, nil, err
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close AMQP event bus")
			}
		}, nil
	default:
		bus, err := eventbus.NewRedisBus(&cfg.Redis, cfg.EventBus.Channel)
		if err != nil {
			return nil, nil, err
		}
		return bus, func() {
			if err := bus.Close(); err != nil {
				log.Warn().Err(err).Msg("Failed to close Redis event bus")
			}
		}, nil
	}
}

// setupTracing initializes tracing and returns a cleanup function.
func setupTracing(ctx context.Context, cfg *config.Config) func() {
	provider, err := tracing.NewProvider(ctx, &cfg.Tracing, cfg.App.Env, cfg.App.Version)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to setup tracing, continuing without it")
		return func() {}
	}

	return func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to shutdown tracing provider")
		}
	}
}
