package cmd

import (
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/activitylog"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/backorderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/lockmgr"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/core/ports"

	"log/slog"

	"gorm.io/gorm"
)

// CompositionRoot wires use case handlers to their infrastructure.
// Command handlers get transaction-scoped unit of work factories;
// query handlers read from the plain connection.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	activity    ports.ActivityLogger
	lockTimeout time.Duration
	logger      *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		activity:    activitylog.NewGormActivityLogger(gormDB, logger),
		lockTimeout: time.Duration(configs.LockTimeoutMs) * time.Millisecond,
		logger:      logger,
	}
}

func (c *CompositionRoot) CreateRecordScanCommandHandler() commands.RecordScanCommandHandler {
	var f commands.ScanUoWFactory = FuncScanUoWFactory(func() commands.ScanUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordScanCommandHandler(f, c.activity, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	var f commands.CompletionUoWFactory = FuncCompletionUoWFactory(func() commands.CompletionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompleteOrderCommandHandler(f, c.activity, c.lockTimeout, c.logger)
}

func (c *CompositionRoot) CreateMarkPackageLoadedCommandHandler() commands.MarkPackageLoadedCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkPackageLoadedCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateReconcilePackageTotalsCommandHandler() commands.ReconcilePackageTotalsCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReconcilePackageTotalsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetItemQuantitiesQueryHandler() queries.GetItemQuantitiesQueryHandler {
	return queries.NewGetItemQuantitiesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOrdersQueryHandler() queries.GetPendingOrdersQueryHandler {
	return queries.NewGetPendingOrdersQueryHandler(c.gormDB)
}

// CreateCheckCompletionLockQueryHandler builds the lock probe on the
// plain connection: the probe must observe locks held by other
// sessions, so it cannot run on a unit of work transaction.
func (c *CompositionRoot) CreateCheckCompletionLockQueryHandler() queries.CheckCompletionLockQueryHandler {
	return queries.NewCheckCompletionLockQueryHandler(lockmgr.NewGormLockManager(c.gormDB))
}

func (c *CompositionRoot) CreateGetBackorderSummaryQueryHandler() queries.GetBackorderSummaryQueryHandler {
	return queries.NewGetBackorderSummaryQueryHandler(backorderrepo.NewGormBackorderRepository(c.gormDB))
}

type FuncScanUoWFactory func() commands.ScanUoW

func (f FuncScanUoWFactory) Create() commands.ScanUoW {
	return f()
}

type FuncCompletionUoWFactory func() commands.CompletionUoW

func (f FuncCompletionUoWFactory) Create() commands.CompletionUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
