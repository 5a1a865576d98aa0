package cmd

import (
	"log/slog"

	"bakery/internal/adapters/out/notifier"
	"bakery/internal/adapters/out/postgres"
	"bakery/internal/core/application/usecases/commands"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/ports"
	"bakery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  notifier.NewSlogEventPublisher(logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateReassignDeliveryCommandHandler() commands.ReassignDeliveryCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReassignDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAssignPendingDeliveryCommandHandler() commands.AssignPendingDeliveryCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPendingDeliveryCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateEarnPointsCommandHandler() commands.EarnPointsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEarnPointsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateRedeemPointsCommandHandler() commands.RedeemPointsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRedeemPointsCommandHandler(f)
}

func (c *CompositionRoot) CreateRefundPointsCommandHandler() commands.RefundPointsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRefundPointsCommandHandler(f)
}

func (c *CompositionRoot) CreateExpirePointsCommandHandler() commands.ExpirePointsCommandHandler {
	var f commands.LedgerUoWFactory = FuncLedgerUoWFactory(func() commands.LedgerUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpirePointsCommandHandler(f, c.logger)
}

func (c *CompositionRoot) CreateGetAgentWorkloadQueryHandler() queries.GetAgentWorkloadQueryHandler {
	return queries.NewGetAgentWorkloadQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserBalanceQueryHandler() queries.GetUserBalanceQueryHandler {
	return queries.NewGetUserBalanceQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateAssignPendingDeliveryCommandHandler(),
		c.CreateExpirePointsCommandHandler(),
		c.logger,
	)
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncLedgerUoWFactory func() commands.LedgerUoW

func (f FuncLedgerUoWFactory) Create() commands.LedgerUoW {
	return f()
}
