package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"warehouse/internal/adapters/out/carrier"
	"warehouse/internal/adapters/out/kafka"
	"warehouse/internal/adapters/out/postgres"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/services"
	"warehouse/internal/core/ports"
	"warehouse/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  *kafka.EventPublisher
	carrier    ports.CarrierService
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	publisher, err := kafka.NewEventPublisher([]string{config.KafkaHost}, config.KafkaOrderTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		carrier:    carrier.NewStubCarrierService(config.CarrierLabelBaseURL),
		logger:     slog.New(slog.NewJSONHandler(os.Stdout, nil)),
	}, nil
}

// Close releases broker connections. Call on shutdown after the jobs and
// the HTTP server have stopped.
func (c *CompositionRoot) Close() {
	c.publisher.Close()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAllocateOrderCommandHandler() commands.AllocateOrderCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAllocateOrderCommandHandler(f, services.NewAllocationPlanner(), c.publisher)
}

func (c *CompositionRoot) CreateDeallocateOrderCommandHandler() commands.DeallocateOrderCommandHandler {
	var f commands.AllocationUoWFactory = FuncAllocationUoWFactory(func() commands.AllocationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeallocateOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.CancelUoWFactory = FuncCancelUoWFactory(func() commands.CancelUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateHoldOrderCommandHandler() commands.HoldOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewHoldOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReleaseOrderCommandHandler() commands.ReleaseOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleaseOrderCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGeneratePickTasksCommandHandler() commands.GeneratePickTasksCommandHandler {
	var f commands.PickUoWFactory = FuncPickUoWFactory(func() commands.PickUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGeneratePickTasksCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignPickTaskCommandHandler() commands.AssignPickTaskCommandHandler {
	var f commands.PickUoWFactory = FuncPickUoWFactory(func() commands.PickUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignPickTaskCommandHandler(f)
}

func (c *CompositionRoot) CreatePickItemCommandHandler() commands.PickItemCommandHandler {
	var f commands.PickUoWFactory = FuncPickUoWFactory(func() commands.PickUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickItemCommandHandler(f)
}

func (c *CompositionRoot) CreateCompletePickTaskCommandHandler() commands.CompletePickTaskCommandHandler {
	var f commands.PickUoWFactory = FuncPickUoWFactory(func() commands.PickUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePickTaskCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGeneratePackTaskCommandHandler() commands.GeneratePackTaskCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGeneratePackTaskCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenCartonCommandHandler() commands.OpenCartonCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenCartonCommandHandler(f)
}

func (c *CompositionRoot) CreatePackItemCommandHandler() commands.PackItemCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPackItemCommandHandler(f)
}

func (c *CompositionRoot) CreateDeclarePackVarianceCommandHandler() commands.DeclarePackVarianceCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclarePackVarianceCommandHandler(f)
}

func (c *CompositionRoot) CreateGenerateShippingLabelCommandHandler() commands.GenerateShippingLabelCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewGenerateShippingLabelCommandHandler(f, c.carrier)
}

func (c *CompositionRoot) CreateCompletePackTaskCommandHandler() commands.CompletePackTaskCommandHandler {
	var f commands.PackUoWFactory = FuncPackUoWFactory(func() commands.PackUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCompletePackTaskCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateDeliveryStatusCommandHandler() commands.UpdateDeliveryStatusCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDeliveryStatusCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCheckAllocationAvailabilityQueryHandler() queries.CheckAllocationAvailabilityQueryHandler {
	return queries.NewCheckAllocationAvailabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveOrdersQueryHandler() queries.GetActiveOrdersQueryHandler {
	return queries.NewGetActiveOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.uowFactory, c.CreateAllocateOrderCommandHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAllocationUoWFactory func() commands.AllocationUoW

func (f FuncAllocationUoWFactory) Create() commands.AllocationUoW {
	return f()
}

type FuncCancelUoWFactory func() commands.CancelUoW

func (f FuncCancelUoWFactory) Create() commands.CancelUoW {
	return f()
}

type FuncPickUoWFactory func() commands.PickUoW

func (f FuncPickUoWFactory) Create() commands.PickUoW {
	return f()
}

type FuncPackUoWFactory func() commands.PackUoW

func (f FuncPackUoWFactory) Create() commands.PackUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
