package http

import (
	"net/http"

	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/order"
	"warehouse/internal/core/domain/model/picking"
	"warehouse/internal/core/domain/model/shipment"

	"github.com/labstack/echo/v4"
)

// Server exposes the fulfillment pipeline over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler          commands.CreateOrderCommandHandler
	allocateOrderHandler        commands.AllocateOrderCommandHandler
	deallocateOrderHandler      commands.DeallocateOrderCommandHandler
	cancelOrderHandler          commands.CancelOrderCommandHandler
	holdOrderHandler            commands.HoldOrderCommandHandler
	releaseOrderHandler         commands.ReleaseOrderCommandHandler
	generatePickTasksHandler    commands.GeneratePickTasksCommandHandler
	assignPickTaskHandler       commands.AssignPickTaskCommandHandler
	pickItemHandler             commands.PickItemCommandHandler
	completePickTaskHandler     commands.CompletePickTaskCommandHandler
	generatePackTaskHandler     commands.GeneratePackTaskCommandHandler
	openCartonHandler           commands.OpenCartonCommandHandler
	packItemHandler             commands.PackItemCommandHandler
	declarePackVarianceHandler  commands.DeclarePackVarianceCommandHandler
	generateLabelHandler        commands.GenerateShippingLabelCommandHandler
	completePackTaskHandler     commands.CompletePackTaskCommandHandler
	createShipmentHandler       commands.CreateShipmentCommandHandler
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	checkAvailabilityHandler queries.CheckAllocationAvailabilityQueryHandler
	getActiveOrdersHandler   queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	allocateOrderHandler commands.AllocateOrderCommandHandler,
	deallocateOrderHandler commands.DeallocateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	holdOrderHandler commands.HoldOrderCommandHandler,
	releaseOrderHandler commands.ReleaseOrderCommandHandler,
	generatePickTasksHandler commands.GeneratePickTasksCommandHandler,
	assignPickTaskHandler commands.AssignPickTaskCommandHandler,
	pickItemHandler commands.PickItemCommandHandler,
	completePickTaskHandler commands.CompletePickTaskCommandHandler,
	generatePackTaskHandler commands.GeneratePackTaskCommandHandler,
	openCartonHandler commands.OpenCartonCommandHandler,
	packItemHandler commands.PackItemCommandHandler,
	declarePackVarianceHandler commands.DeclarePackVarianceCommandHandler,
	generateLabelHandler commands.GenerateShippingLabelCommandHandler,
	completePackTaskHandler commands.CompletePackTaskCommandHandler,
	createShipmentHandler commands.CreateShipmentCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	checkAvailabilityHandler queries.CheckAllocationAvailabilityQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		allocateOrderHandler:        allocateOrderHandler,
		deallocateOrderHandler:      deallocateOrderHandler,
		cancelOrderHandler:          cancelOrderHandler,
		holdOrderHandler:            holdOrderHandler,
		releaseOrderHandler:         releaseOrderHandler,
		generatePickTasksHandler:    generatePickTasksHandler,
		assignPickTaskHandler:       assignPickTaskHandler,
		pickItemHandler:             pickItemHandler,
		completePickTaskHandler:     completePickTaskHandler,
		generatePackTaskHandler:     generatePackTaskHandler,
		openCartonHandler:           openCartonHandler,
		packItemHandler:             packItemHandler,
		declarePackVarianceHandler:  declarePackVarianceHandler,
		generateLabelHandler:        generateLabelHandler,
		completePackTaskHandler:     completePackTaskHandler,
		createShipmentHandler:       createShipmentHandler,
		updateDeliveryStatusHandler: updateDeliveryStatusHandler,
		checkAvailabilityHandler:    checkAvailabilityHandler,
		getActiveOrdersHandler:      getActiveOrdersHandler,
	}
}

// RegisterRoutes wires every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:orderId/availability", s.CheckAvailability)
	api.POST("/orders/:orderId/allocate", s.AllocateOrder)
	api.POST("/orders/:orderId/deallocate", s.DeallocateOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/hold", s.HoldOrder)
	api.POST("/orders/:orderId/release", s.ReleaseOrder)
	api.POST("/orders/:orderId/pack-task", s.GeneratePackTask)
	api.POST("/orders/:orderId/shipment", s.CreateShipment)

	api.POST("/pick-tasks", s.GeneratePickTasks)
	api.POST("/pick-tasks/:taskId/assign", s.AssignPickTask)
	api.POST("/pick-tasks/:taskId/pick", s.PickItem)
	api.POST("/pick-tasks/:taskId/complete", s.CompletePickTask)

	api.POST("/pack-tasks/:taskId/cartons", s.OpenCarton)
	api.POST("/pack-tasks/:taskId/pack", s.PackItem)
	api.POST("/pack-tasks/:taskId/variance", s.DeclarePackVariance)
	api.POST("/pack-tasks/:taskId/label", s.GenerateLabel)
	api.POST("/pack-tasks/:taskId/complete", s.CompletePackTask)

	api.POST("/shipments/:trackingNumber/delivery-status", s.UpdateDeliveryStatus)

	e.GET("/health", s.Health)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new outbound order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	tenantID, err := kernel.UUIDFromString(request.TenantID)
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}
	warehouseID, err := kernel.UUIDFromString(request.WarehouseID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse id")
	}
	policy, err := order.PolicyFromString(request.Policy)
	if err != nil {
		return errorJSON(ctx, err)
	}

	lines := make([]commands.CreateOrderLine, 0, len(request.Lines))
	for _, line := range request.Lines {
		productID, lineErr := kernel.UUIDFromString(line.ProductID)
		if lineErr != nil {
			return badRequest(ctx, "Invalid product id")
		}

		var override *order.Policy
		if line.PolicyOverride != nil {
			parsed, overrideErr := order.PolicyFromString(*line.PolicyOverride)
			if overrideErr != nil {
				return errorJSON(ctx, overrideErr)
			}
			override = &parsed
		}

		lines = append(lines, commands.CreateOrderLine{
			ProductID:      productID,
			Quantity:       line.Quantity,
			PolicyOverride: override,
		})
	}

	orderID := kernel.NewUUID()
	command, err := commands.NewCreateOrderCommand(
		orderID, tenantID, warehouseID,
		request.OrderNumber, policy, request.Priority, lines,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: orderID.String()})
}

// GetActiveOrders handles GET /api/v1/orders/active - lists every order
// still moving through the pipeline, highest priority first.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := make([]ActiveOrderResponse, len(orders))
	for i, o := range orders {
		response[i] = ActiveOrderResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			Status:      o.Status.String(),
			Policy:      o.Policy.String(),
			Priority:    o.Priority,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CheckAvailability handles GET /api/v1/orders/:orderId/availability -
// advisory stock check against current available quantities.
func (s *Server) CheckAvailability(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewCheckAllocationAvailabilityQuery(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	result, err := s.checkAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, err)
	}

	lines := make([]AvailabilityLineResponse, len(result.Lines))
	for i, line := range result.Lines {
		lines[i] = AvailabilityLineResponse{
			OrderLineID:       line.OrderLineID.String(),
			ProductID:         line.ProductID.String(),
			QuantityOrdered:   line.QuantityOrdered,
			QuantityAvailable: line.QuantityAvailable,
			CanAllocate:       line.CanAllocate(),
		}
	}

	return ctx.JSON(http.StatusOK, AvailabilityResponse{
		OrderID:          result.OrderID.String(),
		CanFullyAllocate: result.CanFullyAllocate(),
		Lines:            lines,
	})
}

// AllocateOrder handles POST /api/v1/orders/:orderId/allocate - runs the
// allocation pass for one order immediately instead of waiting for the job.
func (s *Server) AllocateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewAllocateOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.allocateOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeallocateOrder handles POST /api/v1/orders/:orderId/deallocate - releases
// every reservation the order holds and returns it to New.
func (s *Server) DeallocateOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewDeallocateOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.deallocateOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CancelOrderRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewCancelOrderCommand(orderID, request.Reason)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.cancelOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// HoldOrder handles POST /api/v1/orders/:orderId/hold - pauses fulfillment.
func (s *Server) HoldOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewHoldOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.holdOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReleaseOrder handles POST /api/v1/orders/:orderId/release - resumes a
// held order at the stage it was paused in.
func (s *Server) ReleaseOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewReleaseOrderCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.releaseOrderHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GeneratePickTasks handles POST /api/v1/pick-tasks - turns fully allocated
// orders into pick work, one SINGLE task per order or one BATCH task.
func (s *Server) GeneratePickTasks(ctx echo.Context) error {
	var request GeneratePickTasksRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	orderIDs := make([]kernel.UUID, 0, len(request.OrderIDs))
	for _, raw := range request.OrderIDs {
		orderID, idErr := kernel.UUIDFromString(raw)
		if idErr != nil {
			return badRequest(ctx, "Invalid order id")
		}
		orderIDs = append(orderIDs, orderID)
	}

	command, err := commands.NewGeneratePickTasksCommand(orderIDs, picking.TaskType(request.TaskType))
	if err != nil {
		return errorJSON(ctx, err)
	}

	taskIDs, err := s.generatePickTasksHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorJSON(ctx, err)
	}

	response := IDListResponse{IDs: make([]string, len(taskIDs))}
	for i, taskID := range taskIDs {
		response.IDs[i] = taskID.String()
	}

	return ctx.JSON(http.StatusCreated, response)
}

// AssignPickTask handles POST /api/v1/pick-tasks/:taskId/assign.
func (s *Server) AssignPickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request AssignPickTaskRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewAssignPickTaskCommand(taskID, request.Assignee)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.assignPickTaskHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickItem handles POST /api/v1/pick-tasks/:taskId/pick - records picked
// quantity against one task line.
func (s *Server) PickItem(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request PickItemRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(request.LineID)
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}

	command, err := commands.NewPickItemCommand(taskID, lineID, request.Quantity)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.pickItemHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePickTask handles POST /api/v1/pick-tasks/:taskId/complete -
// closes the task and moves fully picked orders to Picked.
func (s *Server) CompletePickTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	command, err := commands.NewCompletePickTaskCommand(taskID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.completePickTaskHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GeneratePackTask handles POST /api/v1/orders/:orderId/pack-task - creates
// the pack task for a picked order.
func (s *Server) GeneratePackTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	command, err := commands.NewGeneratePackTaskCommand(orderID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	taskID, err := s.generatePackTaskHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: taskID.String()})
}

// OpenCarton handles POST /api/v1/pack-tasks/:taskId/cartons - opens a new
// carton; the first carton also starts the pack task.
func (s *Server) OpenCarton(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request OpenCartonRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewOpenCartonCommand(
		taskID, request.Assignee,
		request.LengthCm, request.WidthCm, request.HeightCm, request.TareWeightKg,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	cartonID, err := s.openCartonHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: cartonID.String()})
}

// PackItem handles POST /api/v1/pack-tasks/:taskId/pack - places picked
// quantity of one order line into an open carton.
func (s *Server) PackItem(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request PackItemRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(request.LineID)
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}
	cartonID, err := kernel.UUIDFromString(request.CartonID)
	if err != nil {
		return badRequest(ctx, "Invalid carton id")
	}

	command, err := commands.NewPackItemCommand(taskID, lineID, cartonID, request.Quantity)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.packItemHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeclarePackVariance handles POST /api/v1/pack-tasks/:taskId/variance -
// closes one under-packed line with its discrepancy declared.
func (s *Server) DeclarePackVariance(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request DeclarePackVarianceRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	lineID, err := kernel.UUIDFromString(request.LineID)
	if err != nil {
		return badRequest(ctx, "Invalid line id")
	}

	command, err := commands.NewDeclarePackVarianceCommand(taskID, lineID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.declarePackVarianceHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateLabel handles POST /api/v1/pack-tasks/:taskId/label - purchases
// a shipping label once every line is packed or variance-closed.
func (s *Server) GenerateLabel(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var request GenerateLabelRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewGenerateShippingLabelCommand(
		taskID, request.CarrierCode, request.ServiceLevel,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.generateLabelHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompletePackTask handles POST /api/v1/pack-tasks/:taskId/complete -
// closes the task and moves the order to Packed.
func (s *Server) CompletePackTask(ctx echo.Context) error {
	taskID, err := kernel.UUIDFromString(ctx.Param("taskId"))
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	command, err := commands.NewCompletePackTaskCommand(taskID)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.completePackTaskHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateShipment handles POST /api/v1/orders/:orderId/shipment - hands a
// packed order to its carrier.
func (s *Server) CreateShipment(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request CreateShipmentRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewCreateShipmentCommand(
		orderID, request.CarrierCode, request.ServiceLevel,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	shipmentID, err := s.createShipmentHandler.Handle(ctx.Request().Context(), command)
	if err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: shipmentID.String()})
}

// UpdateDeliveryStatus handles POST
// /api/v1/shipments/:trackingNumber/delivery-status - carrier webhook.
// Shipments are addressed by tracking number because that is all a
// carrier webhook carries.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	var request TrackingUpdateRequest
	if err := bindAndValidate(ctx, &request); err != nil {
		return errorJSON(ctx, err)
	}

	status, err := shipment.StatusFromString(request.Status)
	if err != nil {
		return errorJSON(ctx, err)
	}

	command, err := commands.NewUpdateDeliveryStatusCommand(
		ctx.Param("trackingNumber"), status, request.Reason, request.OccurredAt,
	)
	if err != nil {
		return errorJSON(ctx, err)
	}

	if err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), command); err != nil {
		return errorJSON(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
