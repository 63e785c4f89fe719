// Package queries contains the read side of the pipeline: availability
// checks and operational listings that bypass the aggregates and read the
// database directly.
package queries

import (
	"context"

	"warehouse/internal/core/domain/model/inventory"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckAllocationAvailabilityQueryHandler compares each order line's ordered
// quantity against the summed available stock for its product in the order's
// warehouse. The check reserves nothing.
type CheckAllocationAvailabilityQueryHandler struct {
	db *gorm.DB
}

// NewCheckAllocationAvailabilityQueryHandler creates a handler for
// availability checks.
func NewCheckAllocationAvailabilityQueryHandler(db *gorm.DB) CheckAllocationAvailabilityQueryHandler {
	return CheckAllocationAvailabilityQueryHandler{db: db}
}

// Handle executes the availability check for one order.
func (h CheckAllocationAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query CheckAllocationAvailabilityQuery,
) (CheckAllocationAvailabilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckAllocationAvailabilityQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.id,
			l.product_id,
			l.quantity_ordered,
			COALESCE(SUM(i.quantity_available), 0)
		FROM order_lines l
		JOIN orders o ON o.id = l.order_id
		LEFT JOIN inventory i
			ON i.product_id = l.product_id
			AND i.tenant_id = o.tenant_id
			AND i.warehouse_id = o.warehouse_id
			AND i.status = ?
			AND i.quantity_available > 0
		WHERE l.order_id = ?
		GROUP BY l.id, l.product_id, l.quantity_ordered
		ORDER BY l.id
	`, int(inventory.Available), query.OrderID().Bytes()).Rows()
	if err != nil {
		return CheckAllocationAvailabilityQueryResponse{}, err
	}
	defer rows.Close()

	response := CheckAllocationAvailabilityQueryResponse{
		OrderID: query.OrderID(),
		Lines:   make([]LineAvailability, 0),
	}

	for rows.Next() {
		var lineID, productID uuid.UUID
		var line LineAvailability

		err = rows.Scan(
			&lineID,
			&productID,
			&line.QuantityOrdered,
			&line.QuantityAvailable,
		)
		if err != nil {
			return CheckAllocationAvailabilityQueryResponse{}, err
		}

		line.OrderLineID, err = kernel.UUIDFromBytes(lineID[:])
		if err != nil {
			return CheckAllocationAvailabilityQueryResponse{}, err
		}
		line.ProductID, err = kernel.UUIDFromBytes(productID[:])
		if err != nil {
			return CheckAllocationAvailabilityQueryResponse{}, err
		}

		response.Lines = append(response.Lines, line)
	}

	if err = rows.Err(); err != nil {
		return CheckAllocationAvailabilityQueryResponse{}, err
	}

	if len(response.Lines) == 0 {
		return CheckAllocationAvailabilityQueryResponse{},
			errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	return response, nil
}
