package ports

import (
	"context"

	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/product"
)

// ProductRepository defines the read contract for catalog data the pipeline
// consults: safety buffers during allocation and unit weights during packing.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)

	// GetBatch retrieves several products at once, keyed by identifier.
	GetBatch(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]*product.Product, error)
}
