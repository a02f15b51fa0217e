package ports

import (
	"context"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
)

// CheckoutOrchestrator runs checkout either inline or as a durable workflow.
type CheckoutOrchestrator interface {
	Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error)
}
