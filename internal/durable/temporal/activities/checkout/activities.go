package checkout

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
)

const (
	// CheckoutActivityName is the registered name of the checkout activity.
	CheckoutActivityName = "store.activities.Checkout"
	// NotFoundErrorType tags application errors for unknown customers.
	NotFoundErrorType = "NotFound"
)

// Activities exposes storefront use cases to Temporal workers.
type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// Checkout buys the customer's cart. A declined checkout completes normally.
func (a *Activities) Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	if a == nil || a.service == nil {
		return nil, errors.New("checkout activities not configured")
	}
	activity.GetLogger(ctx).Info("checkout activity started", "customerId", input.ID.String())
	receipt, err := a.service.Checkout(ctx, input)
	if errors.Is(err, storeapp.ErrNotFound) {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), NotFoundErrorType, err)
	}
	return receipt, err
}
