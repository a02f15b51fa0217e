package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/durable/temporal/activities/checkout"
)

// RunCheckoutSequence executes the checkout activity exactly once. Checkout
// debits a balance, so it is never retried.
func RunCheckoutSequence(ctx workflow.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.ID.String()
	logger.Info("checkout sequence started", "customerId", customerID)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var receipt types.CheckoutReceipt
	err := workflow.ExecuteActivity(ctx, checkoutactivities.CheckoutActivityName, input).Get(ctx, &receipt)
	if err != nil {
		logger.Error("checkout sequence failed", "customerId", customerID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence completed", "customerId", customerID, "status", string(receipt.Status))
	return &receipt, nil
}
