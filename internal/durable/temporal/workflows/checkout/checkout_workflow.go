package checkout

import (
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/durable/temporal/sequences"
)

const (
	// CheckoutWorkflowName is the public identifier for registering the workflow.
	CheckoutWorkflowName = "store.workflows.Checkout"
	// CheckoutTaskQueue is the queue consumed by the worker embedded in the API process.
	CheckoutTaskQueue = "STORE_CHECKOUT"
)

// CheckoutWorkflowInput identifies the customer whose cart is bought.
type CheckoutWorkflowInput struct {
	Command types.CustomerIdentifier
	TraceID string
}

// CheckoutWorkflow runs a customer's checkout as a durable execution.
func CheckoutWorkflow(ctx workflow.Context, input CheckoutWorkflowInput) (*types.CheckoutReceipt, error) {
	logger := workflow.GetLogger(ctx)
	customerID := input.Command.ID.String()
	logger.Info("CheckoutWorkflow started", withTraceID(input.TraceID, "customerId", customerID)...)
	receipt, err := sequences.RunCheckoutSequence(ctx, input.Command)
	if err != nil {
		logger.Error("CheckoutWorkflow failed", withTraceID(input.TraceID, "customerId", customerID, "error", err)...)
		return nil, err
	}
	logger.Info("CheckoutWorkflow completed", withTraceID(input.TraceID, "customerId", customerID, "status", string(receipt.Status))...)
	return receipt, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
