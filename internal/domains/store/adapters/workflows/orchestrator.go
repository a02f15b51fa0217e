package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/durable/temporal/activities/checkout"
	checkoutworkflows "github.com/Apurer/go-gin-storefront/internal/durable/temporal/workflows/checkout"
)

var (
	_ ports.CheckoutOrchestrator = (*TemporalCheckout)(nil)
	_ ports.CheckoutOrchestrator = (*InlineCheckout)(nil)
)

// ErrCheckoutInProgress reports a concurrent checkout for the same customer and trace.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

// TemporalCheckout runs checkout as a workflow on a Temporal cluster.
type TemporalCheckout struct {
	client    client.Client
	taskQueue string
}

// NewTemporalCheckout wires a Temporal client into the orchestrator.
func NewTemporalCheckout(c client.Client) *TemporalCheckout {
	return &TemporalCheckout{client: c, taskQueue: checkoutworkflows.CheckoutTaskQueue}
}

// Checkout starts the checkout workflow and waits for its receipt.
func (o *TemporalCheckout) Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal checkout not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        buildCheckoutWorkflowID(input, traceComponent),
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		checkoutworkflows.CheckoutWorkflowName,
		checkoutworkflows.CheckoutWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			return nil, fmt.Errorf("%w: %s", ErrCheckoutInProgress, options.ID)
		}
		return nil, err
	}
	var receipt types.CheckoutReceipt
	if err := run.Get(ctx, &receipt); err != nil {
		var appErr *temporal.ApplicationError
		if errors.As(err, &appErr) && appErr.Type() == checkoutactivities.NotFoundErrorType {
			return nil, fmt.Errorf("%w: %s", storeapp.ErrNotFound, appErr.Message())
		}
		return nil, err
	}
	return &receipt, nil
}

// InlineCheckout executes the service directly without Temporal, useful for tests or dev fallbacks.
type InlineCheckout struct {
	service ports.Service
}

// NewInlineCheckout wraps the storefront service for synchronous execution.
func NewInlineCheckout(service ports.Service) *InlineCheckout {
	return &InlineCheckout{service: service}
}

func (o *InlineCheckout) Checkout(ctx context.Context, input types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline checkout not configured")
	}
	return o.service.Checkout(ctx, input)
}

func buildCheckoutWorkflowID(input types.CustomerIdentifier, traceComponent string) string {
	return fmt.Sprintf("checkout-%s-%s", input.ID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
