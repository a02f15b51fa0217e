package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"

	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	checkoutactivities "github.com/Apurer/go-gin-storefront/internal/durable/temporal/activities/checkout"
)

func checkoutStub(context.Context, types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
	return nil, nil
}

func TestCheckoutWorkflow_ReturnsReceipt(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(checkoutStub, activity.RegisterOptions{Name: checkoutactivities.CheckoutActivityName})

	customerID := domain.NewCustomerID()
	env.OnActivity(checkoutactivities.CheckoutActivityName, mock.Anything, types.CustomerIdentifier{ID: customerID}).
		Return(&types.CheckoutReceipt{CustomerID: customerID, Status: domain.CheckoutCompleted, Total: 226, Balance: 74}, nil)

	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{Command: types.CustomerIdentifier{ID: customerID}, TraceID: "trace"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var receipt types.CheckoutReceipt
	require.NoError(t, env.GetWorkflowResult(&receipt))
	require.Equal(t, customerID, receipt.CustomerID)
	require.Equal(t, domain.CheckoutCompleted, receipt.Status)
	require.InDelta(t, 74, receipt.Balance, 1e-9)
}

func TestCheckoutWorkflow_DoesNotRetryFailedActivity(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	env.RegisterActivityWithOptions(checkoutStub, activity.RegisterOptions{Name: checkoutactivities.CheckoutActivityName})

	calls := 0
	env.OnActivity(checkoutactivities.CheckoutActivityName, mock.Anything, mock.Anything).
		Return(func(context.Context, types.CustomerIdentifier) (*types.CheckoutReceipt, error) {
			calls++
			return nil, errors.New("ledger unavailable")
		})

	env.ExecuteWorkflow(CheckoutWorkflow, CheckoutWorkflowInput{Command: types.CustomerIdentifier{ID: domain.NewCustomerID()}})

	require.True(t, env.IsWorkflowCompleted())
	require.Error(t, env.GetWorkflowError())
	require.Equal(t, 1, calls)
}
