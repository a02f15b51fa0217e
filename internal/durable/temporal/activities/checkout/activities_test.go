package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	storememory "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/memory"
	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	types "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
)

func TestActivities_CheckoutDelegatesToService(t *testing.T) {
	ctx := context.Background()
	svc := storeapp.NewService(storememory.NewProductRepository(), storememory.NewCustomerRepository(), domain.NewStore(), domain.DefaultTaxFactor())
	product, err := svc.CreateProduct(ctx, types.CreateProductInput{Price: 100, Category: "tools", InitialStock: 2})
	require.NoError(t, err)
	customer, err := svc.RegisterCustomer(ctx)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, types.CartItemInput{CustomerID: customer.ID, ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	env.RegisterActivityWithOptions(NewActivities(svc).Checkout, activity.RegisterOptions{Name: CheckoutActivityName})

	value, err := env.ExecuteActivity(CheckoutActivityName, types.CustomerIdentifier{ID: customer.ID})
	require.NoError(t, err)
	var receipt types.CheckoutReceipt
	require.NoError(t, value.Get(&receipt))
	require.True(t, receipt.Declined())
	require.InDelta(t, 113, receipt.Total, 1e-9)
}

func TestActivities_UnknownCustomerIsNonRetryable(t *testing.T) {
	svc := storeapp.NewService(storememory.NewProductRepository(), storememory.NewCustomerRepository(), domain.NewStore(), domain.DefaultTaxFactor())

	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	env.RegisterActivityWithOptions(NewActivities(svc).Checkout, activity.RegisterOptions{Name: CheckoutActivityName})

	_, err := env.ExecuteActivity(CheckoutActivityName, types.CustomerIdentifier{ID: domain.NewCustomerID()})
	var appErr *temporal.ApplicationError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, NotFoundErrorType, appErr.Type())
	require.True(t, appErr.NonRetryable())
}
