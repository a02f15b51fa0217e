//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	pacttest "github.com/Apurer/go-gin-storefront/test/pact"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"
	storememory "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/memory"
	storeobs "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/observability"
	storeworkflows "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/workflows"
	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"

	"github.com/gin-gonic/gin"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/stretchr/testify/require"
)

func TestStorefrontProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateCatalogBaseline: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateProductExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateCartUnderfunded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCart(t, 0)
			}
			return nil, nil
		},
		pacttest.StateCartFunded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedCart(t, pacttest.ExampleFundedBalance)
			}
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh storefront after every reset. The stock
// ledger is bound at service construction, so resetting rebuilds the stack and
// swaps the handler behind a stable server URL.
type contractProviderApp struct {
	current atomic.Pointer[providerStack]
	server  *httptest.Server
}

type providerStack struct {
	products  *storememory.ProductRepository
	customers *storememory.CustomerRepository
	ledger    *storedomain.Store
	router    http.Handler
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()

	app := &contractProviderApp{}
	app.reset(t)
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.current.Load().router.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	return app
}

func newProviderStack(t testing.TB) *providerStack {
	t.Helper()

	tax, err := storedomain.NewTaxFactor(storedomain.DefaultTaxPercentage)
	require.NoError(t, err)

	products := storememory.NewProductRepository()
	customers := storememory.NewCustomerRepository()
	ledger := storedomain.NewStore()
	service := storeobs.New(storeapp.NewService(products, customers, ledger, tax))

	handlers := storefrontserver.ApiHandleFunctions{
		ProductAPI:  storefrontserver.NewProductAPI(service),
		CustomerAPI: storefrontserver.NewCustomerAPI(service, storeworkflows.NewInlineCheckout(service)),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router = storefrontserver.NewRouterWithGinEngine(router, handlers)

	return &providerStack{
		products:  products,
		customers: customers,
		ledger:    ledger,
		router:    router,
	}
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	a.current.Store(newProviderStack(t))
}

func (a *contractProviderApp) seedProduct(t testing.TB) *storedomain.Product {
	t.Helper()
	stack := a.current.Load()
	ctx := context.Background()

	id, err := storedomain.ParseProductID(pacttest.ExistingProductID)
	require.NoError(t, err)
	product, err := storedomain.RestoreProduct(id, pacttest.ExampleProductPrice, pacttest.ExampleProductCategory, 0)
	require.NoError(t, err)
	require.NoError(t, stack.products.Save(ctx, product))
	require.NoError(t, stack.ledger.Restock(ctx, id, pacttest.ExampleProductStock))
	return product
}

func (a *contractProviderApp) seedCart(t testing.TB, balance float64) {
	t.Helper()
	product := a.seedProduct(t)
	stack := a.current.Load()
	ctx := context.Background()

	id, err := storedomain.ParseCustomerID(pacttest.ExistingCustomer)
	require.NoError(t, err)
	customer := storedomain.RestoreCustomer(id, stack.ledger)
	require.NoError(t, customer.AddToCart(ctx, product, pacttest.ExampleCartQuantity))
	require.NoError(t, customer.TopUp(balance))
	require.NoError(t, stack.customers.Save(ctx, customer))
}
