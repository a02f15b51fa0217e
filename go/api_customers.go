package storefrontserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	storehttpmapper "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/http/mapper"
	storetypes "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	storeports "github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// CustomerAPI wires HTTP transport with customer sessions, carts and checkout.
type CustomerAPI struct {
	service  storeports.Service
	checkout storeports.CheckoutOrchestrator
}

// NewCustomerAPI creates a CustomerAPI. A nil checkout orchestrator calls the service directly.
func NewCustomerAPI(service storeports.Service, checkout storeports.CheckoutOrchestrator) CustomerAPI {
	return CustomerAPI{service: service, checkout: checkout}
}

// Post /v1/customers
// Open a customer session with an empty cart and zero balance
func (api *CustomerAPI) RegisterCustomer(c *gin.Context) {
	customer, err := api.service.RegisterCustomer(c.Request.Context())
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, storehttpmapper.FromCustomerProjection(customer))
}

// Get /v1/customers/:customerId
func (api *CustomerAPI) GetCustomer(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	customer, err := api.service.GetCustomer(c.Request.Context(), storetypes.CustomerIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromCustomerProjection(customer))
}

// Post /v1/customers/:customerId/top-up
// Credit the customer balance
func (api *CustomerAPI) TopUp(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload storehttpmapper.BalanceTopUp
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	customer, err := api.service.TopUp(c.Request.Context(), storetypes.TopUpInput{CustomerID: id, Amount: *payload.Amount})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromCustomerProjection(customer))
}

// Get /v1/customers/:customerId/cart
func (api *CustomerAPI) GetCart(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	cart, err := api.service.GetCart(c.Request.Context(), storetypes.CustomerIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromCartProjection(cart))
}

// Post /v1/customers/:customerId/cart/items
// Reserve units of a product into the cart
func (api *CustomerAPI) AddToCart(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	var payload storehttpmapper.CartItem
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	input, err := storehttpmapper.ToCartItemInput(id, payload)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid productId: "+err.Error()))
		return
	}
	cart, err := api.service.AddToCart(c.Request.Context(), input)
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromCartProjection(cart))
}

// Delete /v1/customers/:customerId/cart/items/:productId
// Return ?quantity units to the store (default one); ?all=true returns the whole entry
func (api *CustomerAPI) RemoveFromCart(c *gin.Context) {
	customerID, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	productID, ok := parseProductIDParam(c, "productId")
	if !ok {
		return
	}
	quantity, ok := optionalIntQuery(c, "quantity")
	if !ok {
		return
	}
	all, ok := optionalBoolQuery(c, "all")
	if !ok {
		return
	}
	var (
		cart *storetypes.CartProjection
		err  error
	)
	if all {
		cart, err = api.service.RemoveAllFromCart(c.Request.Context(), storetypes.CartProductInput{CustomerID: customerID, ProductID: productID})
	} else {
		cart, err = api.service.RemoveFromCart(c.Request.Context(), storetypes.CartItemInput{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   storehttpmapper.QuantityOrDefault(quantity),
		})
	}
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromCartProjection(cart))
}

// Post /v1/customers/:customerId/checkout
// Buy the cart. A declined checkout answers 402 with the receipt.
func (api *CustomerAPI) Checkout(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	receipt, err := api.runCheckout(c.Request.Context(), storetypes.CustomerIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	status := http.StatusOK
	if receipt.Declined() {
		status = http.StatusPaymentRequired
	}
	c.JSON(status, storehttpmapper.FromCheckoutReceipt(receipt))
}

func (api *CustomerAPI) runCheckout(ctx context.Context, input storetypes.CustomerIdentifier) (*storetypes.CheckoutReceipt, error) {
	if api.checkout != nil {
		return api.checkout.Checkout(ctx, input)
	}
	return api.service.Checkout(ctx, input)
}

// Get /v1/customers/:customerId/orders
func (api *CustomerAPI) ListOrders(c *gin.Context) {
	id, ok := parseCustomerIDParam(c, "customerId")
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), storetypes.CustomerIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromOrderProjectionList(orders))
}
