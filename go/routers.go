package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API surface.
type ApiHandleFunctions struct {
	ProductAPI  ProductAPI
	CustomerAPI CustomerAPI
}

// NewRouterWithGinEngine adds routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateProduct", http.MethodPost, "/v1/products", handleFunctions.ProductAPI.CreateProduct},
		{"ListProducts", http.MethodGet, "/v1/products", handleFunctions.ProductAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/v1/products/:productId", handleFunctions.ProductAPI.GetProduct},
		{"SetSale", http.MethodPut, "/v1/products/:productId/sale", handleFunctions.ProductAPI.SetSale},
		{"RemoveSale", http.MethodDelete, "/v1/products/:productId/sale", handleFunctions.ProductAPI.RemoveSale},
		{"Restock", http.MethodPost, "/v1/products/:productId/restock", handleFunctions.ProductAPI.Restock},
		{"RegisterCustomer", http.MethodPost, "/v1/customers", handleFunctions.CustomerAPI.RegisterCustomer},
		{"GetCustomer", http.MethodGet, "/v1/customers/:customerId", handleFunctions.CustomerAPI.GetCustomer},
		{"TopUp", http.MethodPost, "/v1/customers/:customerId/top-up", handleFunctions.CustomerAPI.TopUp},
		{"GetCart", http.MethodGet, "/v1/customers/:customerId/cart", handleFunctions.CustomerAPI.GetCart},
		{"AddToCart", http.MethodPost, "/v1/customers/:customerId/cart/items", handleFunctions.CustomerAPI.AddToCart},
		{"RemoveFromCart", http.MethodDelete, "/v1/customers/:customerId/cart/items/:productId", handleFunctions.CustomerAPI.RemoveFromCart},
		{"Checkout", http.MethodPost, "/v1/customers/:customerId/checkout", handleFunctions.CustomerAPI.Checkout},
		{"ListOrders", http.MethodGet, "/v1/customers/:customerId/orders", handleFunctions.CustomerAPI.ListOrders},
	}
}
