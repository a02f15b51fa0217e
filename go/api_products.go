package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	storehttpmapper "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/http/mapper"
	storetypes "github.com/Apurer/go-gin-storefront/internal/domains/store/application/types"
	storeports "github.com/Apurer/go-gin-storefront/internal/domains/store/ports"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

// ProductAPI wires HTTP transport with the catalog and stock use cases.
type ProductAPI struct {
	service storeports.Service
}

func NewProductAPI(service storeports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Post /v1/products
// Add a product to the catalog
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload storehttpmapper.ProductCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	created, err := api.service.CreateProduct(c.Request.Context(), storehttpmapper.ToCreateProductInput(payload))
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, storehttpmapper.FromProductProjection(created))
}

// Get /v1/products
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromProductProjectionList(products))
}

// Get /v1/products/:productId
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := parseProductIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), storetypes.ProductIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromProductProjection(product))
}

// Put /v1/products/:productId/sale
// Put a product on sale
func (api *ProductAPI) SetSale(c *gin.Context) {
	id, ok := parseProductIDParam(c, "productId")
	if !ok {
		return
	}
	var payload storehttpmapper.SaleUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	product, err := api.service.SetSale(c.Request.Context(), storetypes.SetSaleInput{ID: id, Sale: *payload.Sale})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromProductProjection(product))
}

// Delete /v1/products/:productId/sale
func (api *ProductAPI) RemoveSale(c *gin.Context) {
	id, ok := parseProductIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.RemoveSale(c.Request.Context(), storetypes.ProductIdentifier{ID: id})
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromProductProjection(product))
}

// Post /v1/products/:productId/restock
// Add units of a product to the stock ledger, one when amount is omitted
func (api *ProductAPI) Restock(c *gin.Context) {
	id, ok := parseProductIDParam(c, "productId")
	if !ok {
		return
	}
	var payload storehttpmapper.StockUpdate
	if !bindOptionalJSON(c, &payload) {
		return
	}
	product, err := api.service.Restock(c.Request.Context(), storehttpmapper.ToRestockInput(id, payload))
	if err != nil {
		respondStoreServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, storehttpmapper.FromProductProjection(product))
}
