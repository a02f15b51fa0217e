package storefrontserver

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

func bindPathParam(c *gin.Context, name string) (string, bool) {
	var value string
	if err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &value); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return "", false
	}
	return value, true
}

func parseProductIDParam(c *gin.Context, name string) (storedomain.ProductID, bool) {
	raw, ok := bindPathParam(c, name)
	if !ok {
		return storedomain.ProductID{}, false
	}
	id, err := storedomain.ParseProductID(raw)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+": "+err.Error()))
		return storedomain.ProductID{}, false
	}
	return id, true
}

func parseCustomerIDParam(c *gin.Context, name string) (storedomain.CustomerID, bool) {
	raw, ok := bindPathParam(c, name)
	if !ok {
		return storedomain.CustomerID{}, false
	}
	id, err := storedomain.ParseCustomerID(raw)
	if err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail("invalid "+name+": "+err.Error()))
		return storedomain.CustomerID{}, false
	}
	return id, true
}

// optionalIntQuery returns nil when the query parameter is absent.
func optionalIntQuery(c *gin.Context, name string) (*int, bool) {
	var value *int
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return nil, false
	}
	return value, true
}

// optionalBoolQuery returns false when the query parameter is absent.
func optionalBoolQuery(c *gin.Context, name string) (bool, bool) {
	var value *bool
	if err := runtime.BindQueryParameter("form", true, false, name, c.Request.URL.Query(), &value); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false, false
	}
	return value != nil && *value, true
}

// bindOptionalJSON accepts an empty body and leaves out untouched.
func bindOptionalJSON(c *gin.Context, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil && !errors.Is(err, io.EOF) {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return false
	}
	return true
}
