package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	storeworkflows "github.com/Apurer/go-gin-storefront/internal/domains/store/adapters/workflows"
	storeapp "github.com/Apurer/go-gin-storefront/internal/domains/store/application"
	storedomain "github.com/Apurer/go-gin-storefront/internal/domains/store/domain"
	apierrors "github.com/Apurer/go-gin-storefront/internal/shared/errors"
)

var problems = apierrors.NewChainedResponder("", storeErrorMapper)

// storeErrorMapper turns storefront errors into problem details. Stock
// shortfalls are checked first so a wrapped not-found never masks them.
func storeErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, storedomain.ErrInsufficientStock):
		return apierrors.ErrInsufficientStock.WithDetail(err.Error()), true
	case errors.Is(err, storeapp.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, storeapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, storeworkflows.ErrCheckoutInProgress):
		return apierrors.ErrCheckoutBusy.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	problems.Respond(c, problem)
}

func respondStoreServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	problems.RespondError(c, err)
}
