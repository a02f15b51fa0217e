package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func respondWith(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/v1/things/:id", handler)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/things/7", nil))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_FillsInstanceAndContentType(t *testing.T) {
	rec, problem := respondWith(t, func(c *gin.Context) {
		NewResponder("https://storefront.example").Respond(c, NewNotFoundProblem("product", "7"))
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	require.Equal(t, "/v1/things/7", problem.Instance)
	require.Equal(t, "https://storefront.example"+TypeNotFound, problem.Type)
	require.Equal(t, "product", problem.Extensions["resourceType"])
	require.NotContains(t, problem.Extensions, "traceId")
	require.Empty(t, rec.Header().Get("Retry-After"))
}

func TestResponder_StampsTraceID(t *testing.T) {
	provider := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(t.Context()) })
	var traceID oteltrace.TraceID

	rec, problem := respondWith(t, func(c *gin.Context) {
		ctx, span := provider.Tracer("test").Start(c.Request.Context(), "checkout")
		defer span.End()
		traceID = span.SpanContext().TraceID()
		c.Request = c.Request.WithContext(ctx)
		NewResponder("").Respond(c, ErrCheckoutBusy.WithDetail("customer is checking out"))
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, TypeCheckoutBusy, problem.Type)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))
	require.Equal(t, traceID.String(), problem.Extensions["traceId"])
	require.NotContains(t, rec.Body.String(), "RetryAfter")
}

func TestChainedResponder_UsesFirstMatchingMapper(t *testing.T) {
	sentinel := errors.New("out of stock")
	responder := NewChainedResponder("", func(err error) (ProblemDetail, bool) {
		if errors.Is(err, sentinel) {
			return ErrInsufficientStock.WithDetail(err.Error()), true
		}
		return ProblemDetail{}, false
	})

	rec, problem := respondWith(t, func(c *gin.Context) {
		responder.RespondError(c, fmt.Errorf("reserve: %w", sentinel))
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Equal(t, TypeInsufficientStock, problem.Type)

	rec, problem = respondWith(t, func(c *gin.Context) {
		responder.RespondError(c, errors.New("boom"))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "boom", problem.Detail)
}

func TestProblemDetail_WithExtensionDoesNotShareMaps(t *testing.T) {
	base := ErrValidation.WithExtension("a", 1)
	derived := base.WithExtension("b", 2)
	require.Len(t, base.Extensions, 1)
	require.Len(t, derived.Extensions, 2)
	require.Equal(t, http.StatusBadRequest, HTTPStatusFromError(fmt.Errorf("wrap: %w", derived)))
	require.Equal(t, http.StatusInternalServerError, HTTPStatusFromError(errors.New("plain")))
	require.Equal(t, "Validation Error", ErrValidation.Error())
}
