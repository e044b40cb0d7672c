package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	httpin "github.com/lushajj14/logline-wms-sub001/internal/adapters/in/http"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubItemQuantitiesHandler struct {
	resp queries.GetItemQuantitiesQueryResponse
	err  error
}

func (s stubItemQuantitiesHandler) Handle(
	_ context.Context,
	_ queries.GetItemQuantitiesQuery,
) (queries.GetItemQuantitiesQueryResponse, error) {
	return s.resp, s.err
}

func quantitiesContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("id", "code")
	ctx.SetParamValues("1001", "SKU-A")
	return ctx, rec
}

func quantitiesServer(stub stubItemQuantitiesHandler) *httpin.Server {
	return httpin.NewServer(nil, nil, nil, stub, nil, nil, 0)
}

func TestServer_GetItemQuantities_Success(t *testing.T) {
	server := quantitiesServer(stubItemQuantitiesHandler{
		resp: queries.GetItemQuantitiesQueryResponse{
			OrderID:         1001,
			ItemCode:        "SKU-A",
			QuantityPicked:  4,
			QuantityOrdered: 10,
			Missing:         6,
		},
	})

	ctx, rec := quantitiesContext(t)
	require.NoError(t, server.GetItemQuantities(ctx))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SKU-A")
}

func TestServer_GetItemQuantities_UnknownLineIsNotFound(t *testing.T) {
	server := quantitiesServer(stubItemQuantitiesHandler{
		err: errs.NewObjectNotFoundError("pickLine", "SKU-A"),
	})

	ctx, rec := quantitiesContext(t)
	require.NoError(t, server.GetItemQuantities(ctx))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_GetItemQuantities_StorageFailureIsInternalError(t *testing.T) {
	server := quantitiesServer(stubItemQuantitiesHandler{
		err: errors.New("connection reset"),
	})

	ctx, rec := quantitiesContext(t)
	require.NoError(t, server.GetItemQuantities(ctx))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
