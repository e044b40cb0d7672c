// Package http exposes the fulfillment operations over a small JSON
// API consumed by the floor terminals.
package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/commands"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// The server consumes the use case handlers through their Handle
// signatures only, so tests can substitute stubs for the outcome
// mapping without a database.
type (
	RecordScanHandler interface {
		Handle(ctx context.Context, command commands.RecordScanCommand) (commands.ScanResult, error)
	}

	CompleteOrderHandler interface {
		Handle(ctx context.Context, command commands.CompleteOrderCommand) (commands.CompletionResult, error)
	}

	MarkPackageLoadedHandler interface {
		Handle(ctx context.Context, command commands.MarkPackageLoadedCommand) error
	}

	GetItemQuantitiesHandler interface {
		Handle(ctx context.Context, query queries.GetItemQuantitiesQuery) (queries.GetItemQuantitiesQueryResponse, error)
	}

	GetPendingOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetPendingOrdersQuery) ([]queries.GetPendingOrdersQueryResponse, error)
	}

	CheckCompletionLockHandler interface {
		Handle(ctx context.Context, query queries.CheckCompletionLockQuery) (queries.CheckCompletionLockQueryResponse, error)
	}
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recordScanHandler        RecordScanHandler
	completeOrderHandler     CompleteOrderHandler
	markPackageLoadedHandler MarkPackageLoadedHandler

	// Query handlers
	getItemQuantitiesHandler   GetItemQuantitiesHandler
	getPendingOrdersHandler    GetPendingOrdersHandler
	checkCompletionLockHandler CheckCompletionLockHandler

	overScanTolerance float64
}

// NewServer creates a new HTTP server with the required command and
// query handlers. overScanTolerance is applied to every scan; callers
// cannot widen it per request.
func NewServer(
	recordScanHandler RecordScanHandler,
	completeOrderHandler CompleteOrderHandler,
	markPackageLoadedHandler MarkPackageLoadedHandler,
	getItemQuantitiesHandler GetItemQuantitiesHandler,
	getPendingOrdersHandler GetPendingOrdersHandler,
	checkCompletionLockHandler CheckCompletionLockHandler,
	overScanTolerance float64,
) *Server {
	return &Server{
		recordScanHandler:          recordScanHandler,
		completeOrderHandler:       completeOrderHandler,
		markPackageLoadedHandler:   markPackageLoadedHandler,
		getItemQuantitiesHandler:   getItemQuantitiesHandler,
		getPendingOrdersHandler:    getPendingOrdersHandler,
		checkCompletionLockHandler: checkCompletionLockHandler,
		overScanTolerance:          overScanTolerance,
	}
}

// RegisterRoutes mounts the API on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders/:id/scans", s.RecordScan)
	api.GET("/orders/:id/items/:code/quantities", s.GetItemQuantities)
	api.POST("/orders/:id/completion", s.CompleteOrder)
	api.GET("/orders/:id/completion-lock", s.CheckCompletionLock)
	api.POST("/trips/:tripId/packages/:pkgNo/loaded", s.LoadPackage)
	api.GET("/queue", s.GetPendingOrders)

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// RecordScan handles POST /api/v1/orders/:id/scans.
func (s *Server) RecordScan(ctx echo.Context) error {
	orderID, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req ScanRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordScanCommand(
		orderID, req.ItemCode, req.Delta, req.OrderedQty, s.overScanTolerance, req.ActingUser)
	if err != nil {
		return badRequest(ctx, "Invalid scan data: "+err.Error())
	}

	result, err := s.recordScanHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to record scan")
	}

	resp := ScanResponse{
		Outcome:        result.Outcome.String(),
		ItemCode:       result.ItemCode,
		QuantityPicked: result.QuantityPicked,
		Limit:          result.Limit,
		Message:        result.Message,
	}

	switch result.Outcome {
	case commands.ScanItemNotFound:
		return ctx.JSON(http.StatusNotFound, resp)
	case commands.ScanStorageError:
		return ctx.JSON(http.StatusInternalServerError, resp)
	default:
		// Over-limit scans committed; they are a 200 with an outcome
		// the terminal must surface, not an HTTP failure.
		return ctx.JSON(http.StatusOK, resp)
	}
}

// GetItemQuantities handles GET /api/v1/orders/:id/items/:code/quantities.
func (s *Server) GetItemQuantities(ctx echo.Context) error {
	orderID, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetItemQuantitiesQuery(orderID, ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, "Invalid item code: "+err.Error())
	}

	resp, err := s.getItemQuantitiesHandler.Handle(ctx.Request().Context(), query)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Pick line not found",
		})
	}
	if err != nil {
		return internalError(ctx, "Failed to retrieve quantities")
	}

	return ctx.JSON(http.StatusOK, ItemQuantitiesResponse{
		OrderID:         resp.OrderID,
		ItemCode:        resp.ItemCode,
		QuantityPicked:  resp.QuantityPicked,
		QuantityOrdered: resp.QuantityOrdered,
		Missing:         resp.Missing,
	})
}

// CompleteOrder handles POST /api/v1/orders/:id/completion.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req CompletionRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	lines := make([]commands.PickLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		input, lineErr := commands.LineInput(line.LineID, line.ItemCode, line.WarehouseID, line.QuantityOrdered)
		if lineErr != nil {
			return badRequest(ctx, "Invalid line data: "+lineErr.Error())
		}
		lines = append(lines, input)
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID, req.PackageCount, lines, req.Picked, req.ActingUser)
	if err != nil {
		return badRequest(ctx, "Invalid completion data: "+err.Error())
	}

	result, err := s.completeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return internalError(ctx, "Failed to complete order")
	}

	resp := CompletionResponse{
		Outcome:      result.Outcome.String(),
		OrderNumber:  result.OrderNumber,
		PackageCount: result.PackageCount,
		Message:      result.Message,
	}

	switch result.Outcome {
	case commands.CompletionOK, commands.CompletionAlreadyCompleted:
		return ctx.JSON(http.StatusOK, resp)
	case commands.CompletionOrderNotFound:
		return ctx.JSON(http.StatusNotFound, resp)
	case commands.CompletionNotEligible:
		return ctx.JSON(http.StatusConflict, resp)
	case commands.CompletionLocked:
		return ctx.JSON(http.StatusLocked, resp)
	default:
		return ctx.JSON(http.StatusInternalServerError, resp)
	}
}

// CheckCompletionLock handles GET /api/v1/orders/:id/completion-lock.
func (s *Server) CheckCompletionLock(ctx echo.Context) error {
	orderID, err := parseID(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewCheckCompletionLockQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid lock query: "+err.Error())
	}

	resp, err := s.checkCompletionLockHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to check completion lock")
	}

	return ctx.JSON(http.StatusOK, CompletionLockResponse{
		OrderID:   resp.OrderID,
		LockName:  resp.LockName,
		Held:      resp.Held,
		SessionID: resp.SessionID,
	})
}

// LoadPackage handles POST /api/v1/trips/:tripId/packages/:pkgNo/loaded.
func (s *Server) LoadPackage(ctx echo.Context) error {
	tripID, err := parseID(ctx.Param("tripId"))
	if err != nil {
		return badRequest(ctx, "Invalid trip id")
	}
	pkgNo, err := strconv.Atoi(ctx.Param("pkgNo"))
	if err != nil {
		return badRequest(ctx, "Invalid package number")
	}

	var req LoadPackageRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewMarkPackageLoadedCommand(tripID, pkgNo, req.ActingUser)
	if err != nil {
		return badRequest(ctx, "Invalid load data: "+err.Error())
	}

	if handleErr := s.markPackageLoadedHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: "Failed to mark package loaded",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingOrders handles GET /api/v1/queue.
func (s *Server) GetPendingOrders(ctx echo.Context) error {
	pending, err := s.getPendingOrdersHandler.Handle(ctx.Request().Context(), queries.NewGetPendingOrdersQuery())
	if err != nil {
		return internalError(ctx, "Failed to retrieve pending orders")
	}

	response := make([]PendingOrderResponse, len(pending))
	for i, entry := range pending {
		response[i] = PendingOrderResponse{
			OrderID:      entry.OrderID,
			OrderNumber:  entry.OrderNumber,
			Status:       entry.Status,
			CustomerCode: entry.CustomerCode,
			EnqueuedAt:   entry.EnqueuedAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
