// Package http exposes the order pipeline over a REST API. It translates
// transport concerns into application commands and queries; no business
// rules live here.
package http

import (
	"errors"
	"io"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// signatureHeader carries the HMAC signature of the raw webhook body.
const signatureHeader = "X-Payment-Signature"

// Actor headers identify who performs a transition. The authenticating
// gateway fills them in, never the client directly.
const (
	actorRoleHeader = "X-Actor-Role"
	actorIDHeader   = "X-Actor-Id"
	actorNameHeader = "X-Actor-Name"
)

// Server implements the HTTP API for the order fulfillment pipeline.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	ingestPaymentEventHandler commands.IngestPaymentEventCommandHandler
	startProcessingHandler    commands.StartProcessingCommandHandler
	markReadyHandler          commands.MarkReadyCommandHandler
	markShippedHandler        commands.MarkShippedCommandHandler
	markDeliveredHandler      commands.MarkDeliveredCommandHandler
	cancelOrderHandler        commands.CancelOrderCommandHandler
	recordItemShoppedHandler  commands.RecordItemShoppedCommandHandler

	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	ingestPaymentEventHandler commands.IngestPaymentEventCommandHandler,
	startProcessingHandler commands.StartProcessingCommandHandler,
	markReadyHandler commands.MarkReadyCommandHandler,
	markShippedHandler commands.MarkShippedCommandHandler,
	markDeliveredHandler commands.MarkDeliveredCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	recordItemShoppedHandler commands.RecordItemShoppedCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOrderByNumberHandler queries.GetOrderByNumberQueryHandler,
) *Server {
	return &Server{
		ingestPaymentEventHandler: ingestPaymentEventHandler,
		startProcessingHandler:    startProcessingHandler,
		markReadyHandler:          markReadyHandler,
		markShippedHandler:        markShippedHandler,
		markDeliveredHandler:      markDeliveredHandler,
		cancelOrderHandler:        cancelOrderHandler,
		recordItemShoppedHandler:  recordItemShoppedHandler,
		getActiveOrdersHandler:    getActiveOrdersHandler,
		getOrderByNumberHandler:   getOrderByNumberHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/payments/webhook", s.IngestPaymentEvent)

	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/number/:number", s.GetOrderByNumber)

	api.POST("/orders/:id/start", s.StartProcessing)
	api.POST("/orders/:id/ready", s.MarkReady)
	api.POST("/orders/:id/ship", s.MarkShipped)
	api.POST("/orders/:id/deliver", s.MarkDelivered)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/items/:productId/shopped", s.RecordItemShopped)
}

// Error is the uniform error body of the API.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WebhookResponse reports what ingestion resolved a payment event to.
type WebhookResponse struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	Duplicate   bool   `json:"duplicate"`
}

// ActiveOrder is one row of the active orders listing.
type ActiveOrder struct {
	ID           string `json:"id"`
	OrderNumber  string `json:"order_number"`
	Status       string `json:"status"`
	CustomerName string `json:"customer_name"`
	City         string `json:"city"`
	TotalCents   int64  `json:"total_cents"`
	ItemCount    int    `json:"item_count"`
}

// OrderDetails is the full read model of one order.
type OrderDetails struct {
	ID            string      `json:"id"`
	OrderNumber   string      `json:"order_number"`
	Status        string      `json:"status"`
	IsPaid        bool        `json:"is_paid"`
	Note          string      `json:"note,omitempty"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	CustomerPhone string      `json:"customer_phone,omitempty"`
	Street        string      `json:"street,omitempty"`
	City          string      `json:"city,omitempty"`
	TotalCents    int64       `json:"total_cents"`
	Items         []OrderItem `json:"items"`
}

// OrderItem is one line item of the order details.
type OrderItem struct {
	ProductID      string `json:"product_id"`
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	ActualQuantity *int   `json:"actual_quantity,omitempty"`
	PriceCents     int64  `json:"price_cents"`
	Unit           string `json:"unit,omitempty"`
}

// RecordShoppedRequest carries the gathered quantity for one line item.
type RecordShoppedRequest struct {
	ActualQuantity int `json:"actual_quantity"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// IngestPaymentEvent handles POST /api/v1/payments/webhook. The body is
// passed through untouched: the HMAC signature covers the exact bytes the
// payment gateway sent.
func (s *Server) IngestPaymentEvent(ctx echo.Context) error {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Failed to read request body")
	}

	cmd, err := commands.NewIngestPaymentEventCommand(payload, ctx.Request().Header.Get(signatureHeader))
	if err != nil {
		return mapError(ctx, err)
	}

	result, err := s.ingestPaymentEventHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return mapError(ctx, err)
	}

	// Replays get the same 200 as first deliveries so the gateway stops retrying
	return ctx.JSON(http.StatusOK, WebhookResponse{
		OrderID:     result.OrderID.String(),
		OrderNumber: result.OrderNumber,
		Duplicate:   result.Duplicate,
	})
}

// StartProcessing handles POST /api/v1/orders/:id/start.
func (s *Server) StartProcessing(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID, actor order.Actor) error {
		cmd, err := commands.NewStartProcessingCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.startProcessingHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkReady handles POST /api/v1/orders/:id/ready.
func (s *Server) MarkReady(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID, actor order.Actor) error {
		cmd, err := commands.NewMarkReadyCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.markReadyHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkShipped handles POST /api/v1/orders/:id/ship.
func (s *Server) MarkShipped(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID, actor order.Actor) error {
		cmd, err := commands.NewMarkShippedCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.markShippedHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// MarkDelivered handles POST /api/v1/orders/:id/deliver.
func (s *Server) MarkDelivered(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID, actor order.Actor) error {
		cmd, err := commands.NewMarkDeliveredCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.markDeliveredHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.transition(ctx, func(orderID kernel.UUID, actor order.Actor) error {
		cmd, err := commands.NewCancelOrderCommand(orderID, actor)
		if err != nil {
			return err
		}
		return s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// RecordItemShopped handles POST /api/v1/orders/:id/items/:productId/shopped.
func (s *Server) RecordItemShopped(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid product id")
	}

	var req RecordShoppedRequest
	if err = ctx.Bind(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewRecordItemShoppedCommand(orderID, productID, req.ActualQuantity)
	if err != nil {
		return mapError(ctx, err)
	}

	if err = s.recordItemShoppedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, http.StatusInternalServerError, "Failed to retrieve orders")
	}

	response := make([]ActiveOrder, len(orders))
	for i, activeOrder := range orders {
		response[i] = ActiveOrder{
			ID:           activeOrder.ID.String(),
			OrderNumber:  activeOrder.OrderNumber,
			Status:       activeOrder.Status,
			CustomerName: activeOrder.CustomerName,
			City:         activeOrder.City,
			TotalCents:   activeOrder.TotalCents,
			ItemCount:    activeOrder.ItemCount,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderByNumber handles GET /api/v1/orders/number/:number.
func (s *Server) GetOrderByNumber(ctx echo.Context) error {
	query, err := queries.NewGetOrderByNumberQuery(ctx.Param("number"))
	if err != nil {
		return mapError(ctx, err)
	}

	details, err := s.getOrderByNumberHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return mapError(ctx, err)
	}

	items := make([]OrderItem, len(details.Items))
	for i, item := range details.Items {
		items[i] = OrderItem{
			ProductID:      item.ProductID.String(),
			Name:           item.Name,
			Quantity:       item.Quantity,
			ActualQuantity: item.ActualQuantity,
			PriceCents:     item.PriceCents,
			Unit:           item.Unit,
		}
	}

	return ctx.JSON(http.StatusOK, OrderDetails{
		ID:            details.ID.String(),
		OrderNumber:   details.OrderNumber,
		Status:        details.Status,
		IsPaid:        details.IsPaid,
		Note:          details.Note,
		CustomerName:  details.CustomerName,
		CustomerEmail: details.CustomerEmail,
		CustomerPhone: details.CustomerPhone,
		Street:        details.Street,
		City:          details.City,
		TotalCents:    details.TotalCents,
		Items:         items,
	})
}

// transition parses the order id and actor headers, then runs one status transition.
func (s *Server) transition(ctx echo.Context, run func(kernel.UUID, order.Actor) error) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "Invalid order id")
	}

	actor, err := actorFromHeaders(ctx)
	if err != nil {
		return mapError(ctx, err)
	}

	if err = run(orderID, actor); err != nil {
		return mapError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// actorFromHeaders builds the acting identity from the gateway-set headers.
func actorFromHeaders(ctx echo.Context) (order.Actor, error) {
	role, err := order.RoleFromString(ctx.Request().Header.Get(actorRoleHeader))
	if err != nil {
		return order.Actor{}, err
	}

	actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(actorIDHeader))
	if err != nil {
		return order.Actor{}, errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}

	return order.NewActor(role, actorID, ctx.Request().Header.Get(actorNameHeader))
}

// mapError translates application errors to HTTP status codes.
func mapError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorResponse(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrOperationNotPermitted):
		return errorResponse(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return errorResponse(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrSignatureIsInvalid),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorResponse(ctx, http.StatusBadRequest, err.Error())
	default:
		return errorResponse(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func errorResponse(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}
