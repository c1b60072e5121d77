package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
)

// MarkShippedCommandHandler moves an order into delivery and, when items
// remain unfulfilled, creates the follow-up order for the remainder.
//
// The status change commits first, then the split runs in its own
// transaction. A split failure therefore never blocks the shipment: it is
// logged and can be retried by support, while the customer's parcel is
// already on its way.
type MarkShippedCommandHandler struct {
	uowFactory OrderUoWFactory
	splitter   services.FulfillmentSplitter
	logger     *slog.Logger
}

// NewMarkShippedCommandHandler creates a handler for shipping orders.
func NewMarkShippedCommandHandler(
	uowFactory OrderUoWFactory, splitter services.FulfillmentSplitter, logger *slog.Logger,
) MarkShippedCommandHandler {
	return MarkShippedCommandHandler{
		uowFactory: uowFactory,
		splitter:   splitter,
		logger:     logger.With("component", "mark_shipped"),
	}
}

// Handle processes the mark-shipped command.
func (h *MarkShippedCommandHandler) Handle(ctx context.Context, cmd MarkShippedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	shipped, err := applyOrderTransition(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkShipped(cmd.Actor())
	})
	if err != nil {
		return err
	}

	if !shipped.HasUnfulfilledItems() {
		return nil
	}

	h.createFollowUp(ctx, shipped)
	return nil
}

// createFollowUp carves the unfulfilled remainder into a new order.
// Failures are logged, not returned: the shipment already committed.
func (h *MarkShippedCommandHandler) createFollowUp(ctx context.Context, origin *order.Order) {
	now := time.Now()
	followUp, err := h.splitter.Split(now, origin)
	if err != nil {
		h.logger.Error("fulfillment split failed", "order_number", origin.OrderNumber(), "error", err)
		return
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		h.logger.Error("follow-up transaction failed to begin",
			"order_number", origin.OrderNumber(), "error", err)
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, followUp); err != nil {
		h.logger.Error("follow-up order failed to persist",
			"order_number", origin.OrderNumber(), "follow_up_number", followUp.OrderNumber(), "error", err)
		return
	}

	message, err := newFollowUpCreatedMessage(followUp, origin.OrderNumber(), now)
	if err != nil {
		h.logger.Error("follow-up notification failed to build",
			"follow_up_number", followUp.OrderNumber(), "error", err)
		return
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		h.logger.Error("follow-up notification failed to persist",
			"follow_up_number", followUp.OrderNumber(), "error", err)
		return
	}

	if err = uow.Commit(ctx); err != nil {
		h.logger.Error("follow-up transaction failed to commit",
			"follow_up_number", followUp.OrderNumber(), "error", err)
		return
	}

	h.logger.Info("follow-up order created", "order_number", origin.OrderNumber(),
		"follow_up_number", followUp.OrderNumber(), "items", len(followUp.Items()))
}
