package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// MarkReadyCommandHandler moves a shopped order into ready_for_shipping.
type MarkReadyCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkReadyCommandHandler creates a handler for marking orders ready.
func NewMarkReadyCommandHandler(uowFactory OrderUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the mark-ready command.
func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyOrderTransition(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.MarkReady(cmd.Actor())
	})
	return err
}
