package commands

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// StartProcessingCommandHandler moves a pending or follow-up order into
// shopping and assigns the acting user as its picker.
type StartProcessingCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewStartProcessingCommandHandler creates a handler for starting order processing.
func NewStartProcessingCommandHandler(uowFactory OrderUoWFactory) StartProcessingCommandHandler {
	return StartProcessingCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the start-processing command.
func (h *StartProcessingCommandHandler) Handle(ctx context.Context, cmd StartProcessingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	_, err := applyOrderTransition(ctx, h.uowFactory, cmd.OrderID(), func(aggregate *order.Order) error {
		return aggregate.StartShopping(cmd.Actor())
	})
	return err
}
