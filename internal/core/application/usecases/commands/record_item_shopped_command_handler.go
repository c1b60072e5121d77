package commands

import (
	"context"
)

// RecordItemShoppedCommandHandler stores the actually gathered quantity of a
// line item while the order is in shopping. No notification is emitted:
// per-item progress is internal to the shopping session.
type RecordItemShoppedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewRecordItemShoppedCommandHandler creates a handler for recording shopped items.
func NewRecordItemShoppedCommandHandler(uowFactory OrderUoWFactory) RecordItemShoppedCommandHandler {
	return RecordItemShoppedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the record-item-shopped command.
func (h *RecordItemShoppedCommandHandler) Handle(ctx context.Context, cmd RecordItemShoppedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.RecordShopping(cmd.ProductID(), cmd.ActualQuantity()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
