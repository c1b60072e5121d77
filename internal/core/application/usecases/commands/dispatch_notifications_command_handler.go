package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/ports"
)

const (
	// dispatchBatchSize bounds one drain run so a backlog cannot stall the job.
	dispatchBatchSize = 50

	// maxDispatchAttempts is how often a message is retried before it is
	// parked as failed for manual inspection.
	maxDispatchAttempts = 5
)

// DispatchNotificationsCommandHandler drains pending outbox messages through
// the notification dispatcher. Each message's dispatch state is persisted
// individually, so one poisonous message never blocks the rest of the batch.
type DispatchNotificationsCommandHandler struct {
	uowFactory OutboxUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewDispatchNotificationsCommandHandler creates a handler for outbox drain runs.
func NewDispatchNotificationsCommandHandler(
	uowFactory OutboxUoWFactory, dispatcher ports.NotificationDispatcher, logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "dispatch_notifications"),
	}
}

// Handle processes one drain run over the pending outbox messages.
func (h *DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
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

	outboxRepo := uow.OutboxRepository()
	pending, err := outboxRepo.GetPending(ctx, dispatchBatchSize)
	if err != nil {
		return err
	}

	for _, message := range pending {
		if err = h.dispatcher.Dispatch(ctx, message); err != nil {
			h.logger.Warn("notification dispatch failed", "message_id", message.ID().String(),
				"kind", message.Kind(), "attempts", message.Attempts()+1, "error", err)
			message.RecordFailure(err, maxDispatchAttempts)
		} else {
			message.MarkSent(time.Now())
		}

		if err = outboxRepo.Update(ctx, message); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
