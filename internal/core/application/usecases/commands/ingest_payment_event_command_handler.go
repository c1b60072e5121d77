package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/signature"
)

// IngestPaymentEventResult reports what ingestion resolved the webhook to.
// Duplicate is true when the payment session was already ingested; the
// returned order is then the one the first delivery created.
type IngestPaymentEventResult struct {
	OrderID     kernel.UUID
	OrderNumber string
	Duplicate   bool
}

// IngestPaymentEventCommandHandler turns verified payment-completed events
// into pending orders.
//
// Processing order:
//  1. Verify the HMAC signature against the raw body
//  2. Parse and structurally validate the event
//  3. Resolve the payment session against existing orders (idempotency)
//  4. Resolve every line item against the catalog; a miss aborts ingestion
//  5. Lock household-specific prices onto the items and create the order
//  6. Persist the order and its notification in one transaction
//
// A replayed event, including one racing a concurrent first delivery, always
// resolves to the order created by whichever delivery won the unique index on
// the payment session id.
type IngestPaymentEventCommandHandler struct {
	uowFactory    IngestionUoWFactory
	webhookSecret string
	logger        *slog.Logger
}

// NewIngestPaymentEventCommandHandler creates a handler for payment event ingestion.
func NewIngestPaymentEventCommandHandler(
	uowFactory IngestionUoWFactory, webhookSecret string, logger *slog.Logger,
) IngestPaymentEventCommandHandler {
	return IngestPaymentEventCommandHandler{
		uowFactory:    uowFactory,
		webhookSecret: webhookSecret,
		logger:        logger.With("component", "ingest_payment_event"),
	}
}

// Handle processes a webhook delivery and returns the resulting order.
func (h *IngestPaymentEventCommandHandler) Handle(
	ctx context.Context, cmd IngestPaymentEventCommand,
) (IngestPaymentEventResult, error) {
	if err := cmd.Validate(); err != nil {
		return IngestPaymentEventResult{}, err
	}

	if err := signature.Verify(h.webhookSecret, cmd.Payload(), cmd.Signature()); err != nil {
		return IngestPaymentEventResult{}, err
	}

	event, err := parsePaymentEvent(cmd.Payload())
	if err != nil {
		return IngestPaymentEventResult{}, err
	}

	vendorID, err := kernel.UUIDFromString(event.VendorID)
	if err != nil {
		return IngestPaymentEventResult{}, errs.NewValueIsInvalidErrorWithCause("vendor_id", err)
	}

	var householdID *kernel.UUID
	if event.HouseholdID != nil {
		parsed, parseErr := kernel.UUIDFromString(*event.HouseholdID)
		if parseErr != nil {
			return IngestPaymentEventResult{}, errs.NewValueIsInvalidErrorWithCause("household_id", parseErr)
		}
		householdID = &parsed
	}

	deliveryFee, err := kernel.MoneyFromDecimalString(event.DeliveryFee)
	if err != nil {
		return IngestPaymentEventResult{}, errs.NewValueIsInvalidErrorWithCause("delivery_fee", err)
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return IngestPaymentEventResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	existing, err := orderRepo.GetByPaymentSessionID(ctx, event.SessionID)
	if err == nil {
		h.logger.Info("payment event replayed", "payment_session_id", event.SessionID,
			"order_number", existing.OrderNumber())
		return IngestPaymentEventResult{
			OrderID:     existing.ID(),
			OrderNumber: existing.OrderNumber(),
			Duplicate:   true,
		}, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return IngestPaymentEventResult{}, err
	}

	items, err := h.buildItems(ctx, uow, event, householdID)
	if err != nil {
		return IngestPaymentEventResult{}, err
	}

	now := time.Now()
	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		order.NewOrderNumber(now, householdID, vendorID),
		event.SessionID,
		vendorID,
		householdID,
		order.Customer{Name: event.Customer.Name, Email: event.Customer.Email, Phone: event.Customer.Phone},
		order.DeliveryDetails{
			Street:     event.Delivery.Street,
			City:       event.Delivery.City,
			Comment:    event.Delivery.Comment,
			DeliveryAt: event.Delivery.DeliveryAt,
		},
		items,
		deliveryFee,
	)
	if err != nil {
		return IngestPaymentEventResult{}, err
	}

	h.enrichHousehold(ctx, aggregate, householdID)

	if err = orderRepo.Add(ctx, aggregate); err != nil {
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			return h.resolveDuplicate(ctx, event.SessionID)
		}
		return IngestPaymentEventResult{}, err
	}

	message, err := newOrderCreatedMessage(aggregate, now)
	if err != nil {
		return IngestPaymentEventResult{}, err
	}
	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return IngestPaymentEventResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return IngestPaymentEventResult{}, err
	}

	h.logger.Info("order ingested", "order_number", aggregate.OrderNumber(),
		"payment_session_id", event.SessionID, "total_cents", aggregate.TotalAmount().Cents())

	return IngestPaymentEventResult{
		OrderID:     aggregate.ID(),
		OrderNumber: aggregate.OrderNumber(),
	}, nil
}

// buildItems resolves every event item against the catalog and locks the
// household-specific price onto the line item. Any miss aborts ingestion:
// an order priced off a stale or unknown product must never be accepted.
func (h *IngestPaymentEventCommandHandler) buildItems(
	ctx context.Context, uow IngestionUoW, event paymentEvent, householdID *kernel.UUID,
) ([]order.Item, error) {
	productIDs := make([]kernel.UUID, 0, len(event.Items))
	for _, eventItem := range event.Items {
		productID, err := kernel.UUIDFromString(eventItem.ProductID)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("product_id", err)
		}
		productIDs = append(productIDs, productID)
	}

	catalog, err := uow.ProductRepository().GetBatch(ctx, productIDs)
	if err != nil {
		return nil, errs.NewDependencyFailedErrorWithCause("product catalog", err)
	}

	items := make([]order.Item, 0, len(event.Items))
	for idx, eventItem := range event.Items {
		resolved, ok := catalog[productIDs[idx]]
		if !ok {
			h.logger.Error("payment event references unknown product",
				"product_id", eventItem.ProductID, "payment_session_id", event.SessionID)
			return nil, errs.NewDependencyFailedErrorWithCause("product catalog",
				errs.NewObjectNotFoundError("product", eventItem.ProductID))
		}

		item, err := order.NewItem(
			resolved.ID(), resolved.Name(), eventItem.Quantity,
			resolved.PriceFor(householdID), resolved.Unit(),
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// enrichHousehold snapshots household contact details onto the order.
// Best effort: a failed lookup is logged and ingestion continues, the
// snapshot is presentation data, not a pipeline dependency. The read runs on
// its own unit of work; inside the insert transaction a database error would
// poison the transaction and abort ingestion with it.
func (h *IngestPaymentEventCommandHandler) enrichHousehold(
	ctx context.Context, aggregate *order.Order, householdID *kernel.UUID,
) {
	if householdID == nil {
		return
	}

	account, err := h.uowFactory.Create().HouseholdRepository().Get(ctx, *householdID)
	if err != nil {
		h.logger.Warn("household lookup failed, order ingested without snapshot",
			"household_id", householdID.String(), "error", err)
		return
	}

	aggregate.SetHouseholdSnapshot(account.Name(), account.Phone())
}

// resolveDuplicate re-reads the order after losing the unique index race to a
// concurrent delivery of the same event. Runs in a fresh transaction because
// the losing insert aborted the current one.
func (h *IngestPaymentEventCommandHandler) resolveDuplicate(
	ctx context.Context, paymentSessionID string,
) (IngestPaymentEventResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return IngestPaymentEventResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	winner, err := uow.OrderRepository().GetByPaymentSessionID(ctx, paymentSessionID)
	if err != nil {
		return IngestPaymentEventResult{}, err
	}

	h.logger.Info("payment event lost ingestion race", "payment_session_id", paymentSessionID,
		"order_number", winner.OrderNumber())

	return IngestPaymentEventResult{
		OrderID:     winner.ID(),
		OrderNumber: winner.OrderNumber(),
		Duplicate:   true,
	}, nil
}
