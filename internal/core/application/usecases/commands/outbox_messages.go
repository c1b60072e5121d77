package commands

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/outbox"
)

// notificationPayload is the serialized body of an outbox message. It carries
// enough to render a customer notification without re-reading the order.
type notificationPayload struct {
	OrderID           string `json:"order_id"`
	OrderNumber       string `json:"order_number"`
	Status            string `json:"status"`
	TotalCents        int64  `json:"total_cents"`
	CustomerEmail     string `json:"customer_email"`
	OriginOrderNumber string `json:"origin_order_number,omitempty"`
}

func newOrderCreatedMessage(aggregate *order.Order, now time.Time) (*outbox.Message, error) {
	return newOrderMessage(outbox.KindOrderCreated, aggregate, "", now)
}

func newStatusChangedMessage(aggregate *order.Order, now time.Time) (*outbox.Message, error) {
	return newOrderMessage(outbox.KindOrderStatusChanged, aggregate, "", now)
}

func newFollowUpCreatedMessage(followUp *order.Order, originNumber string, now time.Time) (*outbox.Message, error) {
	return newOrderMessage(outbox.KindFollowUpCreated, followUp, originNumber, now)
}

func newOrderMessage(kind string, aggregate *order.Order, originNumber string, now time.Time) (*outbox.Message, error) {
	payload, err := json.Marshal(notificationPayload{
		OrderID:           aggregate.ID().String(),
		OrderNumber:       aggregate.OrderNumber(),
		Status:            aggregate.Status().String(),
		TotalCents:        aggregate.TotalAmount().Cents(),
		CustomerEmail:     aggregate.Customer().Email,
		OriginOrderNumber: originNumber,
	})
	if err != nil {
		return nil, err
	}

	return outbox.NewMessage(kernel.NewUUID(), aggregate.ID(), kind, payload, now)
}
