package commands

import (
	"encoding/json"
	"time"

	"marketplace/internal/pkg/errs"
)

// paymentEvent is the wire shape of a payment-completed webhook body.
// Monetary values arrive as decimal strings; item prices are resolved from
// the catalog, the event only carries what the customer ordered.
type paymentEvent struct {
	SessionID   string             `json:"session_id"`
	VendorID    string             `json:"vendor_id"`
	HouseholdID *string            `json:"household_id,omitempty"`
	Customer    paymentCustomer    `json:"customer"`
	Delivery    paymentDelivery    `json:"delivery"`
	DeliveryFee string             `json:"delivery_fee"`
	Items       []paymentEventItem `json:"items"`
}

type paymentCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type paymentDelivery struct {
	Street     string     `json:"street"`
	City       string     `json:"city"`
	Comment    string     `json:"comment,omitempty"`
	DeliveryAt *time.Time `json:"delivery_at,omitempty"`
}

type paymentEventItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// parsePaymentEvent decodes and structurally validates a webhook body.
// Reference checks (catalog, household) happen later, inside the
// ingestion transaction.
func parsePaymentEvent(payload []byte) (paymentEvent, error) {
	var event paymentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return paymentEvent{}, errs.NewValueIsInvalidErrorWithCause("payment event payload", err)
	}

	if event.SessionID == "" {
		return paymentEvent{}, errs.NewValueIsRequiredError("session_id")
	}
	if event.VendorID == "" {
		return paymentEvent{}, errs.NewValueIsRequiredError("vendor_id")
	}
	if event.Customer.Email == "" {
		return paymentEvent{}, errs.NewValueIsRequiredError("customer.email")
	}
	if len(event.Items) == 0 {
		return paymentEvent{}, errs.NewValueIsRequiredError("items")
	}

	return event, nil
}
