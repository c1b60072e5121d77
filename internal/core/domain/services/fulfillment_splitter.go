package services

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// FulfillmentSplitter is a domain service that produces the follow-up order
// for the unfulfilled remainder of a shipped order.
//
// Business rules:
//   - The origin order must be valid
//   - Only items with a zero or unrecorded actual quantity are carried over
//   - The follow-up order gets its own id and time-derived order number
//   - An origin with every item fulfilled yields order.ErrNothingToFollowUp
//
// The splitter never mutates the origin order. Running it is decided and
// persisted by the mark-shipped command handler, outside the transaction
// that recorded the status change.
type FulfillmentSplitter struct{}

// NewFulfillmentSplitter creates a new FulfillmentSplitter instance.
func NewFulfillmentSplitter() FulfillmentSplitter {
	return FulfillmentSplitter{}
}

// Split builds the follow-up order for origin's unfulfilled items.
// Returns order.ErrNothingToFollowUp when every item was fulfilled.
func (s FulfillmentSplitter) Split(now time.Time, origin *order.Order) (*order.Order, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	followUpNumber := order.NewOrderNumber(now, origin.HouseholdID(), origin.VendorID())
	return order.NewFollowUpOrder(kernel.NewUUID(), followUpNumber, origin)
}
