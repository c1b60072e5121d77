package order

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when an Item instance was not created
// through the NewItem or RestoreItem factory methods.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")

// maxItemQuantity bounds a single line item. Orders above this are almost
// certainly malformed events.
const maxItemQuantity = 9999

// Item is a line item of an Order.
//
// quantity is what the customer ordered; actualQuantity is what the picker
// actually gathered and stays nil until shopping records it. The effective
// quantity used for totals is actualQuantity when set, quantity otherwise.
type Item struct {
	productID           kernel.UUID
	name                string
	quantity            int
	actualQuantity      *int
	price               kernel.Money
	unit                string
	substituteProductID *kernel.UUID
	modified            bool
	shopped             bool
	available           bool

	isConstructed bool
}

// NewItem creates a line item for a freshly ingested order: not yet shopped,
// available, with no recorded actual quantity.
func NewItem(productID kernel.UUID, name string, quantity int, price kernel.Money, unit string) (Item, error) {
	if err := productID.Validate(); err != nil {
		return Item{}, err
	}
	if name == "" {
		return Item{}, errs.NewValueIsRequiredError("item name")
	}
	if quantity < 1 || quantity > maxItemQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("item quantity", quantity, 1, maxItemQuantity)
	}

	return Item{
		productID:     productID,
		name:          name,
		quantity:      quantity,
		price:         price,
		unit:          unit,
		available:     true,
		isConstructed: true,
	}, nil
}

// RestoreItem reconstructs a line item from persistence with its full
// fulfillment state.
func RestoreItem(
	productID kernel.UUID,
	name string,
	quantity int,
	actualQuantity *int,
	price kernel.Money,
	unit string,
	substituteProductID *kernel.UUID,
	modified, shopped, available bool,
) (Item, error) {
	item, err := NewItem(productID, name, quantity, price, unit)
	if err != nil {
		return Item{}, err
	}

	item.actualQuantity = actualQuantity
	item.substituteProductID = substituteProductID
	item.modified = modified
	item.shopped = shopped
	item.available = available
	return item, nil
}

// Validate ensures the Item was created through a constructor.
func (i Item) Validate() error {
	if !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ProductID returns the catalog product identifier.
func (i Item) ProductID() kernel.UUID {
	return i.productID
}

// Name returns the product name denormalized onto the line item.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the ordered quantity.
func (i Item) Quantity() int {
	return i.quantity
}

// ActualQuantity returns the quantity recorded during shopping.
// Nil until shopping records it.
func (i Item) ActualQuantity() *int {
	return i.actualQuantity
}

// Price returns the unit price locked in at ingestion time.
func (i Item) Price() kernel.Money {
	return i.price
}

// Unit returns the measurement unit, e.g. "kg" or "pcs".
func (i Item) Unit() string {
	return i.unit
}

// SubstituteProductID returns the replacement product chosen during shopping.
// Nil when no substitution was made.
func (i Item) SubstituteProductID() *kernel.UUID {
	return i.substituteProductID
}

// Modified reports whether shopping changed the item from what was ordered.
func (i Item) Modified() bool {
	return i.modified
}

// Shopped reports whether a picker has processed the item.
func (i Item) Shopped() bool {
	return i.shopped
}

// Available reports whether the item was available at the vendor.
func (i Item) Available() bool {
	return i.available
}

// EffectiveQuantity returns actualQuantity when set, the ordered quantity otherwise.
func (i Item) EffectiveQuantity() int {
	if i.actualQuantity != nil {
		return *i.actualQuantity
	}
	return i.quantity
}

// IsFulfilled reports whether shopping gathered at least one unit of the item.
// Items with a nil or zero actual quantity are unfulfilled and belong in a
// follow-up order.
func (i Item) IsFulfilled() bool {
	return i.actualQuantity != nil && *i.actualQuantity > 0
}

// Subtotal returns price multiplied by the effective quantity.
func (i Item) Subtotal() kernel.Money {
	return i.price.Mul(i.EffectiveQuantity())
}

// ResetForFollowUp returns a copy of the item with all fulfillment state
// cleared, keeping the ordered quantity and the original price.
func (i Item) ResetForFollowUp() Item {
	reset := i
	reset.actualQuantity = nil
	reset.substituteProductID = nil
	reset.modified = false
	reset.shopped = false
	reset.available = true
	return reset
}

// recordShopping returns a copy of the item with the gathered quantity applied.
func (i Item) recordShopping(actualQuantity int) Item {
	updated := i
	updated.actualQuantity = &actualQuantity
	updated.shopped = true
	updated.modified = actualQuantity != i.quantity
	updated.available = actualQuantity > 0
	return updated
}
