package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// a factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder, NewFollowUpOrder or RestoreOrder")

	// ErrNothingToFollowUp is returned by NewFollowUpOrder when every item of
	// the origin order was fulfilled.
	ErrNothingToFollowUp = errors.New("origin order has no unfulfilled items")
)

// Customer holds the contact details of the person the order is for.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// DeliveryDetails holds the destination and timing of the delivery.
type DeliveryDetails struct {
	Street     string
	City       string
	Comment    string
	DeliveryAt *time.Time
}

// Order is the aggregate root of the fulfillment pipeline. It is created by
// payment event ingestion (status pending) or by the fulfillment split
// (status follow_up) and afterwards mutated only through its role-gated
// transition methods.
//
// Order maintains these invariants:
//   - order number and vendor are set and immutable
//   - at least one line item; line items are valid
//   - total amount always equals items total plus delivery fee
//   - terminal statuses (delivered, cancelled) are never exited
type Order struct {
	id               kernel.UUID
	orderNumber      string
	paymentSessionID *string
	status           Status
	items            []Item
	deliveryFee      kernel.Money

	customer Customer
	delivery DeliveryDetails

	vendorID       kernel.UUID
	householdID    *kernel.UUID
	householdName  *string
	householdPhone *string

	pickerID   *kernel.UUID
	pickerName string

	note   string
	isPaid bool

	isConstructed bool
}

// NewOrder creates an order from a verified payment-completion event.
// The order starts in pending status and is marked paid: the gateway only
// notifies after the payment was captured.
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	paymentSessionID string,
	vendorID kernel.UUID,
	householdID *kernel.UUID,
	customer Customer,
	delivery DeliveryDetails,
	items []Item,
	deliveryFee kernel.Money,
) (*Order, error) {
	order := &Order{
		status:        Pending,
		isPaid:        true,
		isConstructed: true,
	}

	if paymentSessionID == "" {
		return nil, errs.NewValueIsRequiredError("payment session id")
	}
	order.paymentSessionID = &paymentSessionID

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setVendorID(vendorID),
		order.setHouseholdID(householdID),
		order.setCustomer(customer),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	order.delivery = delivery
	order.deliveryFee = deliveryFee
	return order, nil
}

// NewFollowUpOrder creates the secondary order for the items of origin that
// were not fulfilled at shipping time. Fulfillment state on the copied items
// is reset, delivery context is carried over verbatim, and the note records
// the origin order number. No delivery fee is charged a second time.
func NewFollowUpOrder(id kernel.UUID, orderNumber string, origin *Order) (*Order, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	unfulfilled := origin.UnfulfilledItems()
	if len(unfulfilled) == 0 {
		return nil, ErrNothingToFollowUp
	}

	items := make([]Item, 0, len(unfulfilled))
	for _, item := range unfulfilled {
		items = append(items, item.ResetForFollowUp())
	}

	order := &Order{
		status:         FollowUp,
		isPaid:         origin.isPaid,
		customer:       origin.customer,
		delivery:       origin.delivery,
		householdID:    origin.householdID,
		householdName:  origin.householdName,
		householdPhone: origin.householdPhone,
		note:           fmt.Sprintf("follow-up for order %s", origin.orderNumber),
		isConstructed:  true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setVendorID(origin.vendorID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an order from persistence.
// It validates the restored state to ensure data integrity.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	paymentSessionID *string,
	status Status,
	vendorID kernel.UUID,
	householdID *kernel.UUID,
	householdName *string,
	householdPhone *string,
	customer Customer,
	delivery DeliveryDetails,
	items []Item,
	deliveryFee kernel.Money,
	pickerID *kernel.UUID,
	pickerName string,
	note string,
	isPaid bool,
) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	order := &Order{
		paymentSessionID: paymentSessionID,
		status:           status,
		deliveryFee:      deliveryFee,
		customer:         customer,
		delivery:         delivery,
		householdName:    householdName,
		householdPhone:   householdPhone,
		pickerName:       pickerName,
		note:             note,
		isPaid:           isPaid,
		isConstructed:    true,
	}

	if pickerID != nil {
		if err := pickerID.Validate(); err != nil {
			return nil, err
		}
		order.pickerID = pickerID
	}

	if err := errors.Join(
		order.setID(id),
		order.setOrderNumber(orderNumber),
		order.setVendorID(vendorID),
		order.setHouseholdID(householdID),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the immutable human-readable order code.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// PaymentSessionID returns the payment gateway session that created the order.
// Nil for follow-up orders.
func (o *Order) PaymentSessionID() *string {
	return o.paymentSessionID
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Items returns a copy of the order's line items.
func (o *Order) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// DeliveryFee returns the delivery fee applied at ingestion.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Customer returns the customer contact details.
func (o *Order) Customer() Customer {
	return o.customer
}

// Delivery returns the delivery destination details.
func (o *Order) Delivery() DeliveryDetails {
	return o.delivery
}

// VendorID returns the fulfilling vendor.
func (o *Order) VendorID() kernel.UUID {
	return o.vendorID
}

// HouseholdID returns the household the order was placed for, if any.
func (o *Order) HouseholdID() *kernel.UUID {
	return o.householdID
}

// HouseholdName returns the denormalized household name snapshot, if resolved.
func (o *Order) HouseholdName() *string {
	return o.householdName
}

// HouseholdPhone returns the denormalized household phone snapshot, if resolved.
func (o *Order) HouseholdPhone() *string {
	return o.householdPhone
}

// PickerID returns the assigned picker. Nil until processing starts.
func (o *Order) PickerID() *kernel.UUID {
	return o.pickerID
}

// PickerName returns the assigned picker's display name.
func (o *Order) PickerName() string {
	return o.pickerName
}

// Note returns the free-form order note.
func (o *Order) Note() string {
	return o.note
}

// IsPaid reports whether the originating payment was captured.
func (o *Order) IsPaid() bool {
	return o.isPaid
}

// ItemsTotal returns the sum of line item subtotals at effective quantities.
func (o *Order) ItemsTotal() kernel.Money {
	var total kernel.Money
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalAmount returns items total plus delivery fee. Derived on every call so
// the totals invariant holds at every mutation.
func (o *Order) TotalAmount() kernel.Money {
	return o.ItemsTotal().Add(o.deliveryFee)
}

// UnfulfilledItems returns the items whose actual quantity is zero or was
// never recorded. These are the candidates for a follow-up order.
func (o *Order) UnfulfilledItems() []Item {
	unfulfilled := make([]Item, 0, len(o.items))
	for _, item := range o.items {
		if !item.IsFulfilled() {
			unfulfilled = append(unfulfilled, item)
		}
	}
	return unfulfilled
}

// HasUnfulfilledItems reports whether any item would end up in a follow-up order.
func (o *Order) HasUnfulfilledItems() bool {
	return len(o.UnfulfilledItems()) > 0
}

// SetHouseholdSnapshot records the denormalized household contact snapshot.
// This enrichment is best-effort; orders are valid without it.
func (o *Order) SetHouseholdSnapshot(name, phone string) {
	o.householdName = &name
	o.householdPhone = &phone
}

// StartShopping moves the order into shopping and assigns the acting user as
// the picker. Allowed from pending and follow_up for pickers and vendors.
func (o *Order) StartShopping(actor Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.StartShopping(actor.Role())
	if err != nil {
		return err
	}

	o.status = newStatus
	pickerID := actor.ID()
	o.pickerID = &pickerID
	o.pickerName = actor.Name()
	return nil
}

// RecordShopping stores the quantity actually gathered for a line item.
// Only valid while the order is in shopping status. A zero actual quantity
// marks the item unavailable; it will be carried into a follow-up order at
// shipping time.
func (o *Order) RecordShopping(productID kernel.UUID, actualQuantity int) error {
	if o.status != Shopping {
		return errs.NewOperationNotPermittedErrorWithCause("record_shopping",
			fmt.Errorf("order is %s, not %s", o.status, Shopping))
	}
	if actualQuantity < 0 || actualQuantity > maxItemQuantity {
		return errs.NewValueIsOutOfRangeError("actual quantity", actualQuantity, 0, maxItemQuantity)
	}

	for idx, item := range o.items {
		if item.ProductID().IsEqual(productID) {
			o.items[idx] = item.recordShopping(actualQuantity)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("product", productID.String())
}

// MarkReady moves the order from shopping to ready_for_shipping.
func (o *Order) MarkReady(actor Actor) error {
	return o.transition(actor, Status.MarkReady)
}

// MarkShipped moves the order from ready_for_shipping to delivery.
// The fulfillment split runs after the new status is persisted; see the
// mark-shipped command handler.
func (o *Order) MarkShipped(actor Actor) error {
	return o.transition(actor, Status.MarkShipped)
}

// MarkDelivered moves the order from delivery to the terminal delivered status.
func (o *Order) MarkDelivered(actor Actor) error {
	return o.transition(actor, Status.MarkDelivered)
}

// Cancel moves the order from any non-terminal status to the terminal
// cancelled status.
func (o *Order) Cancel(actor Actor) error {
	return o.transition(actor, Status.Cancel)
}

func (o *Order) transition(actor Actor, step func(Status, Role) (Status, error)) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	newStatus, err := step(o.status, actor.Role())
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setVendorID(vendorID kernel.UUID) error {
	if err := vendorID.Validate(); err != nil {
		return err
	}
	o.vendorID = vendorID
	return nil
}

func (o *Order) setHouseholdID(householdID *kernel.UUID) error {
	if householdID == nil {
		return nil
	}
	if err := householdID.Validate(); err != nil {
		return err
	}
	o.householdID = householdID
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if customer.Email == "" {
		return errs.NewValueIsRequiredError("customer email")
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}

	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}
