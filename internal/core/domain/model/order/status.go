package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with role-gated transitions to ensure
// orders follow the fulfillment workflow.
//
// State transitions:
//
//	pending | follow_up ──start_processing──> shopping
//	shopping            ──mark_ready────────> ready_for_shipping
//	ready_for_shipping  ──mark_shipped──────> delivery
//	delivery            ──mark_delivered────> delivered        (terminal)
//	{any non-terminal}  ──cancel────────────> cancelled        (terminal)
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a gateway-originated order awaiting processing.
	Pending

	// FollowUp is the initial status of an order auto-created for items left
	// unfulfilled when its origin order shipped.
	FollowUp

	// Shopping indicates a picker is gathering the items.
	Shopping

	// ReadyForShipping indicates all shopping is done and the order awaits shipment.
	ReadyForShipping

	// Delivery indicates the order has shipped and is on its way.
	Delivery

	// Delivered indicates the order reached the customer. Terminal.
	Delivered

	// Cancelled indicates the order was cancelled. Terminal.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:          "unknown",
		Pending:          "pending",
		FollowUp:         "follow_up",
		Shopping:         "shopping",
		ReadyForShipping: "ready_for_shipping",
		Delivery:         "delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:          "pending",
		FollowUp:         "follow_up",
		Shopping:         "shopping",
		ReadyForShipping: "ready_for_shipping",
		Delivery:         "delivery",
		Delivered:        "delivered",
		Cancelled:        "cancelled",
	}
}

// transitionPolicy is the single source of truth for which role may move an
// order from which status into which targets. Every transition check delegates
// here; call sites never re-implement role or status rules.
//
// Per the workflow: start_processing is a picker/vendor action, the remaining
// transitions belong to vendor/admin, and cancel is available from any
// non-terminal status.
func transitionPolicy() map[Role]map[Status][]Status {
	return map[Role]map[Status][]Status{
		RolePicker: {
			Pending:  {Shopping},
			FollowUp: {Shopping},
		},
		RoleVendor: {
			Pending:          {Shopping, Cancelled},
			FollowUp:         {Shopping, Cancelled},
			Shopping:         {ReadyForShipping, Cancelled},
			ReadyForShipping: {Delivery, Cancelled},
			Delivery:         {Delivered, Cancelled},
		},
		RoleAdmin: {
			Pending:          {Cancelled},
			FollowUp:         {Cancelled},
			Shopping:         {ReadyForShipping, Cancelled},
			ReadyForShipping: {Delivery, Cancelled},
			Delivery:         {Delivered, Cancelled},
		},
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are the seven lifecycle states; Unknown (0) and any other
// values are invalid. Used to ensure Status values from external sources
// (database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase name of the status, e.g. "ready_for_shipping".
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is final. Terminal orders are retained
// for audit and billing and never transition again.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// CanTransition checks whether role may move an order from this status into
// target. Returns an OperationNotPermittedError describing the refused
// transition otherwise.
func (s Status) CanTransition(role Role, target Status) error {
	for _, allowed := range transitionPolicy()[role][s] {
		if allowed == target {
			return nil
		}
	}

	return errs.NewOperationNotPermittedErrorWithCause(
		fmt.Sprintf("%s -> %s", s, target),
		fmt.Errorf("role %s may not perform this transition", role),
	)
}

// StartShopping transitions pending or follow_up into shopping.
//
// Allowed actors: picker, vendor.
func (s Status) StartShopping(role Role) (Status, error) {
	if err := s.CanTransition(role, Shopping); err != nil {
		return 0, err
	}
	return Shopping, nil
}

// MarkReady transitions shopping into ready_for_shipping.
//
// Allowed actors: vendor, admin.
func (s Status) MarkReady(role Role) (Status, error) {
	if err := s.CanTransition(role, ReadyForShipping); err != nil {
		return 0, err
	}
	return ReadyForShipping, nil
}

// MarkShipped transitions ready_for_shipping into delivery.
//
// Allowed actors: vendor, admin. The caller is responsible for running the
// fulfillment split after the new status is persisted.
func (s Status) MarkShipped(role Role) (Status, error) {
	if err := s.CanTransition(role, Delivery); err != nil {
		return 0, err
	}
	return Delivery, nil
}

// MarkDelivered transitions delivery into delivered, a terminal state.
//
// Allowed actors: vendor, admin.
func (s Status) MarkDelivered(role Role) (Status, error) {
	if err := s.CanTransition(role, Delivered); err != nil {
		return 0, err
	}
	return Delivered, nil
}

// Cancel transitions any non-terminal status into cancelled, a terminal state.
//
// Allowed actors: vendor, admin.
func (s Status) Cancel(role Role) (Status, error) {
	if err := s.CanTransition(role, Cancelled); err != nil {
		return 0, err
	}
	return Cancelled, nil
}
