// Package order provides domain entities and business logic for order
// management in the marketplace. It implements the Order aggregate root with
// lifecycle management, role-gated state transitions, and line item
// fulfillment tracking.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, totals, and lifecycle
//   - Item: A line item tracking ordered versus actually gathered quantities
//   - Status: A state machine whose transitions are driven by a (role, status) policy table
//   - Actor: The explicit request-scoped identity performing a transition
//   - NewOrderNumber: The time-derived generator for human-readable order codes
//
// Key business rules:
//   - Orders are created from payment events (pending) or fulfillment splits (follow_up)
//   - Status follows the workflow: pending/follow_up -> shopping -> ready_for_shipping -> delivery -> delivered
//   - Cancellation is possible from any non-terminal status
//   - delivered and cancelled are terminal; terminal orders never transition again
//   - Total amount always equals the items total plus the delivery fee
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
