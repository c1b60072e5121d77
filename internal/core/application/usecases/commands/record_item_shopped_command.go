package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrRecordItemShoppedCommandIsNotConstructed = errors.New(
	"RecordItemShoppedCommand must be created via NewRecordItemShoppedCommand constructor",
)

// maxRecordableQuantity mirrors the line item bound; commands above it are
// rejected before touching the aggregate.
const maxRecordableQuantity = 9999

// RecordItemShoppedCommand represents a picker reporting how many units of a
// line item were actually gathered. Zero means the item was unavailable.
type RecordItemShoppedCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	productID      kernel.UUID
	actualQuantity int

	guard guard.ConstructorGuard
}

// NewRecordItemShoppedCommand creates a command to record a gathered quantity.
func NewRecordItemShoppedCommand(
	orderID, productID kernel.UUID, actualQuantity int,
) (RecordItemShoppedCommand, error) {
	cmd := RecordItemShoppedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setProductID(productID),
		cmd.setActualQuantity(actualQuantity),
	); err != nil {
		return RecordItemShoppedCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordItemShoppedCommand) Validate() error {
	return c.guard.Validate(ErrRecordItemShoppedCommandIsNotConstructed)
}

// OrderID returns the order being shopped.
func (c RecordItemShoppedCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ProductID returns the line item's product.
func (c RecordItemShoppedCommand) ProductID() kernel.UUID {
	return c.productID
}

// ActualQuantity returns the quantity the picker gathered.
func (c RecordItemShoppedCommand) ActualQuantity() int {
	return c.actualQuantity
}

func (c *RecordItemShoppedCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *RecordItemShoppedCommand) setProductID(productID kernel.UUID) error {
	if err := productID.Validate(); err != nil {
		return err
	}

	c.productID = productID
	return nil
}

func (c *RecordItemShoppedCommand) setActualQuantity(actualQuantity int) error {
	if actualQuantity < 0 || actualQuantity > maxRecordableQuantity {
		return errs.NewValueIsOutOfRangeError("actual quantity", actualQuantity, 0, maxRecordableQuantity)
	}

	c.actualQuantity = actualQuantity
	return nil
}
