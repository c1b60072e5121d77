package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrGetOrderByNumberQueryIsNotConstructed = errors.New(
		"GetOrderByNumberQuery must be created via NewGetOrderByNumberQuery constructor",
	)
)

// GetOrderByNumberQuery retrieves one order with its line items by the
// human-readable order number, the identifier staff actually work with.
type GetOrderByNumberQuery struct {
	guard guard.ConstructorGuard

	orderNumber string
}

// NewGetOrderByNumberQuery creates a query for the given order number.
func NewGetOrderByNumberQuery(orderNumber string) (GetOrderByNumberQuery, error) {
	if orderNumber == "" {
		return GetOrderByNumberQuery{}, errs.NewValueIsRequiredError("order number")
	}

	return GetOrderByNumberQuery{
		guard:       guard.NewConstructorGuard(),
		orderNumber: orderNumber,
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderByNumberQueryIsNotConstructed if validation fails.
func (q GetOrderByNumberQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderByNumberQueryIsNotConstructed)
}

// OrderNumber returns the requested order number.
func (q GetOrderByNumberQuery) OrderNumber() string {
	return q.orderNumber
}

// GetOrderByNumberQueryResponse represents the detailed order read model.
type GetOrderByNumberQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        string
	IsPaid        bool
	Note          string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Street        string
	City          string
	TotalCents    int64
	Items         []GetOrderByNumberItemResponse
}

// GetOrderByNumberItemResponse represents one line item of the detailed read model.
type GetOrderByNumberItemResponse struct {
	ProductID      kernel.UUID
	Name           string
	Quantity       int
	ActualQuantity *int
	PriceCents     int64
	Unit           string
}
