package product

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not created
// through the NewProduct or RestoreProduct factory methods.
var ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")

// Product is a catalog entry. Orders denormalize its name and price onto their
// line items at ingestion time, so later catalog edits never change an order.
//
// A product carries a base price and optional per-household overrides.
// PriceFor resolves the price to lock onto a line item.
type Product struct {
	id              kernel.UUID
	vendorID        kernel.UUID
	name            string
	unit            string
	basePrice       kernel.Money
	householdPrices map[kernel.UUID]kernel.Money

	isConstructed bool
}

// NewProduct creates a catalog product with its base price.
func NewProduct(id, vendorID kernel.UUID, name, unit string, basePrice kernel.Money) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := vendorID.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("product name")
	}

	return &Product{
		id:              id,
		vendorID:        vendorID,
		name:            name,
		unit:            unit,
		basePrice:       basePrice,
		householdPrices: map[kernel.UUID]kernel.Money{},
		isConstructed:   true,
	}, nil
}

// RestoreProduct reconstructs a product from persistence, including its
// household price overrides.
func RestoreProduct(
	id, vendorID kernel.UUID,
	name, unit string,
	basePrice kernel.Money,
	householdPrices map[kernel.UUID]kernel.Money,
) (*Product, error) {
	restored, err := NewProduct(id, vendorID, name, unit, basePrice)
	if err != nil {
		return nil, err
	}

	for householdID, price := range householdPrices {
		restored.householdPrices[householdID] = price
	}
	return restored, nil
}

// Validate ensures the Product was created through a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// VendorID returns the owning vendor.
func (p *Product) VendorID() kernel.UUID {
	return p.vendorID
}

// Name returns the product name.
func (p *Product) Name() string {
	return p.name
}

// Unit returns the measurement unit, e.g. "kg" or "pcs".
func (p *Product) Unit() string {
	return p.unit
}

// BasePrice returns the list price without household overrides.
func (p *Product) BasePrice() kernel.Money {
	return p.basePrice
}

// HouseholdPrices returns a copy of the per-household price overrides.
func (p *Product) HouseholdPrices() map[kernel.UUID]kernel.Money {
	prices := make(map[kernel.UUID]kernel.Money, len(p.householdPrices))
	for householdID, price := range p.householdPrices {
		prices[householdID] = price
	}
	return prices
}

// SetHouseholdPrice records a negotiated price for a household.
func (p *Product) SetHouseholdPrice(householdID kernel.UUID, price kernel.Money) error {
	if err := householdID.Validate(); err != nil {
		return err
	}
	p.householdPrices[householdID] = price
	return nil
}

// PriceFor returns the household override when one exists, the base price
// otherwise. A nil household always resolves to the base price.
func (p *Product) PriceFor(householdID *kernel.UUID) kernel.Money {
	if householdID != nil {
		if price, ok := p.householdPrices[*householdID]; ok {
			return price
		}
	}
	return p.basePrice
}
