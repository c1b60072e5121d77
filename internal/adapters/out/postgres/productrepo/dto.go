// Package productrepo provides data transfer objects and mapping functions for catalog persistence.
// This package implements the repository pattern for the product domain aggregate, handling
// the conversion between domain entities and database representations.
package productrepo

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting catalog products.
type ProductDTO struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey"`
	VendorID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	Name            string              `gorm:"type:varchar(255);not null"`
	Unit            string              `gorm:"type:varchar(32)"`
	BasePriceCents  int64               `gorm:"type:bigint;not null"`
	HouseholdPrices []HouseholdPriceDTO `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for product entities.
// Overrides GORM's default naming convention to use "products".
func (ProductDTO) TableName() string {
	return "products"
}

// HouseholdPriceDTO represents a negotiated per-household price override.
type HouseholdPriceDTO struct {
	ProductID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	HouseholdID uuid.UUID `gorm:"type:uuid;primaryKey"`
	PriceCents  int64     `gorm:"type:bigint;not null"`
}

// TableName specifies the database table name for household price overrides.
// Overrides GORM's default naming convention to use "product_household_prices".
func (HouseholdPriceDTO) TableName() string {
	return "product_household_prices"
}

// fromDomain converts a product domain aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	productID := aggregate.ID().Bytes()

	prices := aggregate.HouseholdPrices()
	overrides := make([]HouseholdPriceDTO, 0, len(prices))
	for householdID, price := range prices {
		overrides = append(overrides, HouseholdPriceDTO{
			ProductID:   productID,
			HouseholdID: householdID.Bytes(),
			PriceCents:  price.Cents(),
		})
	}

	return ProductDTO{
		ID:              productID,
		VendorID:        aggregate.VendorID().Bytes(),
		Name:            aggregate.Name(),
		Unit:            aggregate.Unit(),
		BasePriceCents:  aggregate.BasePrice().Cents(),
		HouseholdPrices: overrides,
	}
}

// toDomain converts a database DTO to a product domain aggregate.
// Reconstructs the aggregate including household overrides using RestoreProduct.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	overrides := make(map[kernel.UUID]kernel.Money, len(dto.HouseholdPrices))
	for _, priceDto := range dto.HouseholdPrices {
		householdID, householdErr := kernel.UUIDFromBytes(priceDto.HouseholdID[:])
		if householdErr != nil {
			return nil, householdErr
		}
		overrides[householdID] = kernel.MoneyFromCents(priceDto.PriceCents)
	}

	return product.RestoreProduct(id, vendorID, dto.Name, dto.Unit,
		kernel.MoneyFromCents(dto.BasePriceCents), overrides)
}
