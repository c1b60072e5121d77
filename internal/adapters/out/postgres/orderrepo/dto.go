// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Unique indexes on order number and payment session id back webhook
// idempotency: a replayed payment event fails the insert instead of creating
// a second order.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderNumber      string         `gorm:"type:varchar(64);not null;uniqueIndex"`
	PaymentSessionID *string        `gorm:"type:varchar(255);uniqueIndex"`
	Status           int            `gorm:"type:int;not null;index"`
	VendorID         uuid.UUID      `gorm:"type:uuid;not null;index"`
	HouseholdID      *uuid.UUID     `gorm:"type:uuid;index"`
	HouseholdName    *string        `gorm:"type:varchar(255)"`
	HouseholdPhone   *string        `gorm:"type:varchar(64)"`
	Customer         CustomerDTO    `gorm:"embedded;embeddedPrefix:customer_"`
	Delivery         DeliveryDTO    `gorm:"embedded;embeddedPrefix:delivery_"`
	DeliveryFeeCents int64          `gorm:"type:bigint;not null"`
	PickerID         *uuid.UUID     `gorm:"type:uuid"`
	PickerName       string         `gorm:"type:varchar(255)"`
	Note             string         `gorm:"type:text"`
	IsPaid           bool           `gorm:"not null"`
	Items            []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded customer contact columns within the order table.
type CustomerDTO struct {
	Name  string `gorm:"type:varchar(255)"`
	Email string `gorm:"type:varchar(255);not null"`
	Phone string `gorm:"type:varchar(64)"`
}

// DeliveryDTO represents the embedded delivery destination columns within the order table.
type DeliveryDTO struct {
	Street     string `gorm:"type:varchar(255)"`
	City       string `gorm:"type:varchar(255)"`
	Comment    string `gorm:"type:text"`
	DeliveryAt *time.Time
}

// OrderItemDTO represents the database structure for persisting order line items.
// Keyed by order and product since an order carries at most one line per product.
type OrderItemDTO struct {
	OrderID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ProductID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name                string     `gorm:"type:varchar(255);not null"`
	Quantity            int        `gorm:"type:int;not null"`
	ActualQuantity      *int       `gorm:"type:int"`
	PriceCents          int64      `gorm:"type:bigint;not null"`
	Unit                string     `gorm:"type:varchar(32)"`
	SubstituteProductID *uuid.UUID `gorm:"type:uuid"`
	Modified            bool       `gorm:"not null"`
	Shopped             bool       `gorm:"not null"`
	Available           bool       `gorm:"not null"`
}

// TableName specifies the database table name for order line items.
// Overrides GORM's default naming convention to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including line items and optional household linkage.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		var substituteID *uuid.UUID
		if item.SubstituteProductID() != nil {
			raw := item.SubstituteProductID().Bytes()
			substituteID = &raw
		}

		items = append(items, OrderItemDTO{
			OrderID:             orderID,
			ProductID:           item.ProductID().Bytes(),
			Name:                item.Name(),
			Quantity:            item.Quantity(),
			ActualQuantity:      item.ActualQuantity(),
			PriceCents:          item.Price().Cents(),
			Unit:                item.Unit(),
			SubstituteProductID: substituteID,
			Modified:            item.Modified(),
			Shopped:             item.Shopped(),
			Available:           item.Available(),
		})
	}

	var householdID *uuid.UUID
	if id := aggregate.HouseholdID(); id != nil {
		raw := id.Bytes()
		householdID = &raw
	}

	var pickerID *uuid.UUID
	if id := aggregate.PickerID(); id != nil {
		raw := id.Bytes()
		pickerID = &raw
	}

	return OrderDTO{
		ID:               orderID,
		OrderNumber:      aggregate.OrderNumber(),
		PaymentSessionID: aggregate.PaymentSessionID(),
		Status:           int(aggregate.Status()),
		VendorID:         aggregate.VendorID().Bytes(),
		HouseholdID:      householdID,
		HouseholdName:    aggregate.HouseholdName(),
		HouseholdPhone:   aggregate.HouseholdPhone(),
		Customer: CustomerDTO{
			Name:  aggregate.Customer().Name,
			Email: aggregate.Customer().Email,
			Phone: aggregate.Customer().Phone,
		},
		Delivery: DeliveryDTO{
			Street:     aggregate.Delivery().Street,
			City:       aggregate.Delivery().City,
			Comment:    aggregate.Delivery().Comment,
			DeliveryAt: aggregate.Delivery().DeliveryAt,
		},
		DeliveryFeeCents: aggregate.DeliveryFee().Cents(),
		PickerID:         pickerID,
		PickerName:       aggregate.PickerName(),
		Note:             aggregate.Note(),
		IsPaid:           aggregate.IsPaid(),
		Items:            items,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including line items using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vendorID, err := kernel.UUIDFromBytes(dto.VendorID[:])
	if err != nil {
		return nil, err
	}

	var householdID *kernel.UUID
	if dto.HouseholdID != nil {
		hID, householdErr := kernel.UUIDFromBytes((*dto.HouseholdID)[:])
		if householdErr != nil {
			return nil, householdErr
		}

		householdID = &hID
	}

	var pickerID *kernel.UUID
	if dto.PickerID != nil {
		pID, pickerErr := kernel.UUIDFromBytes((*dto.PickerID)[:])
		if pickerErr != nil {
			return nil, pickerErr
		}

		pickerID = &pID
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.PaymentSessionID,
		order.Status(dto.Status),
		vendorID,
		householdID,
		dto.HouseholdName,
		dto.HouseholdPhone,
		order.Customer{
			Name:  dto.Customer.Name,
			Email: dto.Customer.Email,
			Phone: dto.Customer.Phone,
		},
		order.DeliveryDetails{
			Street:     dto.Delivery.Street,
			City:       dto.Delivery.City,
			Comment:    dto.Delivery.Comment,
			DeliveryAt: dto.Delivery.DeliveryAt,
		},
		items,
		kernel.MoneyFromCents(dto.DeliveryFeeCents),
		pickerID,
		dto.PickerName,
		dto.Note,
		dto.IsPaid,
	)
}

// itemToDomain converts a line item DTO to its domain entity.
// Uses RestoreItem to reconstruct the item with its persisted fulfillment state.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	var substituteID *kernel.UUID
	if dto.SubstituteProductID != nil {
		sID, substituteErr := kernel.UUIDFromBytes((*dto.SubstituteProductID)[:])
		if substituteErr != nil {
			return order.Item{}, substituteErr
		}
		substituteID = &sID
	}

	return order.RestoreItem(
		productID,
		dto.Name,
		dto.Quantity,
		dto.ActualQuantity,
		kernel.MoneyFromCents(dto.PriceCents),
		dto.Unit,
		substituteID,
		dto.Modified,
		dto.Shopped,
		dto.Available,
	)
}
