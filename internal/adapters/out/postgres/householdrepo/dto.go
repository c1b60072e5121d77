// Package householdrepo provides data transfer objects and mapping functions
// for household account persistence.
package householdrepo

import (
	"marketplace/internal/core/domain/model/household"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// HouseholdDTO represents the database structure for persisting household accounts.
type HouseholdDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Phone string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for household entities.
// Overrides GORM's default naming convention to use "households".
func (HouseholdDTO) TableName() string {
	return "households"
}

// fromDomain converts a household domain aggregate to its database representation.
func fromDomain(aggregate *household.Household) HouseholdDTO {
	return HouseholdDTO{
		ID:    aggregate.ID().Bytes(),
		Name:  aggregate.Name(),
		Phone: aggregate.Phone(),
	}
}

// toDomain converts a database DTO to a household domain aggregate.
func toDomain(dto HouseholdDTO) (*household.Household, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return household.NewHousehold(id, dto.Name, dto.Phone)
}
