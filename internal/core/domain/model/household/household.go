package household

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrHouseholdIsNotConstructed is returned when a Household instance was not
// created through the NewHousehold factory method.
var ErrHouseholdIsNotConstructed = errors.New("Household must be created via NewHousehold constructor")

// Household is a recurring customer account. Orders reference it by id and
// snapshot its name and phone at ingestion time, so this entity is only read
// during ingestion and never blocks the pipeline when unavailable.
type Household struct {
	id    kernel.UUID
	name  string
	phone string

	isConstructed bool
}

// NewHousehold creates a household account.
func NewHousehold(id kernel.UUID, name, phone string) (*Household, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("household name")
	}

	return &Household{
		id:            id,
		name:          name,
		phone:         phone,
		isConstructed: true,
	}, nil
}

// Validate ensures the Household was created through a constructor.
func (h *Household) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHouseholdIsNotConstructed
	}
	return nil
}

// ID returns the household's unique identifier.
func (h *Household) ID() kernel.UUID {
	return h.id
}

// Name returns the household display name.
func (h *Household) Name() string {
	return h.name
}

// Phone returns the household contact phone.
func (h *Household) Phone() string {
	return h.phone
}
