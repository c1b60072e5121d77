package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor was not created through NewActor.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Role identifies who is performing an order transition. The transition policy
// table keys on it, so every role check in the system lives in one place.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RolePicker is the staff member who gathers items during shopping.
	RolePicker

	// RoleVendor is the vendor fulfilling the order.
	RoleVendor

	// RoleAdmin is marketplace staff with vendor-equivalent transition rights.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RolePicker:  "picker",
		RoleVendor:  "vendor",
		RoleAdmin:   "admin",
	}
}

// RoleFromString parses a role name carried by a request header or token.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if role != RoleUnknown && name == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// String returns the lowercase role name.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the role is one of the known roles.
func (r Role) Validate() error {
	if r != RolePicker && r != RoleVendor && r != RoleAdmin {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the explicit request-scoped identity performing a transition.
// It is threaded into every handler call; no ambient session state is consulted.
type Actor struct {
	role Role
	id   kernel.UUID
	name string

	isConstructed bool
}

// NewActor creates an Actor with a validated role and identity.
func NewActor(role Role, id kernel.UUID, name string) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		role:          role,
		id:            id,
		name:          name,
		isConstructed: true,
	}, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if !a.isConstructed {
		return ErrActorIsNotConstructed
	}
	return nil
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's user identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Name returns the actor's display name.
func (a Actor) Name() string {
	return a.name
}
