package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role identifies which of the four marketplace parties an authenticated
// principal acts as. Authentication itself is a collaborator concern; the
// core only ever sees the resolved {id, role} pair.
type Role int

const (
	// RoleUnknown catches uninitialized Role values.
	RoleUnknown Role = iota

	// RoleCustomer places orders and owns carts.
	RoleCustomer

	// RoleRestaurantOwner advances preparation for orders of owned restaurants.
	RoleRestaurantOwner

	// RoleDriver claims ready orders and completes deliveries.
	RoleDriver

	// RoleAdmin may perform any restaurant-side transition.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:         "UNKNOWN",
		RoleCustomer:        "CUSTOMER",
		RoleRestaurantOwner: "RESTAURANT_OWNER",
		RoleDriver:          "DRIVER",
		RoleAdmin:           "ADMIN",
	}
}

// RoleFromString parses the wire representation of a role.
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r == RoleUnknown {
		return errs.NewValueIsInvalidError("role")
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role, "UNKNOWN" for invalid values.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// ErrActorIsNotConstructed is returned when validating a zero-value Actor.
var ErrActorIsNotConstructed = errs.NewValueIsRequiredError("Actor must be created via NewActor")

// Actor is the authenticated principal attached to a request: an identity
// plus a tagged role. The transition authorizer pattern-matches on the role
// and compares the identity against the order's assigned parties, replacing
// any structural probing of the caller.
type Actor struct {
	id   UUID
	role Role
}

// NewActor creates an Actor from a validated identity and role.
func NewActor(id UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{id: id, role: role}, nil
}

// Validate ensures the Actor was created via NewActor.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return ErrActorIsNotConstructed
	}
	return nil
}

// ID returns the principal's identity.
func (a Actor) ID() UUID {
	return a.id
}

// Role returns the principal's role.
func (a Actor) Role() Role {
	return a.role
}
