package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects, entities, and commands are only
// created through their designated constructor functions. Embedding a guard
// lets Validate distinguish a properly constructed object from a zero value,
// which keeps domain invariants from being bypassed by direct struct
// initialization.
//
// Example:
//
//	type AddCartItemCommand struct {
//	    customerID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func NewAddCartItemCommand(customerID kernel.UUID) (AddCartItemCommand, error) {
//	    return AddCartItemCommand{
//	        customerID: customerID,
//	        guard:      guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c AddCartItemCommand) Validate() error {
//	    return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking its holder as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the holder was created through its constructor,
// otherwise the supplied validation error (or ErrDefaultConstructorGuard
// when the supplied error is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
