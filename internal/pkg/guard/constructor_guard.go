// Package guard provides the constructor guard pattern used by commands,
// queries and value objects to reject zero-value instances that bypassed
// their designated constructors.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is provided and the guarded object was not constructed.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its constructor.
// A zero-value guard fails Validate, which lets domain objects detect
// direct struct initialization.
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks the embedding object
// as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
