// Package guard provides ConstructorGuard, a marker that lets value objects,
// entities and commands tell whether they were built through their
// constructor or are zero values.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into types that must only be created through a
// constructor function. The zero value fails validation.
//
// Example usage:
//
//	var ErrTicketNotConstructed = errors.New("Ticket must be created via NewTicket")
//
//	type Ticket struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewTicket(code string) (Ticket, error) {
//	    if code == "" {
//	        return Ticket{}, errors.New("code is required")
//	    }
//	    return Ticket{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (t Ticket) Validate() error {
//	    return t.guard.Validate(ErrTicketNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that marks its owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the owner was not created through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
