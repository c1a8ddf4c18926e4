package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as produced by its constructor so that zero
// values of commands, queries and domain objects can be told apart from
// validated ones.
//
// Example usage:
//
//	type TransferStockCommand struct {
//	    itemID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c TransferStockCommand) Validate() error {
//	    return c.guard.Validate(ErrTransferStockCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that validates successfully.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guarded value was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
