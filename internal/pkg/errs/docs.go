// Package errs provides standardized error types for the custody ledger.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package groups failures into the classes callers must react to differently:
//   - Validation (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError):
//     surfaced immediately, never retried, no partial state created
//   - ObjectNotFoundError: a referenced record does not exist
//   - IllegalStateError: the record is already in a state that forbids the action;
//     someone already acted, so the caller re-reads instead of retrying
//   - ContentionError: a conflicting concurrent write; retried internally up to a budget
//   - UnauthorizedError: a permission failure from the backing store; fatal
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// UserMessage turns any error into text safe to show an end user.
package errs
