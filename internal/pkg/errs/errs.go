package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to one of them,
// so callers classify failures with errors.Is.
var (
	ErrValueIsRequired   = errors.New("value is required")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrObjectNotFound    = errors.New("object not found")
	ErrIllegalState      = errors.New("illegal state")
	ErrContention        = errors.New("contention")
	ErrUnauthorized      = errors.New("unauthorized")
)

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError reports a value that is present but unacceptable.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsOutOfRange, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError reports a lookup by id that matched nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// IllegalStateError reports an operation attempted on a record whose current
// state forbids it. Callers must re-read the record: someone already acted.
type IllegalStateError struct {
	Entity string
	ID     string
	State  string
	Action string
}

func NewIllegalStateError(entity, id, state, action string) *IllegalStateError {
	return &IllegalStateError{Entity: entity, ID: id, State: state, Action: action}
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s: %s %s is %s, cannot %s", ErrIllegalState, e.Entity, e.ID, e.State, e.Action)
}

func (e *IllegalStateError) Unwrap() error {
	return ErrIllegalState
}

// ContentionError reports a conflicting concurrent write. Attempts is zero for
// a single conflict reported by a store and the attempt count once a retry
// budget has been spent.
type ContentionError struct {
	Operation string
	Attempts  int
	Cause     error
}

func NewContentionError(operation string, cause error) *ContentionError {
	return &ContentionError{Operation: operation, Cause: cause}
}

func NewContentionErrorAfterAttempts(operation string, attempts int, cause error) *ContentionError {
	return &ContentionError{Operation: operation, Attempts: attempts, Cause: cause}
}

func (e *ContentionError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrContention, e.Operation)
	if e.Attempts > 0 {
		msg = fmt.Sprintf("%s failed after %d attempts", msg, e.Attempts)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *ContentionError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrContention}
	}
	return []error{ErrContention, e.Cause}
}

// UnauthorizedError reports a permission failure from a backing store.
// It is never retried.
type UnauthorizedError struct {
	Operation string
	Cause     error
}

func NewUnauthorizedError(operation string, cause error) *UnauthorizedError {
	return &UnauthorizedError{Operation: operation, Cause: cause}
}

func (e *UnauthorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnauthorized, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnauthorized, e.Operation)
}

func (e *UnauthorizedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUnauthorized}
	}
	return []error{ErrUnauthorized, e.Cause}
}

// IsValidation reports whether err is a caller input problem.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// IsRetryable reports whether err is a contention-class failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrContention) && !errors.Is(err, ErrUnauthorized)
}

const (
	unauthorizedMessage = "you are not allowed to perform this operation"
	retryMessage        = "the service is temporarily unavailable, please retry"
)

// UserMessage renders err for an end user. Validation, not-found and
// illegal-state errors keep their specific text; everything else is generic.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err), errors.Is(err, ErrIllegalState), errors.Is(err, ErrObjectNotFound):
		return err.Error()
	case errors.Is(err, ErrUnauthorized):
		return unauthorizedMessage
	default:
		return retryMessage
	}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprint(v), "\n", " ")
}
