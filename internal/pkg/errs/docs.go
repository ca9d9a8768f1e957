// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers two groups of errors:
//   - Input errors: ValueIsRequiredError, ValueIsInvalidError,
//     ValueIsOutOfRangeError, ObjectNotFoundError
//   - Lifecycle errors: NotAuthorizedError, InvalidStateTransitionError,
//     ConcurrencyConflictError, BusinessRuleError
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrInvalidStateTransition)
//   - A struct type with fields for error details
//   - Constructor functions, with and without cause where a cause makes sense
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
//
// Callers never branch on error strings: classification happens through
// errors.Is against the sentinels, and detail extraction through errors.As
// against the struct types. This is what lets the HTTP adapter map domain
// failures to status codes without the core knowing about HTTP.
package errs
