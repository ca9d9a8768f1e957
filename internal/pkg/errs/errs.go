package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValueIsRequired indicates a required parameter was not provided.
	ErrValueIsRequired = errors.New("value is required")

	// ErrValueIsInvalid indicates a parameter carries an invalid value.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsOutOfRange indicates a parameter is outside its allowed range.
	ErrValueIsOutOfRange = errors.New("value is out of range")

	// ErrObjectNotFound indicates a requested object does not exist.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNotAuthorized indicates the acting party may not perform the operation.
	ErrNotAuthorized = errors.New("actor is not authorized")

	// ErrInvalidStateTransition indicates a status change the state machine
	// does not allow.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrConcurrencyConflict indicates the object was modified by another
	// actor between read and write.
	ErrConcurrencyConflict = errors.New("concurrent modification")

	// ErrBusinessRuleViolated indicates a domain rule rejected the operation.
	ErrBusinessRuleViolated = errors.New("business rule violated")
)

// sanitize flattens a value into a single log-safe line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

// ValueIsRequiredError is returned when a required parameter is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError for the parameter.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError is returned when a parameter carries an invalid value.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError for the parameter.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a parameter lies outside its
// allowed range.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

// NewValueIsOutOfRangeError creates a ValueIsOutOfRangeError with the offending value and bounds.
func NewValueIsOutOfRangeError(paramName string, value, min, max any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max}
}

// NewValueIsOutOfRangeErrorWithCause creates a ValueIsOutOfRangeError wrapping a cause.
func NewValueIsOutOfRangeErrorWithCause(paramName string, value, min, max any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsOutOfRange, sanitize(e.Value), sanitize(e.ParamName), sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %s)", msg, sanitize(e.Cause))
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ObjectNotFoundError is returned when a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError for the identifier.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), sanitize(e.ID), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// NotAuthorizedError is returned when the acting party may not perform the
// operation, naming the role and the violated rule.
type NotAuthorizedError struct {
	Role string
	Rule string
}

// NewNotAuthorizedError creates a NotAuthorizedError for the role and rule.
func NewNotAuthorizedError(role, rule string) *NotAuthorizedError {
	return &NotAuthorizedError{Role: role, Rule: rule}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: role is: %s, rule is: %s", ErrNotAuthorized, sanitize(e.Role), sanitize(e.Rule))
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// InvalidStateTransitionError is returned when a status change is not an
// edge of the state machine, or the source status is terminal.
type InvalidStateTransitionError struct {
	From string
	To   string
	Rule string
}

// NewInvalidStateTransitionError creates an InvalidStateTransitionError for the edge.
func NewInvalidStateTransitionError(from, to, rule string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from, To: to, Rule: rule}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s (%s)",
		ErrInvalidStateTransition, sanitize(e.From), sanitize(e.To), sanitize(e.Rule))
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// ConcurrencyConflictError is returned when an optimistic write finds the
// object already modified by another actor.
type ConcurrencyConflictError struct {
	ObjectName string
	ID         any
}

// NewConcurrencyConflictError creates a ConcurrencyConflictError for the object.
func NewConcurrencyConflictError(objectName string, id any) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{ObjectName: objectName, ID: id}
}

func (e *ConcurrencyConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s was modified by another actor",
		ErrConcurrencyConflict, sanitize(e.ObjectName), sanitize(e.ID))
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// BusinessRuleError is returned when a domain rule rejects an operation.
type BusinessRuleError struct {
	Rule  string
	Cause error
}

// NewBusinessRuleError creates a BusinessRuleError for the rule.
func NewBusinessRuleError(rule string) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule}
}

// NewBusinessRuleErrorWithCause creates a BusinessRuleError wrapping a cause.
func NewBusinessRuleErrorWithCause(rule string, cause error) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Cause: cause}
}

func (e *BusinessRuleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrBusinessRuleViolated, sanitize(e.Rule), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s", ErrBusinessRuleViolated, sanitize(e.Rule))
}

func (e *BusinessRuleError) Unwrap() error {
	return ErrBusinessRuleViolated
}
