package order

import (
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// AlreadyClaimedError reports a claim attempt on an order that already has
// a driver. It unwraps to errs.ErrBusinessRuleViolated.
type AlreadyClaimedError struct {
	OrderID  kernel.UUID
	DriverID kernel.UUID
}

// NewAlreadyClaimedError creates an AlreadyClaimedError naming the holder.
func NewAlreadyClaimedError(orderID, driverID kernel.UUID) *AlreadyClaimedError {
	return &AlreadyClaimedError{OrderID: orderID, DriverID: driverID}
}

func (e *AlreadyClaimedError) Error() string {
	return fmt.Sprintf("%s: order %s is already claimed by driver %s",
		errs.ErrBusinessRuleViolated, e.OrderID, e.DriverID)
}

func (e *AlreadyClaimedError) Unwrap() error {
	return errs.ErrBusinessRuleViolated
}

// DriverHasActiveDeliveryError reports a claim attempt by a driver who
// already holds an order in a driver-active status.
type DriverHasActiveDeliveryError struct {
	DriverID kernel.UUID
}

// NewDriverHasActiveDeliveryError creates a DriverHasActiveDeliveryError for the driver.
func NewDriverHasActiveDeliveryError(driverID kernel.UUID) *DriverHasActiveDeliveryError {
	return &DriverHasActiveDeliveryError{DriverID: driverID}
}

func (e *DriverHasActiveDeliveryError) Error() string {
	return fmt.Sprintf("%s: driver %s already has an active delivery",
		errs.ErrBusinessRuleViolated, e.DriverID)
}

func (e *DriverHasActiveDeliveryError) Unwrap() error {
	return errs.ErrBusinessRuleViolated
}

// UnavailableItemError reports a checkout attempt against a catalog item
// that is no longer available, naming the offending item.
type UnavailableItemError struct {
	MenuItemID kernel.UUID
	Name       string
}

// NewUnavailableItemError creates an UnavailableItemError for the named item.
func NewUnavailableItemError(menuItemID kernel.UUID, name string) *UnavailableItemError {
	return &UnavailableItemError{MenuItemID: menuItemID, Name: name}
}

func (e *UnavailableItemError) Error() string {
	return fmt.Sprintf("%s: menu item %s (%s) is not available",
		errs.ErrBusinessRuleViolated, e.Name, e.MenuItemID)
}

func (e *UnavailableItemError) Unwrap() error {
	return errs.ErrBusinessRuleViolated
}
