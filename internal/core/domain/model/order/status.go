package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the delivery-side lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Preparing ──> ReadyForPickup ──(claim)──> DriverAssigned ──> OnTheWay ──> Delivered
//	   │             │                                                                        │
//	   │             └──> CancelledByRestaurant                                               └──> FailedDelivery
//	   ├──> CancelledByRestaurant
//	   └──> CancelledByUser
//
// Delivered, both cancellation statuses, and FailedDelivery are terminal.
// The ReadyForPickup -> DriverAssigned edge is not a generic transition: it
// only happens through the atomic driver claim, which binds the driver and
// the status together.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status right after checkout, awaiting
	// the restaurant's decision.
	StatusPending

	// StatusConfirmed means the restaurant accepted the order.
	StatusConfirmed

	// StatusPreparing means the kitchen is working on the order.
	StatusPreparing

	// StatusReadyForPickup means the order awaits a driver claim.
	StatusReadyForPickup

	// StatusDriverAssigned means a driver claimed the order but has not
	// picked it up yet.
	StatusDriverAssigned

	// StatusOnTheWay means the assigned driver picked the order up.
	StatusOnTheWay

	// StatusDelivered is the successful terminal status.
	StatusDelivered

	// StatusCancelledByUser is the terminal status for a customer
	// cancellation, possible only while Pending.
	StatusCancelledByUser

	// StatusCancelledByRestaurant is the terminal status for a
	// restaurant-side cancellation.
	StatusCancelledByRestaurant

	// StatusFailedDelivery is the terminal status for a delivery the
	// assigned driver could not complete.
	StatusFailedDelivery
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:               "UNKNOWN",
		StatusPending:               "PENDING",
		StatusConfirmed:             "CONFIRMED",
		StatusPreparing:             "PREPARING",
		StatusReadyForPickup:        "READY_FOR_PICKUP",
		StatusDriverAssigned:        "DRIVER_ASSIGNED",
		StatusOnTheWay:              "ON_THE_WAY",
		StatusDelivered:             "DELIVERED",
		StatusCancelledByUser:       "CANCELLED_BY_USER",
		StatusCancelledByRestaurant: "CANCELLED_BY_RESTAURANT",
		StatusFailedDelivery:        "FAILED_DELIVERY",
	}
}

// transitions is the edge table of the generic state machine. The driver
// claim edge (ReadyForPickup -> DriverAssigned) is deliberately absent:
// it is only reachable through Order.Claim.
func transitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:        {StatusConfirmed, StatusCancelledByRestaurant, StatusCancelledByUser},
		StatusConfirmed:      {StatusPreparing, StatusCancelledByRestaurant},
		StatusPreparing:      {StatusReadyForPickup},
		StatusDriverAssigned: {StatusOnTheWay},
		StatusOnTheWay:       {StatusDelivered, StatusFailedDelivery},
	}
}

// StatusFromString parses the wire representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidError("status")
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is permitted from s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCancelledByUser, StatusCancelledByRestaurant, StatusFailedDelivery:
		return true
	default:
		return false
	}
}

// IsDriverActive reports whether s counts as an active delivery for the
// assigned driver. A driver may hold at most one order in such a status.
func (s Status) IsDriverActive() bool {
	return s == StatusDriverAssigned || s == StatusOnTheWay
}

// CanTransitionTo reports whether target is a generic edge from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, t := range transitions()[s] {
		if t == target {
			return true
		}
	}
	return false
}
