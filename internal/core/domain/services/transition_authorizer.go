package services

import (
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// TransitionAuthorizer is a domain service deciding whether an actor may
// request a given order status transition. It checks WHO is asking; whether
// the edge itself exists is the aggregate's concern and is validated by
// Order.TransitionTo after authorization passes.
//
// Business rules:
//   - Customers may only cancel their own order, and only while it is pending.
//   - The restaurant side (the owner captured on the order, or an admin)
//     drives confirmation, preparation and restaurant cancellation.
//   - Only the assigned driver advances pickup, delivery and failed delivery.
//   - Admins may additionally perform any restaurant-side transition, but
//     never impersonate the customer or the driver.
type TransitionAuthorizer struct{}

// NewTransitionAuthorizer creates a TransitionAuthorizer.
func NewTransitionAuthorizer() TransitionAuthorizer {
	return TransitionAuthorizer{}
}

// Authorize returns nil when the actor may request moving the order to the
// target status, and a NotAuthorizedError naming the violated rule otherwise.
func (a TransitionAuthorizer) Authorize(actor kernel.Actor, o *order.Order, target order.Status) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	switch target {
	case order.StatusCancelledByUser:
		return a.authorizeCustomer(actor, o)
	case order.StatusConfirmed, order.StatusPreparing, order.StatusReadyForPickup, order.StatusCancelledByRestaurant:
		return a.authorizeRestaurantSide(actor, o)
	case order.StatusOnTheWay, order.StatusDelivered, order.StatusFailedDelivery:
		return a.authorizeAssignedDriver(actor, o)
	case order.StatusDriverAssigned:
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"drivers are assigned through the claim operation, not a direct transition")
	case order.StatusPending:
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"no actor may move an order back to pending")
	default:
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"no actor may request this status")
	}
}

func (a TransitionAuthorizer) authorizeCustomer(actor kernel.Actor, o *order.Order) error {
	if actor.Role() != kernel.RoleCustomer {
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"only the customer may cancel an order on their own behalf")
	}
	if !actor.ID().IsEqual(o.CustomerID()) {
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"customers may only cancel their own orders")
	}
	return nil
}

func (a TransitionAuthorizer) authorizeRestaurantSide(actor kernel.Actor, o *order.Order) error {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleRestaurantOwner:
		if !actor.ID().IsEqual(o.RestaurantOwnerID()) {
			return errs.NewNotAuthorizedError(actor.Role().String(),
				"only the owner of the order's restaurant may advance preparation")
		}
		return nil
	default:
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"only the restaurant owner or an admin may advance preparation")
	}
}

func (a TransitionAuthorizer) authorizeAssignedDriver(actor kernel.Actor, o *order.Order) error {
	if actor.Role() != kernel.RoleDriver {
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"only the assigned driver may advance the delivery")
	}
	if o.Driver() == nil || !actor.ID().IsEqual(*o.Driver()) {
		return errs.NewNotAuthorizedError(actor.Role().String(),
			"only the driver assigned to this order may advance the delivery")
	}
	return nil
}
