package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order is the aggregate root of the order lifecycle. It owns the status
// state machine, the immutable line-item and address snapshots, the monetary
// snapshot, and the party assignments (customer, restaurant, driver).
//
// Invariants:
//   - Line items, parties, and money amounts are immutable after creation;
//     the driver is settable exactly once, through Claim.
//   - The stored subtotal always equals the sum of line-item subtotals, and
//     subtotal + delivery fee always equals the total.
//   - Status only ever moves along the edges defined in status.go; terminal
//     statuses are immutable.
//   - Each status timestamp is set at most once, when its transition fires.
//
// All state-changing methods assume authorization already happened; the
// TransitionAuthorizer service decides who may request which edge.
type Order struct {
	id                kernel.UUID
	customerID        kernel.UUID
	restaurantID      kernel.UUID
	restaurantOwnerID kernel.UUID
	driverID          *kernel.UUID

	items           []LineItem
	deliveryAddress DeliveryAddress

	subtotal    kernel.Money
	deliveryFee kernel.Money
	total       kernel.Money

	status        Status
	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	confirmedAt *time.Time
	readyAt     *time.Time
	pickedUpAt  *time.Time
	deliveredAt *time.Time

	createdAt time.Time
	version   int

	isConstructed bool
}

// NewOrder creates a Pending order from checkout inputs. The monetary
// amounts must come from the pricing calculator; the constructor re-checks
// them against the line items so a mispriced order can never be constructed.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	restaurantOwnerID kernel.UUID,
	items []LineItem,
	deliveryAddress DeliveryAddress,
	subtotal kernel.Money,
	deliveryFee kernel.Money,
	total kernel.Money,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		customerID.Validate(),
		restaurantID.Validate(),
		restaurantOwnerID.Validate(),
		deliveryAddress.Validate(),
		paymentMethod.Validate(),
	); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	var itemsSum kernel.Money
	for _, item := range items {
		itemsSum = itemsSum.Add(item.Subtotal())
	}
	if !itemsSum.IsEqual(subtotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause("subtotal",
			fmt.Errorf("%s does not equal the line items sum %s", subtotal, itemsSum))
	}
	if !subtotal.Add(deliveryFee).IsEqual(total) {
		return nil, errs.NewValueIsInvalidErrorWithCause("total",
			fmt.Errorf("%s does not equal subtotal %s plus delivery fee %s", total, subtotal, deliveryFee))
	}

	return &Order{
		id:                id,
		customerID:        customerID,
		restaurantID:      restaurantID,
		restaurantOwnerID: restaurantOwnerID,
		items:             append([]LineItem(nil), items...),
		deliveryAddress:   deliveryAddress,
		subtotal:          subtotal,
		deliveryFee:       deliveryFee,
		total:             total,
		status:            StatusPending,
		paymentMethod:     paymentMethod,
		paymentStatus:     PaymentStatusPending,
		createdAt:         now,
		isConstructed:     true,
	}, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain. Used only by persistence adapters.
type RestoreOrderParams struct {
	ID                kernel.UUID
	CustomerID        kernel.UUID
	RestaurantID      kernel.UUID
	RestaurantOwnerID kernel.UUID
	DriverID          *kernel.UUID
	Items             []LineItem
	DeliveryAddress   DeliveryAddress
	Subtotal          kernel.Money
	DeliveryFee       kernel.Money
	Total             kernel.Money
	Status            Status
	PaymentMethod     PaymentMethod
	PaymentStatus     PaymentStatus
	ConfirmedAt       *time.Time
	ReadyAt           *time.Time
	PickedUpAt        *time.Time
	DeliveredAt       *time.Time
	CreatedAt         time.Time
	Version           int
}

// RestoreOrder reconstructs an order from persistence, re-validating the
// status/driver consistency so corrupt rows cannot reach the domain.
func RestoreOrder(params RestoreOrderParams) (*Order, error) {
	if err := errors.Join(
		params.ID.Validate(),
		params.CustomerID.Validate(),
		params.RestaurantID.Validate(),
		params.RestaurantOwnerID.Validate(),
		params.Status.Validate(),
		params.PaymentMethod.Validate(),
		params.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}

	if err := validateDriverAssignment(params.Status, params.DriverID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:                params.ID,
		customerID:        params.CustomerID,
		restaurantID:      params.RestaurantID,
		restaurantOwnerID: params.RestaurantOwnerID,
		driverID:          params.DriverID,
		items:             append([]LineItem(nil), params.Items...),
		deliveryAddress:   params.DeliveryAddress,
		subtotal:          params.Subtotal,
		deliveryFee:       params.DeliveryFee,
		total:             params.Total,
		status:            params.Status,
		paymentMethod:     params.PaymentMethod,
		paymentStatus:     params.PaymentStatus,
		confirmedAt:       params.ConfirmedAt,
		readyAt:           params.ReadyAt,
		pickedUpAt:        params.PickedUpAt,
		deliveredAt:       params.DeliveredAt,
		createdAt:         params.CreatedAt,
		version:           params.Version,
		isConstructed:     true,
	}, nil
}

// validateDriverAssignment enforces the invariant that a driver is assigned
// exactly when the order passed through a claim: driver-active statuses and
// driver-terminal statuses require a driver, everything else forbids one.
func validateDriverAssignment(status Status, hasDriver bool) error {
	driverRequired := status.IsDriverActive() || status == StatusDelivered || status == StatusFailedDelivery

	if driverRequired && !hasDriver {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("status %s requires an assigned driver", status))
	}
	if !driverRequired && hasDriver {
		return errs.NewValueIsInvalidErrorWithCause("driver",
			fmt.Errorf("status %s does not allow an assigned driver", status))
	}
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID returns the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the restaurant the order was placed with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// RestaurantOwnerID returns the restaurant owner's identity, snapshotted at
// creation time for transition authorization.
func (o *Order) RestaurantOwnerID() kernel.UUID {
	return o.restaurantOwnerID
}

// Driver returns the assigned driver's ID, or nil before a claim.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Items returns a copy of the line-item snapshots.
func (o *Order) Items() []LineItem {
	return append([]LineItem(nil), o.items...)
}

// DeliveryAddress returns the address snapshot.
func (o *Order) DeliveryAddress() DeliveryAddress {
	return o.deliveryAddress
}

// Subtotal returns the sum of line-item subtotals, captured at creation.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// DeliveryFee returns the fee applied at creation.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Total returns subtotal plus delivery fee, captured at creation.
func (o *Order) Total() kernel.Money {
	return o.total
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// PaymentMethod returns how the customer pays.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// ConfirmedAt returns when the restaurant confirmed the order, if it has.
func (o *Order) ConfirmedAt() *time.Time {
	return o.confirmedAt
}

// ReadyAt returns when the order became ready for pickup, if it has.
func (o *Order) ReadyAt() *time.Time {
	return o.readyAt
}

// PickedUpAt returns when the driver picked the order up, if they have.
func (o *Order) PickedUpAt() *time.Time {
	return o.pickedUpAt
}

// DeliveredAt returns when the order was delivered, if it was.
func (o *Order) DeliveredAt() *time.Time {
	return o.deliveredAt
}

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic-concurrency version loaded from storage.
// Persistence bumps it on every successful write.
func (o *Order) Version() int {
	return o.version
}

// TransitionTo applies an already-authorized generic transition: it moves
// the status along a valid edge, stamps the matching timestamp once, and on
// delivery marks cash-on-delivery orders as paid.
//
// The driver claim is not a generic transition; use Claim.
func (o *Order) TransitionTo(target Status, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if o.status.IsTerminal() {
		return errs.NewInvalidStateTransitionError(o.status.String(), target.String(),
			"terminal status is immutable")
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewInvalidStateTransitionError(o.status.String(), target.String(),
			"no such edge in the order state machine")
	}

	o.status = target

	switch target {
	case StatusConfirmed:
		o.stampOnce(&o.confirmedAt, now)
	case StatusReadyForPickup:
		o.stampOnce(&o.readyAt, now)
	case StatusOnTheWay:
		o.stampOnce(&o.pickedUpAt, now)
	case StatusDelivered:
		o.stampOnce(&o.deliveredAt, now)
		if o.paymentMethod == PaymentMethodCashOnDelivery {
			o.paymentStatus = PaymentStatusPaid
		}
	}

	return nil
}

// Claim binds a driver to a ready order and moves it to DriverAssigned in
// one step. The persistence layer must mirror this with a conditional
// update so concurrent claims cannot both win.
func (o *Order) Claim(driverID kernel.UUID, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if o.driverID != nil {
		return NewAlreadyClaimedError(o.id, *o.driverID)
	}
	if o.status != StatusReadyForPickup {
		return errs.NewInvalidStateTransitionError(o.status.String(), StatusDriverAssigned.String(),
			"only an order ready for pickup can be claimed")
	}

	o.driverID = &driverID
	o.status = StatusDriverAssigned
	return nil
}

func (o *Order) stampOnce(field **time.Time, now time.Time) {
	if *field == nil {
		stamp := now
		*field = &stamp
	}
}
