package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its frozen line items, applying
// participant-based visibility.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError for an unknown
// order and a NotAuthorizedError when the actor is not a participant.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			customer_id,
			restaurant_id,
			restaurant_owner_id,
			driver_id,
			status,
			payment_method,
			payment_status,
			street,
			city,
			postal_code,
			notes,
			subtotal_cents,
			delivery_fee_cents,
			total_cents,
			created_at,
			confirmed_at,
			ready_at,
			picked_up_at,
			delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		customerID        uuid.UUID
		restaurantID      uuid.UUID
		restaurantOwnerID uuid.UUID
		driverID          uuid.NullUUID
		status            string
		paymentMethod     string
		paymentStatus     string
		street            string
		city              string
		postalCode        string
		notes             string
		subtotalCents     int64
		deliveryFeeCents  int64
		totalCents        int64
		createdAt         time.Time
		confirmedAt       *time.Time
		readyAt           *time.Time
		pickedUpAt        *time.Time
		deliveredAt       *time.Time
	)

	err := row.Scan(
		&customerID, &restaurantID, &restaurantOwnerID, &driverID,
		&status, &paymentMethod, &paymentStatus,
		&street, &city, &postalCode, &notes,
		&subtotalCents, &deliveryFeeCents, &totalCents,
		&createdAt, &confirmedAt, &readyAt, &pickedUpAt, &deliveredAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{},
			errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if err = authorizeOrderView(query.Actor(), customerID, restaurantOwnerID, driverID); err != nil {
		return GetOrderQueryResponse{}, err
	}

	custID, err := kernel.UUIDFromBytes(customerID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	restID, err := kernel.UUIDFromBytes(restaurantID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	method, err := order.PaymentMethodFromString(paymentMethod)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	payStatus, err := order.PaymentStatusFromString(paymentStatus)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	subtotal, err := kernel.NewMoneyFromCents(subtotalCents)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	deliveryFee, err := kernel.NewMoneyFromCents(deliveryFeeCents)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	total, err := kernel.NewMoneyFromCents(totalCents)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		OrderID:       query.OrderID(),
		CustomerID:    custID,
		RestaurantID:  restID,
		Status:        orderStatus,
		PaymentMethod: method,
		PaymentStatus: payStatus,
		Street:        street,
		City:          city,
		PostalCode:    postalCode,
		Notes:         notes,
		Items:         items,
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         total,
		CreatedAt:     createdAt,
		ConfirmedAt:   confirmedAt,
		ReadyAt:       readyAt,
		PickedUpAt:    pickedUpAt,
		DeliveredAt:   deliveredAt,
	}, nil
}

func authorizeOrderView(actor kernel.Actor, customerID, ownerID uuid.UUID, driverID uuid.NullUUID) error {
	switch actor.Role() {
	case kernel.RoleAdmin:
		return nil
	case kernel.RoleCustomer:
		if actor.ID().Bytes() == customerID {
			return nil
		}
	case kernel.RoleRestaurantOwner:
		if actor.ID().Bytes() == ownerID {
			return nil
		}
	case kernel.RoleDriver:
		if driverID.Valid && actor.ID().Bytes() == driverID.UUID {
			return nil
		}
	}

	return errs.NewNotAuthorizedError(actor.Role().String(),
		"only participants of an order may view it")
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderItemResponse, error) {
	items := make([]GetOrderItemResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			unit_price_cents,
			quantity
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			menuItemID     uuid.UUID
			name           string
			unitPriceCents int64
			quantity       int
		)

		if err = rows.Scan(&menuItemID, &name, &unitPriceCents, &quantity); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		unitPrice, priceErr := kernel.NewMoneyFromCents(unitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}

		items = append(items, GetOrderItemResponse{
			MenuItemID: itemID,
			Name:       name,
			UnitPrice:  unitPrice,
			Quantity:   quantity,
			Subtotal:   unitPrice.MulInt(quantity),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
