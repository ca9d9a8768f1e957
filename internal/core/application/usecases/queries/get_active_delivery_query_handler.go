package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveryQueryHandler retrieves the single order the driver is
// currently carrying. The one-active-delivery rule makes "single" safe.
type GetActiveDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveryQueryHandler creates a handler for active delivery reads.
func NewGetActiveDeliveryQueryHandler(db *gorm.DB) GetActiveDeliveryQueryHandler {
	return GetActiveDeliveryQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFoundError when the driver
// has no active delivery.
func (h GetActiveDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveryQuery,
) (GetActiveDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			status,
			street,
			city,
			postal_code,
			notes,
			total_cents
		FROM orders
		WHERE driver_id = ? AND status IN (?, ?)
	`,
		query.DriverID().Bytes(),
		order.StatusDriverAssigned.String(),
		order.StatusOnTheWay.String(),
	).Row()

	var (
		id           uuid.UUID
		restaurantID uuid.UUID
		status       string
		street       string
		city         string
		postalCode   string
		notes        string
		totalCents   int64
	)

	err := row.Scan(&id, &restaurantID, &status, &street, &city, &postalCode, &notes, &totalCents)
	if errors.Is(err, sql.ErrNoRows) {
		return GetActiveDeliveryQueryResponse{},
			errs.NewObjectNotFoundError("driverId", query.DriverID().String())
	}
	if err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}
	restID, err := kernel.UUIDFromBytes(restaurantID[:])
	if err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}
	orderStatus, err := order.StatusFromString(status)
	if err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}
	total, err := kernel.NewMoneyFromCents(totalCents)
	if err != nil {
		return GetActiveDeliveryQueryResponse{}, err
	}

	return GetActiveDeliveryQueryResponse{
		OrderID:      orderID,
		RestaurantID: restID,
		Status:       orderStatus,
		Street:       street,
		City:         city,
		PostalCode:   postalCode,
		Notes:        notes,
		Total:        total,
	}, nil
}
