package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDeliveriesQueryHandler lists claimable orders, oldest first.
//
// The list is advisory: a claim may still lose the race for any entry, and
// the claim operation is where exclusivity is enforced.
type GetAvailableDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDeliveriesQueryHandler creates a handler for the delivery board.
func NewGetAvailableDeliveriesQueryHandler(db *gorm.DB) GetAvailableDeliveriesQueryHandler {
	return GetAvailableDeliveriesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDeliveriesQuery,
) ([]GetAvailableDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetAvailableDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			restaurant_id,
			street,
			city,
			total_cents,
			ready_at
		FROM orders
		WHERE status = ? AND driver_id IS NULL
		ORDER BY ready_at
	`, order.StatusReadyForPickup.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			restaurantID uuid.UUID
			street       string
			city         string
			totalCents   int64
			readyAt      time.Time
		)

		if err = rows.Scan(&id, &restaurantID, &street, &city, &totalCents, &readyAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		restID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}
		total, totalErr := kernel.NewMoneyFromCents(totalCents)
		if totalErr != nil {
			return nil, totalErr
		}

		deliveries = append(deliveries, GetAvailableDeliveriesQueryResponse{
			OrderID:      orderID,
			RestaurantID: restID,
			Street:       street,
			City:         city,
			Total:        total,
			ReadyAt:      readyAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
