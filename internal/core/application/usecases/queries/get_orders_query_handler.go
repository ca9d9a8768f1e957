package queries

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersQueryHandler lists order summaries scoped by the actor's role.
type GetOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersQueryHandler creates a handler for order listings.
func NewGetOrdersQueryHandler(db *gorm.DB) GetOrdersQueryHandler {
	return GetOrdersQueryHandler{db: db}
}

// Handle executes the query and returns the actor's orders, newest first.
// An actor with no matching orders gets an empty slice, not an error.
func (h GetOrdersQueryHandler) Handle(ctx context.Context, query GetOrdersQuery) ([]GetOrderSummaryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	actor := query.Actor()
	sql := `
		SELECT
			id,
			customer_id,
			restaurant_id,
			status,
			total_cents,
			created_at
		FROM orders`
	args := make([]any, 0, 1)

	switch actor.Role() {
	case kernel.RoleCustomer:
		sql += ` WHERE customer_id = ?`
		args = append(args, actor.ID().Bytes())
	case kernel.RoleRestaurantOwner:
		sql += ` WHERE restaurant_owner_id = ?`
		args = append(args, actor.ID().Bytes())
	case kernel.RoleDriver:
		sql += ` WHERE driver_id = ?`
		args = append(args, actor.ID().Bytes())
	case kernel.RoleAdmin:
		// Admins see every order.
	}

	sql += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]GetOrderSummaryResponse, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			customerID   uuid.UUID
			restaurantID uuid.UUID
			status       string
			totalCents   int64
			createdAt    time.Time
		)

		if err = rows.Scan(&id, &customerID, &restaurantID, &status, &totalCents, &createdAt); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		custID, idErr := kernel.UUIDFromBytes(customerID[:])
		if idErr != nil {
			return nil, idErr
		}
		restID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}
		orderStatus, statusErr := order.StatusFromString(status)
		if statusErr != nil {
			return nil, statusErr
		}
		total, moneyErr := kernel.NewMoneyFromCents(totalCents)
		if moneyErr != nil {
			return nil, moneyErr
		}

		summaries = append(summaries, GetOrderSummaryResponse{
			OrderID:      orderID,
			CustomerID:   custID,
			RestaurantID: restID,
			Status:       orderStatus,
			Total:        total,
			CreatedAt:    createdAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}
