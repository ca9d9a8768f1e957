package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads the customer's cart joined with the live
// catalog. Lines keep their stored quantity but show today's price and
// availability; checkout is where prices freeze.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart reads.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle executes the query. A customer without a cart gets an empty
// response rather than an error.
func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	response := GetCartQueryResponse{
		CustomerID: query.CustomerID(),
		Items:      make([]GetCartItemResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			c.restaurant_id,
			ci.menu_item_id,
			mi.name,
			mi.unit_price_cents,
			mi.is_available,
			ci.quantity
		FROM carts c
		JOIN cart_items ci ON ci.cart_customer_id = c.customer_id
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE c.customer_id = ?
		ORDER BY ci.id
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			restaurantID   uuid.UUID
			menuItemID     uuid.UUID
			name           string
			unitPriceCents int64
			isAvailable    bool
			quantity       int
		)

		if err = rows.Scan(&restaurantID, &menuItemID, &name, &unitPriceCents, &isAvailable, &quantity); err != nil {
			return GetCartQueryResponse{}, err
		}

		if response.RestaurantID == nil {
			id, idErr := kernel.UUIDFromBytes(restaurantID[:])
			if idErr != nil {
				return GetCartQueryResponse{}, idErr
			}
			response.RestaurantID = &id
		}

		itemID, idErr := kernel.UUIDFromBytes(menuItemID[:])
		if idErr != nil {
			return GetCartQueryResponse{}, idErr
		}

		unitPrice, priceErr := kernel.NewMoneyFromCents(unitPriceCents)
		if priceErr != nil {
			return GetCartQueryResponse{}, priceErr
		}

		subtotal := unitPrice.MulInt(quantity)
		response.Items = append(response.Items, GetCartItemResponse{
			MenuItemID:  itemID,
			Name:        name,
			UnitPrice:   unitPrice,
			Quantity:    quantity,
			Subtotal:    subtotal,
			IsAvailable: isAvailable,
		})
		response.Subtotal = response.Subtotal.Add(subtotal)
	}

	if err = rows.Err(); err != nil {
		return GetCartQueryResponse{}, err
	}

	return response, nil
}
