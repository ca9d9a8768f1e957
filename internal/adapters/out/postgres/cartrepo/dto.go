// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Carts are keyed by customer; saving rewrites the line
// set wholesale, which keeps the mapping trivial for the small carts this
// system deals in.
package cartrepo

import (
	"time"

	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO represents the database structure for persisting cart aggregates.
type CartDTO struct {
	CustomerID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt    time.Time  `gorm:"index"`
	Version      int

	Items []CartItemDTO `gorm:"foreignKey:CartCustomerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one cart line.
type CartItemDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	CartCustomerID uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid"`
	Quantity       int
}

// TableName specifies the database table name for cart line items.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// fromDomain converts a cart aggregate to its database representation.
func fromDomain(aggregate *cart.Cart) CartDTO {
	var restaurantID *uuid.UUID
	if id := aggregate.RestaurantID(); id != nil {
		raw := id.Bytes()
		restaurantID = &raw
	}

	items := make([]CartItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, CartItemDTO{
			CartCustomerID: aggregate.CustomerID().Bytes(),
			MenuItemID:     item.MenuItemID().Bytes(),
			Quantity:       item.Quantity(),
		})
	}

	return CartDTO{
		CustomerID:   aggregate.CustomerID().Bytes(),
		RestaurantID: restaurantID,
		UpdatedAt:    aggregate.UpdatedAt(),
		Version:      aggregate.Version(),
		Items:        items,
	}
}

// toDomain converts a database DTO back to a cart aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var restaurantID *kernel.UUID
	if dto.RestaurantID != nil {
		rID, restaurantErr := kernel.UUIDFromBytes((*dto.RestaurantID)[:])
		if restaurantErr != nil {
			return nil, restaurantErr
		}
		restaurantID = &rID
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, lineErr := cart.NewItem(menuItemID, itemDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, item)
	}

	return cart.RestoreCart(customerID, restaurantID, items, dto.UpdatedAt, dto.Version)
}
