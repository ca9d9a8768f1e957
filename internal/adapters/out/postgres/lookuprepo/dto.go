// Package lookuprepo provides read-only GORM lookups over the catalog and
// address tables. The ordering core never writes these tables; they are
// maintained by the surrounding CRUD plumbing and consulted here for cart
// validation and checkout snapshots.
package lookuprepo

import (
	"github.com/google/uuid"
)

// RestaurantDTO mirrors the catalog's restaurant table.
type RestaurantDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index"`
	Name        string
	IsAccepting bool
}

// TableName specifies the database table name for restaurants.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// MenuItemDTO mirrors the catalog's menu item table.
type MenuItemDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID   uuid.UUID `gorm:"type:uuid;index"`
	Name           string
	UnitPriceCents int64
	IsAvailable    bool
}

// TableName specifies the database table name for menu items.
func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// AddressDTO mirrors the customers' saved address table.
type AddressDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID    uuid.UUID `gorm:"type:uuid;index"`
	Street     string
	City       string
	PostalCode string
	Notes      string
}

// TableName specifies the database table name for saved addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}
