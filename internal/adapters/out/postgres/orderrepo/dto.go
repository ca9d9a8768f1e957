// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, including the version-guarded update and the atomic claim.
package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Statuses are stored as their wire strings so rows stay
// readable and stable if enum ordering ever changes.
type OrderDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID        uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantID      uuid.UUID  `gorm:"type:uuid;index"`
	RestaurantOwnerID uuid.UUID  `gorm:"type:uuid"`
	DriverID          *uuid.UUID `gorm:"type:uuid;index"`

	Street     string
	City       string
	PostalCode string
	Notes      string

	SubtotalCents    int64
	DeliveryFeeCents int64
	TotalCents       int64

	Status        string `gorm:"type:varchar(32);index"`
	PaymentMethod string `gorm:"type:varchar(32)"`
	PaymentStatus string `gorm:"type:varchar(32)"`

	ConfirmedAt *time.Time
	ReadyAt     *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time

	CreatedAt time.Time
	Version   int

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one frozen order line. Lines are immutable after
// checkout and are only ever written together with their order.
type OrderItemDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID     uuid.UUID `gorm:"type:uuid"`
	Name           string
	UnitPriceCents int64
	Quantity       int
}

// TableName specifies the database table name for order line items.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			MenuItemID:     item.MenuItemID().Bytes(),
			Name:           item.Name(),
			UnitPriceCents: item.UnitPrice().Cents(),
			Quantity:       item.Quantity(),
		})
	}

	address := aggregate.DeliveryAddress()

	return OrderDTO{
		ID:                aggregate.ID().Bytes(),
		CustomerID:        aggregate.CustomerID().Bytes(),
		RestaurantID:      aggregate.RestaurantID().Bytes(),
		RestaurantOwnerID: aggregate.RestaurantOwnerID().Bytes(),
		DriverID:          driverID,
		Street:            address.Street(),
		City:              address.City(),
		PostalCode:        address.PostalCode(),
		Notes:             address.Notes(),
		SubtotalCents:     aggregate.Subtotal().Cents(),
		DeliveryFeeCents:  aggregate.DeliveryFee().Cents(),
		TotalCents:        aggregate.Total().Cents(),
		Status:            aggregate.Status().String(),
		PaymentMethod:     aggregate.PaymentMethod().String(),
		PaymentStatus:     aggregate.PaymentStatus().String(),
		ConfirmedAt:       aggregate.ConfirmedAt(),
		ReadyAt:           aggregate.ReadyAt(),
		PickedUpAt:        aggregate.PickedUpAt(),
		DeliveredAt:       aggregate.DeliveredAt(),
		CreatedAt:         aggregate.CreatedAt(),
		Version:           aggregate.Version(),
	}
}

// toDomain converts a database DTO back to an order aggregate via
// RestoreOrder, which re-validates the status/driver invariant.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.RestaurantOwnerID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		unitPrice, priceErr := kernel.NewMoneyFromCents(itemDTO.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		item, lineErr := order.NewLineItem(menuItemID, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		items = append(items, item)
	}

	address, err := order.NewDeliveryAddress(dto.Street, dto.City, dto.PostalCode, dto.Notes)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentMethod, err := order.PaymentMethodFromString(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	subtotal, err := kernel.NewMoneyFromCents(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := kernel.NewMoneyFromCents(dto.DeliveryFeeCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoneyFromCents(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                id,
		CustomerID:        customerID,
		RestaurantID:      restaurantID,
		RestaurantOwnerID: ownerID,
		DriverID:          driverID,
		Items:             items,
		DeliveryAddress:   address,
		Subtotal:          subtotal,
		DeliveryFee:       deliveryFee,
		Total:             total,
		Status:            status,
		PaymentMethod:     paymentMethod,
		PaymentStatus:     paymentStatus,
		ConfirmedAt:       dto.ConfirmedAt,
		ReadyAt:           dto.ReadyAt,
		PickedUpAt:        dto.PickedUpAt,
		DeliveredAt:       dto.DeliveredAt,
		CreatedAt:         dto.CreatedAt,
		Version:           dto.Version,
	})
}
