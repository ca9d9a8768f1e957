package http

import "time"

// Request and response bodies of the /api/v1 surface. Identifiers travel as
// UUID strings and money as fixed two-digit decimal strings.

// AddCartItemRequest adds a menu item to the caller's cart.
type AddCartItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// UpdateCartItemRequest replaces the quantity of one cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse renders the caller's cart with live catalog prices.
type CartResponse struct {
	CustomerID   string             `json:"customer_id"`
	RestaurantID *string            `json:"restaurant_id,omitempty"`
	Items        []CartItemResponse `json:"items"`
	Subtotal     string             `json:"subtotal"`
}

// CartItemResponse is one cart line.
type CartItemResponse struct {
	MenuItemID  string `json:"menu_item_id"`
	Name        string `json:"name"`
	UnitPrice   string `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
	IsAvailable bool   `json:"is_available"`
}

// CheckoutRequest turns the caller's cart into an order.
type CheckoutRequest struct {
	AddressID     string `json:"address_id"`
	PaymentMethod string `json:"payment_method"`
}

// CheckoutResponse returns the identifier of the created order.
type CheckoutResponse struct {
	OrderID string `json:"order_id"`
}

// TransitionRequest moves an order to the target status.
type TransitionRequest struct {
	Target string `json:"target"`
}

// OrderResponse is the full order view for a participant.
type OrderResponse struct {
	OrderID       string              `json:"order_id"`
	CustomerID    string              `json:"customer_id"`
	RestaurantID  string              `json:"restaurant_id"`
	Status        string              `json:"status"`
	PaymentMethod string              `json:"payment_method"`
	PaymentStatus string              `json:"payment_status"`
	Street        string              `json:"street"`
	City          string              `json:"city"`
	PostalCode    string              `json:"postal_code"`
	Notes         string              `json:"notes,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	Subtotal      string              `json:"subtotal"`
	DeliveryFee   string              `json:"delivery_fee"`
	Total         string              `json:"total"`
	CreatedAt     time.Time           `json:"created_at"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	ReadyAt       *time.Time          `json:"ready_at,omitempty"`
	PickedUpAt    *time.Time          `json:"picked_up_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
}

// OrderSummaryResponse is one row of the order listing.
type OrderSummaryResponse struct {
	OrderID      string    `json:"order_id"`
	CustomerID   string    `json:"customer_id"`
	RestaurantID string    `json:"restaurant_id"`
	Status       string    `json:"status"`
	Total        string    `json:"total"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderItemResponse is one frozen order line.
type OrderItemResponse struct {
	MenuItemID string `json:"menu_item_id"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unit_price"`
	Quantity   int    `json:"quantity"`
	Subtotal   string `json:"subtotal"`
}

// AvailableDeliveryResponse is one claimable order on the driver board.
type AvailableDeliveryResponse struct {
	OrderID      string    `json:"order_id"`
	RestaurantID string    `json:"restaurant_id"`
	Street       string    `json:"street"`
	City         string    `json:"city"`
	Total        string    `json:"total"`
	ReadyAt      time.Time `json:"ready_at"`
}

// ActiveDeliveryResponse is the driver's current job.
type ActiveDeliveryResponse struct {
	OrderID      string `json:"order_id"`
	RestaurantID string `json:"restaurant_id"`
	Status       string `json:"status"`
	Street       string `json:"street"`
	City         string `json:"city"`
	PostalCode   string `json:"postal_code"`
	Notes        string `json:"notes,omitempty"`
	Total        string `json:"total"`
}
