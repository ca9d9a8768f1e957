// Package http exposes the ordering core over a REST surface. Handlers
// translate requests into commands and queries, and domain errors into
// HTTP statuses; no business decision lives here.
package http

import (
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server wires HTTP routes to the application's command and query handlers.
type Server struct {
	// Command handlers
	addCartItemHandler            commands.AddCartItemCommandHandler
	updateCartItemQuantityHandler commands.UpdateCartItemQuantityCommandHandler
	removeCartItemHandler         commands.RemoveCartItemCommandHandler
	clearCartHandler              commands.ClearCartCommandHandler
	checkoutHandler               commands.CheckoutCommandHandler
	transitionOrderHandler        commands.TransitionOrderCommandHandler
	claimDeliveryHandler          commands.ClaimDeliveryCommandHandler

	// Query handlers
	getCartHandler                queries.GetCartQueryHandler
	getOrderHandler               queries.GetOrderQueryHandler
	getOrdersHandler              queries.GetOrdersQueryHandler
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler
	getActiveDeliveryHandler      queries.GetActiveDeliveryQueryHandler
}

// NewServer creates an HTTP server over the given handlers.
func NewServer(
	addCartItemHandler commands.AddCartItemCommandHandler,
	updateCartItemQuantityHandler commands.UpdateCartItemQuantityCommandHandler,
	removeCartItemHandler commands.RemoveCartItemCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	checkoutHandler commands.CheckoutCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	claimDeliveryHandler commands.ClaimDeliveryCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getAvailableDeliveriesHandler queries.GetAvailableDeliveriesQueryHandler,
	getActiveDeliveryHandler queries.GetActiveDeliveryQueryHandler,
) *Server {
	return &Server{
		addCartItemHandler:            addCartItemHandler,
		updateCartItemQuantityHandler: updateCartItemQuantityHandler,
		removeCartItemHandler:         removeCartItemHandler,
		clearCartHandler:              clearCartHandler,
		checkoutHandler:               checkoutHandler,
		transitionOrderHandler:        transitionOrderHandler,
		claimDeliveryHandler:          claimDeliveryHandler,
		getCartHandler:                getCartHandler,
		getOrderHandler:               getOrderHandler,
		getOrdersHandler:              getOrdersHandler,
		getAvailableDeliveriesHandler: getAvailableDeliveriesHandler,
		getActiveDeliveryHandler:      getActiveDeliveryHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.GET("/cart", s.GetCart)
	api.POST("/cart/items", s.AddCartItem)
	api.PATCH("/cart/items/:menuItemId", s.UpdateCartItemQuantity)
	api.DELETE("/cart/items/:menuItemId", s.RemoveCartItem)
	api.DELETE("/cart", s.ClearCart)

	api.POST("/checkout", s.Checkout)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.POST("/orders/:orderId/transition", s.TransitionOrder)
	api.POST("/orders/:orderId/claim", s.ClaimDelivery)

	api.GET("/deliveries/available", s.GetAvailableDeliveries)
	api.GET("/deliveries/active", s.GetActiveDelivery)
}

// GetCart handles GET /api/v1/cart - the caller's cart with live prices.
func (s *Server) GetCart(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCartQuery(actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	cart, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toCartResponse(cart))
}

// AddCartItem handles POST /api/v1/cart/items - adds a line to the cart.
func (s *Server) AddCartItem(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	var req AddCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	menuItemID, err := kernel.UUIDFromString(req.MenuItemID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("menuItemId", err))
	}

	cmd, err := commands.NewAddCartItemCommand(actor.ID(), menuItemID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartItemQuantity handles PATCH /api/v1/cart/items/:menuItemId.
func (s *Server) UpdateCartItemQuantity(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	menuItemID, err := kernel.UUIDFromString(ctx.Param("menuItemId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("menuItemId", err))
	}

	var req UpdateCartItemRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewUpdateCartItemQuantityCommand(actor.ID(), menuItemID, req.Quantity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateCartItemQuantityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/:menuItemId.
func (s *Server) RemoveCartItem(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	menuItemID, err := kernel.UUIDFromString(ctx.Param("menuItemId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("menuItemId", err))
	}

	cmd, err := commands.NewRemoveCartItemCommand(actor.ID(), menuItemID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.removeCartItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart - drops the cart entirely.
func (s *Server) ClearCart(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewClearCartCommand(actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.clearCartHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/checkout - turns the cart into an order.
func (s *Server) Checkout(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleCustomer); err != nil {
		return respondError(ctx, err)
	}

	var req CheckoutRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	addressID, err := kernel.UUIDFromString(req.AddressID)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("addressId", err))
	}

	paymentMethod, err := order.PaymentMethodFromString(req.PaymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewCheckoutCommand(actor.ID(), addressID, paymentMethod)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{OrderID: orderID.String()})
}

// GetOrder handles GET /api/v1/orders/:orderId - one order, for participants.
func (s *Server) GetOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	query, err := queries.NewGetOrderQuery(orderID, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(result))
}

// ListOrders handles GET /api/v1/orders - the caller's order history, scoped
// by role: own orders for customers, the restaurant's orders for owners,
// carried orders for drivers, everything for admins.
func (s *Server) ListOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetOrdersQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	summaries, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryResponse, len(summaries))
	for i, summary := range summaries {
		response[i] = OrderSummaryResponse{
			OrderID:      summary.OrderID.String(),
			CustomerID:   summary.CustomerID.String(),
			RestaurantID: summary.RestaurantID.String(),
			Status:       summary.Status.String(),
			Total:        summary.Total.String(),
			CreatedAt:    summary.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// TransitionOrder handles POST /api/v1/orders/:orderId/transition - moves an
// order along the lifecycle on behalf of the acting principal.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClaimDelivery handles POST /api/v1/orders/:orderId/claim - the driver
// claims a ready order.
func (s *Server) ClaimDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("orderId", err))
	}

	cmd, err := commands.NewClaimDeliveryCommand(orderID, actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.claimDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAvailableDeliveries handles GET /api/v1/deliveries/available - the
// board of claimable orders.
func (s *Server) GetAvailableDeliveries(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	deliveries, err := s.getAvailableDeliveriesHandler.Handle(
		ctx.Request().Context(), queries.NewGetAvailableDeliveriesQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]AvailableDeliveryResponse, len(deliveries))
	for i, delivery := range deliveries {
		response[i] = AvailableDeliveryResponse{
			OrderID:      delivery.OrderID.String(),
			RestaurantID: delivery.RestaurantID.String(),
			Street:       delivery.Street,
			City:         delivery.City,
			Total:        delivery.Total.String(),
			ReadyAt:      delivery.ReadyAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDelivery handles GET /api/v1/deliveries/active - the driver's
// current job.
func (s *Server) GetActiveDelivery(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, kernel.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetActiveDeliveryQuery(actor.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	delivery, err := s.getActiveDeliveryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ActiveDeliveryResponse{
		OrderID:      delivery.OrderID.String(),
		RestaurantID: delivery.RestaurantID.String(),
		Status:       delivery.Status.String(),
		Street:       delivery.Street,
		City:         delivery.City,
		PostalCode:   delivery.PostalCode,
		Notes:        delivery.Notes,
		Total:        delivery.Total.String(),
	})
}

func toCartResponse(cart queries.GetCartQueryResponse) CartResponse {
	var restaurantID *string
	if cart.RestaurantID != nil {
		id := cart.RestaurantID.String()
		restaurantID = &id
	}

	items := make([]CartItemResponse, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemResponse{
			MenuItemID:  item.MenuItemID.String(),
			Name:        item.Name,
			UnitPrice:   item.UnitPrice.String(),
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal.String(),
			IsAvailable: item.IsAvailable,
		}
	}

	return CartResponse{
		CustomerID:   cart.CustomerID.String(),
		RestaurantID: restaurantID,
		Items:        items,
		Subtotal:     cart.Subtotal.String(),
	}
}

func toOrderResponse(result queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(result.Items))
	for i, item := range result.Items {
		items[i] = OrderItemResponse{
			MenuItemID: item.MenuItemID.String(),
			Name:       item.Name,
			UnitPrice:  item.UnitPrice.String(),
			Quantity:   item.Quantity,
			Subtotal:   item.Subtotal.String(),
		}
	}

	return OrderResponse{
		OrderID:       result.OrderID.String(),
		CustomerID:    result.CustomerID.String(),
		RestaurantID:  result.RestaurantID.String(),
		Status:        result.Status.String(),
		PaymentMethod: result.PaymentMethod.String(),
		PaymentStatus: result.PaymentStatus.String(),
		Street:        result.Street,
		City:          result.City,
		PostalCode:    result.PostalCode,
		Notes:         result.Notes,
		Items:         items,
		Subtotal:      result.Subtotal.String(),
		DeliveryFee:   result.DeliveryFee.String(),
		Total:         result.Total.String(),
		CreatedAt:     result.CreatedAt,
		ConfirmedAt:   result.ConfirmedAt,
		ReadyAt:       result.ReadyAt,
		PickedUpAt:    result.PickedUpAt,
		DeliveredAt:   result.DeliveredAt,
	}
}
