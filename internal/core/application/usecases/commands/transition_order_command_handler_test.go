package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func transitionActor(t *testing.T, id kernel.UUID, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(id, role)
	require.NoError(t, err)
	return a
}

func TestTransitionOrderCommandHandler_Handle_OwnerConfirms(t *testing.T) {
	ctx := t.Context()
	fixture := orderFixture{
		customerID: kernel.NewUUID(),
		ownerID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
	}
	pending := orderInStatus(t, fixture, order.StatusPending)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil)
	orderRepo.On("Update", ctx, mock.MatchedBy(func(o *order.Order) bool {
		return o.Status() == order.StatusConfirmed && o.ConfirmedAt() != nil
	})).Return(nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	publisher := &MockEventPublisher{}
	publisher.On("PublishOrderStatusChanged", ctx, mock.MatchedBy(func(e ports.OrderStatusChanged) bool {
		return e.OldStatus == order.StatusPending &&
			e.NewStatus == order.StatusConfirmed &&
			e.ActorRole == kernel.RoleRestaurantOwner
	})).Return(nil)

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewTransitionAuthorizer(), publisher)

	cmd, err := commands.NewTransitionOrderCommand(
		pending.ID(), order.StatusConfirmed,
		transitionActor(t, fixture.ownerID, kernel.RoleRestaurantOwner),
	)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_UnauthorizedActor(t *testing.T) {
	ctx := t.Context()
	fixture := orderFixture{
		customerID: kernel.NewUUID(),
		ownerID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
	}
	pending := orderInStatus(t, fixture, order.StatusPending)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	publisher := &MockEventPublisher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewTransitionAuthorizer(), publisher)

	// A customer cannot confirm their own order.
	cmd, err := commands.NewTransitionOrderCommand(
		pending.ID(), order.StatusConfirmed,
		transitionActor(t, fixture.customerID, kernel.RoleCustomer),
	)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)

	orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_InvalidEdge(t *testing.T) {
	ctx := t.Context()
	fixture := orderFixture{
		customerID: kernel.NewUUID(),
		ownerID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
	}
	pending := orderInStatus(t, fixture, order.StatusPending)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewTransitionOrderCommandHandler(
		factory, services.NewTransitionAuthorizer(), &MockEventPublisher{},
	)

	// Skipping confirmation is not an edge of the state machine.
	cmd, err := commands.NewTransitionOrderCommand(
		pending.ID(), order.StatusPreparing,
		transitionActor(t, fixture.ownerID, kernel.RoleRestaurantOwner),
	)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_ConcurrencyConflict(t *testing.T) {
	ctx := t.Context()
	fixture := orderFixture{
		customerID: kernel.NewUUID(),
		ownerID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
	}
	pending := orderInStatus(t, fixture, order.StatusPending)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil)
	orderRepo.On("Update", ctx, mock.Anything).
		Return(errs.NewConcurrencyConflictError("order", pending.ID().String()))

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	publisher := &MockEventPublisher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, services.NewTransitionAuthorizer(), publisher)

	cmd, err := commands.NewTransitionOrderCommand(
		pending.ID(), order.StatusConfirmed,
		transitionActor(t, fixture.ownerID, kernel.RoleRestaurantOwner),
	)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
}
