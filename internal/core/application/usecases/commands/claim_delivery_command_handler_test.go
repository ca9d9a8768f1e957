package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	fixture := orderFixture{
		customerID: kernel.NewUUID(),
		ownerID:    kernel.NewUUID(),
		driverID:   kernel.NewUUID(),
	}
	claimed := orderInStatus(t, fixture, order.StatusDriverAssigned)

	orderRepo := &MockOrderRepository{}
	orderRepo.On("HasActiveDelivery", ctx, fixture.driverID).Return(false, nil)
	orderRepo.On("Claim", ctx, claimed.ID(), fixture.driverID).Return(claimed, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	publisher := &MockEventPublisher{}
	publisher.On("PublishOrderStatusChanged", ctx, mock.MatchedBy(func(e ports.OrderStatusChanged) bool {
		return e.OldStatus == order.StatusReadyForPickup &&
			e.NewStatus == order.StatusDriverAssigned &&
			e.ActorRole == kernel.RoleDriver
	})).Return(nil)

	handler := commands.NewClaimDeliveryCommandHandler(factory, publisher)
	cmd, err := commands.NewClaimDeliveryCommand(claimed.ID(), fixture.driverID)
	require.NoError(t, err)

	require.NoError(t, handler.Handle(ctx, cmd))
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestClaimDeliveryCommandHandler_Handle_DriverAlreadyBusy(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	orderRepo := &MockOrderRepository{}
	orderRepo.On("HasActiveDelivery", ctx, driverID).Return(true, nil)

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	handler := commands.NewClaimDeliveryCommandHandler(factory, &MockEventPublisher{})
	cmd, err := commands.NewClaimDeliveryCommand(orderID, driverID)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)

	orderRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClaimDeliveryCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()
	driverID := kernel.NewUUID()
	winnerID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	orderRepo := &MockOrderRepository{}
	orderRepo.On("HasActiveDelivery", ctx, driverID).Return(false, nil)
	orderRepo.On("Claim", ctx, orderID, driverID).
		Return(nil, order.NewAlreadyClaimedError(orderID, winnerID))

	uow := &MockUoW{}
	uow.On("Begin", ctx).Return(nil)
	uow.On("OrderRepository").Return(orderRepo)
	uow.On("Rollback", ctx).Return(nil)

	factory := &MockOrderUoWFactory{}
	factory.On("Create").Return(uow)

	publisher := &MockEventPublisher{}

	handler := commands.NewClaimDeliveryCommandHandler(factory, publisher)
	cmd, err := commands.NewClaimDeliveryCommand(orderID, driverID)
	require.NoError(t, err)

	err = handler.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)

	var alreadyClaimed *order.AlreadyClaimedError
	require.ErrorAs(t, err, &alreadyClaimed)
	require.True(t, alreadyClaimed.DriverID.IsEqual(winnerID))

	publisher.AssertNotCalled(t, "PublishOrderStatusChanged", mock.Anything, mock.Anything)
}
