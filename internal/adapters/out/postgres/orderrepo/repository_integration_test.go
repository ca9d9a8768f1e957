package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for
// GormOrderRepository using PostgreSQL containers to verify persistence
// behavior, the version guard and the atomic claim.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
	suite.Require().NoError(orderrepo.CreateActiveDeliveryIndex(db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.CustomerID(), retrieved.CustomerID())
	suite.Equal(original.RestaurantID(), retrieved.RestaurantID())
	suite.Equal(original.RestaurantOwnerID(), retrieved.RestaurantOwnerID())
	suite.Nil(retrieved.Driver())
	suite.Equal(order.StatusPending, retrieved.Status())
	suite.Equal(order.PaymentMethodCashOnDelivery, retrieved.PaymentMethod())
	suite.Equal(order.PaymentStatusPending, retrieved.PaymentStatus())
	suite.Equal("13.00", retrieved.Subtotal().String())
	suite.Equal("2.00", retrieved.DeliveryFee().String())
	suite.Equal("15.00", retrieved.Total().String())
	suite.Equal(1, retrieved.Version())

	suite.Require().Len(retrieved.Items(), 1)
	item := retrieved.Items()[0]
	suite.Equal("Pad Thai", item.Name())
	suite.Equal("6.50", item.UnitPrice().String())
	suite.Equal(2, item.Quantity())

	address := retrieved.DeliveryAddress()
	suite.Equal("12 Main St", address.Street())
	suite.Equal("Springfield", address.City())
	suite.Equal("12345", address.PostalCode())
	suite.Equal("ring twice", address.Notes())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Transition_PersistsStatusAndTimestamp() {
	ctx := context.Background()

	original := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	loaded, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(loaded.TransitionTo(order.StatusConfirmed, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, loaded.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
	suite.NotNil(retrieved.ConfirmedAt())
	suite.Equal(2, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	original := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	// Two actors load the same version.
	first, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.TransitionTo(order.StatusConfirmed, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.TransitionTo(order.StatusCancelledByUser, time.Now().UTC()))
	err = suite.repository.Update(ctx, second)

	suite.Require().Error(err)
	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// The first write stands.
	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusConfirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_ReadyOrder_AssignsDriver() {
	ctx := context.Background()

	ready := suite.createOrderInStatus(order.StatusReadyForPickup, nil)
	suite.Require().NoError(suite.repository.Add(ctx, ready))

	driverID := kernel.NewUUID()
	claimed, err := suite.repository.Claim(ctx, ready.ID(), driverID)
	suite.Require().NoError(err)

	suite.Equal(order.StatusDriverAssigned, claimed.Status())
	suite.Require().NotNil(claimed.Driver())
	suite.Equal(driverID, *claimed.Driver())
	suite.Equal(2, claimed.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_AlreadyClaimed_NamesWinner() {
	ctx := context.Background()

	ready := suite.createOrderInStatus(order.StatusReadyForPickup, nil)
	suite.Require().NoError(suite.repository.Add(ctx, ready))

	winnerID := kernel.NewUUID()
	_, err := suite.repository.Claim(ctx, ready.ID(), winnerID)
	suite.Require().NoError(err)

	loserID := kernel.NewUUID()
	claimed, err := suite.repository.Claim(ctx, ready.ID(), loserID)

	suite.Nil(claimed)
	suite.Require().Error(err)

	var alreadyClaimedErr *order.AlreadyClaimedError
	suite.Require().ErrorAs(err, &alreadyClaimedErr)
	suite.Equal(winnerID, alreadyClaimedErr.DriverID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_DriverAlreadyActive_ReturnsDriverHasActiveDelivery() {
	ctx := context.Background()

	first := suite.createOrderInStatus(order.StatusReadyForPickup, nil)
	second := suite.createOrderInStatus(order.StatusReadyForPickup, nil)
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	driverID := kernel.NewUUID()
	_, err := suite.repository.Claim(ctx, first.ID(), driverID)
	suite.Require().NoError(err)

	// The same driver landing on a second ready order hits the
	// active-delivery index regardless of any up-front check.
	claimed, err := suite.repository.Claim(ctx, second.ID(), driverID)

	suite.Nil(claimed)
	suite.Require().Error(err)

	var activeErr *order.DriverHasActiveDeliveryError
	suite.Require().ErrorAs(err, &activeErr)
	suite.Equal(driverID, activeErr.DriverID)

	// The second order stays claimable.
	untouched, err := suite.repository.Get(ctx, second.ID())
	suite.Require().NoError(err)
	suite.Equal(order.StatusReadyForPickup, untouched.Status())
	suite.Nil(untouched.Driver())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_OrderNotReady_ReturnsInvalidTransition() {
	ctx := context.Background()

	pending := suite.createPendingOrder()
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	claimed, err := suite.repository.Claim(ctx, pending.ID(), kernel.NewUUID())

	suite.Nil(claimed)
	suite.Require().ErrorIs(err, errs.ErrInvalidStateTransition)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestClaim_NonExistentOrder_ReturnsNotFoundError() {
	claimed, err := suite.repository.Claim(context.Background(), kernel.NewUUID(), kernel.NewUUID())

	suite.Nil(claimed)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHasActiveDelivery_TracksDriverStatuses() {
	ctx := context.Background()

	driverID := kernel.NewUUID()

	busy, err := suite.repository.HasActiveDelivery(ctx, driverID)
	suite.Require().NoError(err)
	suite.False(busy)

	assigned := suite.createOrderInStatus(order.StatusDriverAssigned, &driverID)
	suite.Require().NoError(suite.repository.Add(ctx, assigned))

	busy, err = suite.repository.HasActiveDelivery(ctx, driverID)
	suite.Require().NoError(err)
	suite.True(busy)

	// A finished delivery no longer counts as active.
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
	delivered := suite.createOrderInStatus(order.StatusDelivered, &driverID)
	suite.Require().NoError(suite.repository.Add(ctx, delivered))

	busy, err = suite.repository.HasActiveDelivery(ctx, driverID)
	suite.Require().NoError(err)
	suite.False(busy)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetPendingOlderThan_ReturnsOnlyStalePendingOrders() {
	ctx := context.Background()

	stale := suite.createPendingOrderCreatedAt(time.Now().UTC().Add(-2 * time.Hour))
	fresh := suite.createPendingOrderCreatedAt(time.Now().UTC())
	ready := suite.createOrderInStatus(order.StatusReadyForPickup, nil)

	suite.Require().NoError(suite.repository.Add(ctx, stale))
	suite.Require().NoError(suite.repository.Add(ctx, fresh))
	suite.Require().NoError(suite.repository.Add(ctx, ready))

	expired, err := suite.repository.GetPendingOlderThan(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)

	suite.Require().Len(expired, 1)
	suite.Equal(stale.ID(), expired[0].ID())
	suite.Require().Len(expired[0].Items(), 1)
}

// createPendingOrder creates a valid pending order with one line.
func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrder() *order.Order {
	return suite.createPendingOrderCreatedAt(time.Now().UTC())
}

func (suite *OrderRepositoryIntegrationTestSuite) createPendingOrderCreatedAt(createdAt time.Time) *order.Order {
	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.LineItem{suite.createLineItem()},
		suite.createAddress(),
		suite.money("13.00"),
		suite.money("2.00"),
		suite.money("15.00"),
		order.PaymentMethodCashOnDelivery,
		createdAt,
	)
	suite.Require().NoError(err)
	return testOrder
}

// createOrderInStatus restores an order in the given status, with a driver
// where the status requires one.
func (suite *OrderRepositoryIntegrationTestSuite) createOrderInStatus(
	status order.Status, driverID *kernel.UUID,
) *order.Order {
	if driverID == nil && (status.IsDriverActive() || status == order.StatusDelivered) {
		id := kernel.NewUUID()
		driverID = &id
	}

	testOrder, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:                kernel.NewUUID(),
		CustomerID:        kernel.NewUUID(),
		RestaurantID:      kernel.NewUUID(),
		RestaurantOwnerID: kernel.NewUUID(),
		DriverID:          driverID,
		Items:             []order.LineItem{suite.createLineItem()},
		DeliveryAddress:   suite.createAddress(),
		Subtotal:          suite.money("13.00"),
		DeliveryFee:       suite.money("2.00"),
		Total:             suite.money("15.00"),
		Status:            status,
		PaymentMethod:     order.PaymentMethodCashOnDelivery,
		PaymentStatus:     order.PaymentStatusPending,
		CreatedAt:         time.Now().UTC(),
		Version:           0,
	})
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) createLineItem() order.LineItem {
	item, err := order.NewLineItem(kernel.NewUUID(), "Pad Thai", suite.money("6.50"), 2)
	suite.Require().NoError(err)
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) createAddress() order.DeliveryAddress {
	address, err := order.NewDeliveryAddress("12 Main St", "Springfield", "12345", "ring twice")
	suite.Require().NoError(err)
	return address
}

func (suite *OrderRepositoryIntegrationTestSuite) money(s string) kernel.Money {
	amount, err := kernel.NewMoneyFromString(s)
	suite.Require().NoError(err)
	return amount
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
