package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CartRepositoryIntegrationTestSuite provides integration tests for
// GormCartRepository using PostgreSQL containers.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartDTO{}, &cartrepo.CartItemDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts, cart_items").Error)
	suite.repository = cartrepo.NewGormCartRepository(suite.db)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_FreshCart_RoundTrips() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()
	menuItemID := kernel.NewUUID()

	fresh := suite.createCartWithItem(customerID, restaurantID, menuItemID, 2)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)

	suite.Equal(customerID, retrieved.CustomerID())
	suite.Require().NotNil(retrieved.RestaurantID())
	suite.Equal(restaurantID, *retrieved.RestaurantID())
	suite.Equal(1, retrieved.Version())

	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(menuItemID, retrieved.Items()[0].MenuItemID())
	suite.Equal(2, retrieved.Items()[0].Quantity())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGet_NonExistentCart_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_LoadedCart_RewritesLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	fresh := suite.createCartWithItem(customerID, restaurantID, kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	loaded, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)

	secondItemID := kernel.NewUUID()
	suite.Require().NoError(loaded.AddItem(secondItemID, restaurantID, 3, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Save(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Len(retrieved.Items(), 2)
	suite.Equal(2, retrieved.Version())
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_StaleVersion_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	fresh := suite.createCartWithItem(customerID, restaurantID, kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	first, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)

	suite.Require().NoError(first.AddItem(kernel.NewUUID(), restaurantID, 1, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Save(ctx, first))

	suite.Require().NoError(second.AddItem(kernel.NewUUID(), restaurantID, 1, time.Now().UTC()))
	err = suite.repository.Save(ctx, second)

	suite.Require().Error(err)
	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ClearedCart_PersistsEmptyUnboundCart() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	fresh := suite.createCartWithItem(customerID, kernel.NewUUID(), kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	loaded, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	loaded.Clear(time.Now().UTC())
	suite.Require().NoError(suite.repository.Save(ctx, loaded))

	retrieved, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.True(retrieved.IsEmpty())
	suite.Nil(retrieved.RestaurantID())
}

func (suite *CartRepositoryIntegrationTestSuite) TestDelete_RemovesCartAndLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	fresh := suite.createCartWithItem(customerID, kernel.NewUUID(), kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	suite.Require().NoError(suite.repository.Delete(ctx, customerID))

	_, err := suite.repository.Get(ctx, customerID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&lineCount).Error)
	suite.Zero(lineCount)
}

func (suite *CartRepositoryIntegrationTestSuite) TestDelete_AbsentCart_IsNoOp() {
	suite.Require().NoError(suite.repository.Delete(context.Background(), kernel.NewUUID()))
}

func (suite *CartRepositoryIntegrationTestSuite) TestDeleteVersioned_CurrentVersion_RemovesCartAndLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	fresh := suite.createCartWithItem(customerID, kernel.NewUUID(), kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	loaded, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.DeleteVersioned(ctx, loaded))

	_, err = suite.repository.Get(ctx, customerID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	var lineCount int64
	suite.Require().NoError(suite.db.Model(&cartrepo.CartItemDTO{}).Count(&lineCount).Error)
	suite.Zero(lineCount)
}

func (suite *CartRepositoryIntegrationTestSuite) TestDeleteVersioned_StaleVersion_KeepsNewerLines() {
	ctx := context.Background()

	customerID := kernel.NewUUID()
	restaurantID := kernel.NewUUID()

	fresh := suite.createCartWithItem(customerID, restaurantID, kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	stale, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)

	// A second request adds a line after the first one read the cart.
	current, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Require().NoError(current.AddItem(kernel.NewUUID(), restaurantID, 2, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Save(ctx, current))

	err = suite.repository.DeleteVersioned(ctx, stale)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	kept, err := suite.repository.Get(ctx, customerID)
	suite.Require().NoError(err)
	suite.Len(kept.Items(), 2)
}

func (suite *CartRepositoryIntegrationTestSuite) TestSave_ConcurrentFirstInsert_ReturnsConcurrencyConflict() {
	ctx := context.Background()

	customerID := kernel.NewUUID()

	winner := suite.createCartWithItem(customerID, kernel.NewUUID(), kernel.NewUUID(), 1)
	suite.Require().NoError(suite.repository.Save(ctx, winner))

	// The loser of a first-insert race still holds a version-zero aggregate.
	loser := suite.createCartWithItem(customerID, kernel.NewUUID(), kernel.NewUUID(), 1)
	err := suite.repository.Save(ctx, loser)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)
}

func (suite *CartRepositoryIntegrationTestSuite) TestPurgeAbandoned_RemovesOnlyStaleCarts() {
	ctx := context.Background()

	staleCustomerID := kernel.NewUUID()
	freshCustomerID := kernel.NewUUID()

	stale := suite.createCartWithItemAt(staleCustomerID, time.Now().UTC().Add(-48*time.Hour))
	fresh := suite.createCartWithItemAt(freshCustomerID, time.Now().UTC())
	suite.Require().NoError(suite.repository.Save(ctx, stale))
	suite.Require().NoError(suite.repository.Save(ctx, fresh))

	purged, err := suite.repository.PurgeAbandoned(ctx, time.Now().UTC().Add(-24*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	_, err = suite.repository.Get(ctx, staleCustomerID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	kept, err := suite.repository.Get(ctx, freshCustomerID)
	suite.Require().NoError(err)
	suite.Len(kept.Items(), 1)
}

// createCartWithItem creates a fresh cart bound to the restaurant with one line.
func (suite *CartRepositoryIntegrationTestSuite) createCartWithItem(
	customerID, restaurantID, menuItemID kernel.UUID, quantity int,
) *cart.Cart {
	testCart, err := cart.NewCart(customerID, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(testCart.AddItem(menuItemID, restaurantID, quantity, time.Now().UTC()))
	return testCart
}

func (suite *CartRepositoryIntegrationTestSuite) createCartWithItemAt(
	customerID kernel.UUID, updatedAt time.Time,
) *cart.Cart {
	testCart, err := cart.NewCart(customerID, updatedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(testCart.AddItem(kernel.NewUUID(), kernel.NewUUID(), 1, updatedAt))
	return testCart
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
