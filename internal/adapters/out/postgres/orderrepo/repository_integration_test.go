package orderrepo_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
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

	// Connect through lib/pq, the driver the application uses, so unique
	// index violations surface the same way they do in production
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", connStr)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicatePaymentSession_ReturnsAlreadyExistsError() {
	ctx := context.Background()

	first := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Same payment session, different id and order number, as produced by
	// two deliveries of the same webhook racing each other
	duplicate, err := order.NewOrder(
		kernel.NewUUID(),
		"PO-"+kernel.NewUUID().String(),
		*first.PaymentSessionID(),
		first.VendorID(),
		nil,
		first.Customer(),
		first.Delivery(),
		first.Items(),
		first.DeliveryFee(),
	)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, duplicate)
	suite.Require().Error(err)

	var alreadyExistsErr *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExistsErr)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(testOrder.OrderNumber(), retrieved.OrderNumber())
	suite.Equal(*testOrder.PaymentSessionID(), *retrieved.PaymentSessionID())
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(testOrder.VendorID(), retrieved.VendorID())
	suite.Equal("Jane Doe", retrieved.Customer().Name)
	suite.Equal("jane@example.com", retrieved.Customer().Email)
	suite.Equal("Garden City", retrieved.Delivery().City)
	suite.Equal(testOrder.TotalAmount().Cents(), retrieved.TotalAmount().Cents())
	suite.True(retrieved.IsPaid())
	suite.Require().Len(retrieved.Items(), 2)
	suite.Nil(retrieved.Items()[0].ActualQuantity())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByPaymentSessionID_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByPaymentSessionID(ctx, *testOrder.PaymentSessionID())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	_, err = suite.repository.GetByPaymentSessionID(ctx, "cs_unknown")
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.GetByNumber(ctx, testOrder.OrderNumber())
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), retrieved.ID())

	_, err = suite.repository.GetByNumber(ctx, "PO-UNKNOWN")
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ShoppingProgressPersists() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Move the order through shopping and record a partial pick
	picker, err := order.NewActor(order.RolePicker, kernel.NewUUID(), "Pat Picker")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.StartShopping(picker))

	items := testOrder.Items()
	suite.Require().NoError(testOrder.RecordShopping(items[0].ProductID(), 1))
	suite.Require().NoError(testOrder.RecordShopping(items[1].ProductID(), 0))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(order.Shopping, retrieved.Status())
	suite.Require().NotNil(retrieved.PickerID())
	suite.Equal(picker.ID(), *retrieved.PickerID())
	suite.Equal("Pat Picker", retrieved.PickerName())

	byProduct := make(map[kernel.UUID]order.Item, len(retrieved.Items()))
	for _, item := range retrieved.Items() {
		byProduct[item.ProductID()] = item
	}

	picked := byProduct[items[0].ProductID()]
	suite.Require().NotNil(picked.ActualQuantity())
	suite.Equal(1, *picked.ActualQuantity())
	suite.True(picked.Shopped())

	missed := byProduct[items[1].ProductID()]
	suite.Require().NotNil(missed.ActualQuantity())
	suite.Equal(0, *missed.ActualQuantity())
	suite.False(missed.Available())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestOrder())
	suite.Require().Error(err)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_ExcludesTerminalStatuses() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(4)

	suite.createOrderWithStatus(ctx, order.Pending)
	suite.createOrderWithStatus(ctx, order.Shopping)
	suite.createOrderWithStatus(ctx, order.Delivered)
	suite.createOrderWithStatus(ctx, order.Cancelled)

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)

	suite.Len(active, 2)
	for _, activeOrder := range active {
		suite.False(activeOrder.Status().IsTerminal())
	}

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_NoActiveOrders_ReturnsEmptySlice() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(2)

	suite.createOrderWithStatus(ctx, order.Delivered)
	suite.createOrderWithStatus(ctx, order.Cancelled)

	active, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Empty(active)

	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a pending two-item order with unique identifiers.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	milk, err := order.NewItem(kernel.NewUUID(), "milk", 2, kernel.MoneyFromCents(1000), "pcs")
	suite.Require().NoError(err)
	bread, err := order.NewItem(kernel.NewUUID(), "bread", 1, kernel.MoneyFromCents(500), "pcs")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		"PO-"+kernel.NewUUID().String(),
		"cs_"+kernel.NewUUID().String(),
		kernel.NewUUID(),
		nil,
		order.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "+15550001111"},
		order.DeliveryDetails{Street: "1 Main St", City: "Garden City"},
		[]order.Item{milk, bread},
		kernel.MoneyFromCents(300),
	)
	suite.Require().NoError(err)
	return testOrder
}

// createOrderWithStatus persists an order restored into the given status.
func (suite *OrderRepositoryIntegrationTestSuite) createOrderWithStatus(
	ctx context.Context, status order.Status,
) *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "milk", 1, kernel.MoneyFromCents(1000), "pcs")
	suite.Require().NoError(err)

	sessionID := "cs_" + kernel.NewUUID().String()
	testOrder, err := order.RestoreOrder(
		kernel.NewUUID(),
		"PO-"+kernel.NewUUID().String(),
		&sessionID,
		status,
		kernel.NewUUID(),
		nil,
		nil,
		nil,
		order.Customer{Email: "jane@example.com"},
		order.DeliveryDetails{},
		[]order.Item{item},
		kernel.MoneyFromCents(0),
		nil,
		"",
		"",
		true,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

// assertItemCount verifies the number of order line items in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
