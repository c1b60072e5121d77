package queries_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository tracker dependency in tests
// where aggregate tracking is irrelevant.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetActiveOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetActiveOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	sqlDB, err := sql.Open("postgres", dsn)
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.New(postgresdriver.Config{Conn: sqlDB}), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, &mockAggregateTracker{})
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_WithOnlyTerminalOrders_ReturnsEmptySlice() {
	suite.persistOrderWithStatus(order.Delivered)
	suite.persistOrderWithStatus(order.Cancelled)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_WithMixedStatuses_ReturnsOnlyActive() {
	pending := suite.persistOrderWithStatus(order.Pending)
	shopping := suite.persistOrderWithStatus(order.Shopping)
	delivery := suite.persistOrderWithStatus(order.Delivery)
	delivered := suite.persistOrderWithStatus(order.Delivered)
	cancelled := suite.persistOrderWithStatus(order.Cancelled)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Len(result, 3)

	resultIDs := make(map[kernel.UUID]bool)
	for _, r := range result {
		resultIDs[r.ID] = true
	}

	for _, active := range []*order.Order{pending, shopping, delivery} {
		suite.True(resultIDs[active.ID()], "Order %s should be in results", active.OrderNumber())
	}
	for _, terminal := range []*order.Order{delivered, cancelled} {
		suite.False(resultIDs[terminal.ID()], "Terminal order %s should not be in results", terminal.OrderNumber())
	}
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_TotalsTrackShoppingProgress() {
	// Two milk at 1000 cents, one bread at 500 cents, 300 cents delivery fee
	testOrder := suite.buildTwoItemOrder()
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(int64(2800), result[0].TotalCents)
	suite.Equal(2, result[0].ItemCount)
	suite.Equal("pending", result[0].Status)
	suite.Equal("Jane Doe", result[0].CustomerName)
	suite.Equal("Garden City", result[0].City)

	// The picker finds only one milk and no bread
	picker, err := order.NewActor(order.RolePicker, kernel.NewUUID(), "Pat Picker")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.StartShopping(picker))
	items := testOrder.Items()
	suite.Require().NoError(testOrder.RecordShopping(items[0].ProductID(), 1))
	suite.Require().NoError(testOrder.RecordShopping(items[1].ProductID(), 0))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), testOrder))

	result, err = suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(int64(1300), result[0].TotalCents)
	suite.Equal("shopping", result[0].Status)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_OrdersAreNewestFirst() {
	oldest := suite.persistOrderWithStatus(order.Pending)
	time.Sleep(10 * time.Millisecond)
	middle := suite.persistOrderWithStatus(order.Pending)
	time.Sleep(10 * time.Millisecond)
	newest := suite.persistOrderWithStatus(order.Pending)

	query := queries.NewGetActiveOrdersQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal(newest.ID(), result[0].ID)
	suite.Equal(middle.ID(), result[1].ID)
	suite.Equal(oldest.ID(), result[2].ID)
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetActiveOrdersQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetActiveOrdersQuery constructor")
}

func (suite *GetActiveOrdersQueryHandlerTestSuite) TestHandle_ContextCancellation_ReturnsError() {
	for i := 0; i < 20; i++ {
		suite.persistOrderWithStatus(order.Pending)
	}

	query := queries.NewGetActiveOrdersQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, query)

	suite.Require().Error(err)
	suite.Nil(result)
}

// buildTwoItemOrder creates a pending order with two milk (1000c), one bread
// (500c) and a 300 cent delivery fee.
func (suite *GetActiveOrdersQueryHandlerTestSuite) buildTwoItemOrder() *order.Order {
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
		order.Customer{Name: "Jane Doe", Email: "jane@example.com"},
		order.DeliveryDetails{Street: "1 Main St", City: "Garden City"},
		[]order.Item{milk, bread},
		kernel.MoneyFromCents(300),
	)
	suite.Require().NoError(err)
	return testOrder
}

// persistOrderWithStatus stores a one-item order restored into the given status.
func (suite *GetActiveOrdersQueryHandlerTestSuite) persistOrderWithStatus(status order.Status) *order.Order {
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
		order.Customer{Name: "Jane Doe", Email: "jane@example.com"},
		order.DeliveryDetails{City: "Garden City"},
		[]order.Item{item},
		kernel.MoneyFromCents(0),
		nil,
		"",
		"",
		true,
	)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))
	return testOrder
}

func TestGetActiveOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetActiveOrdersQueryHandlerTestSuite))
}
