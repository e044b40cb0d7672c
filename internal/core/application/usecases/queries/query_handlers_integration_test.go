package queries_test

import (
	"context"
	"testing"
	"time"

	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/picklinerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/workqueuerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/core/application/usecases/queries"
	"github.com/lushajj14/logline-wms-sub001/internal/core/domain/model/order"
	"github.com/lushajj14/logline-wms-sub001/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.CustomerDTO{},
		&picklinerepo.PickLineDTO{},
		&workqueuerepo.WorkQueueDTO{},
	)
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, customers, pick_lines, work_queue").Error
	suite.Require().NoError(err)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetItemQuantities_ReturnsSnapshot() {
	err := suite.db.Create(&picklinerepo.PickLineDTO{
		OrderID:         1001,
		ItemCode:        "SKU-A",
		WarehouseID:     1,
		QuantityOrdered: 10,
		QuantityPicked:  4,
	}).Error
	suite.Require().NoError(err)

	handler := queries.NewGetItemQuantitiesQueryHandler(suite.db)
	query, err := queries.NewGetItemQuantitiesQuery(1001, "sku-a")
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(int64(1001), resp.OrderID)
	suite.Equal("SKU-A", resp.ItemCode)
	suite.Equal(4.0, resp.QuantityPicked)
	suite.Equal(10.0, resp.QuantityOrdered)
	suite.Equal(6.0, resp.Missing)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetItemQuantities_OverScannedLineReportsNoShortfall() {
	err := suite.db.Create(&picklinerepo.PickLineDTO{
		OrderID:         1001,
		ItemCode:        "SKU-B",
		WarehouseID:     1,
		QuantityOrdered: 5,
		QuantityPicked:  7,
	}).Error
	suite.Require().NoError(err)

	handler := queries.NewGetItemQuantitiesQueryHandler(suite.db)
	query, err := queries.NewGetItemQuantitiesQuery(1001, "SKU-B")
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal(7.0, resp.QuantityPicked)
	suite.Zero(resp.Missing)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetItemQuantities_UnknownLineReturnsNotFound() {
	handler := queries.NewGetItemQuantitiesQueryHandler(suite.db)
	query, err := queries.NewGetItemQuantitiesQuery(1001, "SKU-X")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetPendingOrders_EmptyQueueReturnsEmptySlice() {
	handler := queries.NewGetPendingOrdersQueryHandler(suite.db)

	result, err := handler.Handle(context.Background(), queries.NewGetPendingOrdersQuery())
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetPendingOrders_ReturnsQueueOldestFirst() {
	customerID := int64(5)
	err := suite.db.Create(&orderrepo.CustomerDTO{
		ID:   customerID,
		Code: "CUST-1",
		Name: "Acme GmbH",
	}).Error
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID: 1001, OrderNumber: "ORD-1001",
		Status: int(order.ReadyForCompletion), CustomerID: &customerID,
	}).Error)
	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID: 1002, OrderNumber: "ORD-1002",
		Status: int(order.ReadyForPicking),
	}).Error)
	suite.Require().NoError(suite.db.Create(&orderrepo.OrderDTO{
		ID: 1003, OrderNumber: "ORD-1003",
		Status: int(order.Completed),
	}).Error)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	suite.Require().NoError(suite.db.Create(&workqueuerepo.WorkQueueDTO{
		OrderID: 1002, EnqueuedAt: base,
	}).Error)
	suite.Require().NoError(suite.db.Create(&workqueuerepo.WorkQueueDTO{
		OrderID: 1001, EnqueuedAt: base.Add(time.Minute),
	}).Error)

	handler := queries.NewGetPendingOrdersQueryHandler(suite.db)
	result, err := handler.Handle(context.Background(), queries.NewGetPendingOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	// Oldest first; the completed order never entered the queue.
	suite.Equal(int64(1002), result[0].OrderID)
	suite.Equal("ORD-1002", result[0].OrderNumber)
	suite.Empty(result[0].CustomerCode)

	suite.Equal(int64(1001), result[1].OrderID)
	suite.Equal("ORD-1001", result[1].OrderNumber)
	suite.Equal("CUST-1", result[1].CustomerCode)
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
