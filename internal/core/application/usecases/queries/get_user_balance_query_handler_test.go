package queries_test

import (
	"context"
	"testing"
	"time"

	"bakery/internal/adapters/out/postgres/ledgerrepo"
	"bakery/internal/core/application/usecases/queries"
	"bakery/internal/core/domain/model/kernel"
	"bakery/internal/core/domain/model/ledger"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetUserBalanceQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetUserBalanceQueryHandler
}

func (suite *GetUserBalanceQueryHandlerTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&ledgerrepo.EntryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetUserBalanceQueryHandler(db)
}

func (suite *GetUserBalanceQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetUserBalanceQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE point_transactions").Error
	suite.Require().NoError(err)
}

func (suite *GetUserBalanceQueryHandlerTestSuite) saveEntry(
	userID kernel.UUID,
	entryType ledger.EntryType,
	points int64,
	expiresAt *time.Time,
) {
	orderID := kernel.NewUUID().Bytes()
	dto := ledgerrepo.EntryDTO{
		ID:          kernel.NewUUID().Bytes(),
		UserID:      userID.Bytes(),
		OrderID:     &orderID,
		Type:        int(entryType),
		Points:      points,
		Description: "test entry",
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
	}
	suite.Require().NoError(suite.db.Create(&dto).Error)
}

func inDays(days int) *time.Time {
	t := time.Now().UTC().AddDate(0, 0, days)
	return &t
}

func (suite *GetUserBalanceQueryHandlerTestSuite) TestHandle_NoEntries_AllZero() {
	query, err := queries.NewGetUserBalanceQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	balance, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Zero(balance.Earned)
	suite.Zero(balance.Redeemed)
	suite.Zero(balance.Available)
	suite.Zero(balance.ExpiringSoon)
}

func (suite *GetUserBalanceQueryHandlerTestSuite) TestHandle_Breakdown() {
	userID := kernel.NewUUID()

	suite.saveEntry(userID, ledger.Earned, 100, inDays(300))
	suite.saveEntry(userID, ledger.Earned, 50, inDays(10))
	suite.saveEntry(userID, ledger.Redeemed, -40, nil)

	// Already-expired entries no longer carry the earned type.
	suite.saveEntry(userID, ledger.Expired, 30, inDays(-5))

	// Another user's points must not leak in.
	suite.saveEntry(kernel.NewUUID(), ledger.Earned, 999, inDays(300))

	query, err := queries.NewGetUserBalanceQuery(userID)
	suite.Require().NoError(err)

	balance, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(150), balance.Earned)
	suite.Equal(int64(40), balance.Redeemed)
	suite.Equal(int64(110), balance.Available)
	suite.Equal(int64(50), balance.ExpiringSoon)
}

func (suite *GetUserBalanceQueryHandlerTestSuite) TestHandle_AvailableNeverNegative() {
	userID := kernel.NewUUID()

	suite.saveEntry(userID, ledger.Earned, 20, inDays(300))
	suite.saveEntry(userID, ledger.Redeemed, -50, nil)

	query, err := queries.NewGetUserBalanceQuery(userID)
	suite.Require().NoError(err)

	balance, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(int64(20), balance.Earned)
	suite.Equal(int64(50), balance.Redeemed)
	suite.Zero(balance.Available)
}

func (suite *GetUserBalanceQueryHandlerTestSuite) TestHandle_ValidationError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetUserBalanceQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetUserBalanceQueryIsNotConstructed)
}

func TestGetUserBalanceQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetUserBalanceQueryHandlerTestSuite))
}
