package queries_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/bookingrepo"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOwnerBookingsQueryHandlerTestSuite struct {
	suite.Suite
	container   *postgres.PostgresContainer
	db          *gorm.DB
	handler     queries.GetOwnerBookingsQueryHandler
	bookingRepo *bookingrepo.GormBookingRepository
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&bookingrepo.BookingDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOwnerBookingsQueryHandler(db)
	suite.bookingRepo = bookingrepo.NewGormBookingRepository(db, mockAggregateTracker{})
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE bookings").Error
	suite.Require().NoError(err)
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TestHandle_NoBookings_ReturnsEmptySlice() {
	query, err := queries.NewGetOwnerBookingsQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TestHandle_ReturnsOnlyOwnersBookingsNewestFirst() {
	ownerID := kernel.NewUUID()

	older := suite.addOwnerBooking(ownerID, time.Now().UTC().Add(-2*time.Hour))
	newer := suite.addOwnerBooking(ownerID, time.Now().UTC())

	// Another customer's booking must not leak into this owner's view.
	suite.addOwnerBooking(kernel.NewUUID(), time.Now().UTC())

	query, err := queries.NewGetOwnerBookingsQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer, result[0].BookingID)
	suite.Equal(older, result[1].BookingID)
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TestHandle_IncludesCompletionCodeAndStatus() {
	ownerID := kernel.NewUUID()
	providerID := kernel.NewUUID()

	geo, err := kernel.NewGeoPoint(28.6315, 77.2167)
	suite.Require().NoError(err)

	accepted, err := booking.NewBooking(
		kernel.NewUUID(), ownerID, kernel.NewUUID(),
		"Connaught Place, Block A, New Delhi", &geo, 450.0, "8046",
	)
	suite.Require().NoError(err)
	suite.Require().NoError(accepted.Accept(providerID))
	suite.Require().NoError(suite.bookingRepo.Add(context.Background(), accepted))

	query, err := queries.NewGetOwnerBookingsQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("confirmed", result[0].Status)
	suite.Equal("8046", result[0].CompletionCode)
	suite.Equal(450.0, result[0].Price)
	suite.Require().NotNil(result[0].ProviderID)
	suite.Equal(providerID, *result[0].ProviderID)
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TestHandle_PendingBooking_HasNoProvider() {
	ownerID := kernel.NewUUID()
	suite.addOwnerBooking(ownerID, time.Now().UTC())

	query, err := queries.NewGetOwnerBookingsQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("pending", result[0].Status)
	suite.Nil(result[0].ProviderID)
}

func (suite *GetOwnerBookingsQueryHandlerTestSuite) TestHandle_UnconstructedQuery_ReturnsError() {
	var query queries.GetOwnerBookingsQuery

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Nil(result)
	suite.Require().Error(err)
}

// addOwnerBooking persists a pending booking for the given owner with the given creation time.
func (suite *GetOwnerBookingsQueryHandlerTestSuite) addOwnerBooking(
	ownerID kernel.UUID, createdAt time.Time,
) kernel.UUID {
	geo, err := kernel.NewGeoPoint(28.6315, 77.2167)
	suite.Require().NoError(err)

	restored, err := booking.RestoreBooking(
		kernel.NewUUID(), ownerID, kernel.NewUUID(),
		"Connaught Place, Block A, New Delhi", &geo, 300.0, "4321",
		booking.Pending, nil, createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.bookingRepo.Add(context.Background(), restored))

	return restored.ID()
}

func TestGetOwnerBookingsQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOwnerBookingsQueryHandlerTestSuite))
}
