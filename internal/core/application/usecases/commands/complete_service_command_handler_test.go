package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
)

func newOnTheWayBooking(t *testing.T, providerID kernel.UUID) *booking.Booking {
	t.Helper()
	b := newConfirmedBooking(t, providerID)
	require.NoError(t, b.Start(providerID))
	return b
}

func TestCompleteServiceCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	providerID := kernel.NewUUID()
	testBooking := newOnTheWayBooking(t, providerID)

	cmd, err := commands.NewCompleteServiceCommand(testBooking.ID(), providerID, "4321")
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, booking.Completed, testBooking.Status())
	bookingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteServiceCommandHandler_Handle_WrongCode(t *testing.T) {
	ctx := t.Context()

	providerID := kernel.NewUUID()
	testBooking := newOnTheWayBooking(t, providerID)

	cmd, err := commands.NewCompleteServiceCommand(testBooking.ID(), providerID, "0000")
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, booking.ErrInvalidCompletionCode)
	// The booking is untouched so the provider can retry with the right code.
	assert.Equal(t, booking.OnTheWay, testBooking.Status())
	uow.AssertNotCalled(t, "Commit")
}

func TestCompleteServiceCommandHandler_Handle_WrongProvider(t *testing.T) {
	ctx := t.Context()

	testBooking := newOnTheWayBooking(t, kernel.NewUUID())
	intruderID := kernel.NewUUID()

	cmd, err := commands.NewCompleteServiceCommand(testBooking.ID(), intruderID, "4321")
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		bookingRepo.On("Get", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockBookingUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewCompleteServiceCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, booking.ErrNotAssignedProvider)
	assert.Equal(t, booking.OnTheWay, testBooking.Status())
}
