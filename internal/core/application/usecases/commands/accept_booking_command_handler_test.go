package commands_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/provider"
	"dispatch/internal/core/domain/model/settings"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

func newPendingBooking(t *testing.T, price float64) *booking.Booking {
	t.Helper()
	geo, err := kernel.NewGeoPoint(28.6315, 77.2167)
	require.NoError(t, err)

	b, err := booking.NewBooking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"Connaught Place, New Delhi", &geo, price, "4321",
	)
	require.NoError(t, err)
	return b
}

func newWalletProvider(t *testing.T, wallet float64) *provider.Provider {
	t.Helper()
	p, err := provider.NewProvider(kernel.NewUUID(), "Test Provider", wallet, nil, nil)
	require.NoError(t, err)
	return p
}

func newSettings(t *testing.T, minimumBalance, commissionPercent float64) *settings.PlatformSettings {
	t.Helper()
	s, err := settings.NewPlatformSettings(minimumBalance, commissionPercent)
	require.NoError(t, err)
	return s
}

func TestAcceptBookingCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	testProvider := newWalletProvider(t, 100)
	testSettings := newSettings(t, 10, 10)

	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), testProvider.ID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, testProvider.ID()).Return(testProvider, nil).Once(),
		settingsRepo.On("Get", ctx).Return(testSettings, nil).Once(),
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		providerRepo.On("Update", ctx, mock.AnythingOfType("*provider.Provider")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishToProvider", testProvider.ID(), mock.AnythingOfType("ports.Event")).Once(),
		publisher.On("PublishToAll", mock.AnythingOfType("ports.Event")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 20.0, result.Commission, 1e-9)
	assert.InDelta(t, 80.0, result.RemainingWallet, 1e-9)
	assert.Equal(t, booking.Confirmed, testBooking.Status())
	require.NotNil(t, testBooking.Provider())
	assert.True(t, testBooking.Provider().IsEqual(testProvider.ID()))
	assert.InDelta(t, 80.0, testProvider.Wallet(), 1e-9)

	acceptedEvent := publisher.Calls[0].Arguments[1].(ports.Event)
	assert.Equal(t, ports.EventJobAccepted, acceptedEvent.Name)
	takenEvent := publisher.Calls[1].Arguments[0].(ports.Event)
	assert.Equal(t, ports.EventJobTaken, takenEvent.Name)

	bookingRepo.AssertExpectations(t)
	providerRepo.AssertExpectations(t)
	settingsRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestAcceptBookingCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.AcceptBookingCommand{} // not constructed properly

	factory := new(MockUoWFactory)
	publisher := new(MockEventPublisher)
	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)

	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrAcceptBookingCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestAcceptBookingCommandHandler_Handle_BookingNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewAcceptBookingCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, cmd.BookingID()).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBookingNotFound)
	publisher.AssertNotCalled(t, "PublishToAll")
	uow.AssertNotCalled(t, "Commit")
}

func TestAcceptBookingCommandHandler_Handle_AlreadyProcessed(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	winnerID := kernel.NewUUID()
	require.NoError(t, testBooking.Accept(winnerID))

	loserID := kernel.NewUUID()
	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), loserID)
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBookingAlreadyProcessed)
	// The winner is untouched by the losing claim.
	require.NotNil(t, testBooking.Provider())
	assert.True(t, testBooking.Provider().IsEqual(winnerID))
	providerRepo.AssertNotCalled(t, "GetForUpdate")
	uow.AssertNotCalled(t, "Commit")
}

func TestAcceptBookingCommandHandler_Handle_ProviderNotFound(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	providerID := kernel.NewUUID()
	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), providerID)
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, providerID).Return(nil, errs.ErrObjectNotFound).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrProviderNotFound)
	assert.Equal(t, booking.Pending, testBooking.Status())
}

func TestAcceptBookingCommandHandler_Handle_InsufficientBalance(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	testProvider := newWalletProvider(t, 5)
	testSettings := newSettings(t, 10, 10)

	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), testProvider.ID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, testProvider.ID()).Return(testProvider, nil).Once(),
		settingsRepo.On("Get", ctx).Return(testSettings, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrInsufficientBalance)
	// Booking stays claimable, wallet untouched.
	assert.Equal(t, booking.Pending, testBooking.Status())
	assert.InDelta(t, 5.0, testProvider.Wallet(), 1e-9)
	uow.AssertNotCalled(t, "Commit")
	publisher.AssertNotCalled(t, "PublishToAll")
}

func TestAcceptBookingCommandHandler_Handle_WalletCannotCoverCommission(t *testing.T) {
	ctx := t.Context()

	// Above the minimum, but the commission exceeds the balance.
	testBooking := newPendingBooking(t, 500)
	testProvider := newWalletProvider(t, 15)
	testSettings := newSettings(t, 10, 10)

	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), testProvider.ID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, testProvider.ID()).Return(testProvider, nil).Once(),
		settingsRepo.On("Get", ctx).Return(testSettings, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrInsufficientBalance)
	assert.Equal(t, booking.Pending, testBooking.Status())
	assert.InDelta(t, 15.0, testProvider.Wallet(), 1e-9)
}

func TestAcceptBookingCommandHandler_Handle_CommitErrorSkipsPublish(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	testProvider := newWalletProvider(t, 100)
	testSettings := newSettings(t, 10, 10)

	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), testProvider.ID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, testProvider.ID()).Return(testProvider, nil).Once(),
		settingsRepo.On("Get", ctx).Return(testSettings, nil).Once(),
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		providerRepo.On("Update", ctx, mock.AnythingOfType("*provider.Provider")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	publisher.AssertNotCalled(t, "PublishToProvider")
	publisher.AssertNotCalled(t, "PublishToAll")
}

func TestAcceptBookingCommandHandler_Handle_ZeroCommission(t *testing.T) {
	ctx := t.Context()

	testBooking := newPendingBooking(t, 200)
	testProvider := newWalletProvider(t, 50)
	testSettings := newSettings(t, 10, 0)

	cmd, err := commands.NewAcceptBookingCommand(testBooking.ID(), testProvider.ID())
	require.NoError(t, err)

	bookingRepo := new(MockBookingRepository)
	providerRepo := new(MockProviderRepository)
	settingsRepo := new(MockSettingsRepository)
	publisher := new(MockEventPublisher)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BookingRepository").Return(bookingRepo).Once(),
		uow.On("ProviderRepository").Return(providerRepo).Once(),
		uow.On("SettingsRepository").Return(settingsRepo).Once(),
		bookingRepo.On("GetForUpdate", ctx, testBooking.ID()).Return(testBooking, nil).Once(),
		providerRepo.On("GetForUpdate", ctx, testProvider.ID()).Return(testProvider, nil).Once(),
		settingsRepo.On("Get", ctx).Return(testSettings, nil).Once(),
		bookingRepo.On("Update", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Once(),
		providerRepo.On("Update", ctx, mock.AnythingOfType("*provider.Provider")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		publisher.On("PublishToProvider", testProvider.ID(), mock.AnythingOfType("ports.Event")).Once(),
		publisher.On("PublishToAll", mock.AnythingOfType("ports.Event")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewAcceptBookingCommandHandler(factory, publisher)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.InDelta(t, 0.0, result.Commission, 1e-9)
	assert.InDelta(t, 50.0, result.RemainingWallet, 1e-9)
	assert.Equal(t, booking.Confirmed, testBooking.Status())
}
