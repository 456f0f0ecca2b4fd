package booking_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/booking"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()

	geo, err := kernel.NewGeoPoint(28.6139, 77.2090)
	require.NoError(t, err)

	b, err := booking.NewBooking(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"12 MG Road, Bengaluru",
		&geo,
		200,
		"4321",
	)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("creates pending booking without provider", func(t *testing.T) {
		b := newTestBooking(t)

		assert.Equal(t, booking.Pending, b.Status())
		assert.Nil(t, b.Provider())
		assert.InDelta(t, 200, b.PriceAtBooking(), 0.000001)
		assert.Equal(t, "4321", b.CompletionCode())
		assert.False(t, b.CreatedAt().IsZero())
		require.NoError(t, b.Validate())
	})

	t.Run("allows missing coordinates", func(t *testing.T) {
		b, err := booking.NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Sector 9", nil, 150, "0000",
		)

		require.NoError(t, err)
		assert.Nil(t, b.Geo())
	})

	t.Run("rejects empty address", func(t *testing.T) {
		_, err := booking.NewBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"", nil, 150, "0000",
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "address")
	})

	t.Run("rejects non-positive price", func(t *testing.T) {
		for _, price := range []float64{0, -10} {
			_, err := booking.NewBooking(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				"Sector 9", nil, price, "0000",
			)
			require.Error(t, err)
		}
	})

	t.Run("rejects malformed completion codes", func(t *testing.T) {
		for _, code := range []string{"", "123", "12345", "12a4"} {
			_, err := booking.NewBooking(
				kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
				"Sector 9", nil, 150, code,
			)
			require.Error(t, err, "code %q should be rejected", code)
		}
	})

	t.Run("rejects nil uuids", func(t *testing.T) {
		_, err := booking.NewBooking(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			"Sector 9", nil, 150, "0000",
		)
		require.Error(t, err)
	})
}

func TestRestoreBooking(t *testing.T) {
	t.Run("restores confirmed booking with provider", func(t *testing.T) {
		providerID := kernel.NewUUID()
		createdAt := time.Now().Add(-time.Hour).UTC()

		b, err := booking.RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Sector 9", nil, 150, "0000",
			booking.Confirmed, &providerID, createdAt,
		)

		require.NoError(t, err)
		assert.Equal(t, booking.Confirmed, b.Status())
		require.NotNil(t, b.Provider())
		assert.True(t, b.Provider().IsEqual(providerID))
		assert.Equal(t, createdAt, b.CreatedAt())
	})

	t.Run("rejects confirmed booking without provider", func(t *testing.T) {
		_, err := booking.RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Sector 9", nil, 150, "0000",
			booking.Confirmed, nil, time.Now(),
		)

		require.Error(t, err)
	})

	t.Run("rejects pending booking with provider", func(t *testing.T) {
		providerID := kernel.NewUUID()

		_, err := booking.RestoreBooking(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"Sector 9", nil, 150, "0000",
			booking.Pending, &providerID, time.Now(),
		)

		require.Error(t, err)
	})
}

func TestBooking_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var b booking.Booking

		require.ErrorIs(t, b.Validate(), booking.ErrBookingIsNotConstructed)
	})

	t.Run("nil booking is invalid", func(t *testing.T) {
		var b *booking.Booking

		require.ErrorIs(t, b.Validate(), booking.ErrBookingIsNotConstructed)
	})
}

func TestBooking_Accept(t *testing.T) {
	t.Run("assigns provider and confirms", func(t *testing.T) {
		b := newTestBooking(t)
		providerID := kernel.NewUUID()

		require.NoError(t, b.Accept(providerID))

		assert.Equal(t, booking.Confirmed, b.Status())
		require.NotNil(t, b.Provider())
		assert.True(t, b.Provider().IsEqual(providerID))
	})

	t.Run("second accept fails and keeps first winner", func(t *testing.T) {
		b := newTestBooking(t)
		winner := kernel.NewUUID()
		loser := kernel.NewUUID()

		require.NoError(t, b.Accept(winner))
		err := b.Accept(loser)

		require.Error(t, err)
		assert.Equal(t, booking.Confirmed, b.Status())
		assert.True(t, b.Provider().IsEqual(winner))
	})

	t.Run("rejects invalid provider id", func(t *testing.T) {
		b := newTestBooking(t)

		require.Error(t, b.Accept(kernel.UUID{}))
		assert.Equal(t, booking.Pending, b.Status())
	})
}

func TestBooking_Start(t *testing.T) {
	t.Run("assigned provider starts confirmed booking", func(t *testing.T) {
		b := newTestBooking(t)
		providerID := kernel.NewUUID()
		require.NoError(t, b.Accept(providerID))

		require.NoError(t, b.Start(providerID))

		assert.Equal(t, booking.OnTheWay, b.Status())
	})

	t.Run("other provider cannot start", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Accept(kernel.NewUUID()))

		err := b.Start(kernel.NewUUID())

		require.ErrorIs(t, err, booking.ErrNotAssignedProvider)
		assert.Equal(t, booking.Confirmed, b.Status())
	})

	t.Run("cannot start pending booking", func(t *testing.T) {
		b := newTestBooking(t)

		err := b.Start(kernel.NewUUID())

		require.ErrorIs(t, err, booking.ErrNotAssignedProvider)
		assert.Equal(t, booking.Pending, b.Status())
	})
}

func TestBooking_Complete(t *testing.T) {
	startedBooking := func(t *testing.T) (*booking.Booking, kernel.UUID) {
		t.Helper()
		b := newTestBooking(t)
		providerID := kernel.NewUUID()
		require.NoError(t, b.Accept(providerID))
		require.NoError(t, b.Start(providerID))
		return b, providerID
	}

	t.Run("matching code completes the booking", func(t *testing.T) {
		b, providerID := startedBooking(t)

		require.NoError(t, b.Complete(providerID, "4321"))

		assert.Equal(t, booking.Completed, b.Status())
	})

	t.Run("wrong code leaves status unchanged", func(t *testing.T) {
		b, providerID := startedBooking(t)

		err := b.Complete(providerID, "1111")

		require.ErrorIs(t, err, booking.ErrInvalidCompletionCode)
		assert.Equal(t, booking.OnTheWay, b.Status())
	})

	t.Run("repeated wrong guesses never advance the status", func(t *testing.T) {
		b, providerID := startedBooking(t)

		for _, code := range []string{"0000", "9999", "4322"} {
			require.ErrorIs(t, b.Complete(providerID, code), booking.ErrInvalidCompletionCode)
		}

		assert.Equal(t, booking.OnTheWay, b.Status())
		require.NoError(t, b.Complete(providerID, "4321"))
	})

	t.Run("other provider cannot complete", func(t *testing.T) {
		b, _ := startedBooking(t)

		err := b.Complete(kernel.NewUUID(), "4321")

		require.ErrorIs(t, err, booking.ErrNotAssignedProvider)
		assert.Equal(t, booking.OnTheWay, b.Status())
	})

	t.Run("cannot complete confirmed booking", func(t *testing.T) {
		b := newTestBooking(t)
		providerID := kernel.NewUUID()
		require.NoError(t, b.Accept(providerID))

		err := b.Complete(providerID, "4321")

		require.Error(t, err)
		assert.Equal(t, booking.Confirmed, b.Status())
	})

	t.Run("no transition out of completed", func(t *testing.T) {
		b, providerID := startedBooking(t)
		require.NoError(t, b.Complete(providerID, "4321"))

		require.Error(t, b.Complete(providerID, "4321"))
		require.Error(t, b.Start(providerID))
		assert.Equal(t, booking.Completed, b.Status())
	})
}

func TestBooking_Cancel(t *testing.T) {
	t.Run("owner cancels pending booking", func(t *testing.T) {
		geo, _ := kernel.NewGeoPoint(28.6139, 77.2090)
		ownerID := kernel.NewUUID()
		b, err := booking.NewBooking(
			kernel.NewUUID(), ownerID, kernel.NewUUID(),
			"12 MG Road", &geo, 200, "4321",
		)
		require.NoError(t, err)

		require.NoError(t, b.Cancel(ownerID))

		assert.Equal(t, booking.Cancelled, b.Status())
	})

	t.Run("non-owner cannot cancel", func(t *testing.T) {
		b := newTestBooking(t)

		err := b.Cancel(kernel.NewUUID())

		require.ErrorIs(t, err, booking.ErrNotBookingOwner)
		assert.Equal(t, booking.Pending, b.Status())
	})

	t.Run("cannot cancel after acceptance", func(t *testing.T) {
		ownerID := kernel.NewUUID()
		b, err := booking.NewBooking(
			kernel.NewUUID(), ownerID, kernel.NewUUID(),
			"12 MG Road", nil, 200, "4321",
		)
		require.NoError(t, err)
		require.NoError(t, b.Accept(kernel.NewUUID()))

		cancelErr := b.Cancel(ownerID)

		require.Error(t, cancelErr)
		assert.Equal(t, booking.Confirmed, b.Status())
	})

	t.Run("no transition out of cancelled", func(t *testing.T) {
		ownerID := kernel.NewUUID()
		b, err := booking.NewBooking(
			kernel.NewUUID(), ownerID, kernel.NewUUID(),
			"12 MG Road", nil, 200, "4321",
		)
		require.NoError(t, err)
		require.NoError(t, b.Cancel(ownerID))

		require.Error(t, b.Cancel(ownerID))
		require.Error(t, b.Accept(kernel.NewUUID()))
		assert.Equal(t, booking.Cancelled, b.Status())
	})
}

func TestNewCompletionCode(t *testing.T) {
	t.Run("generates valid four digit codes", func(t *testing.T) {
		for range 100 {
			code := booking.NewCompletionCode()
			require.NoError(t, booking.ValidateCompletionCode(code))
		}
	})
}
