package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivutravel/service-booking/internal/domain"
)

func newTestBooking(t *testing.T, status BookingStatus) *Booking {
	t.Helper()
	userID := uuid.New()
	b, err := NewBooking(
		uuid.New(),
		&userID,
		2,
		decimal.NewFromInt(200),
		time.Now().UTC().Add(24*time.Hour),
		"window seats please",
	)
	require.NoError(t, err)
	b.status = status
	return b
}

func TestNewBooking_Defaults(t *testing.T) {
	tourID := uuid.New()
	start := time.Now().UTC().Add(48 * time.Hour)

	b, err := NewBooking(tourID, nil, 3, decimal.NewFromInt(300), start, "note")
	require.NoError(t, err)

	assert.Equal(t, StatusPending, b.Status())
	assert.Equal(t, tourID, b.TourID())
	assert.Nil(t, b.UserID(), "guest booking has no owner")
	assert.Equal(t, 3, b.NumberOfPeople())
	assert.True(t, decimal.NewFromInt(300).Equal(b.TotalPrice()))
	assert.Equal(t, "note", b.UserNote())
	assert.Empty(t, b.StatusReason())
	assert.Equal(t, int64(1), b.Version())
	assert.WithinDuration(t, time.Now().UTC(), b.BookingDate(), time.Minute)
}

func TestNewBooking_Validation(t *testing.T) {
	userID := uuid.New()
	start := time.Now().UTC().Add(time.Hour)

	tests := []struct {
		name string
		fn   func() (*Booking, error)
	}{
		{"zero people", func() (*Booking, error) {
			return NewBooking(uuid.New(), &userID, 0, decimal.NewFromInt(100), start, "")
		}},
		{"negative people", func() (*Booking, error) {
			return NewBooking(uuid.New(), &userID, -1, decimal.NewFromInt(100), start, "")
		}},
		{"nil tour", func() (*Booking, error) {
			return NewBooking(uuid.Nil, &userID, 1, decimal.NewFromInt(100), start, "")
		}},
		{"zero start date", func() (*Booking, error) {
			return NewBooking(uuid.New(), &userID, 1, decimal.NewFromInt(100), time.Time{}, "")
		}},
		{"zero price", func() (*Booking, error) {
			return NewBooking(uuid.New(), &userID, 1, decimal.Zero, start, "")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			require.Error(t, err)
			assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		})
	}
}

func TestRequestCancel_AllowedStates(t *testing.T) {
	for _, status := range []BookingStatus{StatusPending, StatusConfirmed} {
		t.Run(string(status), func(t *testing.T) {
			b := newTestBooking(t, status)
			require.NoError(t, b.RequestCancel("plans changed"))
			assert.Equal(t, StatusCancelRequest, b.Status())
			assert.Equal(t, "plans changed", b.StatusReason())
		})
	}
}

func TestRequestCancel_RejectedStates(t *testing.T) {
	for _, status := range []BookingStatus{StatusRejected, StatusCancelled, StatusCompleted, StatusDeleted, StatusCancelRequest} {
		t.Run(string(status), func(t *testing.T) {
			b := newTestBooking(t, status)
			err := b.RequestCancel("too late")
			require.Error(t, err)
			assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
			assert.Equal(t, status, b.Status(), "status must not change on a failed transition")
		})
	}
}

func TestRequestCancel_PreservesUserNote(t *testing.T) {
	b := newTestBooking(t, StatusConfirmed)
	require.NoError(t, b.RequestCancel("found a cheaper tour"))

	assert.Equal(t, "window seats please", b.UserNote(), "original note must survive the transition")
	assert.Equal(t, "found a cheaper tour", b.StatusReason())
}

func TestConfirm_OnlyFromPending(t *testing.T) {
	b := newTestBooking(t, StatusPending)
	require.NoError(t, b.Confirm())
	assert.Equal(t, StatusConfirmed, b.Status())

	for _, status := range []BookingStatus{StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted, StatusDeleted} {
		b := newTestBooking(t, status)
		err := b.Confirm()
		require.Error(t, err, "confirm from %s must fail", status)
		assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
	}
}

func TestReject_DefaultReason(t *testing.T) {
	b := newTestBooking(t, StatusPending)
	require.NoError(t, b.Reject(""))
	assert.Equal(t, StatusRejected, b.Status())
	assert.Equal(t, DefaultRejectReason, b.StatusReason())

	b2 := newTestBooking(t, StatusPending)
	require.NoError(t, b2.Reject("tour overbooked"))
	assert.Equal(t, "tour overbooked", b2.StatusReason())
}

func TestCancellationRoundTrip(t *testing.T) {
	b := newTestBooking(t, StatusConfirmed)

	require.NoError(t, b.RequestCancel("change of plans"))
	require.NoError(t, b.RejectCancel(""))
	assert.Equal(t, StatusConfirmed, b.Status(), "rejected cancel request returns to confirmed")
	assert.Equal(t, DefaultRejectCancelReason, b.StatusReason())

	require.NoError(t, b.RequestCancel("really cancelling now"))
	require.NoError(t, b.ApproveCancel())
	assert.Equal(t, StatusCancelled, b.Status())
}

func TestApproveCancel_OnlyFromCancelRequest(t *testing.T) {
	b := newTestBooking(t, StatusConfirmed)
	err := b.ApproveCancel()
	require.Error(t, err)
	assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
}

func TestComplete(t *testing.T) {
	now := time.Now().UTC()

	t.Run("future start date fails", func(t *testing.T) {
		b := newTestBooking(t, StatusConfirmed)
		b.startDate = now.Add(24 * time.Hour)
		err := b.Complete(now)
		require.Error(t, err)
		assert.Equal(t, domain.CodeValidation, domain.CodeOf(err))
		assert.Equal(t, StatusConfirmed, b.Status())
	})

	t.Run("departed tour completes", func(t *testing.T) {
		b := newTestBooking(t, StatusConfirmed)
		b.startDate = now.Add(-24 * time.Hour)
		require.NoError(t, b.Complete(now))
		assert.Equal(t, StatusCompleted, b.Status())
	})

	t.Run("only from confirmed", func(t *testing.T) {
		b := newTestBooking(t, StatusPending)
		b.startDate = now.Add(-24 * time.Hour)
		err := b.Complete(now)
		require.Error(t, err)
		assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
	})
}

func TestSoftDelete(t *testing.T) {
	t.Run("blocked when confirmed", func(t *testing.T) {
		b := newTestBooking(t, StatusConfirmed)
		err := b.SoftDelete()
		require.Error(t, err)
		assert.Equal(t, domain.CodeInvalidState, domain.CodeOf(err))
	})

	t.Run("allowed from non-confirmed states", func(t *testing.T) {
		for _, status := range []BookingStatus{StatusPending, StatusRejected, StatusCancelRequest, StatusCancelled, StatusCompleted} {
			b := newTestBooking(t, status)
			require.NoError(t, b.SoftDelete(), "delete from %s", status)
			assert.Equal(t, StatusDeleted, b.Status())
		}
	})

	t.Run("deleted is terminal", func(t *testing.T) {
		b := newTestBooking(t, StatusDeleted)
		require.Error(t, b.SoftDelete())
	})
}

func TestIsOwnedBy(t *testing.T) {
	owner := uuid.New()
	b, err := NewBooking(uuid.New(), &owner, 1, decimal.NewFromInt(50), time.Now().UTC().Add(time.Hour), "")
	require.NoError(t, err)

	assert.True(t, b.IsOwnedBy(owner))
	assert.False(t, b.IsOwnedBy(uuid.New()))

	guest, err := NewBooking(uuid.New(), nil, 1, decimal.NewFromInt(50), time.Now().UTC().Add(time.Hour), "")
	require.NoError(t, err)
	assert.False(t, guest.IsOwnedBy(owner), "guest bookings have no owner")
}

func TestIncrementVersion(t *testing.T) {
	b := newTestBooking(t, StatusPending)
	require.Equal(t, int64(1), b.Version())
	b.IncrementVersion()
	assert.Equal(t, int64(2), b.Version())
}
