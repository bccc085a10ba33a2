package screening

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
)

func TestNewScreening(t *testing.T) {
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name         string
		movieID      string
		auditoriumID string
		startTime    time.Time
		endTime      time.Time
		price        int64
		errExpected  error
	}{
		{name: "正常な上映作成", movieID: "movie-1", auditoriumID: "aud-1", startTime: start, endTime: end, price: 1000},
		{name: "映画ID未指定", movieID: "", auditoriumID: "aud-1", startTime: start, endTime: end, price: 1000, errExpected: ErrMovieIDRequired},
		{name: "ホールID未指定", movieID: "movie-1", auditoriumID: "", startTime: start, endTime: end, price: 1000, errExpected: ErrAuditoriumIDRequired},
		{name: "開始時刻が終了時刻より後", movieID: "movie-1", auditoriumID: "aud-1", startTime: end, endTime: start, price: 1000, errExpected: ErrInvalidScreeningTime},
		{name: "開始時刻と終了時刻が同じ", movieID: "movie-1", auditoriumID: "aud-1", startTime: start, endTime: start, price: 1000, errExpected: ErrInvalidScreeningTime},
		{name: "開始時刻が過去", movieID: "movie-1", auditoriumID: "aud-1", startTime: time.Now().Add(-1 * time.Hour), endTime: end, price: 1000, errExpected: ErrStartTimeInPast},
		{name: "料金が0", movieID: "movie-1", auditoriumID: "aud-1", startTime: start, endTime: end, price: 0, errExpected: ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewScreening(tt.movieID, tt.auditoriumID, tt.startTime, tt.endTime, tt.price)
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.True(t, s.IsActive)
			assert.Equal(t, tt.price, s.Price)
		})
	}
}

func TestScreening_IsSeatAvailable(t *testing.T) {
	s := createTestScreening(t)

	t.Run("予約がなければ空いている", func(t *testing.T) {
		assert.True(t, s.IsSeatAvailable("seat-1", nil))
	})

	t.Run("保留中の予約が座席を塞ぐ", func(t *testing.T) {
		bookings := []*booking.Booking{bookingWithSeats(t, booking.StatusPending, "seat-1", "seat-2")}
		assert.False(t, s.IsSeatAvailable("seat-1", bookings))
		assert.True(t, s.IsSeatAvailable("seat-3", bookings))
	})

	t.Run("確定済みの予約が座席を塞ぐ", func(t *testing.T) {
		bookings := []*booking.Booking{bookingWithSeats(t, booking.StatusConfirmed, "seat-1")}
		assert.False(t, s.IsSeatAvailable("seat-1", bookings))
	})

	t.Run("キャンセル・期限切れの予約は座席を解放する", func(t *testing.T) {
		bookings := []*booking.Booking{
			bookingWithSeats(t, booking.StatusCancelled, "seat-1"),
			bookingWithSeats(t, booking.StatusExpired, "seat-2"),
		}
		assert.True(t, s.IsSeatAvailable("seat-1", bookings))
		assert.True(t, s.IsSeatAvailable("seat-2", bookings))
	})

	t.Run("無効な上映では常に予約不可", func(t *testing.T) {
		inactive := createTestScreening(t)
		inactive.Deactivate()
		assert.False(t, inactive.IsSeatAvailable("seat-1", nil))
	})
}

func TestScreening_BookedSeatIDs(t *testing.T) {
	s := createTestScreening(t)
	bookings := []*booking.Booking{
		bookingWithSeats(t, booking.StatusPending, "seat-1", "seat-2"),
		bookingWithSeats(t, booking.StatusConfirmed, "seat-2", "seat-3"),
		bookingWithSeats(t, booking.StatusCancelled, "seat-4"),
	}

	booked := s.BookedSeatIDs(bookings)

	assert.Len(t, booked, 3)
	assert.Contains(t, booked, "seat-1")
	assert.Contains(t, booked, "seat-2")
	assert.Contains(t, booked, "seat-3")
	assert.NotContains(t, booked, "seat-4")
}

func TestScreening_TimePredicates(t *testing.T) {
	now := time.Now()

	upcoming := &Screening{StartTime: now.Add(time.Hour), EndTime: now.Add(3 * time.Hour)}
	assert.False(t, upcoming.HasStarted())
	assert.False(t, upcoming.HasEnded())
	assert.False(t, upcoming.IsOngoing())

	ongoing := &Screening{StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
	assert.True(t, ongoing.HasStarted())
	assert.False(t, ongoing.HasEnded())
	assert.True(t, ongoing.IsOngoing())

	ended := &Screening{StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour)}
	assert.True(t, ended.HasStarted())
	assert.True(t, ended.HasEnded())
	assert.False(t, ended.IsOngoing())
}

func TestScreening_UpdatePrice(t *testing.T) {
	s := createTestScreening(t)
	require.NoError(t, s.UpdatePrice(2000))
	assert.Equal(t, int64(2000), s.Price)

	assert.ErrorIs(t, s.UpdatePrice(0), ErrInvalidPrice)
	assert.ErrorIs(t, s.UpdatePrice(-100), ErrInvalidPrice)
	assert.Equal(t, int64(2000), s.Price)
}

func createTestScreening(t *testing.T) *Screening {
	start := time.Now().Add(24 * time.Hour)
	s, err := NewScreening("movie-1", "aud-1", start, start.Add(2*time.Hour), 1000)
	require.NoError(t, err)
	return s
}

func bookingWithSeats(t *testing.T, status booking.Status, seatIDs ...string) *booking.Booking {
	b, err := booking.NewBooking("screening-1", "user-1", 1000*int64(len(seatIDs)), booking.DefaultExpirationMinutes)
	require.NoError(t, err)
	for _, id := range seatIDs {
		require.NoError(t, b.AddSeat(id))
	}
	b.Status = status
	return b
}
