package handler

import (
	"context"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
)

// MovieServiceInterface は映画サービスのインターフェース
type MovieServiceInterface interface {
	CreateMovie(ctx context.Context, input application.CreateMovieInput) (*movie.Movie, error)
	GetMovie(ctx context.Context, id string) (*movie.Movie, error)
	ListMovies(ctx context.Context, includeInactive bool, limit, offset int) ([]*movie.Movie, error)
	UpdateMovie(ctx context.Context, input application.UpdateMovieInput) (*movie.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// AuditoriumServiceInterface は上映ホールサービスのインターフェース
type AuditoriumServiceInterface interface {
	CreateAuditorium(ctx context.Context, input application.CreateAuditoriumInput) (*auditorium.Auditorium, error)
	GetAuditorium(ctx context.Context, id string) (*auditorium.Auditorium, error)
	ListAuditoriums(ctx context.Context, includeInactive bool) ([]*auditorium.Auditorium, error)
	UpdateAuditorium(ctx context.Context, input application.UpdateAuditoriumInput) (*auditorium.Auditorium, error)
	DeleteAuditorium(ctx context.Context, id string) error
}

// SeatServiceInterface は座席サービスのインターフェース
type SeatServiceInterface interface {
	CreateSeat(ctx context.Context, input application.CreateSeatInput) (*seat.Seat, error)
	CreateRowSeats(ctx context.Context, input application.CreateRowSeatsInput) ([]*seat.Seat, error)
	GetSeat(ctx context.Context, id string) (*seat.Seat, error)
	GetSeatsByAuditorium(ctx context.Context, auditoriumID string, includeInactive bool) ([]*seat.Seat, error)
	DeleteSeat(ctx context.Context, id string) error
}

// ScreeningServiceInterface は上映サービスのインターフェース
type ScreeningServiceInterface interface {
	CreateScreening(ctx context.Context, input application.CreateScreeningInput) (*screening.Screening, error)
	GetScreening(ctx context.Context, id string) (*screening.Screening, error)
	ListScreenings(ctx context.Context, includeInactive bool, limit, offset int) ([]*screening.Screening, error)
	GetScreeningsByMovie(ctx context.Context, movieID string) ([]*screening.Screening, error)
	UpdateScreeningPrice(ctx context.Context, input application.UpdateScreeningInput) (*screening.Screening, error)
	DeleteScreening(ctx context.Context, id string) error
	GetSeatAvailability(ctx context.Context, screeningID string) (*screening.Screening, []application.SeatAvailability, error)
	CountBookedSeats(ctx context.Context, screeningID string) (int, error)
}

// BookingServiceInterface は予約サービスのインターフェース
type BookingServiceInterface interface {
	CreateBooking(ctx context.Context, input application.CreateBookingInput) (*booking.Booking, error)
	GetBooking(ctx context.Context, id, userID string) (*booking.Booking, error)
	GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error)
	ConfirmBooking(ctx context.Context, id, userID string) (*booking.Booking, error)
	CancelBooking(ctx context.Context, id, userID string) (*booking.Booking, error)
}

// PaymentServiceInterface は支払いサービスのインターフェース
type PaymentServiceInterface interface {
	CreatePayment(ctx context.Context, input application.CreatePaymentInput) (*payment.Payment, error)
	GetPayment(ctx context.Context, id, userID string) (*payment.Payment, error)
	GetPaymentByBooking(ctx context.Context, bookingID, userID string) (*payment.Payment, error)
	RefundPayment(ctx context.Context, id, userID string) (*payment.Payment, error)
}
