package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/api"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
	redisinfra "github.com/sanosuguru/go-cinema-booking/internal/infrastructure/redis"
)

// respond は統一フォーマットの成功レスポンスを返す
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, api.OK(message, data))
}

// requireUserID はX-User-IDヘッダーからユーザーIDを取得する
func requireUserID(c echo.Context) (string, error) {
	userID := c.Request().Header.Get("X-User-ID")
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "ユーザーIDが必要です")
	}
	return userID, nil
}

// httpError はドメインエラーをHTTPステータスに対応付ける
// 対応表にないエラーはfallbackで返す
func httpError(err error, fallback int) *echo.HTTPError {
	switch {
	case errors.Is(err, movie.ErrMovieNotFound),
		errors.Is(err, auditorium.ErrAuditoriumNotFound),
		errors.Is(err, seat.ErrSeatNotFound),
		errors.Is(err, screening.ErrScreeningNotFound),
		errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, payment.ErrPaymentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, booking.ErrBookingAccessDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, booking.ErrSeatsAlreadyBooked),
		errors.Is(err, seat.ErrSeatAlreadyExists),
		errors.Is(err, payment.ErrPaymentAlreadyExists),
		errors.Is(err, redisinfra.ErrLockNotAcquired):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(fallback, err.Error())
}
