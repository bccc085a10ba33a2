package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
)

type BookingHandler struct {
	service BookingServiceInterface
}

func NewBookingHandler(s BookingServiceInterface) *BookingHandler {
	return &BookingHandler{service: s}
}

type CreateBookingRequest struct {
	ScreeningID string   `json:"screening_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	SeatIDs     []string `json:"seat_ids" validate:"required,min=1" example:"seat-1,seat-2"`
}

type BookingResponse struct {
	ID          string     `json:"id"`
	ScreeningID string     `json:"screening_id"`
	UserID      string     `json:"user_id"`
	Status      string     `json:"status"`
	TotalAmount int64      `json:"total_amount"`
	SeatIDs     []string   `json:"seat_ids"`
	BookingDate time.Time  `json:"booking_date"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		ScreeningID: b.ScreeningID,
		UserID:      b.UserID,
		Status:      string(b.Status),
		TotalAmount: b.TotalAmount,
		SeatIDs:     b.SeatIDs(),
		BookingDate: b.BookingDate,
		ExpiresAt:   b.ExpiresAt,
		CreatedAt:   b.CreatedAt,
	}
}

// Create godoc
// @Summary 予約を作成
// @Description 座席を仮押さえします（15分間有効）
// @Tags bookings
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreateBookingRequest true "予約情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 401 {object} api.Response
// @Failure 409 {object} api.Response "座席が既に予約済み"
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	b, err := h.service.CreateBooking(c.Request().Context(), application.CreateBookingInput{
		ScreeningID: req.ScreeningID,
		UserID:      userID,
		SeatIDs:     req.SeatIDs,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "予約を作成しました", toBookingResponse(b))
}

// GetByID godoc
// @Summary 予約を取得
// @Description 自分の予約を取得します。他ユーザーの予約は403
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetByID(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	b, err := h.service.GetBooking(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "予約を取得しました", toBookingResponse(b))
}

// GetUserBookings godoc
// @Summary ユーザーの予約一覧を取得
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {object} api.Response
// @Failure 401 {object} api.Response
// @Router /bookings [get]
func (h *BookingHandler) GetUserBookings(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	bookings, err := h.service.GetUserBookings(c.Request().Context(), userID, limit, offset)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toBookingResponse(b)
	}
	return respond(c, http.StatusOK, "予約一覧を取得しました", resp)
}

// Confirm godoc
// @Summary 予約を確定
// @Description 仮押さえ中の予約を確定します（期限切れは確定不可）
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	b, err := h.service.ConfirmBooking(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "予約を確定しました", toBookingResponse(b))
}

// Cancel godoc
// @Summary 予約をキャンセル
// @Description 予約をキャンセルし、座席を解放します
// @Tags bookings
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	b, err := h.service.CancelBooking(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "予約をキャンセルしました", toBookingResponse(b))
}
