package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
)

type PaymentHandler struct {
	service PaymentServiceInterface
}

func NewPaymentHandler(s PaymentServiceInterface) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type CreatePaymentRequest struct {
	BookingID     string `json:"booking_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	Method        string `json:"method" validate:"required" example:"credit_card"`
	TransactionID string `json:"transaction_id" example:"txn-2026-001"`
	Notes         string `json:"notes" example:"窓口支払い"`
}

type PaymentResponse struct {
	ID            string    `json:"id"`
	BookingID     string    `json:"booking_id"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	TransactionID string    `json:"transaction_id,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	PaymentDate   time.Time `json:"payment_date"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:            p.ID,
		BookingID:     p.BookingID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		Notes:         p.Notes,
		PaymentDate:   p.PaymentDate,
		CreatedAt:     p.CreatedAt,
	}
}

// Create godoc
// @Summary 支払いを作成
// @Description 予約に対する支払いを処理し、成功時は予約を確定します
// @Tags payments
// @Accept json
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param request body CreatePaymentRequest true "支払い情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 401 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 409 {object} api.Response "支払いが既に存在"
// @Router /payments [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	var req CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := h.service.CreatePayment(c.Request().Context(), application.CreatePaymentInput{
		BookingID:     req.BookingID,
		UserID:        userID,
		Method:        req.Method,
		TransactionID: req.TransactionID,
		Notes:         req.Notes,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "支払いが完了しました", toPaymentResponse(p))
}

// GetByID godoc
// @Summary 支払いを取得
// @Tags payments
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "支払いID"
// @Success 200 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetByID(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	p, err := h.service.GetPayment(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "支払いを取得しました", toPaymentResponse(p))
}

// GetByBooking godoc
// @Summary 予約の支払いを取得
// @Tags payments
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param booking_id path string true "予約ID"
// @Success 200 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /bookings/{booking_id}/payment [get]
func (h *PaymentHandler) GetByBooking(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	bookingID := c.Param("booking_id")
	p, err := h.service.GetPaymentByBooking(c.Request().Context(), bookingID, userID)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "支払いを取得しました", toPaymentResponse(p))
}

// Refund godoc
// @Summary 支払いを返金
// @Description 完了済みの支払いを返金し、予約をキャンセルします
// @Tags payments
// @Produce json
// @Param X-User-ID header string true "ユーザーID"
// @Param id path string true "支払いID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 403 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	p, err := h.service.RefundPayment(c.Request().Context(), id, userID)
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "支払いを返金しました", toPaymentResponse(p))
}
