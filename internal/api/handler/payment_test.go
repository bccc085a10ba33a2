package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
)

// MockPaymentService はPaymentServiceInterfaceのモック
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreatePayment(ctx context.Context, input application.CreatePaymentInput) (*payment.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPayment(ctx context.Context, id, userID string) (*payment.Payment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentService) GetPaymentByBooking(ctx context.Context, bookingID, userID string) (*payment.Payment, error) {
	args := m.Called(ctx, bookingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentService) RefundPayment(ctx context.Context, id, userID string) (*payment.Payment, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func testPayment(status payment.Status) *payment.Payment {
	now := time.Now()
	return &payment.Payment{
		ID:          "payment-123",
		BookingID:   "booking-123",
		Amount:      3600,
		Method:      payment.MethodCreditCard,
		Status:      status,
		PaymentDate: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestPaymentHandler_Create(t *testing.T) {
	e := NewTestEcho()
	reqBody := `{"booking_id": "booking-123", "method": "credit_card"}`

	t.Run("正常に支払いを作成できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("CreatePayment", mock.Anything, application.CreatePaymentInput{
			BookingID: "booking-123",
			UserID:    "user-1",
			Method:    "credit_card",
		}).Return(testPayment(payment.StatusCompleted), nil)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp PaymentResponse
		env := decodeEnvelope(t, rec.Body.Bytes(), &resp)
		assert.True(t, env.Success)
		assert.Equal(t, "payment-123", resp.ID)
		assert.Equal(t, "completed", resp.Status)
		assert.Equal(t, int64(3600), resp.Amount)

		mockService.AssertExpectations(t)
	})

	t.Run("X-User-IDヘッダーがないと401", func(t *testing.T) {
		mockService := new(MockPaymentService)
		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("支払いが既に存在すると409", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("CreatePayment", mock.Anything, mock.Anything).
			Return(nil, payment.ErrPaymentAlreadyExists)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusConflict, he.Code)
	})

	t.Run("支払い不可の予約は400", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("CreatePayment", mock.Anything, mock.Anything).
			Return(nil, payment.ErrBookingCannotBePaid)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})

	t.Run("他ユーザーの予約への支払いは403", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("CreatePayment", mock.Anything, mock.Anything).
			Return(nil, booking.ErrBookingAccessDenied)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.Header.Set("X-User-ID", "other-user")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusForbidden, he.Code)
	})
}

func TestPaymentHandler_GetByBooking(t *testing.T) {
	e := NewTestEcho()

	t.Run("予約の支払いを取得できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("GetPaymentByBooking", mock.Anything, "booking-123", "user-1").
			Return(testPayment(payment.StatusCompleted), nil)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings/booking-123/payment", nil)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("booking_id")
		c.SetParamValues("booking-123")

		err := handler.GetByBooking(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("支払いが存在しないと404", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("GetPaymentByBooking", mock.Anything, "booking-123", "user-1").
			Return(nil, payment.ErrPaymentNotFound)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/bookings/booking-123/payment", nil)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("booking_id")
		c.SetParamValues("booking-123")

		err := handler.GetByBooking(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestPaymentHandler_Refund(t *testing.T) {
	e := NewTestEcho()

	t.Run("支払いを返金できる", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("RefundPayment", mock.Anything, "payment-123", "user-1").
			Return(testPayment(payment.StatusRefunded), nil)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments/payment-123/refund", nil)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("payment-123")

		err := handler.Refund(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp PaymentResponse
		decodeEnvelope(t, rec.Body.Bytes(), &resp)
		assert.Equal(t, "refunded", resp.Status)
	})

	t.Run("完了していない支払いの返金は400", func(t *testing.T) {
		mockService := new(MockPaymentService)
		mockService.On("RefundPayment", mock.Anything, "payment-123", "user-1").
			Return(nil, payment.ErrOnlyCompletedCanBeRefunded)

		handler := NewPaymentHandler(mockService)

		req := httptest.NewRequest(http.MethodPost, "/payments/payment-123/refund", nil)
		req.Header.Set("X-User-ID", "user-1")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("payment-123")

		err := handler.Refund(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}
