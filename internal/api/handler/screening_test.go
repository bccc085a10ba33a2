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
	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
)

// MockScreeningService はScreeningServiceInterfaceのモック
type MockScreeningService struct {
	mock.Mock
}

func (m *MockScreeningService) CreateScreening(ctx context.Context, input application.CreateScreeningInput) (*screening.Screening, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*screening.Screening), args.Error(1)
}

func (m *MockScreeningService) GetScreening(ctx context.Context, id string) (*screening.Screening, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*screening.Screening), args.Error(1)
}

func (m *MockScreeningService) ListScreenings(ctx context.Context, includeInactive bool, limit, offset int) ([]*screening.Screening, error) {
	args := m.Called(ctx, includeInactive, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*screening.Screening), args.Error(1)
}

func (m *MockScreeningService) GetScreeningsByMovie(ctx context.Context, movieID string) ([]*screening.Screening, error) {
	args := m.Called(ctx, movieID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*screening.Screening), args.Error(1)
}

func (m *MockScreeningService) UpdateScreeningPrice(ctx context.Context, input application.UpdateScreeningInput) (*screening.Screening, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*screening.Screening), args.Error(1)
}

func (m *MockScreeningService) DeleteScreening(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScreeningService) GetSeatAvailability(ctx context.Context, screeningID string) (*screening.Screening, []application.SeatAvailability, error) {
	args := m.Called(ctx, screeningID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*screening.Screening), args.Get(1).([]application.SeatAvailability), args.Error(2)
}

func (m *MockScreeningService) CountBookedSeats(ctx context.Context, screeningID string) (int, error) {
	args := m.Called(ctx, screeningID)
	return args.Int(0), args.Error(1)
}

func testScreening() *screening.Screening {
	now := time.Now()
	return &screening.Screening{
		ID:           "screening-123",
		MovieID:      "movie-1",
		AuditoriumID: "aud-1",
		StartTime:    now.Add(24 * time.Hour),
		EndTime:      now.Add(24*time.Hour + 106*time.Minute),
		Price:        1800,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestScreeningHandler_Create(t *testing.T) {
	e := NewTestEcho()

	t.Run("正常に上映を作成できる", func(t *testing.T) {
		mockService := new(MockScreeningService)
		mockService.On("CreateScreening", mock.Anything, mock.AnythingOfType("application.CreateScreeningInput")).
			Return(testScreening(), nil)

		handler := NewScreeningHandler(mockService)

		reqBody := `{
			"movie_id": "movie-1",
			"auditorium_id": "aud-1",
			"start_time": "2026-10-01T18:30:00+09:00",
			"price": 1800
		}`
		req := httptest.NewRequest(http.MethodPost, "/screenings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, rec.Code)

		var resp ScreeningResponse
		decodeEnvelope(t, rec.Body.Bytes(), &resp)
		assert.Equal(t, "screening-123", resp.ID)
		assert.Equal(t, int64(1800), resp.Price)
	})

	t.Run("開始時刻の形式が不正で400", func(t *testing.T) {
		mockService := new(MockScreeningService)
		handler := NewScreeningHandler(mockService)

		reqBody := `{"movie_id": "movie-1", "auditorium_id": "aud-1", "start_time": "18:30"}`
		req := httptest.NewRequest(http.MethodPost, "/screenings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
		mockService.AssertNotCalled(t, "CreateScreening")
	})

	t.Run("存在しない映画は404", func(t *testing.T) {
		mockService := new(MockScreeningService)
		mockService.On("CreateScreening", mock.Anything, mock.Anything).
			Return(nil, movie.ErrMovieNotFound)

		handler := NewScreeningHandler(mockService)

		reqBody := `{"movie_id": "missing", "auditorium_id": "aud-1", "start_time": "2026-10-01T18:30:00+09:00"}`
		req := httptest.NewRequest(http.MethodPost, "/screenings", strings.NewReader(reqBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler.Create(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestScreeningHandler_GetSeats(t *testing.T) {
	e := NewTestEcho()

	t.Run("座席空き状況を取得できる", func(t *testing.T) {
		mockService := new(MockScreeningService)
		availability := []application.SeatAvailability{
			{Seat: &seat.Seat{ID: "seat-1", AuditoriumID: "aud-1", Row: "A", Number: 1, IsActive: true}, IsAvailable: false},
			{Seat: &seat.Seat{ID: "seat-2", AuditoriumID: "aud-1", Row: "A", Number: 2, IsActive: true}, IsAvailable: true},
		}
		mockService.On("GetSeatAvailability", mock.Anything, "screening-123").
			Return(testScreening(), availability, nil)

		handler := NewScreeningHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/screenings/screening-123/seats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("screening-123")

		err := handler.GetSeats(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ScreeningSeatsResponse
		decodeEnvelope(t, rec.Body.Bytes(), &resp)
		assert.Equal(t, "screening-123", resp.Screening.ID)
		require.Len(t, resp.Seats, 2)
		assert.False(t, resp.Seats[0].IsAvailable)
		assert.True(t, resp.Seats[1].IsAvailable)
		assert.Equal(t, "A1", resp.Seats[0].Label)
	})

	t.Run("存在しない上映は404", func(t *testing.T) {
		mockService := new(MockScreeningService)
		mockService.On("GetSeatAvailability", mock.Anything, "missing").
			Return(nil, nil, screening.ErrScreeningNotFound)

		handler := NewScreeningHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/screenings/missing/seats", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("missing")

		err := handler.GetSeats(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusNotFound, he.Code)
	})
}

func TestScreeningHandler_CountBooked(t *testing.T) {
	e := NewTestEcho()

	mockService := new(MockScreeningService)
	mockService.On("CountBookedSeats", mock.Anything, "screening-123").Return(42, nil)

	handler := NewScreeningHandler(mockService)

	req := httptest.NewRequest(http.MethodGet, "/screenings/screening-123/booked-count", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("screening-123")

	err := handler.CountBooked(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]int
	decodeEnvelope(t, rec.Body.Bytes(), &resp)
	assert.Equal(t, 42, resp["count"])
}

func TestScreeningHandler_Update(t *testing.T) {
	e := NewTestEcho()

	t.Run("上映料金を更新できる", func(t *testing.T) {
		mockService := new(MockScreeningService)
		updated := testScreening()
		updated.Price = 2000
		mockService.On("UpdateScreeningPrice", mock.Anything, application.UpdateScreeningInput{
			ID:    "screening-123",
			Price: 2000,
		}).Return(updated, nil)

		handler := NewScreeningHandler(mockService)

		req := httptest.NewRequest(http.MethodPut, "/screenings/screening-123", strings.NewReader(`{"price": 2000}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("screening-123")

		err := handler.Update(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp ScreeningResponse
		decodeEnvelope(t, rec.Body.Bytes(), &resp)
		assert.Equal(t, int64(2000), resp.Price)
	})
}

func TestScreeningHandler_Delete(t *testing.T) {
	e := NewTestEcho()

	t.Run("アクティブな予約があると400", func(t *testing.T) {
		mockService := new(MockScreeningService)
		mockService.On("DeleteScreening", mock.Anything, "screening-123").
			Return(screening.ErrScreeningHasActiveBookings)

		handler := NewScreeningHandler(mockService)

		req := httptest.NewRequest(http.MethodDelete, "/screenings/screening-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("screening-123")

		err := handler.Delete(c)

		require.Error(t, err)
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}
