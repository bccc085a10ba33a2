package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
)

type ScreeningHandler struct {
	service ScreeningServiceInterface
}

func NewScreeningHandler(s ScreeningServiceInterface) *ScreeningHandler {
	return &ScreeningHandler{service: s}
}

type CreateScreeningRequest struct {
	MovieID      string `json:"movie_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
	AuditoriumID string `json:"auditorium_id" validate:"required" example:"550e8400-e29b-41d4-a716-446655440001"`
	StartTime    string `json:"start_time" validate:"required" example:"2026-10-01T18:30:00+09:00"`
	Price        int64  `json:"price" validate:"min=0" example:"1800"`
}

type UpdateScreeningRequest struct {
	Price int64 `json:"price" validate:"required,gt=0" example:"2000"`
}

type ScreeningResponse struct {
	ID           string `json:"id"`
	MovieID      string `json:"movie_id"`
	AuditoriumID string `json:"auditorium_id"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Price        int64  `json:"price"`
	IsActive     bool   `json:"is_active"`
	CreatedAt    string `json:"created_at"`
}

type SeatAvailabilityResponse struct {
	ID          string `json:"id"`
	Row         string `json:"row"`
	Number      int    `json:"number"`
	Label       string `json:"label"`
	IsAvailable bool   `json:"is_available"`
}

type ScreeningSeatsResponse struct {
	Screening ScreeningResponse          `json:"screening"`
	Seats     []SeatAvailabilityResponse `json:"seats"`
}

func toScreeningResponse(sc *screening.Screening) ScreeningResponse {
	return ScreeningResponse{
		ID:           sc.ID,
		MovieID:      sc.MovieID,
		AuditoriumID: sc.AuditoriumID,
		StartTime:    sc.StartTime.Format(time.RFC3339),
		EndTime:      sc.EndTime.Format(time.RFC3339),
		Price:        sc.Price,
		IsActive:     sc.IsActive,
		CreatedAt:    sc.CreatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 上映を作成
// @Description 新しい上映を登録します。終了時刻は映画の上映時間から導出されます
// @Tags screenings
// @Accept json
// @Produce json
// @Param request body CreateScreeningRequest true "上映情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings [post]
func (h *ScreeningHandler) Create(c echo.Context) error {
	var req CreateScreeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "開始時刻の形式が不正です")
	}
	sc, err := h.service.CreateScreening(c.Request().Context(), application.CreateScreeningInput{
		MovieID:      req.MovieID,
		AuditoriumID: req.AuditoriumID,
		StartTime:    startTime,
		Price:        req.Price,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "上映を登録しました", toScreeningResponse(sc))
}

// GetByID godoc
// @Summary 上映を取得
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings/{id} [get]
func (h *ScreeningHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	sc, err := h.service.GetScreening(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "上映を取得しました", toScreeningResponse(sc))
}

// List godoc
// @Summary 上映一覧を取得
// @Tags screenings
// @Produce json
// @Param include_inactive query bool false "論理削除済みを含める"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {object} api.Response
// @Router /screenings [get]
func (h *ScreeningHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	screenings, err := h.service.ListScreenings(c.Request().Context(), includeInactive, limit, offset)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]ScreeningResponse, len(screenings))
	for i, sc := range screenings {
		resp[i] = toScreeningResponse(sc)
	}
	return respond(c, http.StatusOK, "上映一覧を取得しました", resp)
}

// GetByMovie godoc
// @Summary 映画の上映一覧を取得
// @Tags screenings
// @Produce json
// @Param movie_id path string true "映画ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /movies/{movie_id}/screenings [get]
func (h *ScreeningHandler) GetByMovie(c echo.Context) error {
	movieID := c.Param("movie_id")
	screenings, err := h.service.GetScreeningsByMovie(c.Request().Context(), movieID)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]ScreeningResponse, len(screenings))
	for i, sc := range screenings {
		resp[i] = toScreeningResponse(sc)
	}
	return respond(c, http.StatusOK, "上映一覧を取得しました", resp)
}

// Update godoc
// @Summary 上映料金を更新
// @Tags screenings
// @Accept json
// @Produce json
// @Param id path string true "上映ID"
// @Param request body UpdateScreeningRequest true "料金情報"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings/{id} [put]
func (h *ScreeningHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req UpdateScreeningRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	sc, err := h.service.UpdateScreeningPrice(c.Request().Context(), application.UpdateScreeningInput{
		ID:    id,
		Price: req.Price,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "上映料金を更新しました", toScreeningResponse(sc))
}

// Delete godoc
// @Summary 上映を削除
// @Description 論理削除します（アクティブな予約がある場合は削除不可）
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings/{id} [delete]
func (h *ScreeningHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteScreening(c.Request().Context(), id); err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "上映を削除しました", nil)
}

// GetSeats godoc
// @Summary 上映の座席空き状況を取得
// @Description 上映の全座席と空き状況（アクティブな予約から導出）を返します
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings/{id}/seats [get]
func (h *ScreeningHandler) GetSeats(c echo.Context) error {
	id := c.Param("id")
	sc, availability, err := h.service.GetSeatAvailability(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	seats := make([]SeatAvailabilityResponse, len(availability))
	for i, av := range availability {
		seats[i] = SeatAvailabilityResponse{
			ID:          av.Seat.ID,
			Row:         av.Seat.Row,
			Number:      av.Seat.Number,
			Label:       av.Seat.DisplayString(),
			IsAvailable: av.IsAvailable,
		}
	}
	return respond(c, http.StatusOK, "座席空き状況を取得しました", ScreeningSeatsResponse{
		Screening: toScreeningResponse(sc),
		Seats:     seats,
	})
}

// CountBooked godoc
// @Summary 上映の予約済み座席数を取得
// @Tags screenings
// @Produce json
// @Param id path string true "上映ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /screenings/{id}/booked-count [get]
func (h *ScreeningHandler) CountBooked(c echo.Context) error {
	id := c.Param("id")
	count, err := h.service.CountBookedSeats(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "予約済み座席数を取得しました", map[string]int{"count": count})
}
