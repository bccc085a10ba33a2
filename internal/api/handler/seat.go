package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
)

type SeatHandler struct {
	service SeatServiceInterface
}

func NewSeatHandler(s SeatServiceInterface) *SeatHandler {
	return &SeatHandler{service: s}
}

type CreateSeatRequest struct {
	Row    string `json:"row" validate:"required" example:"A"`
	Number int    `json:"number" validate:"required,min=1" example:"1"`
}

type CreateRowSeatsRequest struct {
	Row   string `json:"row" validate:"required" example:"B"`
	Count int    `json:"count" validate:"required,min=1,max=100" example:"20"`
}

type SeatResponse struct {
	ID           string `json:"id"`
	AuditoriumID string `json:"auditorium_id"`
	Row          string `json:"row"`
	Number       int    `json:"number"`
	Label        string `json:"label"`
	IsActive     bool   `json:"is_active"`
}

func toSeatResponse(s *seat.Seat) SeatResponse {
	return SeatResponse{
		ID:           s.ID,
		AuditoriumID: s.AuditoriumID,
		Row:          s.Row,
		Number:       s.Number,
		Label:        s.DisplayString(),
		IsActive:     s.IsActive,
	}
}

// Create godoc
// @Summary 座席を作成
// @Description 指定ホールに座席を1つ登録します
// @Tags seats
// @Accept json
// @Produce json
// @Param auditorium_id path string true "ホールID"
// @Param request body CreateSeatRequest true "座席情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 409 {object} api.Response "同じ位置の座席が既に存在"
// @Router /auditoriums/{auditorium_id}/seats [post]
func (h *SeatHandler) Create(c echo.Context) error {
	auditoriumID := c.Param("auditorium_id")
	var req CreateSeatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	se, err := h.service.CreateSeat(c.Request().Context(), application.CreateSeatInput{
		AuditoriumID: auditoriumID,
		Row:          req.Row,
		Number:       req.Number,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "座席を登録しました", toSeatResponse(se))
}

// CreateRow godoc
// @Summary 座席を行単位で一括作成
// @Description 指定ホールに1行分の座席（1〜count番）を登録します
// @Tags seats
// @Accept json
// @Produce json
// @Param auditorium_id path string true "ホールID"
// @Param request body CreateRowSeatsRequest true "行情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Router /auditoriums/{auditorium_id}/seats/bulk [post]
func (h *SeatHandler) CreateRow(c echo.Context) error {
	auditoriumID := c.Param("auditorium_id")
	var req CreateRowSeatsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	seats, err := h.service.CreateRowSeats(c.Request().Context(), application.CreateRowSeatsInput{
		AuditoriumID: auditoriumID,
		Row:          req.Row,
		Count:        req.Count,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	resp := make([]SeatResponse, len(seats))
	for i, se := range seats {
		resp[i] = toSeatResponse(se)
	}
	return respond(c, http.StatusCreated, "座席を一括登録しました", resp)
}

// GetByAuditorium godoc
// @Summary ホールの座席一覧を取得
// @Tags seats
// @Produce json
// @Param auditorium_id path string true "ホールID"
// @Param include_inactive query bool false "論理削除済みを含める"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /auditoriums/{auditorium_id}/seats [get]
func (h *SeatHandler) GetByAuditorium(c echo.Context) error {
	auditoriumID := c.Param("auditorium_id")
	includeInactive := c.QueryParam("include_inactive") == "true"
	seats, err := h.service.GetSeatsByAuditorium(c.Request().Context(), auditoriumID, includeInactive)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]SeatResponse, len(seats))
	for i, se := range seats {
		resp[i] = toSeatResponse(se)
	}
	return respond(c, http.StatusOK, "座席一覧を取得しました", resp)
}

// GetByID godoc
// @Summary 座席を取得
// @Tags seats
// @Produce json
// @Param id path string true "座席ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /seats/{id} [get]
func (h *SeatHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	se, err := h.service.GetSeat(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "座席を取得しました", toSeatResponse(se))
}

// Delete godoc
// @Summary 座席を削除
// @Description 論理削除します（アクティブな予約がある場合は削除不可）
// @Tags seats
// @Produce json
// @Param id path string true "座席ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /seats/{id} [delete]
func (h *SeatHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteSeat(c.Request().Context(), id); err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "座席を削除しました", nil)
}
