package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
)

type AuditoriumHandler struct {
	service AuditoriumServiceInterface
}

func NewAuditoriumHandler(s AuditoriumServiceInterface) *AuditoriumHandler {
	return &AuditoriumHandler{service: s}
}

type CreateAuditoriumRequest struct {
	Name     string `json:"name" validate:"required" example:"シアター1"`
	Capacity int    `json:"capacity" validate:"required,gt=0" example:"120"`
}

type UpdateAuditoriumRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type AuditoriumResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func toAuditoriumResponse(a *auditorium.Auditorium) AuditoriumResponse {
	return AuditoriumResponse{
		ID:        a.ID,
		Name:      a.Name,
		Capacity:  a.Capacity,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 上映ホールを作成
// @Description 新しい上映ホールを登録します
// @Tags auditoriums
// @Accept json
// @Produce json
// @Param request body CreateAuditoriumRequest true "ホール情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Router /auditoriums [post]
func (h *AuditoriumHandler) Create(c echo.Context) error {
	var req CreateAuditoriumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	a, err := h.service.CreateAuditorium(c.Request().Context(), application.CreateAuditoriumInput{
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "上映ホールを登録しました", toAuditoriumResponse(a))
}

// GetByID godoc
// @Summary 上映ホールを取得
// @Tags auditoriums
// @Produce json
// @Param id path string true "ホールID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /auditoriums/{id} [get]
func (h *AuditoriumHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	a, err := h.service.GetAuditorium(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "上映ホールを取得しました", toAuditoriumResponse(a))
}

// List godoc
// @Summary 上映ホール一覧を取得
// @Tags auditoriums
// @Produce json
// @Param include_inactive query bool false "論理削除済みを含める"
// @Success 200 {object} api.Response
// @Router /auditoriums [get]
func (h *AuditoriumHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	auditoriums, err := h.service.ListAuditoriums(c.Request().Context(), includeInactive)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]AuditoriumResponse, len(auditoriums))
	for i, a := range auditoriums {
		resp[i] = toAuditoriumResponse(a)
	}
	return respond(c, http.StatusOK, "上映ホール一覧を取得しました", resp)
}

// Update godoc
// @Summary 上映ホールを更新
// @Tags auditoriums
// @Accept json
// @Produce json
// @Param id path string true "ホールID"
// @Param request body UpdateAuditoriumRequest true "ホール情報"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /auditoriums/{id} [put]
func (h *AuditoriumHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req UpdateAuditoriumRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	a, err := h.service.UpdateAuditorium(c.Request().Context(), application.UpdateAuditoriumInput{
		ID:       id,
		Name:     req.Name,
		Capacity: req.Capacity,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "上映ホールを更新しました", toAuditoriumResponse(a))
}

// Delete godoc
// @Summary 上映ホールを削除
// @Description 論理削除します（アクティブな上映がある場合は削除不可）
// @Tags auditoriums
// @Produce json
// @Param id path string true "ホールID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /auditoriums/{id} [delete]
func (h *AuditoriumHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteAuditorium(c.Request().Context(), id); err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "上映ホールを削除しました", nil)
}
