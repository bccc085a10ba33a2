package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sanosuguru/go-cinema-booking/internal/application"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
)

type MovieHandler struct {
	service MovieServiceInterface
}

func NewMovieHandler(s MovieServiceInterface) *MovieHandler {
	return &MovieHandler{service: s}
}

type CreateMovieRequest struct {
	Title           string `json:"title" validate:"required" example:"君の名は。"`
	Description     string `json:"description" validate:"required" example:"東京の少年と飛騨の少女が入れ替わる"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0" example:"106"`
	Genre           string `json:"genre" validate:"required" example:"アニメ"`
	Director        string `json:"director" validate:"required" example:"新海誠"`
	ReleaseDate     string `json:"release_date" validate:"required" example:"2016-08-26"`
	TicketPrice     int64  `json:"ticket_price" validate:"required,gt=0" example:"1800"`
	PosterURL       string `json:"poster_url" example:"https://example.com/poster.jpg"`
}

type UpdateMovieRequest struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	Genre           string  `json:"genre"`
	Director        string  `json:"director"`
	ReleaseDate     string  `json:"release_date"`
	TicketPrice     int64   `json:"ticket_price"`
	PosterURL       *string `json:"poster_url"`
}

type MovieResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"duration_minutes"`
	Genre           string `json:"genre"`
	Director        string `json:"director"`
	ReleaseDate     string `json:"release_date"`
	TicketPrice     int64  `json:"ticket_price"`
	PosterURL       string `json:"poster_url,omitempty"`
	IsActive        bool   `json:"is_active"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func toMovieResponse(m *movie.Movie) MovieResponse {
	return MovieResponse{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Genre:           m.Genre,
		Director:        m.Director,
		ReleaseDate:     m.ReleaseDate.Format("2006-01-02"),
		TicketPrice:     m.TicketPrice,
		PosterURL:       m.PosterURL,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       m.UpdatedAt.Format(time.RFC3339),
	}
}

// Create godoc
// @Summary 映画を作成
// @Description 新しい映画を登録します
// @Tags movies
// @Accept json
// @Produce json
// @Param request body CreateMovieRequest true "映画情報"
// @Success 201 {object} api.Response
// @Failure 400 {object} api.Response
// @Router /movies [post]
func (h *MovieHandler) Create(c echo.Context) error {
	var req CreateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "公開日の形式が不正です")
	}
	m, err := h.service.CreateMovie(c.Request().Context(), application.CreateMovieInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		Director:        req.Director,
		ReleaseDate:     releaseDate,
		TicketPrice:     req.TicketPrice,
		PosterURL:       req.PosterURL,
	})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusCreated, "映画を登録しました", toMovieResponse(m))
}

// GetByID godoc
// @Summary 映画を取得
// @Description 指定IDの映画を取得します
// @Tags movies
// @Produce json
// @Param id path string true "映画ID"
// @Success 200 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /movies/{id} [get]
func (h *MovieHandler) GetByID(c echo.Context) error {
	id := c.Param("id")
	m, err := h.service.GetMovie(c.Request().Context(), id)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	return respond(c, http.StatusOK, "映画を取得しました", toMovieResponse(m))
}

// List godoc
// @Summary 映画一覧を取得
// @Description 映画の一覧を取得します（デフォルトは有効なもののみ）
// @Tags movies
// @Produce json
// @Param include_inactive query bool false "論理削除済みを含める"
// @Param limit query int false "取得件数" default(20)
// @Param offset query int false "オフセット" default(0)
// @Success 200 {object} api.Response
// @Router /movies [get]
func (h *MovieHandler) List(c echo.Context) error {
	includeInactive := c.QueryParam("include_inactive") == "true"
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	movies, err := h.service.ListMovies(c.Request().Context(), includeInactive, limit, offset)
	if err != nil {
		return httpError(err, http.StatusInternalServerError)
	}
	resp := make([]MovieResponse, len(movies))
	for i, m := range movies {
		resp[i] = toMovieResponse(m)
	}
	return respond(c, http.StatusOK, "映画一覧を取得しました", resp)
}

// Update godoc
// @Summary 映画を更新
// @Description 指定IDの映画を部分更新します（空のフィールドは変更されません）
// @Tags movies
// @Accept json
// @Produce json
// @Param id path string true "映画ID"
// @Param request body UpdateMovieRequest true "映画情報"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /movies/{id} [put]
func (h *MovieHandler) Update(c echo.Context) error {
	id := c.Param("id")
	var req UpdateMovieRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "無効なリクエスト")
	}

	fields := movie.UpdateInput{
		Title:           req.Title,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Genre:           req.Genre,
		Director:        req.Director,
		PosterURL:       req.PosterURL,
		TicketPrice:     req.TicketPrice,
	}
	if req.ReleaseDate != "" {
		releaseDate, err := time.Parse("2006-01-02", req.ReleaseDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "公開日の形式が不正です")
		}
		fields.ReleaseDate = &releaseDate
	}

	m, err := h.service.UpdateMovie(c.Request().Context(), application.UpdateMovieInput{ID: id, Fields: fields})
	if err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "映画を更新しました", toMovieResponse(m))
}

// Delete godoc
// @Summary 映画を削除
// @Description 指定IDの映画を論理削除します（アクティブな上映がある場合は削除不可）
// @Tags movies
// @Produce json
// @Param id path string true "映画ID"
// @Success 200 {object} api.Response
// @Failure 400 {object} api.Response
// @Failure 404 {object} api.Response
// @Router /movies/{id} [delete]
func (h *MovieHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if err := h.service.DeleteMovie(c.Request().Context(), id); err != nil {
		return httpError(err, http.StatusBadRequest)
	}
	return respond(c, http.StatusOK, "映画を削除しました", nil)
}
