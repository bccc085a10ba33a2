package application

import (
	"context"
	"fmt"
	"time"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
)

type MovieService struct {
	movieRepo     movie.Repository
	screeningRepo screening.Repository
}

func NewMovieService(mr movie.Repository, sr screening.Repository) *MovieService {
	return &MovieService{movieRepo: mr, screeningRepo: sr}
}

type CreateMovieInput struct {
	Title           string
	Description     string
	DurationMinutes int
	Genre           string
	Director        string
	ReleaseDate     time.Time
	TicketPrice     int64
	PosterURL       string
}

func (s *MovieService) CreateMovie(ctx context.Context, input CreateMovieInput) (*movie.Movie, error) {
	m, err := movie.NewMovie(input.Title, input.Description, input.DurationMinutes,
		input.Genre, input.Director, input.ReleaseDate, input.TicketPrice, input.PosterURL)
	if err != nil {
		return nil, err
	}
	if err := s.movieRepo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("映画作成に失敗しました: %w", err)
	}
	return m, nil
}

func (s *MovieService) GetMovie(ctx context.Context, id string) (*movie.Movie, error) {
	return s.movieRepo.GetByID(ctx, id)
}

func (s *MovieService) ListMovies(ctx context.Context, includeInactive bool, limit, offset int) ([]*movie.Movie, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.movieRepo.List(ctx, includeInactive, limit, offset)
}

type UpdateMovieInput struct {
	ID     string
	Fields movie.UpdateInput
}

func (s *MovieService) UpdateMovie(ctx context.Context, input UpdateMovieInput) (*movie.Movie, error) {
	m, err := s.movieRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	m.Update(input.Fields)
	if err := s.movieRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMovie は映画を論理削除する
// アクティブな上映が残っている場合は削除できない
func (s *MovieService) DeleteMovie(ctx context.Context, id string) error {
	m, err := s.movieRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.screeningRepo.CountActiveByMovieID(ctx, id)
	if err != nil {
		return fmt.Errorf("上映数の取得に失敗: %w", err)
	}
	if count > 0 {
		return movie.ErrMovieHasActiveScreening
	}
	m.Deactivate()
	return s.movieRepo.Update(ctx, m)
}
