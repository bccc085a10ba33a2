package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
)

type movieRow struct {
	ID              string     `db:"id"`
	Title           string     `db:"title"`
	Description     string     `db:"description"`
	DurationMinutes int        `db:"duration_minutes"`
	Genre           string     `db:"genre"`
	Director        string     `db:"director"`
	ReleaseDate     time.Time  `db:"release_date"`
	PosterURL       string     `db:"poster_url"`
	TicketPrice     int64      `db:"ticket_price"`
	IsActive        bool       `db:"is_active"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

const movieColumns = `id, title, description, duration_minutes, genre, director, release_date, poster_url, ticket_price, is_active, created_at, updated_at`

func (r *movieRow) toEntity() *movie.Movie {
	return &movie.Movie{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Genre:           r.Genre,
		Director:        r.Director,
		ReleaseDate:     r.ReleaseDate,
		PosterURL:       r.PosterURL,
		TicketPrice:     r.TicketPrice,
		IsActive:        r.IsActive,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// MovieRepository は映画リポジトリのPostgreSQL実装
type MovieRepository struct {
	db *sqlx.DB
}

// NewMovieRepository はMovieRepositoryを作成する
func NewMovieRepository(db *sqlx.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create は映画を作成する
func (r *MovieRepository) Create(ctx context.Context, m *movie.Movie) error {
	query := `
		INSERT INTO movies (title, description, duration_minutes, genre, director, release_date, poster_url, ticket_price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query,
		m.Title, m.Description, m.DurationMinutes, m.Genre, m.Director,
		m.ReleaseDate, m.PosterURL, m.TicketPrice, m.IsActive, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID); err != nil {
		return fmt.Errorf("映画作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから映画を取得する
func (r *MovieRepository) GetByID(ctx context.Context, id string) (*movie.Movie, error) {
	var row movieRow
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, movie.ErrMovieNotFound
		}
		return nil, fmt.Errorf("映画取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List は映画一覧を取得する。includeInactive が false の場合はアクティブな映画のみ返す
func (r *MovieRepository) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*movie.Movie, error) {
	var rows []movieRow
	query := `SELECT ` + movieColumns + ` FROM movies`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY release_date DESC, created_at DESC LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("映画一覧取得に失敗: %w", err)
	}
	result := make([]*movie.Movie, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// Update は映画を更新する
func (r *MovieRepository) Update(ctx context.Context, m *movie.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, description = $2, duration_minutes = $3, genre = $4, director = $5,
		    release_date = $6, poster_url = $7, ticket_price = $8, is_active = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := r.db.ExecContext(ctx, query,
		m.Title, m.Description, m.DurationMinutes, m.Genre, m.Director,
		m.ReleaseDate, m.PosterURL, m.TicketPrice, m.IsActive, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("映画更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return movie.ErrMovieNotFound
	}
	return nil
}

var _ movie.Repository = (*MovieRepository)(nil)
