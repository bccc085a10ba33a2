package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

type screeningRow struct {
	ID           string    `db:"id"`
	MovieID      string    `db:"movie_id"`
	AuditoriumID string    `db:"auditorium_id"`
	StartTime    time.Time `db:"start_time"`
	EndTime      time.Time `db:"end_time"`
	Price        int64     `db:"price"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const screeningColumns = `id, movie_id, auditorium_id, start_time, end_time, price, is_active, created_at, updated_at`

func (r *screeningRow) toEntity() *screening.Screening {
	return &screening.Screening{
		ID:           r.ID,
		MovieID:      r.MovieID,
		AuditoriumID: r.AuditoriumID,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
		Price:        r.Price,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// ScreeningRepository は上映リポジトリのPostgreSQL実装
type ScreeningRepository struct {
	db *sqlx.DB
}

// NewScreeningRepository はScreeningRepositoryを作成する
func NewScreeningRepository(db *sqlx.DB) *ScreeningRepository {
	return &ScreeningRepository{db: db}
}

// Create は上映を作成する
func (r *ScreeningRepository) Create(ctx context.Context, s *screening.Screening) error {
	query := `
		INSERT INTO screenings (movie_id, auditorium_id, start_time, end_time, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query,
		s.MovieID, s.AuditoriumID, s.StartTime, s.EndTime, s.Price, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID); err != nil {
		return fmt.Errorf("上映作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから上映を取得する
func (r *ScreeningRepository) GetByID(ctx context.Context, id string) (*screening.Screening, error) {
	var row screeningRow
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, screening.ErrScreeningNotFound
		}
		return nil, fmt.Errorf("上映取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByIDForUpdate はIDから上映を行ロック付きで取得する
// 同一上映への同時予約をこの行ロックで直列化する
func (r *ScreeningRepository) GetByIDForUpdate(ctx context.Context, tx transaction.Tx, id string) (*screening.Screening, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, errors.New("トランザクションが不正です")
	}
	var row screeningRow
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE id = $1 FOR UPDATE`
	if err := sqlxTx.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, screening.ErrScreeningNotFound
		}
		return nil, fmt.Errorf("上映取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List は上映一覧を開始時刻順で取得する
func (r *ScreeningRepository) List(ctx context.Context, includeInactive bool, limit, offset int) ([]*screening.Screening, error) {
	var rows []screeningRow
	query := `SELECT ` + screeningColumns + ` FROM screenings`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY start_time LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("上映一覧取得に失敗: %w", err)
	}
	result := make([]*screening.Screening, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// GetByMovieID は映画の有効な上映一覧を開始時刻順で取得する
func (r *ScreeningRepository) GetByMovieID(ctx context.Context, movieID string) ([]*screening.Screening, error) {
	var rows []screeningRow
	query := `SELECT ` + screeningColumns + ` FROM screenings WHERE movie_id = $1 AND is_active = true ORDER BY start_time`
	if err := r.db.SelectContext(ctx, &rows, query, movieID); err != nil {
		return nil, fmt.Errorf("上映一覧取得に失敗: %w", err)
	}
	result := make([]*screening.Screening, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// CountActiveByMovieID は映画に紐づく有効な上映数を返す
func (r *ScreeningRepository) CountActiveByMovieID(ctx context.Context, movieID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM screenings WHERE movie_id = $1 AND is_active = true`, movieID)
	return count, err
}

// CountActiveByAuditoriumID はホールに紐づく有効な上映数を返す
func (r *ScreeningRepository) CountActiveByAuditoriumID(ctx context.Context, auditoriumID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM screenings WHERE auditorium_id = $1 AND is_active = true`, auditoriumID)
	return count, err
}

// Update は上映を更新する
func (r *ScreeningRepository) Update(ctx context.Context, s *screening.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $1, auditorium_id = $2, start_time = $3, end_time = $4, price = $5, is_active = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		s.MovieID, s.AuditoriumID, s.StartTime, s.EndTime, s.Price, s.IsActive, s.UpdatedAt, s.ID,
	)
	if err != nil {
		return fmt.Errorf("上映更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return screening.ErrScreeningNotFound
	}
	return nil
}

var _ screening.Repository = (*ScreeningRepository)(nil)
