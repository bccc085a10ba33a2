package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
)

type seatRow struct {
	ID           string    `db:"id"`
	AuditoriumID string    `db:"auditorium_id"`
	Row          string    `db:"seat_row"`
	Number       int       `db:"seat_number"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const seatColumns = `id, auditorium_id, seat_row, seat_number, is_active, created_at, updated_at`

func (r *seatRow) toEntity() *seat.Seat {
	return &seat.Seat{
		ID:           r.ID,
		AuditoriumID: r.AuditoriumID,
		Row:          r.Row,
		Number:       r.Number,
		IsActive:     r.IsActive,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// SeatRepository は座席リポジトリのPostgreSQL実装
type SeatRepository struct {
	db *sqlx.DB
}

// NewSeatRepository はSeatRepositoryを作成する
func NewSeatRepository(db *sqlx.DB) *SeatRepository {
	return &SeatRepository{db: db}
}

// Create は座席を作成する
// (auditorium_id, seat_row, seat_number) の一意制約違反は ErrSeatAlreadyExists に変換する
func (r *SeatRepository) Create(ctx context.Context, s *seat.Seat) error {
	query := `
		INSERT INTO seats (auditorium_id, seat_row, seat_number, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query,
		s.AuditoriumID, s.Row, s.Number, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return seat.ErrSeatAlreadyExists
		}
		return fmt.Errorf("座席作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから座席を取得する
func (r *SeatRepository) GetByID(ctx context.Context, id string) (*seat.Seat, error) {
	var row seatRow
	query := `SELECT ` + seatColumns + ` FROM seats WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByAuditoriumID はホールの座席一覧を行・番号順で取得する
func (r *SeatRepository) GetByAuditoriumID(ctx context.Context, auditoriumID string, includeInactive bool) ([]*seat.Seat, error) {
	var rows []seatRow
	query := `SELECT ` + seatColumns + ` FROM seats WHERE auditorium_id = $1`
	if !includeInactive {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY seat_row, seat_number`
	if err := r.db.SelectContext(ctx, &rows, query, auditoriumID); err != nil {
		return nil, fmt.Errorf("座席一覧取得に失敗: %w", err)
	}
	result := make([]*seat.Seat, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// FindByPosition は (ホール, 行, 番号) から座席を取得する
func (r *SeatRepository) FindByPosition(ctx context.Context, auditoriumID, row string, number int) (*seat.Seat, error) {
	var sr seatRow
	query := `SELECT ` + seatColumns + ` FROM seats WHERE auditorium_id = $1 AND seat_row = $2 AND seat_number = $3`
	if err := r.db.GetContext(ctx, &sr, query, auditoriumID, row, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, seat.ErrSeatNotFound
		}
		return nil, fmt.Errorf("座席取得に失敗: %w", err)
	}
	return sr.toEntity(), nil
}

// Update は座席を更新する
func (r *SeatRepository) Update(ctx context.Context, s *seat.Seat) error {
	query := `UPDATE seats SET seat_row = $1, seat_number = $2, is_active = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, s.Row, s.Number, s.IsActive, s.UpdatedAt, s.ID)
	if err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return seat.ErrSeatAlreadyExists
		}
		return fmt.Errorf("座席更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return seat.ErrSeatNotFound
	}
	return nil
}

var _ seat.Repository = (*SeatRepository)(nil)
