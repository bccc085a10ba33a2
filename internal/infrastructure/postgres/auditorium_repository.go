package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
)

type auditoriumRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Capacity  int       `db:"capacity"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const auditoriumColumns = `id, name, capacity, is_active, created_at, updated_at`

func (r *auditoriumRow) toEntity() *auditorium.Auditorium {
	return &auditorium.Auditorium{
		ID:        r.ID,
		Name:      r.Name,
		Capacity:  r.Capacity,
		IsActive:  r.IsActive,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// AuditoriumRepository は上映ホールリポジトリのPostgreSQL実装
type AuditoriumRepository struct {
	db *sqlx.DB
}

// NewAuditoriumRepository はAuditoriumRepositoryを作成する
func NewAuditoriumRepository(db *sqlx.DB) *AuditoriumRepository {
	return &AuditoriumRepository{db: db}
}

// Create は上映ホールを作成する
func (r *AuditoriumRepository) Create(ctx context.Context, a *auditorium.Auditorium) error {
	query := `
		INSERT INTO auditoriums (name, capacity, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query,
		a.Name, a.Capacity, a.IsActive, a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID); err != nil {
		return fmt.Errorf("ホール作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDからホールを取得する
func (r *AuditoriumRepository) GetByID(ctx context.Context, id string) (*auditorium.Auditorium, error) {
	var row auditoriumRow
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auditorium.ErrAuditoriumNotFound
		}
		return nil, fmt.Errorf("ホール取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// List はホール一覧を名前順で取得する
func (r *AuditoriumRepository) List(ctx context.Context, includeInactive bool) ([]*auditorium.Auditorium, error) {
	var rows []auditoriumRow
	query := `SELECT ` + auditoriumColumns + ` FROM auditoriums`
	if !includeInactive {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("ホール一覧取得に失敗: %w", err)
	}
	result := make([]*auditorium.Auditorium, len(rows))
	for i := range rows {
		result[i] = rows[i].toEntity()
	}
	return result, nil
}

// CountSeats はホールに登録済みの座席数を返す
func (r *AuditoriumRepository) CountSeats(ctx context.Context, auditoriumID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM seats WHERE auditorium_id = $1 AND is_active = true`, auditoriumID)
	return count, err
}

// Update はホールを更新する
func (r *AuditoriumRepository) Update(ctx context.Context, a *auditorium.Auditorium) error {
	query := `UPDATE auditoriums SET name = $1, capacity = $2, is_active = $3, updated_at = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, a.Name, a.Capacity, a.IsActive, a.UpdatedAt, a.ID)
	if err != nil {
		return fmt.Errorf("ホール更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return auditorium.ErrAuditoriumNotFound
	}
	return nil
}

var _ auditorium.Repository = (*AuditoriumRepository)(nil)
