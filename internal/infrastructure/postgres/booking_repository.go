package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

type bookingRow struct {
	ID          string     `db:"id"`
	ScreeningID string     `db:"screening_id"`
	UserID      string     `db:"user_id"`
	Status      string     `db:"status"`
	TotalAmount int64      `db:"total_amount"`
	BookingDate time.Time  `db:"booking_date"`
	ExpiresAt   *time.Time `db:"expires_at"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

type bookingSeatRow struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	SeatID    string    `db:"seat_id"`
	CreatedAt time.Time `db:"created_at"`
}

const bookingColumns = `id, screening_id, user_id, status, total_amount, booking_date, expires_at, created_at, updated_at`

func (r *bookingRow) toEntity(seats []booking.BookingSeat) *booking.Booking {
	return &booking.Booking{
		ID:          r.ID,
		ScreeningID: r.ScreeningID,
		UserID:      r.UserID,
		Status:      booking.Status(r.Status),
		TotalAmount: r.TotalAmount,
		BookingDate: r.BookingDate,
		ExpiresAt:   r.ExpiresAt,
		Seats:       seats,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// BookingRepository は予約リポジトリのPostgreSQL実装
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository はBookingRepositoryを作成する
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create は予約と座席関連を同一トランザクション内で挿入する
// booking_seats の (booking_id, seat_id) 一意制約違反はドメインエラーに変換する
func (r *BookingRepository) Create(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}

	query := `
		INSERT INTO bookings (screening_id, user_id, status, total_amount, booking_date, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	if err := sqlxTx.QueryRowContext(ctx, query,
		b.ScreeningID, b.UserID, string(b.Status), b.TotalAmount, b.BookingDate, b.ExpiresAt, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID); err != nil {
		return fmt.Errorf("予約作成に失敗: %w", err)
	}

	for i := range b.Seats {
		b.Seats[i].BookingID = b.ID
		if err := sqlxTx.QueryRowContext(ctx,
			`INSERT INTO booking_seats (booking_id, seat_id, created_at) VALUES ($1, $2, $3) RETURNING id`,
			b.ID, b.Seats[i].SeatID, b.Seats[i].CreatedAt,
		).Scan(&b.Seats[i].ID); err != nil {
			if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
				return booking.ErrSeatAlreadyAdded
			}
			return fmt.Errorf("予約座席関連付けに失敗: %w", err)
		}
	}
	return nil
}

// GetByID はIDから予約を座席付きで取得する
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*booking.Booking, error) {
	var row bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, booking.ErrBookingNotFound
		}
		return nil, fmt.Errorf("予約取得に失敗: %w", err)
	}
	seats, err := r.getSeats(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	return row.toEntity(seats), nil
}

// GetByUserID はユーザーの予約一覧を新しい順で取得する
func (r *BookingRepository) GetByUserID(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("予約一覧取得に失敗: %w", err)
	}
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		seats, err := r.getSeats(ctx, r.db, rows[i].ID)
		if err != nil {
			return nil, err
		}
		result[i] = rows[i].toEntity(seats)
	}
	return result, nil
}

// Update は予約のステータスを更新する
func (r *BookingRepository) Update(ctx context.Context, tx transaction.Tx, b *booking.Booking) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := sqlxTx.ExecContext(ctx, query, string(b.Status), b.UpdatedAt, b.ID)
	if err != nil {
		return fmt.Errorf("予約更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return booking.ErrBookingNotFound
	}
	return nil
}

// GetActiveByScreeningID は上映のアクティブな予約（保留中・確定済み）を座席付きで取得する
// 競合判定は予約挿入と同一トランザクション内で行う必要があるため tx 上で実行する
func (r *BookingRepository) GetActiveByScreeningID(ctx context.Context, tx transaction.Tx, screeningID string) ([]*booking.Booking, error) {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return nil, errors.New("トランザクションが不正です")
	}
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE screening_id = $1 AND status IN ('pending', 'confirmed')`
	if err := sqlxTx.SelectContext(ctx, &rows, query, screeningID); err != nil {
		return nil, fmt.Errorf("アクティブな予約の取得に失敗: %w", err)
	}
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		seats, err := r.getSeats(ctx, sqlxTx, rows[i].ID)
		if err != nil {
			return nil, err
		}
		result[i] = rows[i].toEntity(seats)
	}
	return result, nil
}

// CountActiveByScreeningID は上映のアクティブな予約数を返す
func (r *BookingRepository) CountActiveByScreeningID(ctx context.Context, screeningID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings WHERE screening_id = $1 AND status IN ('pending', 'confirmed')`, screeningID)
	return count, err
}

// CountActiveBySeatID は座席を参照するアクティブな予約数を返す
func (r *BookingRepository) CountActiveBySeatID(ctx context.Context, seatID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM booking_seats bs
		JOIN bookings b ON b.id = bs.booking_id
		WHERE bs.seat_id = $1 AND b.status IN ('pending', 'confirmed')
	`, seatID)
	return count, err
}

// GetOverduePending は期限を過ぎた保留中の予約を取得する
func (r *BookingRepository) GetOverduePending(ctx context.Context) ([]*booking.Booking, error) {
	var rows []bookingRow
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'pending' AND expires_at < NOW()`
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("期限切れ予約の取得に失敗: %w", err)
	}
	result := make([]*booking.Booking, len(rows))
	for i := range rows {
		seats, err := r.getSeats(ctx, r.db, rows[i].ID)
		if err != nil {
			return nil, err
		}
		result[i] = rows[i].toEntity(seats)
	}
	return result, nil
}

// queryer は db と tx の両方で座席取得を使い回すための最小インターフェース
type queryer interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (r *BookingRepository) getSeats(ctx context.Context, q queryer, bookingID string) ([]booking.BookingSeat, error) {
	var rows []bookingSeatRow
	query := `SELECT id, booking_id, seat_id, created_at FROM booking_seats WHERE booking_id = $1 ORDER BY created_at`
	if err := q.SelectContext(ctx, &rows, query, bookingID); err != nil {
		return nil, fmt.Errorf("予約座席の取得に失敗: %w", err)
	}
	seats := make([]booking.BookingSeat, len(rows))
	for i, row := range rows {
		seats[i] = booking.BookingSeat{
			ID:        row.ID,
			BookingID: row.BookingID,
			SeatID:    row.SeatID,
			CreatedAt: row.CreatedAt,
		}
	}
	return seats, nil
}

var _ booking.Repository = (*BookingRepository)(nil)
