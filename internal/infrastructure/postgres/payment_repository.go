package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
)

type paymentRow struct {
	ID            string     `db:"id"`
	BookingID     string     `db:"booking_id"`
	Amount        int64      `db:"amount"`
	Method        string     `db:"method"`
	Status        string     `db:"status"`
	TransactionID string     `db:"transaction_id"`
	Notes         string     `db:"notes"`
	PaymentDate   time.Time  `db:"payment_date"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}

const paymentColumns = `id, booking_id, amount, method, status, transaction_id, notes, payment_date, created_at, updated_at`

func (r *paymentRow) toEntity() *payment.Payment {
	return &payment.Payment{
		ID:            r.ID,
		BookingID:     r.BookingID,
		Amount:        r.Amount,
		Method:        payment.Method(r.Method),
		Status:        payment.Status(r.Status),
		TransactionID: r.TransactionID,
		Notes:         r.Notes,
		PaymentDate:   r.PaymentDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// PaymentRepository は支払いリポジトリのPostgreSQL実装
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository はPaymentRepositoryを作成する
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create は支払いを作成する
// payments.booking_id の一意制約違反は ErrPaymentAlreadyExists に変換する
func (r *PaymentRepository) Create(ctx context.Context, tx transaction.Tx, p *payment.Payment) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `
		INSERT INTO payments (booking_id, amount, method, status, transaction_id, notes, payment_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	if err := sqlxTx.QueryRowContext(ctx, query,
		p.BookingID, p.Amount, string(p.Method), string(p.Status),
		p.TransactionID, p.Notes, p.PaymentDate, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID); err != nil {
		if pgErr, ok := err.(*pq.Error); ok && pgErr.Code == "23505" {
			return payment.ErrPaymentAlreadyExists
		}
		return fmt.Errorf("支払い作成に失敗: %w", err)
	}
	return nil
}

// GetByID はIDから支払いを取得する
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*payment.Payment, error) {
	var row paymentRow
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("支払い取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// GetByBookingID は予約IDから支払いを取得する
func (r *PaymentRepository) GetByBookingID(ctx context.Context, bookingID string) (*payment.Payment, error) {
	var row paymentRow
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1`
	if err := r.db.GetContext(ctx, &row, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, payment.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("支払い取得に失敗: %w", err)
	}
	return row.toEntity(), nil
}

// Update は支払いのステータスを更新する
func (r *PaymentRepository) Update(ctx context.Context, tx transaction.Tx, p *payment.Payment) error {
	sqlxTx := UnwrapTx(tx)
	if sqlxTx == nil {
		return errors.New("トランザクションが不正です")
	}
	query := `
		UPDATE payments
		SET status = $1, transaction_id = $2, notes = $3, payment_date = $4, updated_at = $5
		WHERE id = $6
	`
	result, err := sqlxTx.ExecContext(ctx, query,
		string(p.Status), p.TransactionID, p.Notes, p.PaymentDate, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("支払い更新に失敗: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return payment.ErrPaymentNotFound
	}
	return nil
}

var _ payment.Repository = (*PaymentRepository)(nil)
