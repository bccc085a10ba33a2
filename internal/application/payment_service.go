package application

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/payment"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-cinema-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/logger"
)

type PaymentService struct {
	txManager   transaction.Manager
	paymentRepo payment.Repository
	bookingRepo booking.Repository
	cache       redisinfra.AvailabilityCacheInterface
}

func NewPaymentService(
	txm transaction.Manager,
	pr payment.Repository,
	br booking.Repository,
	cache redisinfra.AvailabilityCacheInterface,
) *PaymentService {
	return &PaymentService{txManager: txm, paymentRepo: pr, bookingRepo: br, cache: cache}
}

type CreatePaymentInput struct {
	BookingID     string
	UserID        string
	Method        string
	TransactionID string
	Notes         string
}

// CreatePayment は予約に対する支払いを処理する
// 支払いの記録と予約の確定を同一トランザクションで行う
func (s *PaymentService) CreatePayment(ctx context.Context, input CreatePaymentInput) (*payment.Payment, error) {
	method, err := payment.ParseMethod(input.Method)
	if err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, input.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(input.UserID) {
		return nil, booking.ErrBookingAccessDenied
	}

	// 期限を過ぎた保留中の予約はここで期限切れとして確定させる
	if b.IsPending() && b.IsExpired() {
		if err := b.MarkAsExpired(); err != nil {
			return nil, err
		}
		if err := s.persistBooking(ctx, b); err != nil {
			return nil, err
		}
		s.invalidateCache(ctx, b.ScreeningID)
		return nil, payment.ErrBookingCannotBePaid
	}
	if !b.CanBePaid() {
		return nil, payment.ErrBookingCannotBePaid
	}

	// 1予約1支払い
	if _, err := s.paymentRepo.GetByBookingID(ctx, input.BookingID); err == nil {
		return nil, payment.ErrPaymentAlreadyExists
	} else if !errors.Is(err, payment.ErrPaymentNotFound) {
		return nil, err
	}

	p, err := payment.NewPayment(input.BookingID, b.TotalAmount, method, input.TransactionID, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := p.MarkAsPaid(input.TransactionID); err != nil {
		return nil, err
	}
	if err := b.Confirm(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.Create(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	logger.Info("支払いを完了し予約を確定しました",
		zap.String("payment_id", p.ID),
		zap.String("booking_id", b.ID),
		zap.Int64("amount", p.Amount),
	)
	return p, nil
}

// GetPayment は支払いを取得する
// 予約の所有者以外は参照できない
func (s *PaymentService) GetPayment(ctx context.Context, id, userID string) (*payment.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(userID) {
		return nil, booking.ErrBookingAccessDenied
	}
	return p, nil
}

// GetPaymentByBooking は予約IDから支払いを取得する
func (s *PaymentService) GetPaymentByBooking(ctx context.Context, bookingID, userID string) (*payment.Payment, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(userID) {
		return nil, booking.ErrBookingAccessDenied
	}
	return s.paymentRepo.GetByBookingID(ctx, bookingID)
}

// RefundPayment は完了済みの支払いを返金し、予約をキャンセルする
func (s *PaymentService) RefundPayment(ctx context.Context, id, userID string) (*payment.Payment, error) {
	p, err := s.GetPayment(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	b, err := s.bookingRepo.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, err
	}
	if err := p.MarkAsRefunded(); err != nil {
		return nil, err
	}
	if err := b.Cancel(); err != nil {
		return nil, err
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	if err := s.paymentRepo.Update(ctx, tx, p); err != nil {
		return nil, err
	}
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateCache(ctx, b.ScreeningID)
	return p, nil
}

func (s *PaymentService) persistBooking(ctx context.Context, b *booking.Booking) error {
	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()
	if err := s.bookingRepo.Update(ctx, tx, b); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("コミットに失敗: %w", err)
	}
	return nil
}

func (s *PaymentService) invalidateCache(ctx context.Context, screeningID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, screeningID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Error(err))
	}
}
