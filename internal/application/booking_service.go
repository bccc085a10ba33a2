package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-cinema-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/logger"
)

const (
	bookingLockTTL        = 10 * time.Second
	bookingLockRetries    = 3
	bookingLockRetryDelay = 100 * time.Millisecond
)

type BookingService struct {
	txManager         transaction.Manager
	bookingRepo       booking.Repository
	screeningRepo     screening.Repository
	seatRepo          seat.Repository
	lockManager       redisinfra.LockManagerInterface
	cache             redisinfra.AvailabilityCacheInterface
	expirationMinutes int
}

func NewBookingService(
	txm transaction.Manager,
	br booking.Repository,
	sr screening.Repository,
	seatRepo seat.Repository,
	lm redisinfra.LockManagerInterface,
	cache redisinfra.AvailabilityCacheInterface,
	expirationMinutes int,
) *BookingService {
	if expirationMinutes <= 0 {
		expirationMinutes = booking.DefaultExpirationMinutes
	}
	return &BookingService{
		txManager:         txm,
		bookingRepo:       br,
		screeningRepo:     sr,
		seatRepo:          seatRepo,
		lockManager:       lm,
		cache:             cache,
		expirationMinutes: expirationMinutes,
	}
}

type CreateBookingInput struct {
	ScreeningID string
	UserID      string
	SeatIDs     []string
}

// CreateBooking は予約を作成する
// 座席の検証・競合判定・予約挿入を1つのトランザクションで行い、
// 同一上映への同時予約は分散ロックと上映行のロックで直列化する
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*booking.Booking, error) {
	if len(input.SeatIDs) == 0 {
		return nil, booking.ErrSeatIDsRequired
	}
	if hasDuplicates(input.SeatIDs) {
		return nil, booking.ErrDuplicateSeatIDs
	}

	// 分散ロックを取得（座席IDをソートしてデッドロックを防止）
	var lock redisinfra.Lock
	if s.lockManager != nil {
		var err error
		lockKey := buildSeatLockKey(input.ScreeningID, input.SeatIDs)
		lock, err = s.lockManager.AcquireLockWithRetry(ctx, lockKey, bookingLockTTL, bookingLockRetries, bookingLockRetryDelay)
		if err != nil {
			if errors.Is(err, redisinfra.ErrLockNotAcquired) {
				return nil, redisinfra.ErrLockNotAcquired
			}
			return nil, fmt.Errorf("ロック取得に失敗: %w", err)
		}
		defer lock.Release(ctx)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	// 上映を行ロック付きで取得
	sc, err := s.screeningRepo.GetByIDForUpdate(ctx, tx, input.ScreeningID)
	if err != nil {
		return nil, err
	}
	if !sc.IsActive {
		return nil, screening.ErrScreeningNotActive
	}

	// 座席の存在・状態・所属ホールを検証
	seats := make([]*seat.Seat, 0, len(input.SeatIDs))
	for _, seatID := range input.SeatIDs {
		se, err := s.seatRepo.GetByID(ctx, seatID)
		if err != nil {
			return nil, err
		}
		if !se.IsActive {
			return nil, seat.ErrSeatNotActive
		}
		if se.AuditoriumID != sc.AuditoriumID {
			return nil, seat.ErrSeatWrongAuditorium
		}
		seats = append(seats, se)
	}

	// 競合判定: アクティブな予約から予約済み座席を導出する
	// 競合集合はステータスのみで決まる。期限超過でも行が pending のままなら
	// 座席は塞がったままで、解放は期限切れの永続化（支払い時またはスイーパー）が担う
	activeBookings, err := s.bookingRepo.GetActiveByScreeningID(ctx, tx, input.ScreeningID)
	if err != nil {
		return nil, err
	}
	booked := sc.BookedSeatIDs(activeBookings)
	var conflicts []string
	for _, se := range seats {
		if _, taken := booked[se.ID]; taken {
			conflicts = append(conflicts, se.DisplayString())
		}
	}
	if len(conflicts) > 0 {
		return nil, fmt.Errorf("%w: %s", booking.ErrSeatsAlreadyBooked, strings.Join(conflicts, ", "))
	}

	totalAmount := sc.Price * int64(len(seats))
	b, err := booking.NewBooking(input.ScreeningID, input.UserID, totalAmount, s.expirationMinutes)
	if err != nil {
		return nil, err
	}
	for _, se := range seats {
		if err := b.AddSeat(se.ID); err != nil {
			return nil, err
		}
	}

	if err := s.bookingRepo.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	s.invalidateCache(ctx, input.ScreeningID)
	logger.Info("予約を作成しました",
		zap.String("booking_id", b.ID),
		zap.String("screening_id", b.ScreeningID),
		zap.Int("seats", len(b.Seats)),
	)
	return b, nil
}

// GetBooking は予約を取得する
// 他ユーザーの予約は参照できない。読み取りは状態を変更しない
func (s *BookingService) GetBooking(ctx context.Context, id, userID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(userID) {
		return nil, booking.ErrBookingAccessDenied
	}
	return b, nil
}

// GetUserBookings はユーザーの予約一覧を取得する
func (s *BookingService) GetUserBookings(ctx context.Context, userID string, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.bookingRepo.GetByUserID(ctx, userID, limit, offset)
}

// ConfirmBooking は予約を確定する
// 期限を過ぎた保留中の予約はエンティティが期限切れエラーを返す
func (s *BookingService) ConfirmBooking(ctx context.Context, id, userID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(userID) {
		return nil, booking.ErrBookingAccessDenied
	}
	if err := b.Confirm(); err != nil {
		return nil, err
	}
	if err := s.updateInTx(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelBooking は予約をキャンセルし、座席を解放する
// 期限を過ぎていてもステータスが保留中のままならキャンセルできる
func (s *BookingService) CancelBooking(ctx context.Context, id, userID string) (*booking.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !b.BelongsToUser(userID) {
		return nil, booking.ErrBookingAccessDenied
	}
	if err := b.Cancel(); err != nil {
		return nil, err
	}
	if err := s.updateInTx(ctx, b); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx, b.ScreeningID)
	return b, nil
}

// ExpireOverdueBookings は期限を過ぎた保留中の予約をまとめて期限切れにする
// スイーパーから定期的に呼び出される
func (s *BookingService) ExpireOverdueBookings(ctx context.Context) (int, error) {
	overdue, err := s.bookingRepo.GetOverduePending(ctx)
	if err != nil {
		return 0, err
	}
	expired := 0
	for _, b := range overdue {
		if err := b.MarkAsExpired(); err != nil {
			continue
		}
		if b.Status != booking.StatusExpired {
			continue
		}
		if err := s.updateInTx(ctx, b); err != nil {
			logger.Warn("期限切れ処理に失敗",
				zap.String("booking_id", b.ID), zap.Error(err))
			continue
		}
		s.invalidateCache(ctx, b.ScreeningID)
		expired++
	}
	return expired, nil
}

func (s *BookingService) updateInTx(ctx context.Context, b *booking.Booking) error {
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

func (s *BookingService) invalidateCache(ctx context.Context, screeningID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, screeningID); err != nil {
		logger.Warn("キャッシュ無効化エラー", zap.Error(err))
	}
}

// buildSeatLockKey は座席IDからロックキーを生成する（ソートしてデッドロック防止）
func buildSeatLockKey(screeningID string, seatIDs []string) string {
	sorted := make([]string, len(seatIDs))
	copy(sorted, seatIDs)
	sort.Strings(sorted)
	return "screenings:" + screeningID + ":seats:" + strings.Join(sorted, ",")
}

func hasDuplicates(ids []string) bool {
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}
