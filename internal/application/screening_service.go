package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/movie"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/transaction"
	redisinfra "github.com/sanosuguru/go-cinema-booking/internal/infrastructure/redis"
	"github.com/sanosuguru/go-cinema-booking/internal/pkg/logger"
)

const availabilityCacheTTL = 30 * time.Second

type ScreeningService struct {
	txManager      transaction.Manager
	screeningRepo  screening.Repository
	movieRepo      movie.Repository
	auditoriumRepo auditorium.Repository
	seatRepo       seat.Repository
	bookingRepo    booking.Repository
	cache          redisinfra.AvailabilityCacheInterface
}

func NewScreeningService(
	txm transaction.Manager,
	sr screening.Repository,
	mr movie.Repository,
	ar auditorium.Repository,
	seatRepo seat.Repository,
	br booking.Repository,
	cache redisinfra.AvailabilityCacheInterface,
) *ScreeningService {
	return &ScreeningService{
		txManager:      txm,
		screeningRepo:  sr,
		movieRepo:      mr,
		auditoriumRepo: ar,
		seatRepo:       seatRepo,
		bookingRepo:    br,
		cache:          cache,
	}
}

type CreateScreeningInput struct {
	MovieID      string
	AuditoriumID string
	StartTime    time.Time
	Price        int64
}

// CreateScreening は上映を作成する
// 終了時刻は映画の上映時間から導出する。料金が0の場合は映画のチケット料金を使用する
func (s *ScreeningService) CreateScreening(ctx context.Context, input CreateScreeningInput) (*screening.Screening, error) {
	m, err := s.movieRepo.GetByID(ctx, input.MovieID)
	if err != nil {
		return nil, err
	}
	// 論理削除済みの映画・ホールには上映を作成できない
	if !m.IsActive {
		return nil, movie.ErrMovieNotFound
	}
	a, err := s.auditoriumRepo.GetByID(ctx, input.AuditoriumID)
	if err != nil {
		return nil, err
	}
	if !a.IsActive {
		return nil, auditorium.ErrAuditoriumNotFound
	}

	price := input.Price
	if price == 0 {
		price = m.TicketPrice
	}
	endTime := input.StartTime.Add(time.Duration(m.DurationMinutes) * time.Minute)

	sc, err := screening.NewScreening(input.MovieID, input.AuditoriumID, input.StartTime, endTime, price)
	if err != nil {
		return nil, err
	}
	if err := s.screeningRepo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("上映作成に失敗しました: %w", err)
	}
	return sc, nil
}

func (s *ScreeningService) GetScreening(ctx context.Context, id string) (*screening.Screening, error) {
	return s.screeningRepo.GetByID(ctx, id)
}

func (s *ScreeningService) ListScreenings(ctx context.Context, includeInactive bool, limit, offset int) ([]*screening.Screening, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.screeningRepo.List(ctx, includeInactive, limit, offset)
}

func (s *ScreeningService) GetScreeningsByMovie(ctx context.Context, movieID string) ([]*screening.Screening, error) {
	if _, err := s.movieRepo.GetByID(ctx, movieID); err != nil {
		return nil, err
	}
	return s.screeningRepo.GetByMovieID(ctx, movieID)
}

type UpdateScreeningInput struct {
	ID    string
	Price int64
}

func (s *ScreeningService) UpdateScreeningPrice(ctx context.Context, input UpdateScreeningInput) (*screening.Screening, error) {
	sc, err := s.screeningRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if err := sc.UpdatePrice(input.Price); err != nil {
		return nil, err
	}
	if err := s.screeningRepo.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

// DeleteScreening は上映を論理削除する
// アクティブな予約が残っている場合は削除できない
func (s *ScreeningService) DeleteScreening(ctx context.Context, id string) error {
	sc, err := s.screeningRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.bookingRepo.CountActiveByScreeningID(ctx, id)
	if err != nil {
		return fmt.Errorf("予約数の取得に失敗: %w", err)
	}
	if count > 0 {
		return screening.ErrScreeningHasActiveBookings
	}
	sc.Deactivate()
	return s.screeningRepo.Update(ctx, sc)
}

// SeatAvailability は上映の1座席の空席状況
type SeatAvailability struct {
	Seat        *seat.Seat
	IsAvailable bool
}

// GetSeatAvailability は上映の全座席の空席状況を返す
// 空席状況は保存せず、アクティブな予約から都度導出する
func (s *ScreeningService) GetSeatAvailability(ctx context.Context, screeningID string) (*screening.Screening, []SeatAvailability, error) {
	sc, err := s.screeningRepo.GetByID(ctx, screeningID)
	if err != nil {
		return nil, nil, err
	}

	seats, err := s.seatRepo.GetByAuditoriumID(ctx, sc.AuditoriumID, false)
	if err != nil {
		return nil, nil, fmt.Errorf("座席取得に失敗: %w", err)
	}

	tx, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback()

	activeBookings, err := s.bookingRepo.GetActiveByScreeningID(ctx, tx, screeningID)
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("コミットに失敗: %w", err)
	}

	booked := sc.BookedSeatIDs(activeBookings)
	result := make([]SeatAvailability, len(seats))
	for i, se := range seats {
		_, taken := booked[se.ID]
		result[i] = SeatAvailability{Seat: se, IsAvailable: sc.IsActive && !taken}
	}
	return sc, result, nil
}

// CountBookedSeats は上映の予約済み座席数を返す（キャッシュ付き）
func (s *ScreeningService) CountBookedSeats(ctx context.Context, screeningID string) (int, error) {
	if s.cache != nil {
		count, err := s.cache.GetBookedCount(ctx, screeningID)
		if err == nil {
			logger.Debug("キャッシュヒット", zap.String("screening_id", screeningID), zap.Int("count", count))
			return count, nil
		}
		if !errors.Is(err, redisinfra.ErrCacheMiss) {
			logger.Warn("キャッシュ取得エラー", zap.Error(err))
		}
	}

	_, availability, err := s.GetSeatAvailability(ctx, screeningID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, av := range availability {
		if !av.IsAvailable {
			count++
		}
	}

	if s.cache != nil {
		if cacheErr := s.cache.SetBookedCount(ctx, screeningID, count, availabilityCacheTTL); cacheErr != nil {
			logger.Warn("キャッシュ保存エラー", zap.Error(cacheErr))
		}
	}
	return count, nil
}
