package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/seat"
)

type SeatService struct {
	seatRepo       seat.Repository
	auditoriumRepo auditorium.Repository
	bookingRepo    booking.Repository
}

func NewSeatService(sr seat.Repository, ar auditorium.Repository, br booking.Repository) *SeatService {
	return &SeatService{seatRepo: sr, auditoriumRepo: ar, bookingRepo: br}
}

type CreateSeatInput struct {
	AuditoriumID string
	Row          string
	Number       int
}

func (s *SeatService) CreateSeat(ctx context.Context, input CreateSeatInput) (*seat.Seat, error) {
	if _, err := s.auditoriumRepo.GetByID(ctx, input.AuditoriumID); err != nil {
		return nil, err
	}
	se, err := seat.NewSeat(input.AuditoriumID, input.Row, input.Number)
	if err != nil {
		return nil, err
	}
	// 同じ位置の座席が既にないか確認（最終的な保証はDBの一意制約）
	if _, err := s.seatRepo.FindByPosition(ctx, se.AuditoriumID, se.Row, se.Number); err == nil {
		return nil, seat.ErrSeatAlreadyExists
	} else if !errors.Is(err, seat.ErrSeatNotFound) {
		return nil, err
	}
	if err := s.seatRepo.Create(ctx, se); err != nil {
		return nil, err
	}
	return se, nil
}

type CreateRowSeatsInput struct {
	AuditoriumID string
	Row          string
	Count        int
}

// CreateRowSeats は1行分の座席をまとめて作成する
func (s *SeatService) CreateRowSeats(ctx context.Context, input CreateRowSeatsInput) ([]*seat.Seat, error) {
	if _, err := s.auditoriumRepo.GetByID(ctx, input.AuditoriumID); err != nil {
		return nil, err
	}
	seats := make([]*seat.Seat, 0, input.Count)
	for i := 1; i <= input.Count; i++ {
		se, err := seat.NewSeat(input.AuditoriumID, input.Row, i)
		if err != nil {
			return nil, err
		}
		if err := s.seatRepo.Create(ctx, se); err != nil {
			return nil, err
		}
		seats = append(seats, se)
	}
	return seats, nil
}

func (s *SeatService) GetSeat(ctx context.Context, id string) (*seat.Seat, error) {
	return s.seatRepo.GetByID(ctx, id)
}

func (s *SeatService) GetSeatsByAuditorium(ctx context.Context, auditoriumID string, includeInactive bool) ([]*seat.Seat, error) {
	if _, err := s.auditoriumRepo.GetByID(ctx, auditoriumID); err != nil {
		return nil, err
	}
	return s.seatRepo.GetByAuditoriumID(ctx, auditoriumID, includeInactive)
}

// DeleteSeat は座席を論理削除する
// アクティブな予約から参照されている座席は削除できない
func (s *SeatService) DeleteSeat(ctx context.Context, id string) error {
	se, err := s.seatRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.bookingRepo.CountActiveBySeatID(ctx, id)
	if err != nil {
		return fmt.Errorf("予約数の取得に失敗: %w", err)
	}
	if count > 0 {
		return seat.ErrSeatHasActiveBookings
	}
	se.Deactivate()
	return s.seatRepo.Update(ctx, se)
}
