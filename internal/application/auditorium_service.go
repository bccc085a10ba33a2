package application

import (
	"context"
	"fmt"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/auditorium"
	"github.com/sanosuguru/go-cinema-booking/internal/domain/screening"
)

type AuditoriumService struct {
	auditoriumRepo auditorium.Repository
	screeningRepo  screening.Repository
}

func NewAuditoriumService(ar auditorium.Repository, sr screening.Repository) *AuditoriumService {
	return &AuditoriumService{auditoriumRepo: ar, screeningRepo: sr}
}

type CreateAuditoriumInput struct {
	Name     string
	Capacity int
}

func (s *AuditoriumService) CreateAuditorium(ctx context.Context, input CreateAuditoriumInput) (*auditorium.Auditorium, error) {
	a, err := auditorium.NewAuditorium(input.Name, input.Capacity)
	if err != nil {
		return nil, err
	}
	if err := s.auditoriumRepo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("ホール作成に失敗しました: %w", err)
	}
	return a, nil
}

func (s *AuditoriumService) GetAuditorium(ctx context.Context, id string) (*auditorium.Auditorium, error) {
	return s.auditoriumRepo.GetByID(ctx, id)
}

func (s *AuditoriumService) ListAuditoriums(ctx context.Context, includeInactive bool) ([]*auditorium.Auditorium, error) {
	return s.auditoriumRepo.List(ctx, includeInactive)
}

type UpdateAuditoriumInput struct {
	ID       string
	Name     string
	Capacity int
}

func (s *AuditoriumService) UpdateAuditorium(ctx context.Context, input UpdateAuditoriumInput) (*auditorium.Auditorium, error) {
	a, err := s.auditoriumRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	a.Update(input.Name, input.Capacity)
	if err := s.auditoriumRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// DeleteAuditorium はホールを論理削除する
// アクティブな上映が残っている場合は削除できない
func (s *AuditoriumService) DeleteAuditorium(ctx context.Context, id string) error {
	a, err := s.auditoriumRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	count, err := s.screeningRepo.CountActiveByAuditoriumID(ctx, id)
	if err != nil {
		return fmt.Errorf("上映数の取得に失敗: %w", err)
	}
	if count > 0 {
		return auditorium.ErrAuditoriumHasActiveScreening
	}
	a.Deactivate()
	return s.auditoriumRepo.Update(ctx, a)
}
