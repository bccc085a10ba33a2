package seat

import (
	"fmt"
	"strings"
	"time"
)

// Seat は上映ホール内の座席エンティティを表す
// (AuditoriumID, Row, Number) の組はホール内で一意
type Seat struct {
	ID           string
	AuditoriumID string
	Row          string
	Number       int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewSeat は新しい座席を作成する
// 行は正規化（トリム + 大文字化）され、作成後に変更されることはない
func NewSeat(auditoriumID, row string, number int) (*Seat, error) {
	if auditoriumID == "" {
		return nil, ErrAuditoriumIDRequired
	}
	if strings.TrimSpace(row) == "" {
		return nil, ErrRowRequired
	}
	if number <= 0 {
		return nil, ErrInvalidSeatNumber
	}
	now := time.Now()
	return &Seat{
		AuditoriumID: auditoriumID,
		Row:          strings.ToUpper(strings.TrimSpace(row)),
		Number:       number,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// DisplayString は座席の表示名（行 + 番号）を返す
func (s *Seat) DisplayString() string {
	return fmt.Sprintf("%s%d", s.Row, s.Number)
}

// Activate は座席を有効化する
func (s *Seat) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// Deactivate は座席を無効化する（ソフトデリート）
func (s *Seat) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
