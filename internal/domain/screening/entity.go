package screening

import (
	"time"

	"github.com/sanosuguru/go-cinema-booking/internal/domain/booking"
)

// Screening は映画と上映ホールを時間枠で結び付ける上映エンティティを表す
type Screening struct {
	ID           string
	MovieID      string
	AuditoriumID string
	StartTime    time.Time
	EndTime      time.Time
	Price        int64 // 1席あたりの料金（最小通貨単位）
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewScreening は新しい上映を作成する
// 開始時刻は終了時刻より前かつ未来でなければならない
func NewScreening(movieID, auditoriumID string, startTime, endTime time.Time, price int64) (*Screening, error) {
	if movieID == "" {
		return nil, ErrMovieIDRequired
	}
	if auditoriumID == "" {
		return nil, ErrAuditoriumIDRequired
	}
	if !startTime.Before(endTime) {
		return nil, ErrInvalidScreeningTime
	}
	if startTime.Before(time.Now()) {
		return nil, ErrStartTimeInPast
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	now := time.Now()
	return &Screening{
		MovieID:      movieID,
		AuditoriumID: auditoriumID,
		StartTime:    startTime,
		EndTime:      endTime,
		Price:        price,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsSeatAvailable は座席がこの上映で予約可能かを返す
// 空き状況は保存されず、アクティブな予約（保留中・確定済み）から常に導出する
// キャンセル・期限切れの予約は判定に含まれないため、座席は暗黙的に解放される
func (s *Screening) IsSeatAvailable(seatID string, activeBookings []*booking.Booking) bool {
	if !s.IsActive {
		return false
	}
	for _, b := range activeBookings {
		if !b.IsActive() {
			continue
		}
		for _, bs := range b.Seats {
			if bs.SeatID == seatID {
				return false
			}
		}
	}
	return true
}

// BookedSeatIDs はこの上映で予約済みの座席IDの重複なし集合を返す
func (s *Screening) BookedSeatIDs(activeBookings []*booking.Booking) map[string]struct{} {
	booked := make(map[string]struct{})
	for _, b := range activeBookings {
		if !b.IsActive() {
			continue
		}
		for _, bs := range b.Seats {
			booked[bs.SeatID] = struct{}{}
		}
	}
	return booked
}

// HasStarted は上映が開始済みかを返す
func (s *Screening) HasStarted() bool {
	return !time.Now().Before(s.StartTime)
}

// HasEnded は上映が終了済みかを返す
func (s *Screening) HasEnded() bool {
	return !time.Now().Before(s.EndTime)
}

// IsOngoing は上映中かを返す
func (s *Screening) IsOngoing() bool {
	now := time.Now()
	return !now.Before(s.StartTime) && now.Before(s.EndTime)
}

// UpdatePrice は上映料金を変更する
func (s *Screening) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	s.Price = newPrice
	s.UpdatedAt = time.Now()
	return nil
}

// Activate は上映を有効化する
func (s *Screening) Activate() {
	s.IsActive = true
	s.UpdatedAt = time.Now()
}

// Deactivate は上映を無効化する（ソフトデリート）
func (s *Screening) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}
