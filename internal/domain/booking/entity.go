package booking

import "time"

// Status は予約の状態を表す
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

// DefaultExpirationMinutes は予約の有効期限（分）のデフォルト値
const DefaultExpirationMinutes = 15

// BookingSeat は予約と座席の関連を表す
// (BookingID, SeatID) の組はストレージ層の一意制約でも保護される
type BookingSeat struct {
	ID        string
	BookingID string
	SeatID    string
	CreatedAt time.Time
}

// Booking は予約の集約ルートを表す
// 状態遷移は必ずこのエンティティのメソッドを通して行う
type Booking struct {
	ID          string
	ScreeningID string
	UserID      string
	Status      Status
	TotalAmount int64 // 最小通貨単位（セント）
	BookingDate time.Time
	ExpiresAt   *time.Time
	Seats       []BookingSeat
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBooking は保留中ステータスの新しい予約を作成する
// 有効期限は作成時刻 + expirationMinutes 分
func NewBooking(screeningID, userID string, totalAmount int64, expirationMinutes int) (*Booking, error) {
	if screeningID == "" {
		return nil, ErrScreeningIDRequired
	}
	if userID == "" {
		return nil, ErrUserIDRequired
	}
	if totalAmount <= 0 {
		return nil, ErrInvalidTotalAmount
	}
	if expirationMinutes <= 0 {
		return nil, ErrInvalidExpirationMinutes
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expirationMinutes) * time.Minute)
	return &Booking{
		ScreeningID: screeningID,
		UserID:      userID,
		Status:      StatusPending,
		TotalAmount: totalAmount,
		BookingDate: now,
		ExpiresAt:   &expiresAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// AddSeat は予約に座席を追加する
// 保留中の予約にのみ追加でき、同じ座席は二度追加できない
func (b *Booking) AddSeat(seatID string) error {
	if seatID == "" {
		return ErrSeatIDRequired
	}
	if b.Status != StatusPending {
		return ErrSeatsOnlyWhenPending
	}
	for _, bs := range b.Seats {
		if bs.SeatID == seatID {
			return ErrSeatAlreadyAdded
		}
	}
	b.Seats = append(b.Seats, BookingSeat{
		BookingID: b.ID,
		SeatID:    seatID,
		CreatedAt: time.Now(),
	})
	return nil
}

// SeatIDs は予約された座席IDの一覧を追加順で返す
func (b *Booking) SeatIDs() []string {
	ids := make([]string, len(b.Seats))
	for i, bs := range b.Seats {
		ids[i] = bs.SeatID
	}
	return ids
}

// Confirm は予約を確定する
// 保留中かつ期限内の予約のみ確定できる
func (b *Booking) Confirm() error {
	if b.Status != StatusPending {
		return ErrBookingNotPending
	}
	if b.IsExpired() {
		return ErrBookingExpired
	}
	b.Status = StatusConfirmed
	b.UpdatedAt = time.Now()
	return nil
}

// Cancel は予約をキャンセルする
// 保留中または確定済みの予約のみキャンセルできる
func (b *Booking) Cancel() error {
	if b.Status == StatusCancelled {
		return ErrBookingAlreadyCancelled
	}
	if b.Status == StatusExpired {
		return ErrCannotCancelExpired
	}
	b.Status = StatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}

// MarkAsExpired は期限を過ぎた予約を期限切れ状態に遷移させる
// 期限前の呼び出しは遷移しない no-op。既に期限切れの場合も no-op
func (b *Booking) MarkAsExpired() error {
	if b.Status == StatusExpired {
		return nil
	}
	if b.Status == StatusConfirmed || b.Status == StatusCancelled {
		return ErrCannotExpire
	}
	if b.IsExpired() {
		b.Status = StatusExpired
		b.UpdatedAt = time.Now()
	}
	return nil
}

// IsExpired は予約の有効期限が切れているかを返す
func (b *Booking) IsExpired() bool {
	return b.ExpiresAt != nil && b.ExpiresAt.Before(time.Now())
}

// IsPending は予約が保留中かを返す
func (b *Booking) IsPending() bool {
	return b.Status == StatusPending
}

// IsActive は座席の競合判定に含まれる状態（保留中または確定済み）かを返す
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBePaid は予約が支払い可能かを返す
// 保留中かつ期限内の場合のみ支払いできる
func (b *Booking) CanBePaid() bool {
	return b.Status == StatusPending && !b.IsExpired()
}

// BelongsToUser は予約が指定ユーザーのものかを返す
func (b *Booking) BelongsToUser(userID string) bool {
	return b.UserID == userID
}
