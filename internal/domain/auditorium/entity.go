package auditorium

import (
	"strings"
	"time"
)

// Auditorium は上映ホールエンティティを表す
// 履歴から参照されるため、削除は常に無効化（ソフトデリート）で行う
type Auditorium struct {
	ID        string
	Name      string
	Capacity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuditorium は新しい上映ホールを作成する
func NewAuditorium(name string, capacity int) (*Auditorium, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	now := time.Now()
	return &Auditorium{
		Name:      strings.TrimSpace(name),
		Capacity:  capacity,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update はホールの名前・定員を部分更新する
// 空の名前・0以下の定員は無視される
func (a *Auditorium) Update(name string, capacity int) {
	if strings.TrimSpace(name) != "" {
		a.Name = strings.TrimSpace(name)
	}
	if capacity > 0 {
		a.Capacity = capacity
	}
	a.UpdatedAt = time.Now()
}

// HasAvailableCapacity は座席数が定員未満かを返す
func (a *Auditorium) HasAvailableCapacity(seatCount int) bool {
	return seatCount < a.Capacity
}

// Activate はホールを有効化する
func (a *Auditorium) Activate() {
	a.IsActive = true
	a.UpdatedAt = time.Now()
}

// Deactivate はホールを無効化する（ソフトデリート）
func (a *Auditorium) Deactivate() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
}
