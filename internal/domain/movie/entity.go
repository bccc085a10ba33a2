package movie

import (
	"strings"
	"time"
)

// Movie は映画エンティティを表す
type Movie struct {
	ID              string
	Title           string
	Description     string
	DurationMinutes int
	Genre           string
	Director        string
	ReleaseDate     time.Time
	PosterURL       string
	TicketPrice     int64 // 標準料金（最小通貨単位）
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewMovie は新しい映画を作成する
func NewMovie(title, description string, durationMinutes int, genre, director string, releaseDate time.Time, ticketPrice int64, posterURL string) (*Movie, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if strings.TrimSpace(genre) == "" {
		return nil, ErrGenreRequired
	}
	if strings.TrimSpace(director) == "" {
		return nil, ErrDirectorRequired
	}
	if ticketPrice <= 0 {
		return nil, ErrInvalidTicketPrice
	}
	now := time.Now()
	return &Movie{
		Title:           strings.TrimSpace(title),
		Description:     strings.TrimSpace(description),
		DurationMinutes: durationMinutes,
		Genre:           strings.TrimSpace(genre),
		Director:        strings.TrimSpace(director),
		ReleaseDate:     releaseDate,
		PosterURL:       posterURL,
		TicketPrice:     ticketPrice,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// UpdateInput は映画の部分更新の入力
// ゼロ値のフィールドは「変更しない」を意味する
type UpdateInput struct {
	Title           string
	Description     string
	DurationMinutes int
	Genre           string
	Director        string
	ReleaseDate     *time.Time
	PosterURL       *string
	TicketPrice     int64
}

// Update は映画を部分更新する
// 空文字・0以下の数値は無視される（明示的な更新操作でのみ変更可能）
func (m *Movie) Update(in UpdateInput) {
	if strings.TrimSpace(in.Title) != "" {
		m.Title = strings.TrimSpace(in.Title)
	}
	if strings.TrimSpace(in.Description) != "" {
		m.Description = strings.TrimSpace(in.Description)
	}
	if in.DurationMinutes > 0 {
		m.DurationMinutes = in.DurationMinutes
	}
	if strings.TrimSpace(in.Genre) != "" {
		m.Genre = strings.TrimSpace(in.Genre)
	}
	if strings.TrimSpace(in.Director) != "" {
		m.Director = strings.TrimSpace(in.Director)
	}
	if in.ReleaseDate != nil {
		m.ReleaseDate = *in.ReleaseDate
	}
	if in.PosterURL != nil {
		m.PosterURL = *in.PosterURL
	}
	if in.TicketPrice > 0 {
		m.TicketPrice = in.TicketPrice
	}
	m.UpdatedAt = time.Now()
}

// Activate は映画を有効化する
func (m *Movie) Activate() {
	m.IsActive = true
	m.UpdatedAt = time.Now()
}

// Deactivate は映画を無効化する（ソフトデリート）
func (m *Movie) Deactivate() {
	m.IsActive = false
	m.UpdatedAt = time.Now()
}
