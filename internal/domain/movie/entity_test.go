package movie

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMovie(t *testing.T) {
	release := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		title       string
		description string
		duration    int
		genre       string
		director    string
		price       int64
		errExpected error
	}{
		{name: "正常な映画作成", title: "七人の侍", description: "農民が侍を雇う", duration: 207, genre: "時代劇", director: "黒澤明", price: 1500},
		{name: "タイトルが空", title: " ", description: "説明", duration: 120, genre: "SF", director: "監督", price: 1500, errExpected: ErrTitleRequired},
		{name: "説明が空", title: "タイトル", description: "", duration: 120, genre: "SF", director: "監督", price: 1500, errExpected: ErrDescriptionRequired},
		{name: "上映時間が0", title: "タイトル", description: "説明", duration: 0, genre: "SF", director: "監督", price: 1500, errExpected: ErrInvalidDuration},
		{name: "ジャンルが空", title: "タイトル", description: "説明", duration: 120, genre: "", director: "監督", price: 1500, errExpected: ErrGenreRequired},
		{name: "監督が空", title: "タイトル", description: "説明", duration: 120, genre: "SF", director: "", price: 1500, errExpected: ErrDirectorRequired},
		{name: "料金が0", title: "タイトル", description: "説明", duration: 120, genre: "SF", director: "監督", price: 0, errExpected: ErrInvalidTicketPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMovie(tt.title, tt.description, tt.duration, tt.genre, tt.director, release, tt.price, "")
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.IsActive)
			assert.Equal(t, tt.duration, m.DurationMinutes)
		})
	}
}

func TestMovie_Update(t *testing.T) {
	m := createTestMovie(t)

	t.Run("指定したフィールドのみ更新される", func(t *testing.T) {
		m.Update(UpdateInput{Title: "新タイトル", TicketPrice: 1800})
		assert.Equal(t, "新タイトル", m.Title)
		assert.Equal(t, int64(1800), m.TicketPrice)
		assert.Equal(t, "黒澤明", m.Director)
	})

	t.Run("空文字・0以下の値は無視される", func(t *testing.T) {
		m.Update(UpdateInput{Title: "  ", DurationMinutes: -10, TicketPrice: 0})
		assert.Equal(t, "新タイトル", m.Title)
		assert.Equal(t, 207, m.DurationMinutes)
		assert.Equal(t, int64(1800), m.TicketPrice)
	})

	t.Run("ポスターURLはポインタ指定で空文字にもできる", func(t *testing.T) {
		url := "https://example.com/poster.jpg"
		m.Update(UpdateInput{PosterURL: &url})
		assert.Equal(t, url, m.PosterURL)

		empty := ""
		m.Update(UpdateInput{PosterURL: &empty})
		assert.Equal(t, "", m.PosterURL)
	})

	t.Run("公開日はポインタ指定で更新される", func(t *testing.T) {
		newDate := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		m.Update(UpdateInput{ReleaseDate: &newDate})
		assert.Equal(t, newDate, m.ReleaseDate)
	})
}

func TestMovie_ActivateDeactivate(t *testing.T) {
	m := createTestMovie(t)

	m.Deactivate()
	assert.False(t, m.IsActive)

	m.Activate()
	assert.True(t, m.IsActive)
}

func createTestMovie(t *testing.T) *Movie {
	release := time.Date(1954, 4, 26, 0, 0, 0, 0, time.UTC)
	m, err := NewMovie("七人の侍", "農民が侍を雇う", 207, "時代劇", "黒澤明", release, 1500, "")
	require.NoError(t, err)
	return m
}
