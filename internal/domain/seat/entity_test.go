package seat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeat(t *testing.T) {
	tests := []struct {
		name         string
		auditoriumID string
		row          string
		number       int
		errExpected  error
	}{
		{name: "正常な座席作成", auditoriumID: "aud-1", row: "A", number: 1},
		{name: "ホールID未指定", auditoriumID: "", row: "A", number: 1, errExpected: ErrAuditoriumIDRequired},
		{name: "行が空", auditoriumID: "aud-1", row: "", number: 1, errExpected: ErrRowRequired},
		{name: "行が空白のみ", auditoriumID: "aud-1", row: "   ", number: 1, errExpected: ErrRowRequired},
		{name: "座席番号が0", auditoriumID: "aud-1", row: "A", number: 0, errExpected: ErrInvalidSeatNumber},
		{name: "座席番号が負", auditoriumID: "aud-1", row: "A", number: -3, errExpected: ErrInvalidSeatNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSeat(tt.auditoriumID, tt.row, tt.number)
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.True(t, s.IsActive)
			assert.Equal(t, tt.number, s.Number)
		})
	}
}

func TestNewSeat_RowNormalization(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a", "A"},
		{" b ", "B"},
		{"AA", "AA"},
		{"  c1  ", "C1"},
	}
	for _, tt := range tests {
		s, err := NewSeat("aud-1", tt.input, 1)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, s.Row)
	}
}

func TestSeat_DisplayString(t *testing.T) {
	s, err := NewSeat("aud-1", "a", 12)
	require.NoError(t, err)
	assert.Equal(t, "A12", s.DisplayString())
}

func TestSeat_ActivateDeactivate(t *testing.T) {
	s, err := NewSeat("aud-1", "A", 1)
	require.NoError(t, err)

	s.Deactivate()
	assert.False(t, s.IsActive)

	s.Activate()
	assert.True(t, s.IsActive)
}
