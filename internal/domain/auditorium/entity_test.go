package auditorium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuditorium(t *testing.T) {
	tests := []struct {
		name        string
		hallName    string
		capacity    int
		errExpected error
	}{
		{name: "正常なホール作成", hallName: "シアター1", capacity: 120},
		{name: "名前が空", hallName: "", capacity: 120, errExpected: ErrNameRequired},
		{name: "名前が空白のみ", hallName: "   ", capacity: 120, errExpected: ErrNameRequired},
		{name: "定員が0", hallName: "シアター1", capacity: 0, errExpected: ErrInvalidCapacity},
		{name: "定員が負", hallName: "シアター1", capacity: -10, errExpected: ErrInvalidCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewAuditorium(tt.hallName, tt.capacity)
			if tt.errExpected != nil {
				assert.ErrorIs(t, err, tt.errExpected)
				return
			}
			require.NoError(t, err)
			assert.True(t, a.IsActive)
			assert.Equal(t, tt.capacity, a.Capacity)
		})
	}
}

func TestNewAuditorium_NameTrimmed(t *testing.T) {
	a, err := NewAuditorium("  シアター2  ", 80)
	require.NoError(t, err)
	assert.Equal(t, "シアター2", a.Name)
}

func TestAuditorium_Update(t *testing.T) {
	a, err := NewAuditorium("シアター1", 120)
	require.NoError(t, err)

	t.Run("名前と定員を更新できる", func(t *testing.T) {
		a.Update("シアターA", 150)
		assert.Equal(t, "シアターA", a.Name)
		assert.Equal(t, 150, a.Capacity)
	})

	t.Run("空の名前・0以下の定員は無視される", func(t *testing.T) {
		a.Update("", 0)
		assert.Equal(t, "シアターA", a.Name)
		assert.Equal(t, 150, a.Capacity)

		a.Update("   ", -5)
		assert.Equal(t, "シアターA", a.Name)
		assert.Equal(t, 150, a.Capacity)
	})
}

func TestAuditorium_HasAvailableCapacity(t *testing.T) {
	a, err := NewAuditorium("シアター1", 10)
	require.NoError(t, err)

	assert.True(t, a.HasAvailableCapacity(9))
	assert.False(t, a.HasAvailableCapacity(10))
	assert.False(t, a.HasAvailableCapacity(11))
}

func TestAuditorium_ActivateDeactivate(t *testing.T) {
	a, err := NewAuditorium("シアター1", 120)
	require.NoError(t, err)

	a.Deactivate()
	assert.False(t, a.IsActive)

	a.Activate()
	assert.True(t, a.IsActive)
}
