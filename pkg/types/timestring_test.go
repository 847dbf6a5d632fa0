package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"09:30", false},
		{"00:00", false},
		{"23:59", false},
		{"24:00", false}, // верхняя граница дня
		{"24:01", true},
		{"25:00", true},
		{"09:60", true},
		{"9:30", true}, // без ведущего нуля
		{"09-30", true},
		{"", true},
		{"junk", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, ts.String())
		})
	}
}

func TestTimeString_Minutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	minutes, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	endOfDay, err := NewTimeStringFromString("24:00")
	require.NoError(t, err)
	minutes, err = endOfDay.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	ts, err = NewTimeStringFromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, "24:00", ts.String())

	_, err = NewTimeStringFromMinutes(1441)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)

	shifted, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", shifted.String())

	// Выход за границу суток - ошибка
	_, err = ts.AddMinutes(15 * 60)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Comparison(t *testing.T) {
	early, err := NewTimeStringFromString("09:00")
	require.NoError(t, err)
	late, err := NewTimeStringFromString("17:00")
	require.NoError(t, err)

	assert.True(t, early.IsBefore(late))
	assert.False(t, late.IsBefore(early))
	assert.True(t, late.IsAfter(early))
	assert.False(t, early.IsBefore(early))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("junk").IsBefore(late))
	assert.False(t, late.IsAfter(TimeString("junk")))
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 9, 7, 14, 30, 0, 0, time.UTC)))
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("from HH:MM:SS string", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("09:30:00"))
		assert.Equal(t, "09:30", ts.String())
	})

	t.Run("from bytes", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("18:45:00")))
		assert.Equal(t, "18:45", ts.String())
	})

	t.Run("nil resets value", func(t *testing.T) {
		ts := TimeString("09:30")
		require.NoError(t, ts.Scan(nil))
		assert.True(t, ts.IsZero())
	})

	t.Run("unsupported type", func(t *testing.T) {
		var ts TimeString
		assert.ErrorIs(t, ts.Scan(42), ErrInvalidTimeString)
	})
}

func TestTimeString_Value(t *testing.T) {
	ts := TimeString("09:30")
	v, err := ts.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	empty := TimeString("")
	v, err = empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("junk").Value()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}
