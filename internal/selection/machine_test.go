package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

func ts(t *testing.T, value string) types.TimeString {
	t.Helper()
	v, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return v
}

var (
	testMonday  = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testTuesday = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
)

func testGrid(t *testing.T) *Grid {
	t.Helper()
	return NewGrid([]domain.BookingSlot{
		{TutorID: 42, Day: testMonday, Start: ts(t, "09:00"), End: ts(t, "12:00"), Available: true},
		{TutorID: 42, Day: testMonday, Start: ts(t, "14:00"), End: ts(t, "16:00"), Available: false},
		{TutorID: 42, Day: testTuesday, Start: ts(t, "10:00"), End: ts(t, "11:15"), Available: true},
	})
}

func TestMachine_DragCommitRoundsUpToHalfHour(t *testing.T) {
	m := NewMachine(testGrid(t))

	// Тянем с 10:05 до 10:40: ячейки 10:00 и 10:30,
	// конец 10:45 округляется вверх до 11:00
	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 10, Minute: 5}))
	m.Extend(Cell{DayIndex: 0, Hour: 10, Minute: 40})

	sel, err := m.Release()
	require.NoError(t, err)

	assert.Equal(t, "10:00", sel.Start.String())
	assert.Equal(t, "11:00", sel.End.String())
	assert.Equal(t, 60, sel.DurationMinutes())
	assert.Equal(t, PhaseCommitted, m.Phase())
}

func TestMachine_SingleCellClick(t *testing.T) {
	m := NewMachine(testGrid(t))

	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 9, Minute: 0}))

	sel, err := m.Release()
	require.NoError(t, err)

	// Одна ячейка = минимальное выделение, округлённое до 30 минут
	assert.Equal(t, "09:00", sel.Start.String())
	assert.Equal(t, "09:30", sel.End.String())
}

func TestMachine_BackwardDragNormalizes(t *testing.T) {
	m := NewMachine(testGrid(t))

	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 11, Minute: 0}))
	m.Extend(Cell{DayIndex: 0, Hour: 9, Minute: 30})

	sel, err := m.Release()
	require.NoError(t, err)

	assert.Equal(t, "09:30", sel.Start.String())
	assert.Equal(t, "11:30", sel.End.String())
}

func TestMachine_RoundingClampedToSlotEnd(t *testing.T) {
	m := NewMachine(testGrid(t))

	// Вторник 10:00-11:15: тянем до последней ячейки, округление дало бы
	// 11:30, но конец обрезается по концу слота
	require.NoError(t, m.Begin(Cell{DayIndex: 1, Hour: 10, Minute: 45}))
	m.Extend(Cell{DayIndex: 1, Hour: 11, Minute: 0})

	sel, err := m.Release()
	require.NoError(t, err)

	assert.Equal(t, "10:45", sel.Start.String())
	assert.Equal(t, "11:15", sel.End.String())
}

func TestMachine_BeginOnUnavailableCell(t *testing.T) {
	m := NewMachine(testGrid(t))

	// 14:00-16:00 понедельника занято
	err := m.Begin(Cell{DayIndex: 0, Hour: 14, Minute: 30})
	assert.ErrorIs(t, err, ErrUnavailableCell)
	assert.Equal(t, PhaseIdle, m.Phase())

	// Вне всех слотов
	err = m.Begin(Cell{DayIndex: 0, Hour: 13, Minute: 0})
	assert.ErrorIs(t, err, ErrUnavailableCell)

	// За пределами окна
	err = m.Begin(Cell{DayIndex: 5, Hour: 10, Minute: 0})
	assert.ErrorIs(t, err, ErrUnavailableCell)
}

func TestMachine_ExtendIgnoresOtherDayAndUnavailable(t *testing.T) {
	m := NewMachine(testGrid(t))

	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 10, Minute: 0}))
	m.Extend(Cell{DayIndex: 0, Hour: 11, Minute: 0})

	// Другой день - игнорируется, граница остаётся на 11:00
	m.Extend(Cell{DayIndex: 1, Hour: 10, Minute: 30})
	// Занятая ячейка - игнорируется
	m.Extend(Cell{DayIndex: 0, Hour: 14, Minute: 0})
	// Вне слотов - игнорируется
	m.Extend(Cell{DayIndex: 0, Hour: 12, Minute: 30})

	sel, err := m.Release()
	require.NoError(t, err)

	assert.Equal(t, "10:00", sel.Start.String())
	assert.Equal(t, "11:30", sel.End.String())
	assert.Equal(t, testMonday, sel.Day)
}

func TestMachine_ReleaseWithoutBegin(t *testing.T) {
	m := NewMachine(testGrid(t))

	_, err := m.Release()
	assert.ErrorIs(t, err, ErrNotDragging)
}

func TestMachine_CancelDiscardsGesture(t *testing.T) {
	m := NewMachine(testGrid(t))

	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 10, Minute: 0}))
	m.Cancel()
	assert.Equal(t, PhaseCancelled, m.Phase())

	_, err := m.Release()
	assert.ErrorIs(t, err, ErrNotDragging)

	// Отменённый жест не мешает начать новый
	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 9, Minute: 0}))
	assert.Equal(t, PhaseDragging, m.Phase())
}

func TestMachine_CommittedAllowsNewGesture(t *testing.T) {
	m := NewMachine(testGrid(t))

	require.NoError(t, m.Begin(Cell{DayIndex: 0, Hour: 9, Minute: 0}))
	_, err := m.Release()
	require.NoError(t, err)

	require.NoError(t, m.Begin(Cell{DayIndex: 1, Hour: 10, Minute: 0}))
	assert.Equal(t, PhaseDragging, m.Phase())
}
