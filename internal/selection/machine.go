package selection

import (
	"errors"
	"fmt"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
	"github.com/peertutor/TutorBookingService/pkg/types"
)

// Phase фаза жеста выделения
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseDragging  Phase = "dragging"
	PhaseCommitted Phase = "committed"
	PhaseCancelled Phase = "cancelled"
)

var (
	// ErrNotDragging возвращается при Release/Extend вне активного жеста
	ErrNotDragging = errors.New("selection gesture is not active")

	// ErrUnavailableCell возвращается при попытке начать жест вне доступного слота
	ErrUnavailableCell = errors.New("selection must start inside an available slot")

	// ErrRangeUnavailable возвращается, когда выделение захватывает занятое время
	ErrRangeUnavailable = errors.New("the entire time range must be available")
)

// Cell ячейка сетки выделения: день окна и время с шагом в 15 минут
// Время внутри ячейки усекается вниз до её начала
type Cell struct {
	DayIndex int
	Hour     int
	Minute   int
}

// minutes возвращает начало ячейки в минутах от начала суток
func (c Cell) minutes() int {
	raw := c.Hour*60 + c.Minute
	return raw - raw%domain.SelectionStepMinutes
}

// Selection зафиксированный результат жеста
type Selection struct {
	Day   time.Time
	Start types.TimeString
	End   types.TimeString
}

// DurationMinutes длительность зафиксированного выделения
func (s Selection) DurationMinutes() int {
	start, err := s.Start.Minutes()
	if err != nil {
		return 0
	}
	end, err := s.End.Minutes()
	if err != nil {
		return 0
	}
	return end - start
}

// Machine конечный автомат жеста выделения времени перетаскиванием.
//
// Жест живёт в пределах одного календарного дня. Расширение на занятую
// ячейку или другой день игнорируется: выделение замирает на последней
// валидной ячейке. При фиксации конец округляется вверх до 30-минутной
// границы, но не дальше конца содержащего слота.
//
// Не потокобезопасен: одна Machine - один жест одного пользователя
type Machine struct {
	grid   *Grid
	phase  Phase
	anchor Cell
	last   Cell
}

// NewMachine создает автомат выделения над сеткой слотов
func NewMachine(grid *Grid) *Machine {
	return &Machine{
		grid:  grid,
		phase: PhaseIdle,
	}
}

// Phase возвращает текущую фазу жеста
func (m *Machine) Phase() Phase {
	return m.phase
}

// Begin начинает жест с якорной ячейки
// Начать можно только в доступной ячейке; завершённый или отменённый жест
// позволяет начать новый
func (m *Machine) Begin(cell Cell) error {
	if m.phase == PhaseDragging {
		// Повторный Begin во время жеста - перезапуск с новым якорем
		m.phase = PhaseIdle
	}

	if _, ok := m.grid.Day(cell.DayIndex); !ok {
		return fmt.Errorf("%w: day index %d is outside the window", ErrUnavailableCell, cell.DayIndex)
	}

	if !m.grid.IsAvailable(cell.DayIndex, cell.minutes()) {
		return ErrUnavailableCell
	}

	m.anchor = cell
	m.last = cell
	m.phase = PhaseDragging
	return nil
}

// Extend расширяет выделение до указанной ячейки
// Ячейка другого дня или занятая ячейка игнорируется: выделение сохраняет
// последнюю валидную границу. Вне активного жеста вызов не делает ничего
func (m *Machine) Extend(cell Cell) {
	if m.phase != PhaseDragging {
		return
	}

	if cell.DayIndex != m.anchor.DayIndex {
		return
	}

	if !m.grid.IsAvailable(cell.DayIndex, cell.minutes()) {
		return
	}

	m.last = cell
}

// Cancel отменяет активный жест без фиксации
func (m *Machine) Cancel() {
	if m.phase != PhaseDragging {
		return
	}
	m.phase = PhaseCancelled
}

// Release фиксирует жест и возвращает итоговый интервал.
//
// Порядок нормализации:
//  1. якорь и последняя ячейка упорядочиваются (тянуть можно в обе стороны)
//  2. конец = начало последней ячейки + шаг сетки
//  3. конец округляется вверх до 30-минутной границы
//  4. округлённый конец обрезается по концу содержащего слота
//  5. каждая 15-минутная ступень интервала проверяется на доступность
func (m *Machine) Release() (*Selection, error) {
	if m.phase != PhaseDragging {
		return nil, ErrNotDragging
	}

	startMin := m.anchor.minutes()
	endCell := m.last.minutes()
	if endCell < startMin {
		startMin, endCell = endCell, startMin
	}
	endMin := endCell + domain.SelectionStepMinutes

	// Округляем конец вверх до пользовательской границы
	if rem := endMin % domain.SelectionRoundingMinutes; rem != 0 {
		endMin += domain.SelectionRoundingMinutes - rem
	}

	// Но не выходим за конец слота, в котором лежит выделение
	if slotEnd, ok := m.grid.containingSlotEnd(m.anchor.DayIndex, endCell); ok && endMin > slotEnd {
		endMin = slotEnd
	}

	// Каждая ступень интервала обязана быть доступной
	for step := startMin; step < endMin; step += domain.SelectionStepMinutes {
		if !m.grid.IsAvailable(m.anchor.DayIndex, step) {
			m.phase = PhaseCancelled
			return nil, ErrRangeUnavailable
		}
	}

	start, err := types.NewTimeStringFromMinutes(startMin)
	if err != nil {
		m.phase = PhaseCancelled
		return nil, fmt.Errorf("%w: start %d", ErrRangeUnavailable, startMin)
	}
	end, err := types.NewTimeStringFromMinutes(endMin)
	if err != nil {
		m.phase = PhaseCancelled
		return nil, fmt.Errorf("%w: end %d", ErrRangeUnavailable, endMin)
	}

	day, _ := m.grid.Day(m.anchor.DayIndex)
	m.phase = PhaseCommitted

	return &Selection{
		Day:   day,
		Start: start,
		End:   end,
	}, nil
}
