package selection

import (
	"sort"
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

// интервал слота в минутах от начала суток
type slotInterval struct {
	start     int
	end       int
	available bool
}

// Grid проекция сгенерированных слотов на сетку дней для жеста выделения.
// Индекс дня - порядковый номер календарного дня в окне генерации
type Grid struct {
	days  []time.Time
	slots map[int][]slotInterval
}

// NewGrid строит сетку из слотов одной генерации
// Слоты группируются по календарным дням в хронологическом порядке
func NewGrid(slots []domain.BookingSlot) *Grid {
	grid := &Grid{
		slots: make(map[int][]slotInterval),
	}

	dayIndex := make(map[string]int)

	for _, slot := range slots {
		key := slot.Day.Format(domain.DateFormat)
		idx, ok := dayIndex[key]
		if !ok {
			idx = len(grid.days)
			dayIndex[key] = idx
			grid.days = append(grid.days, slot.Day)
		}

		start, err := slot.Start.Minutes()
		if err != nil {
			continue
		}
		end, err := slot.End.Minutes()
		if err != nil {
			continue
		}

		grid.slots[idx] = append(grid.slots[idx], slotInterval{
			start:     start,
			end:       end,
			available: slot.Available,
		})
	}

	for idx := range grid.slots {
		intervals := grid.slots[idx]
		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].start < intervals[j].start
		})
	}

	return grid
}

// Day возвращает календарный день по индексу
func (g *Grid) Day(dayIndex int) (time.Time, bool) {
	if dayIndex < 0 || dayIndex >= len(g.days) {
		return time.Time{}, false
	}
	return g.days[dayIndex], true
}

// IsAvailable проверяет, попадает ли минута дня в доступный слот
func (g *Grid) IsAvailable(dayIndex, minutes int) bool {
	for _, interval := range g.slots[dayIndex] {
		if minutes >= interval.start && minutes < interval.end {
			return interval.available
		}
	}
	return false
}

// containingSlotEnd возвращает конец доступного слота, содержащего минуту дня
func (g *Grid) containingSlotEnd(dayIndex, minutes int) (int, bool) {
	for _, interval := range g.slots[dayIndex] {
		if minutes >= interval.start && minutes < interval.end {
			return interval.end, interval.available
		}
	}
	return 0, false
}
