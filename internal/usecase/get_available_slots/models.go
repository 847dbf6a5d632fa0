package get_available_slots

import (
	"time"

	"github.com/peertutor/TutorBookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID    int64     // ID пользователя (для логирования, не влияет на результат)
	TutorID   int64     // ID репетитора
	From      time.Time // Начало окна (нормализуется к началу суток)
	DaysAhead int       // Размер окна в днях (0 = значение по умолчанию)
}

// Response модель ответа со списком слотов
type Response struct {
	TutorID     int64                // ID репетитора
	WindowStart time.Time            // Начало окна (начало суток в таймзоне репетитора)
	DaysAhead   int                  // Размер окна в днях
	Timezone    string               // Таймзона репетитора, в которой рассчитаны слоты
	Slots       []domain.BookingSlot // Слоты в хронологическом порядке
}
