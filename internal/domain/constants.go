package domain

// Default configuration values
const (
	DefaultDaysAhead               = 28 // default booking lookahead window
	MaxDaysAhead                   = 90
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Business validation constants
const (
	MinSessionDurationMinutes   = 15
	MaxSessionDurationMinutes   = 480 // 8 hours
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Selection gesture constants
const (
	SelectionStepMinutes     = 15 // granularity of the availability verification walk
	SelectionRoundingMinutes = 30 // committed drag ends round up to this boundary
)

// SessionFetchPaddingDays сколько дней после окна генерации захватывать
// при загрузке сессий, чтобы не потерять брони, выходящие за границу окна
const SessionFetchPaddingDays = 7

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов неактивных сессий
// Используется для фильтрации при расчёте доступных слотов
var InactiveStatuses = []SessionStatus{
	StatusCancelledByStudent,
	StatusCancelledByTutor,
	StatusNoShow,
}

// BlockingStatuses список статусов, занимающих календарь репетитора
var BlockingStatuses = []SessionStatus{
	StatusPending,
	StatusConfirmed,
}
