package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("tutor not found")

	// ErrTutorInactive возвращается, когда профиль репетитора деактивирован
	ErrTutorInactive = errors.New("tutor profile is inactive")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("booking date is in the past")

	// ErrTooLateToBook возвращается, когда до начала сессии остаётся меньше
	// минимального срока бронирования
	ErrTooLateToBook = errors.New("booking start violates the minimum notice")

	// ErrNoMatchingSlot возвращается, когда ни один слот расписания
	// не покрывает запрошенное время
	ErrNoMatchingSlot = errors.New("no availability at the requested time")

	// ErrStartsBeforeSlotOpens возвращается, когда выбор начинается раньше
	// открытия ближайшего слота
	ErrStartsBeforeSlotOpens = errors.New("selection starts before slot opens")

	// ErrBeyondSlotEnd возвращается, когда выбор выходит за конец слота
	ErrBeyondSlotEnd = errors.New("selection extends beyond available slot")

	// ErrSlotUnavailable возвращается, когда слот уже занят другой сессией
	ErrSlotUnavailable = errors.New("the requested time is already booked")

	// ErrMalformedTemplate возвращается при некорректных временах в шаблоне
	ErrMalformedTemplate = errors.New("malformed availability template")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
