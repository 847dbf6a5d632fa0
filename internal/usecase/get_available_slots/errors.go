package get_available_slots

import "errors"

var (
	// ErrTutorNotFound возвращается, когда репетитор не найден
	ErrTutorNotFound = errors.New("tutor not found")

	// ErrTutorInactive возвращается, когда профиль репетитора деактивирован
	ErrTutorInactive = errors.New("tutor profile is inactive")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrMalformedTemplate возвращается при некорректных временах в шаблоне
	// Генерация отклоняется целиком, чтобы не выдать неверно рассчитанные слоты
	ErrMalformedTemplate = errors.New("malformed availability template")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
