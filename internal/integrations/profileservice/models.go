package profileservice

// TutorProfile модель профиля репетитора из ProfileService
type TutorProfile struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"display_name"`
	HourlyRate  float64  `json:"hourly_rate"`
	Timezone    string   `json:"timezone"` // IANA имя, например "Europe/Moscow"
	Active      bool     `json:"active"`
	Subjects    []string `json:"subjects"`
}

// ErrorResponse модель ошибки от ProfileService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
