package handlers

// Константы валидации данных клиента
const (
	// Имя и фамилия
	ClientNameMinLength = 2

	// Контакт для связи (телефон или email)
	ClientContactMinLength = 5
)

// Токен пропуска необязательного поля и значение-заглушка
const (
	skipToken          = "пропустить"
	requestPlaceholder = "Не указано"
)
