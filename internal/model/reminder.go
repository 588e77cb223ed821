package model

import "time"

// Reminder отложенное напоминание клиенту о консультации.
// FireAt всегда равно времени консультации минус 24 часа.
// Отправленные напоминания не удаляются — остаются как история рассылки.
type Reminder struct {
	ID              int64     `json:"id"`
	ClientChatID    int64     `json:"client_chat_id"`
	ClientName      string    `json:"client_name"`
	AppointmentTime time.Time `json:"appointment_time"`
	FireAt          time.Time `json:"fire_at"`
	IsSent          bool      `json:"is_sent"`
	CreatedAt       time.Time `json:"created_at"`
}
