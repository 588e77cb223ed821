package model

import (
	"time"

	"github.com/google/uuid"
)

type ConsultationType string

const (
	ConsultationPrimary ConsultationType = "primary" // Первичная консультация
	ConsultationRepeat  ConsultationType = "repeat"  // Повторная консультация
)

// Label возвращает название типа консультации на русском
func (t ConsultationType) Label() string {
	if t == ConsultationPrimary {
		return "🆕 Первичная"
	}
	return "🔄 Повторная"
}

// Appointment запись клиента на консультацию.
// Создаётся атомарно с пометкой слота занятым, один слот — одна запись.
type Appointment struct {
	ID               int64            `json:"id"`
	PublicID         uuid.UUID        `json:"public_id"`
	ClientName       string           `json:"client_name"`
	ClientContact    string           `json:"client_contact"`
	ClientRequest    string           `json:"client_request"`
	ConsultationType ConsultationType `json:"consultation_type"`
	SlotID           int64            `json:"slot_id"`
	CreatedAt        time.Time        `json:"created_at"`

	// Заполняется в списках с JOIN (не из таблицы appointments)
	Slot *Slot `json:"slot,omitempty"`
}
