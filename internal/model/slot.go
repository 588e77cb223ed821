package model

import "time"

// Slot слот расписания для записи на консультацию.
// Время слота уникально — два слота на одно и то же время существовать не могут.
type Slot struct {
	ID        int64     `json:"id"`
	StartTime time.Time `json:"start_time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
}
