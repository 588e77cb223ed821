package model

import "errors"

// Доменные ошибки слотов и записей
var (
	ErrSlotExists   = errors.New("slot with this time already exists")
	ErrSlotNotFound = errors.New("slot not found")
	ErrSlotBooked   = errors.New("slot is already booked")
)
