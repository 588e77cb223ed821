// Package formatting отвечает за разбор и отображение дат слотов.
// Все времена наивные (без часового пояса), с точностью до минуты.
package formatting

import (
	"time"
)

// SlotTimeLayout формат ввода даты слота администратором
const SlotTimeLayout = "2006-01-02 15:04"

// displayLayout формат для красивого отображения пользователю
const displayLayout = "02.01.2006 в 15:04"

// ParseSlotTime разбирает дату слота в формате ГГГГ-ММ-ДД ЧЧ:ММ
func ParseSlotTime(s string) (time.Time, error) {
	return time.Parse(SlotTimeLayout, s)
}

// IsValidSlotTime проверяет валидность формата даты
func IsValidSlotTime(s string) bool {
	_, err := ParseSlotTime(s)
	return err == nil
}

// FormatDateTime форматирует дату и время для отображения
func FormatDateTime(t time.Time) string {
	return t.Format(displayLayout)
}

// FormatSlotTime форматирует дату в формате ввода (для сообщений об ошибках)
func FormatSlotTime(t time.Time) string {
	return t.Format(SlotTimeLayout)
}
