package handlers

// Intent явное намерение пользователя, на которое маршрутизируется
// входящее сообщение. Разводит маршрутизацию и отображаемые подписи:
// тексты кнопок можно менять, не трогая таблицу переходов.
type Intent string

const (
	IntentNone             Intent = ""
	IntentBookConsultation Intent = "book_consultation"
	IntentAddSlot          Intent = "add_slot"
	IntentDeleteSlot       Intent = "delete_slot"
	IntentUpcoming         Intent = "upcoming_appointments"
	IntentMySlots          Intent = "my_slots"
	IntentArchive          Intent = "archive"
	IntentCancel           Intent = "cancel"
)

// Подписи кнопок главного меню
const (
	ButtonBookConsultation = "📅 Записаться на консультацию"
	ButtonAddSlot          = "➕ Добавить слот"
	ButtonDeleteSlot       = "🗑️ Удалить слот"
	ButtonUpcoming         = "📋 Ближайшие записи"
	ButtonMySlots          = "👀 Мои слоты"
	ButtonArchive          = "📚 Архив записей"
	ButtonCancel           = "❌ Отмена"
)

// menuIntents таблица маршрутизации: подпись кнопки -> намерение
var menuIntents = map[string]Intent{
	ButtonBookConsultation: IntentBookConsultation,
	ButtonAddSlot:          IntentAddSlot,
	ButtonDeleteSlot:       IntentDeleteSlot,
	ButtonUpcoming:         IntentUpcoming,
	ButtonMySlots:          IntentMySlots,
	ButtonArchive:          IntentArchive,
	ButtonCancel:           IntentCancel,
}

// intentForText возвращает намерение для текста сообщения
func intentForText(text string) Intent {
	if intent, ok := menuIntents[text]; ok {
		return intent
	}
	return IntentNone
}
