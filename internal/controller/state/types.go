package state

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Состояния записи на консультацию (клиент)
	StateChoosingSlot             UserState = "booking_choosing_slot"
	StateChoosingConsultationType UserState = "booking_choosing_type"
	StateTypingName               UserState = "booking_typing_name"
	StateTypingContact            UserState = "booking_typing_contact"
	StateTypingTherapyExperience  UserState = "booking_typing_experience"
	StateTypingDisorders          UserState = "booking_typing_disorders"
	StateTypingRequest            UserState = "booking_typing_request"

	// Состояния управления расписанием (админ)
	StateAddingSlot   UserState = "admin_adding_slot"
	StateDeletingSlot UserState = "admin_deleting_slot"
)

// Ключи временных данных диалога
const (
	DataBookingSlots     = "booking_slots"     // снимок свободных слотов на время диалога
	DataSelectedSlot     = "selected_slot"     // выбранный клиентом слот
	DataConsultationType = "consultation_type" // первичная или повторная
	DataClientName       = "client_name"
	DataClientContact    = "client_contact"
	DataTherapyExp       = "therapy_experience"
	DataDisorders        = "disorders"
	DataDeletionSlots    = "deletion_slots" // снимок слотов, доступных для удаления
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State UserState
	Data  map[string]interface{} // Временные данные для текущего диалога
}
