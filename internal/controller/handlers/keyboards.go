package handlers

import "github.com/go-telegram/bot/models"

// mainMenuKeyboard главное меню в зависимости от роли пользователя
func mainMenuKeyboard(isAdmin bool) *models.ReplyKeyboardMarkup {
	var rows [][]models.KeyboardButton

	if isAdmin {
		rows = [][]models.KeyboardButton{
			{{Text: ButtonAddSlot}, {Text: ButtonDeleteSlot}},
			{{Text: ButtonUpcoming}, {Text: ButtonMySlots}},
			{{Text: ButtonArchive}},
		}
	} else {
		rows = [][]models.KeyboardButton{
			{{Text: ButtonBookConsultation}},
		}
	}

	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// cancelKeyboard клавиатура для отмены текущего диалога
func cancelKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: ButtonCancel}},
		},
		ResizeKeyboard: true,
	}
}
