package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/psychologist_bot/internal/controller/state"
	"github.com/Freeeeeet/psychologist_bot/internal/model"
)

func TestAddSlotRejectsNonAdmin(t *testing.T) {
	h := newHarness()

	h.handlers.HandleTextMessage(context.Background(), textUpdate(clientID, ButtonAddSlot))

	assert.Equal(t, state.StateNone, h.states.GetState(clientID))
	require.NotNil(t, h.client.lastMessage())
	assert.Contains(t, h.client.lastMessage().Text, "⛔")
}

func TestAddSlotHappyPath(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, ButtonAddSlot))
	assert.Equal(t, state.StateAddingSlot, h.states.GetState(adminID))

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, "2030-11-25 14:00"))

	assert.Equal(t, state.StateNone, h.states.GetState(adminID))
	assert.Len(t, h.schedule.slots, 1)
	assert.Contains(t, h.client.lastMessage().Text, "✅")
	assert.Contains(t, h.client.lastMessage().Text, "25.11.2030 в 14:00")
}

// Неверный формат не завершает диалог: админ может исправить ввод
func TestAddSlotInvalidFormatKeepsState(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, ButtonAddSlot))
	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, "завтра в два"))

	assert.Equal(t, state.StateAddingSlot, h.states.GetState(adminID))
	assert.Empty(t, h.schedule.slots)
	assert.Contains(t, h.client.lastMessage().Text, "❌ Неверный формат")

	// Исправленный ввод принимается тем же диалогом
	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, "2030-11-25 14:00"))
	assert.Equal(t, state.StateNone, h.states.GetState(adminID))
	assert.Len(t, h.schedule.slots, 1)
}

func TestAddSlotPastDateKeepsState(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, ButtonAddSlot))
	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, "2020-01-01 10:00"))

	assert.Equal(t, state.StateAddingSlot, h.states.GetState(adminID))
	assert.Empty(t, h.schedule.slots)
	assert.Contains(t, h.client.lastMessage().Text, "прошедшие даты")
}

func TestAddSlotDuplicate(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	h.schedule.addSlot(1, time.Date(2030, 11, 25, 14, 0, 0, 0, time.UTC), false)

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, ButtonAddSlot))
	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, "2030-11-25 14:00"))

	assert.Equal(t, state.StateNone, h.states.GetState(adminID))
	assert.Len(t, h.schedule.slots, 1)
	assert.Contains(t, h.client.lastMessage().Text, "уже существует")
}

func TestDeleteSlotShowsOnlyFreeFuture(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	free := h.schedule.addSlot(1, time.Now().Add(48*time.Hour), false)
	h.schedule.addSlot(2, time.Now().Add(72*time.Hour), true)
	h.schedule.addSlot(3, time.Now().Add(-time.Hour), false)

	h.handlers.HandleTextMessage(ctx, textUpdate(adminID, ButtonDeleteSlot))

	assert.Equal(t, state.StateDeletingSlot, h.states.GetState(adminID))

	snapshot, ok := h.states.GetData(adminID, state.DataDeletionSlots)
	require.True(t, ok)
	slots := snapshot.([]*model.Slot)
	require.Len(t, slots, 1)
	assert.Equal(t, free.ID, slots[0].ID)
}

func TestDeleteSlotNothingToDelete(t *testing.T) {
	h := newHarness()

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonDeleteSlot))

	assert.Equal(t, state.StateNone, h.states.GetState(adminID))
	assert.Contains(t, h.client.lastMessage().Text, "Нет свободных слотов")
}

func TestShowUpcomingAppointments(t *testing.T) {
	h := newHarness()

	h.booking.upcoming = []*model.Appointment{
		{
			ClientName:       "Анна Иванова",
			ClientContact:    "+79990001122",
			ClientRequest:    "Не указано",
			ConsultationType: model.ConsultationPrimary,
			Slot:             &model.Slot{StartTime: time.Date(2030, 11, 25, 14, 0, 0, 0, time.UTC)},
		},
	}

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonUpcoming))

	msg := h.client.lastMessage()
	require.NotNil(t, msg)
	assert.Contains(t, msg.Text, "Анна Иванова")
	assert.Contains(t, msg.Text, "25.11.2030 в 14:00")
	assert.Contains(t, msg.Text, "Всего записей: 1")
}

func TestShowUpcomingAppointmentsEmpty(t *testing.T) {
	h := newHarness()

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonUpcoming))

	assert.Contains(t, h.client.lastMessage().Text, "нет предстоящих записей")
}

func TestShowMySlotsSendsScheduleCard(t *testing.T) {
	h := newHarness()

	h.schedule.addSlot(1, time.Now().Add(48*time.Hour), false)
	h.schedule.addSlot(2, time.Now().Add(72*time.Hour), true)

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonMySlots))

	require.Len(t, h.client.photos, 1)
	assert.Contains(t, h.client.photos[0].Caption, "1 свободных, 1 занятых")
}

func TestShowMySlotsEmpty(t *testing.T) {
	h := newHarness()

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonMySlots))

	assert.Empty(t, h.client.photos)
	assert.Contains(t, h.client.lastMessage().Text, "нет активных слотов")
}

func TestShowArchive(t *testing.T) {
	h := newHarness()

	h.booking.past = []*model.Appointment{
		{
			ClientName:       "Пётр Сидоров",
			ClientContact:    "peter@example.com",
			ClientRequest:    "Тревога",
			ConsultationType: model.ConsultationRepeat,
			Slot:             &model.Slot{StartTime: time.Date(2024, 1, 10, 11, 0, 0, 0, time.UTC)},
		},
	}

	h.handlers.HandleTextMessage(context.Background(), textUpdate(adminID, ButtonArchive))

	msg := h.client.lastMessage()
	assert.Contains(t, msg.Text, "Пётр Сидоров")
	assert.Contains(t, msg.Text, "Всего в архиве: 1")
}

func TestAdminViewsRejectNonAdmin(t *testing.T) {
	for _, button := range []string{ButtonUpcoming, ButtonMySlots, ButtonArchive, ButtonDeleteSlot} {
		h := newHarness()

		h.handlers.HandleTextMessage(context.Background(), textUpdate(clientID, button))

		require.NotNil(t, h.client.lastMessage(), "button %s", button)
		assert.Contains(t, h.client.lastMessage().Text, "⛔", "button %s", button)
	}
}
