package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
)

type mockReminderStore struct {
	reminders []*model.Reminder
	nextID    int64
	createErr error
	markErr   error
	listErr   error
}

func (m *mockReminderStore) Create(ctx context.Context, reminder *model.Reminder) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.nextID++
	reminder.ID = m.nextID
	m.reminders = append(m.reminders, reminder)
	return nil
}

func (m *mockReminderStore) ListDue(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var due []*model.Reminder
	for _, r := range m.reminders {
		if !r.IsSent && !r.FireAt.After(now) {
			due = append(due, r)
		}
	}
	return due, nil
}

func (m *mockReminderStore) MarkSent(ctx context.Context, id int64) error {
	if m.markErr != nil {
		return m.markErr
	}
	for _, r := range m.reminders {
		if r.ID == id {
			r.IsSent = true
			return nil
		}
	}
	return errors.New("reminder not found")
}

type mockReminderSender struct {
	sent    []*model.Reminder
	sendErr error
}

func (m *mockReminderSender) SendReminder(ctx context.Context, reminder *model.Reminder) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, reminder)
	return nil
}

func TestReminderServiceEnqueueFireAt(t *testing.T) {
	store := &mockReminderStore{}
	svc := NewReminderService(store, &mockReminderSender{}, zap.NewNop())

	appointmentAt := time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC)
	err := svc.Enqueue(context.Background(), 42, "Анна", appointmentAt)
	require.NoError(t, err)

	require.Len(t, store.reminders, 1)
	r := store.reminders[0]
	assert.Equal(t, int64(42), r.ClientChatID)
	assert.Equal(t, "Анна", r.ClientName)
	assert.True(t, r.FireAt.Equal(appointmentAt.Add(-24*time.Hour)))
	assert.False(t, r.IsSent)
}

// Слот, занятый менее чем за сутки, даёт просроченное напоминание,
// и его доставляет ближайший проход
func TestReminderServiceEnqueueAlreadyDue(t *testing.T) {
	store := &mockReminderStore{}
	sender := &mockReminderSender{}
	svc := NewReminderService(store, sender, zap.NewNop())

	now := time.Date(2025, 11, 25, 10, 0, 0, 0, time.UTC)
	appointmentAt := now.Add(3 * time.Hour)

	require.NoError(t, svc.Enqueue(context.Background(), 42, "Анна", appointmentAt))

	sent, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, store.reminders[0].IsSent)
}

func TestReminderServiceSweepRespectsFireAt(t *testing.T) {
	store := &mockReminderStore{}
	sender := &mockReminderSender{}
	svc := NewReminderService(store, sender, zap.NewNop())

	appointmentAt := time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Enqueue(context.Background(), 42, "Анна", appointmentAt))

	// За минуту до fire_at ничего не уходит
	sent, err := svc.Sweep(context.Background(), appointmentAt.Add(-24*time.Hour).Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Empty(t, sender.sent)

	// Ровно в fire_at напоминание доставляется
	sent, err = svc.Sweep(context.Background(), appointmentAt.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(42), sender.sent[0].ClientChatID)
}

func TestReminderServiceSweepIdempotent(t *testing.T) {
	store := &mockReminderStore{}
	sender := &mockReminderSender{}
	svc := NewReminderService(store, sender, zap.NewNop())

	appointmentAt := time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Enqueue(context.Background(), 42, "Анна", appointmentAt))

	now := appointmentAt.Add(-time.Hour)

	sent, err := svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	// Повторный проход не шлёт то же напоминание второй раз
	sent, err = svc.Sweep(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, sender.sent, 1)
}

func TestReminderServiceSweepDeliveryFailureLeavesUnsent(t *testing.T) {
	store := &mockReminderStore{}
	sender := &mockReminderSender{sendErr: errors.New("telegram down")}
	svc := NewReminderService(store, sender, zap.NewNop())

	appointmentAt := time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Enqueue(context.Background(), 42, "Анна", appointmentAt))

	sent, err := svc.Sweep(context.Background(), appointmentAt)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.False(t, store.reminders[0].IsSent)

	// После восстановления транспорта напоминание уходит
	sender.sendErr = nil
	sent, err = svc.Sweep(context.Background(), appointmentAt)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.True(t, store.reminders[0].IsSent)
}

func TestReminderServiceSweepMarkFailureNotCounted(t *testing.T) {
	store := &mockReminderStore{markErr: errors.New("db down")}
	sender := &mockReminderSender{}
	svc := NewReminderService(store, sender, zap.NewNop())

	appointmentAt := time.Date(2025, 11, 25, 14, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Enqueue(context.Background(), 42, "Анна", appointmentAt))

	sent, err := svc.Sweep(context.Background(), appointmentAt)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	// Доставка состоялась, но пометка нет: возможен повтор на следующем проходе
	assert.Len(t, sender.sent, 1)
	assert.False(t, store.reminders[0].IsSent)
}

func TestReminderServiceSweepListError(t *testing.T) {
	store := &mockReminderStore{listErr: errors.New("db down")}
	svc := NewReminderService(store, &mockReminderSender{}, zap.NewNop())

	_, err := svc.Sweep(context.Background(), time.Now())
	assert.Error(t, err)
}
