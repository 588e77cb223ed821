package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReminderRepository struct {
	pool *pgxpool.Pool
}

func NewReminderRepository(pool *pgxpool.Pool) *ReminderRepository {
	return &ReminderRepository{pool: pool}
}

// Create сохраняет неотправленное напоминание
func (r *ReminderRepository) Create(ctx context.Context, reminder *model.Reminder) error {
	query := `
		INSERT INTO reminders (client_chat_id, client_name, appointment_time, fire_at, is_sent)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		reminder.ClientChatID,
		reminder.ClientName,
		reminder.AppointmentTime,
		reminder.FireAt,
	).Scan(&reminder.ID, &reminder.CreatedAt)

	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}

	return nil
}

// ListDue получает неотправленные напоминания, время которых наступило
func (r *ReminderRepository) ListDue(ctx context.Context, now time.Time) ([]*model.Reminder, error) {
	query := `
		SELECT id, client_chat_id, client_name, appointment_time, fire_at, is_sent, created_at
		FROM reminders
		WHERE fire_at <= $1
		  AND is_sent = FALSE
		ORDER BY fire_at
	`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("list due reminders: %w", err)
	}
	defer rows.Close()

	var reminders []*model.Reminder
	for rows.Next() {
		var reminder model.Reminder
		err := rows.Scan(
			&reminder.ID,
			&reminder.ClientChatID,
			&reminder.ClientName,
			&reminder.AppointmentTime,
			&reminder.FireAt,
			&reminder.IsSent,
			&reminder.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, &reminder)
	}

	return reminders, nil
}

// MarkSent помечает напоминание отправленным.
// Условие is_sent = FALSE гарантирует, что переход случится ровно один раз.
func (r *ReminderRepository) MarkSent(ctx context.Context, id int64) error {
	query := `
		UPDATE reminders
		SET is_sent = TRUE
		WHERE id = $1 AND is_sent = FALSE
	`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reminder %d not found or already sent", id)
	}

	return nil
}
