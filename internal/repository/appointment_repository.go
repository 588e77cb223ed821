package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// BookSlot атомарно создаёт запись и помечает слот занятым.
// Вся операция выполняется в одной транзакции: из двух одновременных
// попыток забронировать один слот выигрывает ровно одна, вторая получает
// model.ErrSlotBooked. При любой ошибке транзакция откатывается целиком —
// ни записи без занятого слота, ни занятого слота без записи.
func (r *AppointmentRepository) BookSlot(ctx context.Context, appointment *model.Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем слот — конкурирующая транзакция встанет в очередь
	// и после коммита увидит is_booked = TRUE
	var slot model.Slot
	err = tx.QueryRow(ctx,
		`SELECT id, start_time, is_booked, created_at FROM schedule_slots WHERE id = $1 FOR UPDATE`,
		appointment.SlotID,
	).Scan(&slot.ID, &slot.StartTime, &slot.IsBooked, &slot.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrSlotNotFound
		}
		return fmt.Errorf("lock slot: %w", err)
	}

	if slot.IsBooked {
		return model.ErrSlotBooked
	}

	appointment.PublicID = uuid.New()

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (public_id, client_name, client_contact, client_request, consultation_type, slot_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		appointment.PublicID,
		appointment.ClientName,
		appointment.ClientContact,
		appointment.ClientRequest,
		appointment.ConsultationType,
		appointment.SlotID,
	).Scan(&appointment.ID, &appointment.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE schedule_slots SET is_booked = TRUE WHERE id = $1`,
		appointment.SlotID,
	)
	if err != nil {
		return fmt.Errorf("mark slot booked: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slot.IsBooked = true
	appointment.Slot = &slot

	return nil
}

// ListUpcoming получает будущие записи вместе с данными слота,
// отсортированные по времени консультации
func (r *AppointmentRepository) ListUpcoming(ctx context.Context, now time.Time) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.public_id, a.client_name, a.client_contact, a.client_request,
		       a.consultation_type, a.slot_id, a.created_at,
		       s.id, s.start_time, s.is_booked, s.created_at
		FROM appointments a
		JOIN schedule_slots s ON a.slot_id = s.id
		WHERE s.start_time > $1
		ORDER BY s.start_time
	`

	return r.listJoined(ctx, query, now)
}

// ListPast получает прошедшие записи (архив), новые сверху
func (r *AppointmentRepository) ListPast(ctx context.Context, now time.Time, limit int) ([]*model.Appointment, error) {
	query := `
		SELECT a.id, a.public_id, a.client_name, a.client_contact, a.client_request,
		       a.consultation_type, a.slot_id, a.created_at,
		       s.id, s.start_time, s.is_booked, s.created_at
		FROM appointments a
		JOIN schedule_slots s ON a.slot_id = s.id
		WHERE s.start_time < $1
		ORDER BY s.start_time DESC
		LIMIT $2
	`

	return r.listJoined(ctx, query, now, limit)
}

func (r *AppointmentRepository) listJoined(ctx context.Context, query string, args ...interface{}) ([]*model.Appointment, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		var a model.Appointment
		var s model.Slot
		err := rows.Scan(
			&a.ID,
			&a.PublicID,
			&a.ClientName,
			&a.ClientContact,
			&a.ClientRequest,
			&a.ConsultationType,
			&a.SlotID,
			&a.CreatedAt,
			&s.ID,
			&s.StartTime,
			&s.IsBooked,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		a.Slot = &s
		appointments = append(appointments, &a)
	}

	return appointments, nil
}
