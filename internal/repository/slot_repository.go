package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/psychologist_bot/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Код PostgreSQL для нарушения уникальности
const pgUniqueViolation = "23505"

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новый свободный слот.
// Возвращает model.ErrSlotExists если слот на это время уже есть.
func (r *SlotRepository) Create(ctx context.Context, startTime time.Time) (*model.Slot, error) {
	query := `
		INSERT INTO schedule_slots (start_time, is_booked)
		VALUES ($1, FALSE)
		RETURNING id, start_time, is_booked, created_at
	`

	var slot model.Slot
	err := r.pool.QueryRow(ctx, query, startTime).Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, model.ErrSlotExists
		}
		return nil, fmt.Errorf("create slot: %w", err)
	}

	return &slot, nil
}

// GetByID получает слот по ID
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*model.Slot, error) {
	query := `
		SELECT id, start_time, is_booked, created_at
		FROM schedule_slots
		WHERE id = $1
	`

	var slot model.Slot
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&slot.ID,
		&slot.StartTime,
		&slot.IsBooked,
		&slot.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get slot by id: %w", err)
	}

	return &slot, nil
}

// ListFree получает все свободные слоты (включая прошедшие)
func (r *SlotRepository) ListFree(ctx context.Context) ([]*model.Slot, error) {
	query := `
		SELECT id, start_time, is_booked, created_at
		FROM schedule_slots
		WHERE is_booked = FALSE
		ORDER BY start_time
	`

	return r.list(ctx, query)
}

// ListFreeFuture получает свободные слоты со временем позже now
func (r *SlotRepository) ListFreeFuture(ctx context.Context, now time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, start_time, is_booked, created_at
		FROM schedule_slots
		WHERE is_booked = FALSE
		  AND start_time > $1
		ORDER BY start_time
	`

	return r.list(ctx, query, now)
}

// ListAll получает все слоты со статусами
func (r *SlotRepository) ListAll(ctx context.Context) ([]*model.Slot, error) {
	query := `
		SELECT id, start_time, is_booked, created_at
		FROM schedule_slots
		ORDER BY start_time
	`

	return r.list(ctx, query)
}

// ListFuture получает будущие слоты со статусами
func (r *SlotRepository) ListFuture(ctx context.Context, now time.Time) ([]*model.Slot, error) {
	query := `
		SELECT id, start_time, is_booked, created_at
		FROM schedule_slots
		WHERE start_time > $1
		ORDER BY start_time
	`

	return r.list(ctx, query, now)
}

// Delete удаляет свободный слот.
// Возвращает model.ErrSlotNotFound если слота нет,
// model.ErrSlotBooked если слот уже занят записью.
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Блокируем строку, чтобы параллельное бронирование
	// не успело занять слот между проверкой и удалением
	var isBooked bool
	err = tx.QueryRow(ctx,
		`SELECT is_booked FROM schedule_slots WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&isBooked)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrSlotNotFound
		}
		return fmt.Errorf("lock slot: %w", err)
	}

	if isBooked {
		return model.ErrSlotBooked
	}

	if _, err := tx.Exec(ctx, `DELETE FROM schedule_slots WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete slot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

func (r *SlotRepository) list(ctx context.Context, query string, args ...interface{}) ([]*model.Slot, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		var slot model.Slot
		err := rows.Scan(
			&slot.ID,
			&slot.StartTime,
			&slot.IsBooked,
			&slot.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, &slot)
	}

	return slots, nil
}
