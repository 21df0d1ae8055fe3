package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnaClara222/MyTickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const stmt = `
INSERT INTO events (name, date)
VALUES ($1, $2)
RETURNING id`
	err := db(ctx, r.pool).QueryRow(ctx, stmt, event.Name, event.Date).Scan(&event.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
SELECT id, name, date
FROM events
ORDER BY created_at ASC`
	rows, err := db(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := rows.Scan(&event.ID, &event.Name, &event.Date); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (domain.Event, error) {
	const query = `SELECT id, name, date FROM events WHERE id = $1`
	var event domain.Event
	err := db(ctx, r.pool).QueryRow(ctx, query, id).Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) FindByName(ctx context.Context, name string) (*domain.Event, error) {
	const query = `SELECT id, name, date FROM events WHERE name = $1`
	var event domain.Event
	err := db(ctx, r.pool).QueryRow(ctx, query, name).Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find event by name: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	const stmt = `
UPDATE events
SET name = $2, date = $3
WHERE id = $1`
	tag, err := db(ctx, r.pool).Exec(ctx, stmt, event.ID, event.Name, event.Date)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Event{}, domain.ErrEventNameTaken
		}
		return domain.Event{}, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	const stmt = `DELETE FROM events WHERE id = $1`
	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteTicketsByEvent(ctx context.Context, eventID int64) error {
	const stmt = `DELETE FROM tickets WHERE event_id = $1`
	if _, err := db(ctx, r.pool).Exec(ctx, stmt, eventID); err != nil {
		return fmt.Errorf("delete tickets for event: %w", err)
	}
	return nil
}
