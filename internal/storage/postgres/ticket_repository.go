package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnaClara222/MyTickets/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TicketRepository struct {
	pool *pgxpool.Pool
}

func NewTicketRepository(pool *pgxpool.Pool) *TicketRepository {
	return &TicketRepository{pool: pool}
}

func (r *TicketRepository) GetEvent(ctx context.Context, eventID int64) (domain.Event, error) {
	const query = `SELECT id, name, date FROM events WHERE id = $1`
	var event domain.Event
	err := db(ctx, r.pool).QueryRow(ctx, query, eventID).Scan(&event.ID, &event.Name, &event.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *TicketRepository) FindByEventAndCode(ctx context.Context, eventID int64, code string) (*domain.Ticket, error) {
	const query = `
SELECT id, owner, code, event_id, used
FROM tickets
WHERE event_id = $1 AND code = $2`
	var t domain.Ticket
	err := db(ctx, r.pool).QueryRow(ctx, query, eventID, code).
		Scan(&t.ID, &t.Owner, &t.Code, &t.EventID, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ticket by code: %w", err)
	}
	return &t, nil
}

func (r *TicketRepository) Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error) {
	const stmt = `
INSERT INTO tickets (owner, code, event_id, used)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := db(ctx, r.pool).QueryRow(ctx, stmt, ticket.Owner, ticket.Code, ticket.EventID, ticket.Used).
		Scan(&ticket.ID)
	if err != nil {
		// Constraints settle races the pre-checks missed: the per-event
		// code key and the event foreign key.
		if isUniqueViolation(err) {
			return domain.Ticket{}, domain.ErrTicketCodeTaken
		}
		if isForeignKeyViolation(err) {
			return domain.Ticket{}, domain.ErrEventNotFound
		}
		return domain.Ticket{}, fmt.Errorf("create ticket: %w", err)
	}
	return ticket, nil
}

func (r *TicketRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error) {
	const query = `
SELECT id, owner, code, event_id, used
FROM tickets
WHERE event_id = $1
ORDER BY created_at ASC`
	rows, err := db(ctx, r.pool).Query(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := rows.Scan(&t.ID, &t.Owner, &t.Code, &t.EventID, &t.Used); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		tickets = append(tickets, t)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate tickets: %w", rows.Err())
	}
	return tickets, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int64) (domain.Ticket, error) {
	const query = `
SELECT id, owner, code, event_id, used
FROM tickets
WHERE id = $1`
	var t domain.Ticket
	err := db(ctx, r.pool).QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Owner, &t.Code, &t.EventID, &t.Used)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Ticket{}, domain.ErrTicketNotFound
		}
		return domain.Ticket{}, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// MarkUsed is a compare-and-set: two concurrent redeems of the same ticket
// produce exactly one success.
func (r *TicketRepository) MarkUsed(ctx context.Context, id int64) error {
	const stmt = `UPDATE tickets SET used = TRUE WHERE id = $1 AND used = FALSE`
	tag, err := db(ctx, r.pool).Exec(ctx, stmt, id)
	if err != nil {
		return fmt.Errorf("mark ticket used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var used bool
		err := db(ctx, r.pool).QueryRow(ctx, `SELECT used FROM tickets WHERE id = $1`, id).Scan(&used)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrTicketNotFound
			}
			return fmt.Errorf("recheck ticket: %w", err)
		}
		if used {
			return domain.ErrTicketAlreadyUsed
		}
		return fmt.Errorf("mark ticket used: no row updated for id %d", id)
	}
	return nil
}
