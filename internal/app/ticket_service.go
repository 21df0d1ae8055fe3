package app

import (
	"context"

	"github.com/AnaClara222/MyTickets/internal/clock"
	"github.com/AnaClara222/MyTickets/internal/domain"
)

type TicketRepository interface {
	GetEvent(ctx context.Context, eventID int64) (domain.Event, error)
	FindByEventAndCode(ctx context.Context, eventID int64, code string) (*domain.Ticket, error)
	Create(ctx context.Context, ticket domain.Ticket) (domain.Ticket, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Ticket, error)
	GetByID(ctx context.Context, id int64) (domain.Ticket, error)
	// MarkUsed flips used false→true as a compare-and-set; it returns
	// domain.ErrTicketAlreadyUsed when the flag was already set.
	MarkUsed(ctx context.Context, id int64) error
}

// TicketService issues, lists and redeems tickets against events.
type TicketService struct {
	repo  TicketRepository
	clock clock.Clock
}

func NewTicketService(repo TicketRepository, clk clock.Clock) *TicketService {
	return &TicketService{
		repo:  repo,
		clock: clk,
	}
}

// upcoming reports whether tickets may still be issued or redeemed for the
// event. An event dated exactly "now" counts as passed.
func (s *TicketService) upcoming(event domain.Event) bool {
	return event.Date.After(s.clock.Now())
}

type IssueTicketInput struct {
	Owner   string
	Code    string
	EventID int64
}

// Issue creates a ticket for a still-upcoming event. The check order is
// fixed: payload shape, then event existence, then event timing, then code
// duplication.
func (s *TicketService) Issue(ctx context.Context, in IssueTicketInput) (domain.Ticket, error) {
	if err := validateTicketPayload(in.Owner, in.Code, in.EventID); err != nil {
		return domain.Ticket{}, err
	}

	event, err := s.repo.GetEvent(ctx, in.EventID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !s.upcoming(event) {
		return domain.Ticket{}, domain.ErrEventPassed
	}

	// Pre-check keeps the common duplicate friendly; the per-event unique
	// constraint on code decides races at insert time.
	existing, err := s.repo.FindByEventAndCode(ctx, in.EventID, in.Code)
	if err != nil {
		return domain.Ticket{}, err
	}
	if existing != nil {
		return domain.Ticket{}, domain.ErrTicketCodeTaken
	}

	return s.repo.Create(ctx, domain.Ticket{
		Owner:   in.Owner,
		Code:    in.Code,
		EventID: in.EventID,
		Used:    false,
	})
}

// ListForEvent returns every ticket issued against the event. An unknown
// event yields an empty list, not an error; only a malformed id fails.
func (s *TicketService) ListForEvent(ctx context.Context, rawEventID string) ([]domain.Ticket, error) {
	eventID, err := ParseID(rawEventID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}

// Redeem marks a ticket used, exactly once. Event timing is checked before
// the used flag, so a used ticket for a passed event reports ErrEventPassed.
func (s *TicketService) Redeem(ctx context.Context, rawID string) (domain.Ticket, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return domain.Ticket{}, err
	}

	ticket, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Ticket{}, err
	}

	event, err := s.repo.GetEvent(ctx, ticket.EventID)
	if err != nil {
		return domain.Ticket{}, err
	}
	if !s.upcoming(event) {
		return domain.Ticket{}, domain.ErrEventPassed
	}

	if ticket.Used {
		return domain.Ticket{}, domain.ErrTicketAlreadyUsed
	}

	// The storage-level compare-and-set settles concurrent redeems: one
	// wins, the other observes the flag already set.
	if err := s.repo.MarkUsed(ctx, id); err != nil {
		return domain.Ticket{}, err
	}

	ticket.Used = true
	return ticket, nil
}
