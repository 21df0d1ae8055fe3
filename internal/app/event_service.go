package app

import (
	"context"

	"github.com/AnaClara222/MyTickets/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	GetByID(ctx context.Context, id int64) (domain.Event, error)
	FindByName(ctx context.Context, name string) (*domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
	DeleteTicketsByEvent(ctx context.Context, eventID int64) error
}

// EventService manages the event lifecycle and guards name uniqueness.
type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{repo: repo}
}

func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	return s.repo.List(ctx)
}

func (s *EventService) Get(ctx context.Context, rawID string) (domain.Event, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return domain.Event{}, err
	}
	return s.repo.GetByID(ctx, id)
}

type CreateEventInput struct {
	Name string
	Date string
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	date, err := validateEventPayload(in.Name, in.Date)
	if err != nil {
		return domain.Event{}, err
	}

	// Pre-check for a friendly conflict; the unique constraint on name is
	// the authority when two creators race.
	existing, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		return domain.Event{}, err
	}
	if existing != nil {
		return domain.Event{}, domain.ErrEventNameTaken
	}

	return s.repo.Create(ctx, domain.Event{Name: in.Name, Date: date})
}

type UpdateEventInput struct {
	Name string
	Date string
}

func (s *EventService) Update(ctx context.Context, rawID string, in UpdateEventInput) (domain.Event, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return domain.Event{}, err
	}
	date, err := validateEventPayload(in.Name, in.Date)
	if err != nil {
		return domain.Event{}, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domain.Event{}, err
	}

	// Renaming into a name held by a different event is a conflict; keeping
	// the current name is not.
	existing, err := s.repo.FindByName(ctx, in.Name)
	if err != nil {
		return domain.Event{}, err
	}
	if existing != nil && existing.ID != id {
		return domain.Event{}, domain.ErrEventNameTaken
	}

	return s.repo.Update(ctx, domain.Event{ID: id, Name: in.Name, Date: date})
}

// Delete removes the event and every ticket issued against it in a single
// transaction, so no ticket outlives its event.
func (s *EventService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.DeleteTicketsByEvent(txCtx, id); err != nil {
			return err
		}
		return s.repo.Delete(txCtx, id)
	})
}
