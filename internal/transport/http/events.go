package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/AnaClara222/MyTickets/internal/app"
	"github.com/AnaClara222/MyTickets/internal/domain"
)

// EventRegistry is the minimal interface the event endpoints need.
type EventRegistry interface {
	List(ctx context.Context) ([]domain.Event, error)
	Get(ctx context.Context, rawID string) (domain.Event, error)
	Create(ctx context.Context, in app.CreateEventInput) (domain.Event, error)
	Update(ctx context.Context, rawID string, in app.UpdateEventInput) (domain.Event, error)
	Delete(ctx context.Context, rawID string) error
}

// HandleEvents returns the handler for the /events collection.
func HandleEvents(svc EventRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			events, err := svc.List(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]eventResponse, 0, len(events))
			for _, event := range events {
				resp = append(resp, newEventResponse(event))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
		case http.MethodPost:
			var req eventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusUnprocessableEntity, codeInvalidPayload, "invalid request body")
				return
			}

			event, err := svc.Create(r.Context(), app.CreateEventInput{
				Name: req.Name,
				Date: req.Date,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(newEventResponse(event))
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleEventByID returns the handler for /events/{id}.
func HandleEventByID(svc EventRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID, ok := parseEventPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			event, err := svc.Get(r.Context(), rawID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newEventResponse(event))
		case http.MethodPut:
			var req eventRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusUnprocessableEntity, codeInvalidPayload, "invalid request body")
				return
			}

			event, err := svc.Update(r.Context(), rawID, app.UpdateEventInput{
				Name: req.Name,
				Date: req.Date,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newEventResponse(event))
		case http.MethodDelete:
			if err := svc.Delete(r.Context(), rawID); err != nil {
				writeDomainError(w, err)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

func parseEventPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "events" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type eventRequest struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

type eventResponse struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

func newEventResponse(event domain.Event) eventResponse {
	return eventResponse{
		ID:   event.ID,
		Name: event.Name,
		Date: event.Date,
	}
}
