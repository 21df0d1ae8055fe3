package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnaClara222/MyTickets/internal/app"
	"github.com/AnaClara222/MyTickets/internal/domain"
)

// TicketIssuer is the minimal interface needed to issue a ticket.
type TicketIssuer interface {
	Issue(ctx context.Context, in app.IssueTicketInput) (domain.Ticket, error)
}

// TicketReader redeems tickets and lists them per event.
type TicketReader interface {
	ListForEvent(ctx context.Context, rawEventID string) ([]domain.Ticket, error)
	Redeem(ctx context.Context, rawID string) (domain.Ticket, error)
}

// HandleCreateTicket returns the handler for POST /tickets.
func HandleCreateTicket(svc TicketIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createTicketRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, codeInvalidPayload, "invalid request body")
			return
		}

		ticket, err := svc.Issue(r.Context(), app.IssueTicketInput{
			Owner:   req.Owner,
			Code:    req.Code,
			EventID: req.EventID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(newTicketResponse(ticket))
	}
}

// HandleTickets routes GET /tickets/{eventId} and PUT /tickets/use/{id}.
func HandleTickets(svc TicketReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rawID, ok := parseRedeemPath(r.URL.Path); ok {
			if r.Method != http.MethodPut {
				writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
				return
			}
			ticket, err := svc.Redeem(r.Context(), rawID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(newTicketResponse(ticket))
			return
		}

		rawEventID, ok := parseTicketListPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		tickets, err := svc.ListForEvent(r.Context(), rawEventID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		resp := make([]ticketResponse, 0, len(tickets))
		for _, ticket := range tickets {
			resp = append(resp, newTicketResponse(ticket))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func parseRedeemPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 3 || parts[0] != "tickets" || parts[1] != "use" || parts[2] == "" {
		return "", false
	}
	return parts[2], true
}

func parseTicketListPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "tickets" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type createTicketRequest struct {
	Owner   string `json:"owner"`
	Code    string `json:"code"`
	EventID int64  `json:"eventId"`
}

type ticketResponse struct {
	ID      int64  `json:"id"`
	Owner   string `json:"owner"`
	Code    string `json:"code"`
	EventID int64  `json:"eventId"`
	Used    bool   `json:"used"`
}

func newTicketResponse(ticket domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:      ticket.ID,
		Owner:   ticket.Owner,
		Code:    ticket.Code,
		EventID: ticket.EventID,
		Used:    ticket.Used,
	}
}
