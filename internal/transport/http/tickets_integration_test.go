package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/AnaClara222/MyTickets/internal/app"
	"github.com/AnaClara222/MyTickets/internal/clock"
	"github.com/AnaClara222/MyTickets/internal/domain"
	"github.com/AnaClara222/MyTickets/internal/storage/postgres"
	"github.com/AnaClara222/MyTickets/internal/testutil"
)

func TestTickets_HTTPIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	ctx := context.Background()
	testutil.ApplyMigrations(t, ctx, pool)
	testutil.TruncateAll(t, ctx, pool)

	now := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	svc := app.NewTicketService(postgres.NewTicketRepository(pool), clock.NewFixed(now))
	mux := http.NewServeMux()
	mux.Handle("/tickets", HandleCreateTicket(svc))
	mux.Handle("/tickets/", HandleTickets(svc))

	futureEvent := testutil.InsertEvent(t, ctx, pool, "Jazz Night", now.Add(30*24*time.Hour))
	pastEvent := testutil.InsertEvent(t, ctx, pool, "Last Year Gala", now.Add(-30*24*time.Hour))

	// Issue a valid ticket.
	rec := doJSON(t, mux, http.MethodPost, "/tickets",
		`{"owner":"Ann","code":"AX12CD34","eventId":`+itoa(futureEvent)+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var created ticketResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode created ticket: %v", err)
	}
	if created.ID == 0 || created.Used {
		t.Fatalf("expected unused ticket with id, got %+v", created)
	}

	// Empty payload is unprocessable.
	rec = doJSON(t, mux, http.MethodPost, "/tickets", `{}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}

	// Unknown event.
	rec = doJSON(t, mux, http.MethodPost, "/tickets", `{"owner":"Ann","code":"ZZ99XX11","eventId":999999}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	// Passed event refuses issuance.
	rec = doJSON(t, mux, http.MethodPost, "/tickets",
		`{"owner":"Ann","code":"ZZ99XX11","eventId":`+itoa(pastEvent)+`}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if !strings.Contains(strings.ToLower(rec.Body.String()), "already happened") {
		t.Fatalf("expected body to mention already happened, got %q", rec.Body.String())
	}

	// Duplicate code for the same event conflicts.
	rec = doJSON(t, mux, http.MethodPost, "/tickets",
		`{"owner":"Bob","code":"AX12CD34","eventId":`+itoa(futureEvent)+`}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}
	if !strings.Contains(strings.ToLower(rec.Body.String()), "already registered") {
		t.Fatalf("expected body to mention already registered, got %q", rec.Body.String())
	}

	// Same code for a different event is fine: scope is per event.
	otherEvent := testutil.InsertEvent(t, ctx, pool, "Spring Expo", now.Add(60*24*time.Hour))
	rec = doJSON(t, mux, http.MethodPost, "/tickets",
		`{"owner":"Bob","code":"AX12CD34","eventId":`+itoa(otherEvent)+`}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201 for other event, got %d (%s)", rec.Code, rec.Body.String())
	}

	// Listing.
	rec = doJSON(t, mux, http.MethodGet, "/tickets/"+itoa(futureEvent), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var tickets []ticketResponse
	if err := json.NewDecoder(rec.Body).Decode(&tickets); err != nil {
		t.Fatalf("decode tickets: %v", err)
	}
	if len(tickets) != 1 {
		t.Fatalf("expected 1 ticket, got %d", len(tickets))
	}
	rec = doJSON(t, mux, http.MethodGet, "/tickets/999999", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty list for unknown event, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, mux, http.MethodGet, "/tickets/invalid-id", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	// Redeem once, then redemption is refused.
	rec = doJSON(t, mux, http.MethodPut, "/tickets/use/"+itoa(created.ID), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var redeemed ticketResponse
	if err := json.NewDecoder(rec.Body).Decode(&redeemed); err != nil {
		t.Fatalf("decode redeemed ticket: %v", err)
	}
	if !redeemed.Used {
		t.Fatalf("expected ticket marked used")
	}
	var usedInDB bool
	if err := pool.QueryRow(ctx, `SELECT used FROM tickets WHERE id = $1`, created.ID).Scan(&usedInDB); err != nil {
		t.Fatalf("read ticket: %v", err)
	}
	if !usedInDB {
		t.Fatalf("expected used flag persisted")
	}

	rec = doJSON(t, mux, http.MethodPut, "/tickets/use/"+itoa(created.ID), "")
	if rec.Code != http.StatusConflict && rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 409 or 403 for second redeem, got %d", rec.Code)
	}

	// Redeeming against a passed event is forbidden.
	pastTicket := testutil.InsertTicket(t, ctx, pool, domain.Ticket{
		Owner: "Cara", Code: "PA55WD00", EventID: pastEvent,
	})
	rec = doJSON(t, mux, http.MethodPut, "/tickets/use/"+itoa(pastTicket), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if !strings.Contains(strings.ToLower(rec.Body.String()), "already happened") {
		t.Fatalf("expected body to mention already happened, got %q", rec.Body.String())
	}

	// Id edges.
	rec = doJSON(t, mux, http.MethodPut, "/tickets/use/999999", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	rec = doJSON(t, mux, http.MethodPut, "/tickets/use/invalid-id", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
