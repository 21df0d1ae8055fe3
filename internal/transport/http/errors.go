package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnaClara222/MyTickets/internal/domain"
)

const (
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codeInvalidID        = "invalid_id"
	codeInvalidPayload   = "invalid_payload"
	codeEventNotFound    = "event_not_found"
	codeTicketNotFound   = "ticket_not_found"
	codeEventNameTaken   = "event_name_taken"
	codeTicketCodeTaken  = "ticket_already_registered"
	codeEventPassed      = "event_passed"
	codeTicketUsed       = "ticket_already_used"
	codeForbidden        = "forbidden"
	codeInternalError    = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps the domain error taxonomy to status codes. Domain
// errors reach this point unchanged; anything outside the taxonomy is a
// server-side failure.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, domain.ErrInvalidID.Error())
	case errors.Is(err, domain.ErrInvalidPayload):
		writeError(w, http.StatusUnprocessableEntity, codeInvalidPayload, err.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, domain.ErrEventNotFound.Error())
	case errors.Is(err, domain.ErrTicketNotFound):
		writeError(w, http.StatusNotFound, codeTicketNotFound, domain.ErrTicketNotFound.Error())
	case errors.Is(err, domain.ErrEventNameTaken):
		writeError(w, http.StatusConflict, codeEventNameTaken, domain.ErrEventNameTaken.Error())
	case errors.Is(err, domain.ErrTicketCodeTaken):
		writeError(w, http.StatusConflict, codeTicketCodeTaken, domain.ErrTicketCodeTaken.Error())
	case errors.Is(err, domain.ErrEventPassed):
		writeError(w, http.StatusForbidden, codeEventPassed, domain.ErrEventPassed.Error())
	case errors.Is(err, domain.ErrTicketAlreadyUsed):
		writeError(w, http.StatusConflict, codeTicketUsed, domain.ErrTicketAlreadyUsed.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
