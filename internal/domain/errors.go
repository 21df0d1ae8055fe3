package domain

import "errors"

var (
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrEventNotFound     = errors.New("event not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrEventNameTaken    = errors.New("event name already in use")
	ErrTicketCodeTaken   = errors.New("ticket already registered")
	ErrEventPassed       = errors.New("event has already happened")
	ErrTicketAlreadyUsed = errors.New("ticket already used")
)
