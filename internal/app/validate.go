package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AnaClara222/MyTickets/internal/domain"
)

// ParseID converts a raw path segment into a storage id. Ids are positive
// integers assigned by the database; anything else is rejected before any
// persistence access.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseEventDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", domain.ErrInvalidPayload)
	}
	date, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be a valid timestamp", domain.ErrInvalidPayload)
	}
	return date, nil
}

func validateEventPayload(name, rawDate string) (time.Time, error) {
	if name == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", domain.ErrInvalidPayload)
	}
	return parseEventDate(rawDate)
}

func validateTicketPayload(owner, code string, eventID int64) error {
	if owner == "" {
		return fmt.Errorf("%w: owner is required", domain.ErrInvalidPayload)
	}
	if code == "" {
		return fmt.Errorf("%w: code is required", domain.ErrInvalidPayload)
	}
	if eventID <= 0 {
		return fmt.Errorf("%w: eventId is required", domain.ErrInvalidPayload)
	}
	return nil
}
