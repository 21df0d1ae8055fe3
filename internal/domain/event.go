package domain

import "time"

// Event is a named, dated occurrence tickets are issued against.
// Its date, not a status flag, decides whether tickets can still be
// issued or redeemed.
type Event struct {
	ID   int64
	Name string
	Date time.Time
}
