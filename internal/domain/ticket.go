package domain

// Ticket is a redeemable admission record bound to exactly one event.
// Code is unique per event, not globally. Used transitions false→true once.
type Ticket struct {
	ID      int64
	Owner   string
	Code    string
	EventID int64
	Used    bool
}
