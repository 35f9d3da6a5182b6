package models

import "time"

// BookingState is the categorical filter used when listing bookings.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a query token to a state. The token is
// case-sensitive; an empty token means ALL.
func ParseBookingState(token string) (BookingState, bool) {
	if token == "" {
		return StateAll, true
	}
	switch s := BookingState(token); s {
	case StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected:
		return s, true
	default:
		return "", false
	}
}

// Matches evaluates the state predicate for b at the instant now.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case StateFuture:
		return b.Start.After(now)
	case StatePast:
		return b.End.Before(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	default:
		return false
	}
}

// BookingRole selects which side of a booking a listing is for.
type BookingRole string

const (
	RoleBooker BookingRole = "booker"
	RoleOwner  BookingRole = "owner"
)

// Page is an offset-based window over a listing.
type Page struct {
	From int
	Size int
}

func (p Page) Valid() bool {
	return p.From >= 0 && p.Size > 0
}
