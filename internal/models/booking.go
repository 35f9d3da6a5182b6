package models

import "time"

type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// Valid reports whether s is one of the known lifecycle values.
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Booking struct {
	ID        int64         `json:"id"`
	ItemID    int64         `json:"item_id"`
	BookerID  int64         `json:"booker_id"`
	Start     time.Time     `json:"start"`
	End       time.Time     `json:"end"`
	Status    BookingStatus `json:"status"` // WAITING, APPROVED, REJECTED
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	Version   int64         `json:"version"`
}

// BookingInput is the body of a booking request.
type BookingInput struct {
	ItemID int64         `json:"itemId" validate:"required,gt=0"`
	Start  LocalDateTime `json:"start"`
	End    LocalDateTime `json:"end"`
}

// BookingView is the denormalized response model: item and booker are
// resolved at read time.
type BookingView struct {
	ID     int64         `json:"id"`
	Start  LocalDateTime `json:"start"`
	End    LocalDateTime `json:"end"`
	Status BookingStatus `json:"status"`
	Item   Item          `json:"item"`
	Booker User          `json:"booker"`
}

// BookingShort is the booking summary embedded in item views.
type BookingShort struct {
	ID       int64         `json:"id"`
	Start    LocalDateTime `json:"start"`
	End      LocalDateTime `json:"end"`
	BookerID int64         `json:"bookerId"`
	Status   BookingStatus `json:"status"`
}

func NewBookingView(b *Booking, item Item, booker User) BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  LocalDateTime(b.Start),
		End:    LocalDateTime(b.End),
		Status: b.Status,
		Item:   item,
		Booker: booker,
	}
}

func NewBookingShort(b *Booking) *BookingShort {
	if b == nil {
		return nil
	}
	return &BookingShort{
		ID:       b.ID,
		Start:    LocalDateTime(b.Start),
		End:      LocalDateTime(b.End),
		BookerID: b.BookerID,
		Status:   b.Status,
	}
}
