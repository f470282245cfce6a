package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking holds a snapshot of the event title and times taken at booking
// time. The snapshot is never re-derived from the live event, so the
// record stays accurate even if the event is edited later.
type Booking struct {
	ID          string        `json:"id"`
	EventID     string        `json:"event_id"`
	UserID      string        `json:"user_id"`
	EventTitle  string        `json:"event_title"`
	EventStart  time.Time     `json:"event_start"`
	EventEnd    time.Time     `json:"event_end"`
	Note        string        `json:"note,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty"`
}
