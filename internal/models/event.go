package models

import "time"

type Event struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Start          time.Time `json:"start"`
	End            time.Time `json:"end"`
	SpotsTotal     int       `json:"spots_total"`
	SpotsBooked    int       `json:"spots_booked"`
	SpotsAvailable int       `json:"spots_available"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// HasStarted reports whether the event start is at or before now.
// Bookings are only admitted strictly before the start.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.Start.After(now)
}
