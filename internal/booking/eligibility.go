// Package booking holds the pure admission rules for event bookings and
// cancellations. The functions here take freshly-read state and a clock
// value and decide; they never touch storage, so a transaction layer can
// safely re-run them on conflict retries.
package booking

import (
	"time"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

// CheckBooking decides whether userID may book event, given the user's
// existing confirmed bookings. Checks run in a fixed order and the first
// failure wins:
//
//  1. event exists and is active
//  2. spots remain
//  3. event has not started
//  4. no confirmed booking for this event yet
//  5. no confirmed booking whose time interval overlaps the event's
//
// The caller must pass only bookings with status confirmed; cancelled
// bookings never block a new one.
func CheckBooking(event *models.Event, userID string, confirmed []models.Booking, now time.Time) error {
	if event == nil {
		return ErrEventNotFound
	}
	if !event.IsActive {
		return ErrEventInactive
	}
	if event.SpotsAvailable <= 0 {
		return ErrNoSpotsAvailable
	}
	if event.HasStarted(now) {
		return ErrEventStarted
	}

	for _, b := range confirmed {
		if b.EventID == event.ID {
			return ErrAlreadyBooked
		}
	}

	for _, b := range confirmed {
		if Overlaps(event.Start, event.End, b.EventStart, b.EventEnd) {
			return ErrScheduleConflict
		}
	}

	return nil
}

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// intersect. Back-to-back intervals sharing a boundary do not overlap.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// CheckCancel decides whether actor may cancel b. Only the booking's
// owner or an admin may cancel, and only once.
func CheckCancel(b *models.Booking, actor *models.User) error {
	if b == nil {
		return ErrBookingNotFound
	}
	if actor == nil {
		return ErrUserNotFound
	}
	if b.UserID != actor.ID && !actor.IsAdmin() {
		return ErrNotAllowed
	}
	if b.Status == models.BookingCancelled {
		return ErrAlreadyCancelled
	}
	return nil
}
