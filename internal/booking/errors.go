package booking

import "errors"

// Rejection reasons produced by the eligibility checks. Handlers match on
// these with errors.Is to pick the response status; everything else is
// treated as an internal failure.
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrEventInactive    = errors.New("event is not active")
	ErrEventStarted     = errors.New("event has already started")
	ErrNoSpotsAvailable = errors.New("no spots available")
	ErrAlreadyBooked    = errors.New("already booked this event")
	ErrScheduleConflict = errors.New("conflicting booking at this time")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotAllowed       = errors.New("not authorized to cancel this booking")

	ErrUserNotFound = errors.New("user not found")
)
