// Package docstore defines the storage ports consumed by the services.
// The Store hands out transactions with serializable isolation; the
// transaction callback is re-executed on write conflicts, so callbacks
// must keep their decision logic free of side effects outside Tx.
package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

// ErrNotFound is returned by point reads when the record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict signals a serialization failure inside a transaction.
// Store implementations retry the callback when they observe it; it never
// reaches service code.
var ErrConflict = errors.New("transaction conflict")

// Tx exposes reads and writes scoped to one atomic transaction. All
// reads observe a consistent snapshot; writes become visible only on
// commit.
type Tx interface {
	GetEvent(id string) (*models.Event, error)
	GetBooking(id string) (*models.Booking, error)
	GetUser(id string) (*models.User, error)

	// ConfirmedBookingsByUser returns every confirmed booking held by the
	// user, across all events.
	ConfirmedBookingsByUser(userID string) ([]models.Booking, error)

	CreateBooking(b *models.Booking) error
	CancelBooking(id string, at time.Time) error

	// AdjustEventSpots moves delta seats from available to booked
	// (delta = +1 on booking, -1 on cancellation) and stamps updated_at.
	AdjustEventSpots(eventID string, delta int, at time.Time) error
}

// Store is the document-store handle passed into the services at
// construction, replacing any package-level database client.
type Store interface {
	// RunTransaction executes fn atomically with serializable isolation,
	// retrying it transparently on write conflicts. Any other error from
	// fn aborts the transaction and is returned unchanged.
	RunTransaction(ctx context.Context, fn func(tx Tx) error) error

	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListActiveEvents(ctx context.Context) ([]models.Event, error)
	CreateEvent(ctx context.Context, e *models.Event) error

	GetUser(ctx context.Context, id string) (*models.User, error)

	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error)

	CreateDonation(ctx context.Context, d *models.Donation) error

	// DeactivatePastEvents flips is_active off for events that ended
	// before now and returns how many rows changed.
	DeactivatePastEvents(ctx context.Context, now time.Time) (int, error)
}
