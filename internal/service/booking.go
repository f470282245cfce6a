// Package service orchestrates the booking transaction flow on top of
// the docstore ports. All admission decisions are delegated to the pure
// checks in internal/booking and run against state read inside the
// transaction, never against anything cached.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/docstore"
)

// Notifier is told about committed bookings and cancellations. Calls are
// fire-and-forget: they run after commit and their failure never rolls
// back or blocks the operation.
//
//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=Notifier
type Notifier interface {
	BookingConfirmed(ctx context.Context, b *models.Booking, u *models.User)
	BookingCancelled(ctx context.Context, b *models.Booking, u *models.User)
}

type BookingService struct {
	store    docstore.Store
	notifier Notifier
	log      *slog.Logger

	now func() time.Time
}

func NewBookingService(store docstore.Store, notifier Notifier, log *slog.Logger) *BookingService {
	return &BookingService{
		store:    store,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Book reserves a spot on the event for userID. The event, the user and
// the user's confirmed bookings are re-read inside the transaction, the
// eligibility checks run against that snapshot, and on admission the
// booking insert and the seat-counter adjustment commit together. The
// store retries the whole sequence on write conflicts, so a transient
// conflict is never visible to the caller.
func (s *BookingService) Book(ctx context.Context, eventID, userID, note string) (*models.Booking, error) {
	var created *models.Booking
	var user *models.User

	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		created = nil

		event, err := tx.GetEvent(eventID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return booking.ErrEventNotFound
			}
			return fmt.Errorf("get event: %w", err)
		}

		user, err = tx.GetUser(userID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return booking.ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		confirmed, err := tx.ConfirmedBookingsByUser(userID)
		if err != nil {
			return fmt.Errorf("list confirmed bookings: %w", err)
		}

		now := s.now()
		if err = booking.CheckBooking(event, userID, confirmed, now); err != nil {
			return err
		}

		b := &models.Booking{
			ID:         uuid.New().String(),
			EventID:    event.ID,
			UserID:     userID,
			EventTitle: event.Title,
			EventStart: event.Start,
			EventEnd:   event.End,
			Note:       booking.SanitizeNote(note),
			Status:     models.BookingConfirmed,
			CreatedAt:  now,
		}

		if err = tx.CreateBooking(b); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		if err = tx.AdjustEventSpots(event.ID, 1, now); err != nil {
			return fmt.Errorf("adjust event spots: %w", err)
		}

		created = b
		return nil
	})
	if err != nil {
		s.log.Error("booking failed",
			slog.String("event_id", eventID),
			slog.String("user_id", userID),
			sl.Err(err),
		)
		return nil, err
	}

	s.log.Info("booking created",
		slog.String("booking_id", created.ID),
		slog.String("event_id", eventID),
		slog.String("user_id", userID),
	)

	go s.notifier.BookingConfirmed(context.WithoutCancel(ctx), created, user)

	return created, nil
}

// Cancel marks the booking cancelled and returns its spot to the event
// in the same transaction. Only the booking's owner or an admin may
// cancel; cancelled is a terminal state, re-booking creates a new record.
func (s *BookingService) Cancel(ctx context.Context, bookingID, actorID string) error {
	var cancelled *models.Booking
	var actor *models.User

	err := s.store.RunTransaction(ctx, func(tx docstore.Tx) error {
		cancelled = nil

		b, err := tx.GetBooking(bookingID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return booking.ErrBookingNotFound
			}
			return fmt.Errorf("get booking: %w", err)
		}

		actor, err = tx.GetUser(actorID)
		if err != nil {
			if errors.Is(err, docstore.ErrNotFound) {
				return booking.ErrUserNotFound
			}
			return fmt.Errorf("get user: %w", err)
		}

		if err = booking.CheckCancel(b, actor); err != nil {
			return err
		}

		now := s.now()
		if err = tx.CancelBooking(b.ID, now); err != nil {
			return fmt.Errorf("cancel booking: %w", err)
		}

		if err = tx.AdjustEventSpots(b.EventID, -1, now); err != nil {
			return fmt.Errorf("adjust event spots: %w", err)
		}

		b.Status = models.BookingCancelled
		b.CancelledAt = &now
		cancelled = b
		return nil
	})
	if err != nil {
		s.log.Error("cancellation failed",
			slog.String("booking_id", bookingID),
			slog.String("user_id", actorID),
			sl.Err(err),
		)
		return err
	}

	s.log.Info("booking cancelled",
		slog.String("booking_id", bookingID),
		slog.String("user_id", actorID),
	)

	go s.notifier.BookingCancelled(context.WithoutCancel(ctx), cancelled, actor)

	return nil
}
