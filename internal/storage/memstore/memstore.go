// Package memstore is an in-memory docstore.Store used in tests. A single
// mutex serializes transactions, which trivially satisfies the
// serializable-isolation contract; on a callback error the store is
// rolled back to its pre-transaction state, so commits are all-or-nothing.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/docstore"
)

type Store struct {
	mu        sync.Mutex
	events    map[string]*models.Event
	bookings  map[string]*models.Booking
	users     map[string]*models.User
	donations map[string]*models.Donation
}

func New() *Store {
	return &Store{
		events:    make(map[string]*models.Event),
		bookings:  make(map[string]*models.Booking),
		users:     make(map[string]*models.User),
		donations: make(map[string]*models.Donation),
	}
}

// PutUser seeds a user record. Test helper; the booking core never
// writes users.
func (s *Store) PutUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

func (s *Store) RunTransaction(_ context.Context, fn func(tx docstore.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()

	if err := fn(&memTx{store: s}); err != nil {
		s.events = snapshot.events
		s.bookings = snapshot.bookings
		s.donations = snapshot.donations
		return err
	}

	return nil
}

func (s *Store) clone() *Store {
	cp := New()
	for id, e := range s.events {
		ev := *e
		cp.events[id] = &ev
	}
	for id, b := range s.bookings {
		bk := *b
		cp.bookings[id] = &bk
	}
	for id, d := range s.donations {
		dn := *d
		cp.donations[id] = &dn
	}
	return cp
}

func (s *Store) GetEvent(_ context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getEvent(s, id)
}

func (s *Store) CreateEvent(_ context.Context, e *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *Store) ListActiveEvents(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var events []models.Event
	for _, e := range s.events {
		if e.IsActive {
			events = append(events, *e)
		}
	}
	return events, nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getUser(s, id)
}

func (s *Store) ListBookingsByUser(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (s *Store) ListBookingsByEvent(_ context.Context, eventID string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.EventID == eventID {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (s *Store) CreateDonation(_ context.Context, d *models.Donation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	s.donations[d.ID] = &cp
	return nil
}

func (s *Store) DeactivatePastEvents(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.events {
		if e.IsActive && e.End.Before(now) {
			e.IsActive = false
			e.UpdatedAt = now
			count++
		}
	}
	return count, nil
}

// memTx mutates the store directly; RunTransaction already holds the
// lock and restores the snapshot on error.
type memTx struct {
	store *Store
}

func (t *memTx) GetEvent(id string) (*models.Event, error) {
	return getEvent(t.store, id)
}

func (t *memTx) GetBooking(id string) (*models.Booking, error) {
	b, ok := t.store.bookings[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (t *memTx) GetUser(id string) (*models.User, error) {
	return getUser(t.store, id)
}

func (t *memTx) ConfirmedBookingsByUser(userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	for _, b := range t.store.bookings {
		if b.UserID == userID && b.Status == models.BookingConfirmed {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (t *memTx) CreateBooking(b *models.Booking) error {
	cp := *b
	t.store.bookings[b.ID] = &cp
	return nil
}

func (t *memTx) CancelBooking(id string, at time.Time) error {
	b, ok := t.store.bookings[id]
	if !ok {
		return docstore.ErrNotFound
	}
	b.Status = models.BookingCancelled
	cancelledAt := at
	b.CancelledAt = &cancelledAt
	return nil
}

func (t *memTx) AdjustEventSpots(eventID string, delta int, at time.Time) error {
	e, ok := t.store.events[eventID]
	if !ok {
		return docstore.ErrNotFound
	}
	e.SpotsBooked += delta
	e.SpotsAvailable -= delta
	e.UpdatedAt = at
	return nil
}

func getEvent(s *Store, id string) (*models.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func getUser(s *Store, id string) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	cp := *u
	return &cp, nil
}
