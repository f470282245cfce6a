package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/handlers/slogdiscard"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
	"github.com/Sayden945/ito5031-webassignment/internal/service/mocks"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/memstore"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*BookingService, *memstore.Store) {
	t.Helper()

	store := memstore.New()

	notifier := mocks.NewNotifier(t)
	notifier.On("BookingConfirmed", mock.Anything, mock.Anything, mock.Anything).Maybe()
	notifier.On("BookingCancelled", mock.Anything, mock.Anything, mock.Anything).Maybe()

	svc := NewBookingService(store, notifier, slogdiscard.NewDiscardLogger())
	svc.now = func() time.Time { return testNow }

	return svc, store
}

func seedUser(store *memstore.Store, id string, role models.Role) {
	store.PutUser(&models.User{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: id,
		Role:        role,
	})
}

func seedEvent(t *testing.T, store *memstore.Store, id string, spots int, start, end time.Time) {
	t.Helper()

	err := store.CreateEvent(context.Background(), &models.Event{
		ID:             id,
		Title:          "Event " + id,
		Start:          start,
		End:            end,
		SpotsTotal:     spots,
		SpotsBooked:    0,
		SpotsAvailable: spots,
		IsActive:       true,
		CreatedAt:      testNow,
		UpdatedAt:      testNow,
	})
	require.NoError(t, err)
}

func requireCounters(t *testing.T, store *memstore.Store, eventID string, booked, available int) {
	t.Helper()

	e, err := store.GetEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, booked, e.SpotsBooked, "spots_booked")
	assert.Equal(t, available, e.SpotsAvailable, "spots_available")
	assert.Equal(t, e.SpotsTotal, e.SpotsBooked+e.SpotsAvailable, "counter invariant")
}

func TestBookSuccess(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedEvent(t, store, "e1", 5, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	b, err := svc.Book(context.Background(), "e1", "alice", "  I can bring <b>gloves</b>  ")
	require.NoError(t, err)

	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Event e1", b.EventTitle)
	assert.Equal(t, testNow.Add(24*time.Hour), b.EventStart)
	assert.Equal(t, testNow.Add(26*time.Hour), b.EventEnd)
	assert.Equal(t, models.BookingConfirmed, b.Status)
	assert.Equal(t, "I can bring bgloves/b", b.Note)

	requireCounters(t, store, "e1", 1, 4)
}

func TestBookRejections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		setup   func(t *testing.T, svc *BookingService, store *memstore.Store)
		eventID string
		userID  string
		wantErr error
	}{
		{
			name:    "unknown event",
			setup:   func(t *testing.T, svc *BookingService, store *memstore.Store) {},
			eventID: "missing",
			userID:  "alice",
			wantErr: booking.ErrEventNotFound,
		},
		{
			name: "unknown user",
			setup: func(t *testing.T, svc *BookingService, store *memstore.Store) {
				seedEvent(t, store, "e1", 5, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))
			},
			eventID: "e1",
			userID:  "ghost",
			wantErr: booking.ErrUserNotFound,
		},
		{
			name: "inactive event",
			setup: func(t *testing.T, svc *BookingService, store *memstore.Store) {
				seedEvent(t, store, "e1", 5, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))
				_, err := store.DeactivatePastEvents(context.Background(), testNow.Add(48*time.Hour))
				require.NoError(t, err)
			},
			eventID: "e1",
			userID:  "alice",
			wantErr: booking.ErrEventInactive,
		},
		{
			name: "started event",
			setup: func(t *testing.T, svc *BookingService, store *memstore.Store) {
				seedEvent(t, store, "e1", 5, testNow.Add(-time.Hour), testNow.Add(time.Hour))
			},
			eventID: "e1",
			userID:  "alice",
			wantErr: booking.ErrEventStarted,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			svc, store := newTestService(t)
			seedUser(store, "alice", models.RoleUser)
			tc.setup(t, svc, store)

			_, err := svc.Book(context.Background(), tc.eventID, tc.userID, "")
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestBookRejectionLeavesNoWrites(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedEvent(t, store, "e1", 5, testNow.Add(-time.Hour), testNow.Add(time.Hour))

	_, err := svc.Book(context.Background(), "e1", "alice", "note")
	require.ErrorIs(t, err, booking.ErrEventStarted)

	requireCounters(t, store, "e1", 0, 5)

	bookings, err := store.ListBookingsByUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestNoOverbooking(t *testing.T) {
	t.Parallel()

	const spots = 3
	const callers = 10

	svc, store := newTestService(t)
	seedEvent(t, store, "e1", spots, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	for i := 0; i < callers; i++ {
		seedUser(store, fmt.Sprintf("user-%d", i), models.RoleUser)
	}

	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), "e1", fmt.Sprintf("user-%d", i), "")
		}(i)
	}
	wg.Wait()

	var ok, exhausted int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, booking.ErrNoSpotsAvailable)
			exhausted++
		}
	}

	assert.Equal(t, spots, ok, "successful bookings")
	assert.Equal(t, callers-spots, exhausted, "rejected bookings")
	requireCounters(t, store, "e1", spots, 0)
}

func TestNoDoubleBooking(t *testing.T) {
	t.Parallel()

	const attempts = 8

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedEvent(t, store, "e1", 10, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Book(context.Background(), "e1", "alice", "")
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, booking.ErrAlreadyBooked)
			dup++
		}
	}

	assert.Equal(t, 1, ok, "exactly one confirmed booking")
	assert.Equal(t, attempts-1, dup)
	requireCounters(t, store, "e1", 1, 9)
}

func TestScheduleConflictDetection(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)

	ten := testNow.Add(22 * time.Hour)
	eleven := ten.Add(time.Hour)
	tenThirty := ten.Add(30 * time.Minute)
	elevenThirty := eleven.Add(30 * time.Minute)
	twelve := eleven.Add(time.Hour)

	seedEvent(t, store, "morning", 5, ten, eleven)
	seedEvent(t, store, "overlapping", 5, tenThirty, elevenThirty)
	seedEvent(t, store, "back-to-back", 5, eleven, twelve)

	_, err := svc.Book(context.Background(), "morning", "alice", "")
	require.NoError(t, err)

	_, err = svc.Book(context.Background(), "overlapping", "alice", "")
	require.ErrorIs(t, err, booking.ErrScheduleConflict)

	_, err = svc.Book(context.Background(), "back-to-back", "alice", "")
	require.NoError(t, err)
}

func TestCancelSymmetry(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedEvent(t, store, "e1", 7, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	requireCounters(t, store, "e1", 0, 7)

	b, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)
	requireCounters(t, store, "e1", 1, 6)

	require.NoError(t, svc.Cancel(context.Background(), b.ID, "alice"))
	requireCounters(t, store, "e1", 0, 7)
}

func TestRebookAfterCancel(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedEvent(t, store, "e1", 5, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	first, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), first.ID, "alice"))

	second, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID, "re-booking creates a new record")

	bookings, err := store.ListBookingsByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, bookings, 2)

	statuses := map[string]models.BookingStatus{}
	for _, b := range bookings {
		statuses[b.ID] = b.Status
	}
	assert.Equal(t, models.BookingCancelled, statuses[first.ID])
	assert.Equal(t, models.BookingConfirmed, statuses[second.ID])

	requireCounters(t, store, "e1", 1, 4)
}

func TestCancelRejections(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedUser(store, "bob", models.RoleUser)
	seedUser(store, "root", models.RoleAdmin)
	seedEvent(t, store, "e1", 5, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	b, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)

	err = svc.Cancel(context.Background(), "missing", "alice")
	require.ErrorIs(t, err, booking.ErrBookingNotFound)

	err = svc.Cancel(context.Background(), b.ID, "bob")
	require.ErrorIs(t, err, booking.ErrNotAllowed)
	requireCounters(t, store, "e1", 1, 4)

	// Admin may cancel on behalf of the owner.
	require.NoError(t, svc.Cancel(context.Background(), b.ID, "root"))
	requireCounters(t, store, "e1", 0, 5)

	err = svc.Cancel(context.Background(), b.ID, "alice")
	require.ErrorIs(t, err, booking.ErrAlreadyCancelled)
	requireCounters(t, store, "e1", 0, 5)
}

// Mirrors the one-seat contention walkthrough: A books the last seat, B
// is rejected, A cancels, B retries and wins the freed seat.
func TestLastSeatHandover(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)
	seedUser(store, "bob", models.RoleUser)
	seedEvent(t, store, "e1", 1, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	bookingA, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)
	requireCounters(t, store, "e1", 1, 0)

	_, err = svc.Book(context.Background(), "e1", "bob", "")
	require.ErrorIs(t, err, booking.ErrNoSpotsAvailable)

	require.NoError(t, svc.Cancel(context.Background(), bookingA.ID, "alice"))
	requireCounters(t, store, "e1", 0, 1)

	_, err = svc.Book(context.Background(), "e1", "bob", "")
	require.NoError(t, err)
	requireCounters(t, store, "e1", 1, 0)
}

func TestCountersInvariantUnderChurn(t *testing.T) {
	t.Parallel()

	const users = 20

	svc, store := newTestService(t)
	seedEvent(t, store, "e1", 8, testNow.Add(24*time.Hour), testNow.Add(26*time.Hour))

	for i := 0; i < users; i++ {
		seedUser(store, fmt.Sprintf("user-%d", i), models.RoleUser)
	}

	// Every worker books and, on success, immediately cancels, racing
	// everyone else on the same event.
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			userID := fmt.Sprintf("user-%d", i)
			for j := 0; j < 5; j++ {
				b, err := svc.Book(context.Background(), "e1", userID, "")
				if err != nil {
					continue
				}
				if err := svc.Cancel(context.Background(), b.ID, userID); err != nil {
					t.Errorf("cancel failed: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	e, err := store.GetEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.Equal(t, e.SpotsTotal, e.SpotsBooked+e.SpotsAvailable)
	assert.GreaterOrEqual(t, e.SpotsAvailable, 0)
	assert.LessOrEqual(t, e.SpotsAvailable, e.SpotsTotal)

	// Everything was cancelled, so the counters must be back at rest.
	assert.Equal(t, 0, e.SpotsBooked)
	assert.Equal(t, e.SpotsTotal, e.SpotsAvailable)

	bookings, err := store.ListBookingsByEvent(context.Background(), "e1")
	require.NoError(t, err)
	for _, b := range bookings {
		assert.Equal(t, models.BookingCancelled, b.Status)
		assert.NotNil(t, b.CancelledAt)
	}
}

func TestBookingSnapshotIsImmutable(t *testing.T) {
	t.Parallel()

	svc, store := newTestService(t)
	seedUser(store, "alice", models.RoleUser)

	start := testNow.Add(24 * time.Hour)
	end := testNow.Add(26 * time.Hour)
	seedEvent(t, store, "e1", 5, start, end)

	b, err := svc.Book(context.Background(), "e1", "alice", "")
	require.NoError(t, err)

	// The event record keeps changing (housekeeping flips it inactive),
	// but the booking keeps the snapshot taken at creation.
	_, err = store.DeactivatePastEvents(context.Background(), testNow.Add(48*time.Hour))
	require.NoError(t, err)

	bookings, err := store.ListBookingsByUser(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, b.EventTitle, bookings[0].EventTitle)
	assert.Equal(t, start, bookings[0].EventStart)
	assert.Equal(t, end, bookings[0].EventEnd)
}
