package getEventInfo

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/event/getEventInfo/mocks"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/handlers/slogdiscard"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/docstore"
)

func newRouter(handler http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/events", func(r chi.Router) {
		r.Use(identity.New())
		r.Get("/{id}", handler)
	})
	return router
}

func TestGetEventInfoHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	start := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)

	event := &models.Event{
		ID:             "event-1",
		Title:          "Beach Cleanup",
		Start:          start,
		End:            start.Add(3 * time.Hour),
		SpotsTotal:     20,
		SpotsBooked:    2,
		SpotsAvailable: 18,
		IsActive:       true,
	}

	bookings := []models.Booking{
		{ID: "booking-1", EventID: "event-1", UserID: "alice", Status: models.BookingConfirmed},
		{ID: "booking-2", EventID: "event-1", UserID: "bob", Status: models.BookingConfirmed},
	}

	admin := &models.User{ID: "root", Role: models.RoleAdmin}
	alice := &models.User{ID: "alice", Role: models.RoleUser}

	testCases := []struct {
		name           string
		eventID        string
		userID         string
		mockSetup      func(m *mocks.EventGetter)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:    "Admin sees all bookings",
			eventID: "event-1",
			userID:  "root",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "event-1").Return(event, nil)
				m.On("ListBookingsByEvent", mock.Anything, "event-1").Return(bookings, nil)
				m.On("GetUser", mock.Anything, "root").Return(admin, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp EventInfoResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				assert.Equal(t, "OK", resp.Status)
				assert.Equal(t, "Beach Cleanup", resp.Event.Title)
				assert.Len(t, resp.Bookings, 2)
			},
		},
		{
			name:    "Regular user sees only own bookings",
			eventID: "event-1",
			userID:  "alice",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "event-1").Return(event, nil)
				m.On("ListBookingsByEvent", mock.Anything, "event-1").Return(bookings, nil)
				m.On("GetUser", mock.Anything, "alice").Return(alice, nil)
			},
			expectedStatus: http.StatusOK,
			checkBody: func(t *testing.T, body string) {
				var resp EventInfoResponse
				require.NoError(t, json.Unmarshal([]byte(body), &resp))
				require.Len(t, resp.Bookings, 1)
				assert.Equal(t, "alice", resp.Bookings[0].UserID)
			},
		},
		{
			name:           "Missing identity",
			eventID:        "event-1",
			userID:         "",
			mockSetup:      func(m *mocks.EventGetter) {},
			expectedStatus: http.StatusUnauthorized,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"user must be authenticated"}`, body)
			},
		},
		{
			name:    "Event not found",
			eventID: "missing",
			userID:  "alice",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "missing").Return(nil, docstore.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"event not found"}`, body)
			},
		},
		{
			name:    "Storage error",
			eventID: "event-1",
			userID:  "alice",
			mockSetup: func(m *mocks.EventGetter) {
				m.On("GetEvent", mock.Anything, "event-1").
					Return(nil, errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			checkBody: func(t *testing.T, body string) {
				assert.JSONEq(t, `{"status":"Error","error":"failed to get event information"}`, body)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockGetter := mocks.NewEventGetter(t)
			tc.mockSetup(mockGetter)

			router := newRouter(New(logger, mockGetter))

			req, err := http.NewRequest(http.MethodGet, "/events/"+tc.eventID, nil)
			require.NoError(t, err)

			if tc.userID != "" {
				req.Header.Set(identity.HeaderUserID, tc.userID)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			tc.checkBody(t, rr.Body.String())
		})
	}
}
