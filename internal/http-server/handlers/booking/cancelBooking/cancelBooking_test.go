package cancelBooking

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/handlers/booking/cancelBooking/mocks"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/handlers/slogdiscard"
)

func newRouter(handler http.HandlerFunc) *chi.Mux {
	router := chi.NewRouter()
	router.Route("/bookings", func(r chi.Router) {
		r.Use(identity.New())
		r.Post("/{id}/cancel", handler)
	})
	return router
}

func TestCancelBookingHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()

	testCases := []struct {
		name           string
		bookingID      string
		userID         string
		mockSetup      func(m *mocks.BookingCanceller)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "Success",
			bookingID: "booking-1",
			userID:    "alice",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, "booking-1", "alice").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK"}`,
		},
		{
			name:           "Missing identity",
			bookingID:      "booking-1",
			userID:         "",
			mockSetup:      func(m *mocks.BookingCanceller) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"user must be authenticated"}`,
		},
		{
			name:      "Booking not found",
			bookingID: "missing",
			userID:    "alice",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, "missing", "alice").
					Return(booking.ErrBookingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"booking not found"}`,
		},
		{
			name:      "Not the owner",
			bookingID: "booking-1",
			userID:    "bob",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, "booking-1", "bob").
					Return(booking.ErrNotAllowed)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"not authorized to cancel this booking"}`,
		},
		{
			name:      "Already cancelled",
			bookingID: "booking-1",
			userID:    "alice",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, "booking-1", "alice").
					Return(booking.ErrAlreadyCancelled)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"status":"Error","error":"booking already cancelled"}`,
		},
		{
			name:      "Internal server error",
			bookingID: "booking-1",
			userID:    "alice",
			mockSetup: func(m *mocks.BookingCanceller) {
				m.On("Cancel", mock.Anything, "booking-1", "alice").
					Return(errors.New("database error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"failed to cancel booking"}`,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mockCanceller := mocks.NewBookingCanceller(t)
			tc.mockSetup(mockCanceller)

			router := newRouter(New(logger, mockCanceller))

			req, err := http.NewRequest(http.MethodPost, "/bookings/"+tc.bookingID+"/cancel", nil)
			require.NoError(t, err)

			if tc.userID != "" {
				req.Header.Set(identity.HeaderUserID, tc.userID)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code, "Status code mismatch")
			assert.JSONEq(t, tc.expectedBody, rr.Body.String(), "Response body mismatch")
		})
	}
}
