package bookEvent

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/api/response"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

type BookingRequest struct {
	Notes string `json:"notes,omitempty"`
}

type BookingResponse struct {
	response.Response
	BookingID  string `json:"booking_id"`
	EventTitle string `json:"event_title"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventBooker
type EventBooker interface {
	Book(ctx context.Context, eventID, userID, note string) (*models.Booking, error)
}

func New(log *slog.Logger, booker EventBooker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.bookEvent.New"

		log = log.With(slog.String("op", op))

		userID, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("no caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user must be authenticated"))
			return
		}

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		log = log.With(
			slog.String("event_id", eventID),
			slog.String("user_id", userID),
		)

		var req BookingRequest

		// An empty body means a booking without a note.
		if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		b, err := booker.Book(r.Context(), eventID, userID, req.Notes)
		if err != nil {
			log.Error("failed to book event", sl.Err(err))

			status, msg := mapBookingError(err)
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("event booked successfully", slog.String("booking_id", b.ID))

		render.JSON(w, r, BookingResponse{
			Response:   response.OK(),
			BookingID:  b.ID,
			EventTitle: b.EventTitle,
		})
	}
}

// mapBookingError translates core rejections into an HTTP status and a
// user-facing message. Anything unrecognised is an internal failure and
// stays opaque to the caller.
func mapBookingError(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrEventNotFound):
		return http.StatusNotFound, booking.ErrEventNotFound.Error()
	case errors.Is(err, booking.ErrUserNotFound):
		return http.StatusNotFound, booking.ErrUserNotFound.Error()
	case errors.Is(err, booking.ErrNoSpotsAvailable):
		return http.StatusConflict, booking.ErrNoSpotsAvailable.Error()
	case errors.Is(err, booking.ErrAlreadyBooked):
		return http.StatusConflict, booking.ErrAlreadyBooked.Error()
	case errors.Is(err, booking.ErrEventInactive):
		return http.StatusUnprocessableEntity, booking.ErrEventInactive.Error()
	case errors.Is(err, booking.ErrEventStarted):
		return http.StatusUnprocessableEntity, booking.ErrEventStarted.Error()
	case errors.Is(err, booking.ErrScheduleConflict):
		return http.StatusUnprocessableEntity, booking.ErrScheduleConflict.Error()
	default:
		return http.StatusInternalServerError, "failed to book event"
	}
}
