package cancelBooking

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/api/response"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
)

type CancelResponse struct {
	response.Response
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingCanceller
type BookingCanceller interface {
	Cancel(ctx context.Context, bookingID, actorID string) error
}

func New(log *slog.Logger, canceller BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.cancelBooking.New"

		log = log.With(slog.String("op", op))

		actorID, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("no caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user must be authenticated"))
			return
		}

		bookingID := chi.URLParam(r, "id")
		if bookingID == "" {
			log.Error("booking id is required")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("booking id is required"))
			return
		}

		log = log.With(
			slog.String("booking_id", bookingID),
			slog.String("user_id", actorID),
		)

		if err := canceller.Cancel(r.Context(), bookingID, actorID); err != nil {
			log.Error("failed to cancel booking", sl.Err(err))

			status, msg := mapCancelError(err)
			render.Status(r, status)
			render.JSON(w, r, response.Error(msg))
			return
		}

		log.Info("booking cancelled successfully")

		render.JSON(w, r, CancelResponse{
			Response: response.OK(),
		})
	}
}

func mapCancelError(err error) (int, string) {
	switch {
	case errors.Is(err, booking.ErrBookingNotFound):
		return http.StatusNotFound, booking.ErrBookingNotFound.Error()
	case errors.Is(err, booking.ErrUserNotFound):
		return http.StatusNotFound, booking.ErrUserNotFound.Error()
	case errors.Is(err, booking.ErrNotAllowed):
		return http.StatusForbidden, booking.ErrNotAllowed.Error()
	case errors.Is(err, booking.ErrAlreadyCancelled):
		return http.StatusUnprocessableEntity, booking.ErrAlreadyCancelled.Error()
	default:
		return http.StatusInternalServerError, "failed to cancel booking"
	}
}
