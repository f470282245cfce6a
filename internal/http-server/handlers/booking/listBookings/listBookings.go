package listBookings

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/api/response"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

type BookingsResponse struct {
	response.Response
	Bookings []models.Booking `json:"bookings"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=BookingLister
type BookingLister interface {
	ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

func New(log *slog.Logger, lister BookingLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.booking.listBookings.New"

		log = log.With(slog.String("op", op))

		userID, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("no caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user must be authenticated"))
			return
		}

		bookings, err := lister.ListBookingsByUser(r.Context(), userID)
		if err != nil {
			log.Error("failed to list bookings", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to list bookings"))
			return
		}

		log.Info("bookings retrieved successfully",
			slog.String("user_id", userID),
			slog.Int("count", len(bookings)),
		)

		render.JSON(w, r, BookingsResponse{
			Response: response.OK(),
			Bookings: bookings,
		})
	}
}
