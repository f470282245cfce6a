package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/Sayden945/ito5031-webassignment/internal/booking"
	"github.com/Sayden945/ito5031-webassignment/internal/http-server/middleware/identity"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/api/response"
	"github.com/Sayden945/ito5031-webassignment/internal/lib/logger/sl"
	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

type EventRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Start       time.Time `json:"start" validate:"required"`
	End         time.Time `json:"end" validate:"required,gtfield=Start"`
	SpotsTotal  int       `json:"spots_total" validate:"required,gte=1,lte=100000"`
}

type EventResponse struct {
	response.Response
	EventID string `json:"event_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	GetUser(ctx context.Context, id string) (*models.User, error)
}

func New(log *slog.Logger, creator EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log = log.With(slog.String("op", op))

		userID, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("no caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user must be authenticated"))
			return
		}

		// Only organizers create events.
		user, err := creator.GetUser(r.Context(), userID)
		if err != nil || !user.IsAdmin() {
			log.Error("caller is not an admin", slog.String("user_id", userID))
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, response.Error("only admins can create events"))
			return
		}

		var req EventRequest

		if err = render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		now := time.Now()
		event := &models.Event{
			ID:             uuid.New().String(),
			Title:          booking.SanitizeNote(req.Title),
			Description:    booking.SanitizeNote(req.Description),
			Start:          req.Start,
			End:            req.End,
			SpotsTotal:     req.SpotsTotal,
			SpotsBooked:    0,
			SpotsAvailable: req.SpotsTotal,
			IsActive:       true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		if err = creator.CreateEvent(r.Context(), event); err != nil {
			log.Error("failed to add event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add event"))
			return
		}

		log.Info("event added", slog.String("id", event.ID))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			EventID:  event.ID,
		})
	}
}
