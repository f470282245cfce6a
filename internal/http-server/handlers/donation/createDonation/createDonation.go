package createDonation

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

type DonationRequest struct {
	Amount  float64 `json:"amount" validate:"required,gte=1,lte=100000"`
	Message string  `json:"message"`
}

type DonationResponse struct {
	response.Response
	DonationID string `json:"donation_id"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=DonationCreator
type DonationCreator interface {
	CreateDonation(ctx context.Context, d *models.Donation) error
	GetUser(ctx context.Context, id string) (*models.User, error)
}

func New(log *slog.Logger, creator DonationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.donation.createDonation.New"

		log = log.With(slog.String("op", op))

		userID, ok := identity.FromContext(r.Context())
		if !ok {
			log.Error("no caller identity")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("user must be authenticated"))
			return
		}

		log = log.With(slog.String("user_id", userID))

		var req DonationRequest

		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			errors.As(err, &validateErr)

			log.Error("invalid request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		displayName := "User"
		if user, err := creator.GetUser(r.Context(), userID); err == nil && user.DisplayName != "" {
			displayName = user.DisplayName
		}

		donation := &models.Donation{
			ID:          uuid.New().String(),
			UserID:      userID,
			DisplayName: displayName,
			Amount:      req.Amount,
			Message:     booking.SanitizeNote(req.Message),
			Status:      "completed",
			CreatedAt:   time.Now(),
		}

		if err := creator.CreateDonation(r.Context(), donation); err != nil {
			log.Error("failed to process donation", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to process donation"))
			return
		}

		log.Info("donation processed", slog.String("donation_id", donation.ID))

		render.JSON(w, r, DonationResponse{
			Response:   response.OK(),
			DonationID: donation.ID,
		})
	}
}
