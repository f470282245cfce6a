package postgres

import (
	"context"
	"fmt"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

const bookingColumns = `id, event_id, user_id, event_title, event_start, event_end,
	note, status, created_at, cancelled_at`

func (s *Storage) ListBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return s.queryBookings(ctx, query, userID)
}

func (s *Storage) ListBookingsByEvent(ctx context.Context, eventID string) ([]models.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE event_id = $1
		ORDER BY created_at DESC`

	return s.queryBookings(ctx, query, eventID)
}

func (s *Storage) queryBookings(ctx context.Context, query string, args ...any) ([]models.Booking, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err = rows.Scan(
			&b.ID,
			&b.EventID,
			&b.UserID,
			&b.EventTitle,
			&b.EventStart,
			&b.EventEnd,
			&b.Note,
			&b.Status,
			&b.CreatedAt,
			&b.CancelledAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}
