package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/docstore"
)

// pgTx adapts one *sql.Tx to the docstore.Tx port. Every read runs
// against the transaction snapshot, never the pool.
type pgTx struct {
	ctx context.Context
	tx  *sql.Tx
}

func (t *pgTx) GetEvent(id string) (*models.Event, error) {
	query := `
		SELECT id, title, description, start_at, end_at,
		       spots_total, spots_booked, spots_available,
		       is_active, created_at, updated_at
		FROM events
		WHERE id = $1`

	var e models.Event
	err := t.tx.QueryRowContext(t.ctx, query, id).Scan(
		&e.ID,
		&e.Title,
		&e.Description,
		&e.Start,
		&e.End,
		&e.SpotsTotal,
		&e.SpotsBooked,
		&e.SpotsAvailable,
		&e.IsActive,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return &e, nil
}

func (t *pgTx) GetBooking(id string) (*models.Booking, error) {
	query := `
		SELECT id, event_id, user_id, event_title, event_start, event_end,
		       note, status, created_at, cancelled_at
		FROM bookings
		WHERE id = $1`

	var b models.Booking
	err := t.tx.QueryRowContext(t.ctx, query, id).Scan(
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
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (t *pgTx) GetUser(id string) (*models.User, error) {
	query := `
		SELECT id, email, display_name, role
		FROM users
		WHERE id = $1`

	var u models.User
	err := t.tx.QueryRowContext(t.ctx, query, id).Scan(
		&u.ID,
		&u.Email,
		&u.DisplayName,
		&u.Role,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, docstore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (t *pgTx) ConfirmedBookingsByUser(userID string) ([]models.Booking, error) {
	query := `
		SELECT id, event_id, user_id, event_title, event_start, event_end,
		       note, status, created_at, cancelled_at
		FROM bookings
		WHERE user_id = $1 AND status = 'confirmed'`

	rows, err := t.tx.QueryContext(t.ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list confirmed bookings: %w", err)
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

func (t *pgTx) CreateBooking(b *models.Booking) error {
	query := `
		INSERT INTO bookings (id, event_id, user_id, event_title, event_start, event_end,
		                      note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := t.tx.ExecContext(t.ctx, query,
		b.ID,
		b.EventID,
		b.UserID,
		b.EventTitle,
		b.EventStart,
		b.EventEnd,
		b.Note,
		b.Status,
		b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (t *pgTx) CancelBooking(id string, at time.Time) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled', cancelled_at = $2
		WHERE id = $1`

	res, err := t.tx.ExecContext(t.ctx, query, id, at)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}

	return nil
}

func (t *pgTx) AdjustEventSpots(eventID string, delta int, at time.Time) error {
	query := `
		UPDATE events
		SET spots_booked = spots_booked + $2,
		    spots_available = spots_available - $2,
		    updated_at = $3
		WHERE id = $1`

	res, err := t.tx.ExecContext(t.ctx, query, eventID, delta, at)
	if err != nil {
		return fmt.Errorf("failed to adjust event spots: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to adjust event spots: %w", err)
	}
	if affected == 0 {
		return docstore.ErrNotFound
	}

	return nil
}
