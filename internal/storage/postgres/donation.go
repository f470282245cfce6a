package postgres

import (
	"context"
	"fmt"

	"github.com/Sayden945/ito5031-webassignment/internal/models"
)

func (s *Storage) CreateDonation(ctx context.Context, d *models.Donation) error {
	query := `
		INSERT INTO donations (id, user_id, display_name, amount, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.DB.ExecContext(ctx, query,
		d.ID,
		d.UserID,
		d.DisplayName,
		d.Amount,
		d.Message,
		d.Status,
		d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}

	return nil
}
