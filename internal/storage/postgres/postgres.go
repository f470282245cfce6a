// Package postgres implements docstore.Store on top of database/sql with
// the lib/pq driver. Transactions run at serializable isolation; the
// callback is retried on serialization failures so concurrent bookings
// against the same event never observe stale seat counters.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/Sayden945/ito5031-webassignment/internal/config"
	"github.com/Sayden945/ito5031-webassignment/internal/storage/docstore"
)

// serialization_failure, the SQLSTATE postgres reports when a
// serializable transaction loses a conflict and must be re-run.
const sqlstateSerializationFailure = "40001"

// maxTxAttempts bounds the conflict-retry loop. Exceeding it surfaces as
// an internal error to the caller.
const maxTxAttempts = 5

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// RunTransaction executes fn inside a serializable transaction, retrying
// up to maxTxAttempts times when postgres reports a serialization
// failure. Errors returned by fn abort the transaction and pass through
// unchanged, so domain rejections keep their identity for errors.Is.
func (s *Storage) RunTransaction(ctx context.Context, fn func(tx docstore.Tx) error) error {
	var lastErr error

	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("transaction retries exhausted: %w", lastErr)
}

func (s *Storage) runOnce(ctx context.Context, fn func(tx docstore.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err = fn(&pgTx{ctx: ctx, tx: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func isSerializationFailure(err error) bool {
	if errors.Is(err, docstore.ErrConflict) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == sqlstateSerializationFailure
	}
	return false
}
