// internal/store/orders/store.go
package orders

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"ticketbot/internal/common/logger"
)

// Store persists confirmed bookings.
type Store struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

func New(db *sql.DB, table string, log logger.Logger) *Store {
	return &Store{db: db, table: table, logger: log}
}

// CreateOrder inserts a booking row under a fresh order id and returns that
// id. The ticket count is stored as submitted; it was validated upstream.
func (s *Store) CreateOrder(ctx context.Context, userID string, movieID int, ticketCount string) (string, error) {
	orderID := uuid.New().String()

	query := fmt.Sprintf(
		"INSERT INTO %s (order_id, user_id, movie_id, ticket_count) VALUES ($1, $2, $3, $4)",
		s.table,
	)
	if _, err := s.db.ExecContext(ctx, query, orderID, userID, movieID, ticketCount); err != nil {
		return "", fmt.Errorf("insert order: %w", err)
	}

	s.logger.Info("order persisted", map[string]interface{}{
		"order_id": orderID,
		"user_id":  userID,
		"movie_id": movieID,
	})
	return orderID, nil
}
