package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
	"github.com/allisson/agrosync/internal/tickets/domain"
)

// MySQLTicketRepository handles ticket persistence for MySQL.
type MySQLTicketRepository struct {
	db *sql.DB
}

// NewMySQLTicketRepository creates a new MySQLTicketRepository.
func NewMySQLTicketRepository(db *sql.DB) *MySQLTicketRepository {
	return &MySQLTicketRepository{
		db: db,
	}
}

// ListChangedSince retrieves the user's tickets whose updated_at is strictly
// greater than since, ordered by updated_at ascending and capped at limit.
func (r *MySQLTicketRepository) ListChangedSince(
	ctx context.Context,
	userID string,
	since *time.Time,
	limit int,
) ([]*domain.Ticket, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, crop_key, quantity, unit, status, created_at, updated_at
			  FROM tickets
			  WHERE user_id = ?`
	args := []any{userID}

	if since != nil {
		query += " AND updated_at > ?"
		args = append(args, *since)
	}
	query += " ORDER BY updated_at ASC LIMIT ?"
	args = append(args, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed tickets")
	}
	defer rows.Close() //nolint:errcheck

	var tickets []*domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket

		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.CropKey,
			&ticket.Quantity,
			&ticket.Unit,
			&ticket.Status,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan ticket row")
		}

		tickets = append(tickets, &ticket)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate ticket rows")
	}

	return tickets, nil
}

// GetByID retrieves a ticket by id scoped to its owner.
func (r *MySQLTicketRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Ticket, error) {
	var ticket domain.Ticket
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, crop_key, quantity, unit, status, created_at, updated_at
			  FROM tickets WHERE id = ? AND user_id = ?`

	err := querier.QueryRowContext(ctx, query, id, userID).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.CropKey,
		&ticket.Quantity,
		&ticket.Unit,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get ticket by id")
	}

	return &ticket, nil
}

// Insert inserts a new ticket.
func (r *MySQLTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO tickets (id, user_id, crop_key, quantity, unit, status, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query,
		ticket.ID, ticket.UserID, ticket.CropKey, ticket.Quantity, ticket.Unit,
		ticket.Status, ticket.CreatedAt, ticket.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert ticket")
	}
	return nil
}

// UpdateStatus sets the ticket status scoped to its owner.
func (r *MySQLTicketRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	userID string,
	status domain.Status,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE tickets SET status = ?, updated_at = ? WHERE id = ? AND user_id = ?`

	_, err := querier.ExecContext(ctx, query, status, updatedAt, id, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update ticket status")
	}
	return nil
}
