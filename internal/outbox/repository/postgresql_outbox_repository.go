// Package repository provides data persistence implementations for the mutation ledger.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
	"github.com/allisson/agrosync/internal/outbox/domain"
)

// PostgreSQLOutboxRepository handles mutation ledger persistence for PostgreSQL.
type PostgreSQLOutboxRepository struct {
	db *sql.DB
}

// NewPostgreSQLOutboxRepository creates a new PostgreSQLOutboxRepository.
func NewPostgreSQLOutboxRepository(db *sql.DB) *PostgreSQLOutboxRepository {
	return &PostgreSQLOutboxRepository{
		db: db,
	}
}

// GetByMutationID retrieves a ledger record by its mutation id.
// Returns ErrNotFound when the mutation has never been processed.
func (r *PostgreSQLOutboxRepository) GetByMutationID(
	ctx context.Context,
	mutationID string,
) (*domain.MutationRecord, error) {
	var record domain.MutationRecord
	querier := database.GetTx(ctx, r.db)

	query := `SELECT mutation_id, user_id, entity, op, status, message, created_at, updated_at
			  FROM mutation_records WHERE mutation_id = $1`

	err := querier.QueryRowContext(ctx, query, mutationID).Scan(
		&record.MutationID,
		&record.UserID,
		&record.Entity,
		&record.Op,
		&record.Status,
		&record.Message,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "mutation record not found")
		}
		return nil, apperrors.Wrap(err, "failed to get mutation record")
	}

	return &record, nil
}

// Create appends a new ledger record. The mutation_id primary key enforces
// the append-once invariant.
func (r *PostgreSQLOutboxRepository) Create(ctx context.Context, record *domain.MutationRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mutation_records (mutation_id, user_id, entity, op, status, message, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(ctx, query,
		record.MutationID, record.UserID, record.Entity, record.Op,
		record.Status, record.Message, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrapf(apperrors.ErrConflict, "mutation %q already recorded", record.MutationID)
		}
		return apperrors.Wrap(err, "failed to create mutation record")
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
