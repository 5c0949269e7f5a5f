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

// MySQLOutboxRepository handles mutation ledger persistence for MySQL.
type MySQLOutboxRepository struct {
	db *sql.DB
}

// NewMySQLOutboxRepository creates a new MySQLOutboxRepository.
func NewMySQLOutboxRepository(db *sql.DB) *MySQLOutboxRepository {
	return &MySQLOutboxRepository{
		db: db,
	}
}

// GetByMutationID retrieves a ledger record by its mutation id.
// Returns ErrNotFound when the mutation has never been processed.
func (r *MySQLOutboxRepository) GetByMutationID(
	ctx context.Context,
	mutationID string,
) (*domain.MutationRecord, error) {
	var record domain.MutationRecord
	querier := database.GetTx(ctx, r.db)

	query := `SELECT mutation_id, user_id, entity, op, status, message, created_at, updated_at
			  FROM mutation_records WHERE mutation_id = ?`

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
func (r *MySQLOutboxRepository) Create(ctx context.Context, record *domain.MutationRecord) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO mutation_records (mutation_id, user_id, entity, op, status, message, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query,
		record.MutationID, record.UserID, record.Entity, record.Op,
		record.Status, record.Message, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isMySQLDuplicateEntry(err) {
			return apperrors.Wrapf(apperrors.ErrConflict, "mutation %q already recorded", record.MutationID)
		}
		return apperrors.Wrap(err, "failed to create mutation record")
	}
	return nil
}

// isMySQLDuplicateEntry checks if the error is a MySQL duplicate entry violation.
func isMySQLDuplicateEntry(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate entry")
}
