package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/agrosync/internal/alerts/domain"
	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
)

// MySQLAlertRepository handles alert persistence for MySQL.
type MySQLAlertRepository struct {
	db *sql.DB
}

// NewMySQLAlertRepository creates a new MySQLAlertRepository.
func NewMySQLAlertRepository(db *sql.DB) *MySQLAlertRepository {
	return &MySQLAlertRepository{
		db: db,
	}
}

// ListChangedSince retrieves the user's alerts whose updated_at is strictly
// greater than since, ordered by updated_at ascending and capped at limit.
func (r *MySQLAlertRepository) ListChangedSince(
	ctx context.Context,
	userID string,
	since *time.Time,
	limit int,
) ([]*domain.Alert, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, crop_key, target_min, target_max, unit, active, created_at, updated_at
			  FROM alerts
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
		return nil, apperrors.Wrap(err, "failed to list changed alerts")
	}
	defer rows.Close() //nolint:errcheck

	var alerts []*domain.Alert
	for rows.Next() {
		var alert domain.Alert

		err := rows.Scan(
			&alert.ID,
			&alert.UserID,
			&alert.CropKey,
			&alert.TargetMin,
			&alert.TargetMax,
			&alert.Unit,
			&alert.Active,
			&alert.CreatedAt,
			&alert.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan alert row")
		}

		alerts = append(alerts, &alert)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate alert rows")
	}

	return alerts, nil
}

// GetByID retrieves an alert by id scoped to its owner.
func (r *MySQLAlertRepository) GetByID(ctx context.Context, id uuid.UUID, userID string) (*domain.Alert, error) {
	var alert domain.Alert
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, user_id, crop_key, target_min, target_max, unit, active, created_at, updated_at
			  FROM alerts WHERE id = ? AND user_id = ?`

	err := querier.QueryRowContext(ctx, query, id, userID).Scan(
		&alert.ID,
		&alert.UserID,
		&alert.CropKey,
		&alert.TargetMin,
		&alert.TargetMax,
		&alert.Unit,
		&alert.Active,
		&alert.CreatedAt,
		&alert.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAlertNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get alert by id")
	}

	return &alert, nil
}

// Insert inserts a new alert.
func (r *MySQLAlertRepository) Insert(ctx context.Context, alert *domain.Alert) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO alerts (id, user_id, crop_key, target_min, target_max, unit, active, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(ctx, query,
		alert.ID, alert.UserID, alert.CropKey, alert.TargetMin, alert.TargetMax,
		alert.Unit, alert.Active, alert.CreatedAt, alert.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to insert alert")
	}
	return nil
}

// Update updates an existing alert scoped to its owner.
func (r *MySQLAlertRepository) Update(ctx context.Context, alert *domain.Alert) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE alerts
			  SET crop_key = ?, target_min = ?, target_max = ?, unit = ?, active = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`

	_, err := querier.ExecContext(ctx, query,
		alert.CropKey, alert.TargetMin, alert.TargetMax, alert.Unit, alert.Active,
		alert.UpdatedAt, alert.ID, alert.UserID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update alert")
	}
	return nil
}

// Delete removes an alert scoped to its owner. Deleting an absent row is not an error.
func (r *MySQLAlertRepository) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM alerts WHERE id = ? AND user_id = ?`

	_, err := querier.ExecContext(ctx, query, id, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete alert")
	}
	return nil
}
