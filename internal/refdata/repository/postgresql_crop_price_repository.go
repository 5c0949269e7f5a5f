package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
	"github.com/allisson/agrosync/internal/refdata/domain"
)

// PostgreSQLCropPriceRepository handles crop price persistence for PostgreSQL.
type PostgreSQLCropPriceRepository struct {
	db *sql.DB
}

// NewPostgreSQLCropPriceRepository creates a new PostgreSQLCropPriceRepository.
func NewPostgreSQLCropPriceRepository(db *sql.DB) *PostgreSQLCropPriceRepository {
	return &PostgreSQLCropPriceRepository{
		db: db,
	}
}

// ListChangedSince retrieves crop prices whose updated_at is strictly greater
// than since, optionally restricted to a set of crop keys. Rows are ordered by
// updated_at ascending and capped at limit.
func (r *PostgreSQLCropPriceRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	cropKeys []string,
	limit int,
) ([]*domain.CropPrice, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	if since != nil {
		args = append(args, *since)
		conditions = append(conditions, fmt.Sprintf("updated_at > $%d", len(args)))
	}

	if len(cropKeys) > 0 {
		args = append(args, pq.Array(cropKeys))
		conditions = append(conditions, fmt.Sprintf("crop_key = ANY($%d)", len(args)))
	}

	query := `SELECT id, crop_key, market_id, price_min, price_max, unit, updated_at
			  FROM crop_prices`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY updated_at ASC LIMIT $%d", len(args))

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed crop prices")
	}
	defer rows.Close() //nolint:errcheck

	var prices []*domain.CropPrice
	for rows.Next() {
		var price domain.CropPrice

		err := rows.Scan(
			&price.ID,
			&price.CropKey,
			&price.MarketID,
			&price.PriceMin,
			&price.PriceMax,
			&price.Unit,
			&price.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan crop price row")
		}

		prices = append(prices, &price)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate crop price rows")
	}

	return prices, nil
}
