package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/allisson/agrosync/internal/database"
	apperrors "github.com/allisson/agrosync/internal/errors"
	"github.com/allisson/agrosync/internal/refdata/domain"
)

// MySQLCropPriceRepository handles crop price persistence for MySQL.
type MySQLCropPriceRepository struct {
	db *sql.DB
}

// NewMySQLCropPriceRepository creates a new MySQLCropPriceRepository.
func NewMySQLCropPriceRepository(db *sql.DB) *MySQLCropPriceRepository {
	return &MySQLCropPriceRepository{
		db: db,
	}
}

// ListChangedSince retrieves crop prices whose updated_at is strictly greater
// than since, optionally restricted to a set of crop keys. Rows are ordered by
// updated_at ascending and capped at limit.
func (r *MySQLCropPriceRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	cropKeys []string,
	limit int,
) ([]*domain.CropPrice, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	if since != nil {
		conditions = append(conditions, "updated_at > ?")
		args = append(args, *since)
	}

	if len(cropKeys) > 0 {
		conditions = append(conditions, "crop_key IN "+mysqlPlaceholders(len(cropKeys)))
		for _, key := range cropKeys {
			args = append(args, key)
		}
	}

	query := `SELECT id, crop_key, market_id, price_min, price_max, unit, updated_at
			  FROM crop_prices`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at ASC LIMIT ?"
	args = append(args, limit)

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
