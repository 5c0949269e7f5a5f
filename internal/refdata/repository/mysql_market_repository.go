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

// MySQLMarketRepository handles market persistence for MySQL.
type MySQLMarketRepository struct {
	db *sql.DB
}

// NewMySQLMarketRepository creates a new MySQLMarketRepository.
func NewMySQLMarketRepository(db *sql.DB) *MySQLMarketRepository {
	return &MySQLMarketRepository{
		db: db,
	}
}

// ListChangedSince retrieves markets whose updated_at is strictly greater than
// since, optionally restricted to a set of area codes. A market matches the
// area filter when any of its locality codes is in the set. Rows are ordered
// by updated_at ascending and capped at limit.
func (r *MySQLMarketRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	areas []string,
	limit int,
) ([]*domain.Market, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	if since != nil {
		conditions = append(conditions, "updated_at > ?")
		args = append(args, *since)
	}

	if len(areas) > 0 {
		in := mysqlPlaceholders(len(areas))
		conditions = append(conditions,
			"(province_code IN "+in+" OR district_code IN "+in+" OR subdistrict_code IN "+in+")")
		// The IN list is repeated for each locality column
		for i := 0; i < 3; i++ {
			for _, area := range areas {
				args = append(args, area)
			}
		}
	}

	query := `SELECT id, name, province_code, district_code, subdistrict_code, updated_at
			  FROM markets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY updated_at ASC LIMIT ?"
	args = append(args, limit)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list changed markets")
	}
	defer rows.Close() //nolint:errcheck

	var markets []*domain.Market
	for rows.Next() {
		var market domain.Market

		err := rows.Scan(
			&market.ID,
			&market.Name,
			&market.ProvinceCode,
			&market.DistrictCode,
			&market.SubdistrictCode,
			&market.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan market row")
		}

		markets = append(markets, &market)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate market rows")
	}

	return markets, nil
}

// mysqlPlaceholders builds a "(?, ?, ...)" list with n placeholders.
func mysqlPlaceholders(n int) string {
	if n <= 0 {
		return "()"
	}
	return "(" + strings.Repeat("?, ", n-1) + "?)"
}
