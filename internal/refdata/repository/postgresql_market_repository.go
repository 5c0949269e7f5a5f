// Package repository provides data persistence implementations for reference entities.
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

// PostgreSQLMarketRepository handles market persistence for PostgreSQL.
type PostgreSQLMarketRepository struct {
	db *sql.DB
}

// NewPostgreSQLMarketRepository creates a new PostgreSQLMarketRepository.
func NewPostgreSQLMarketRepository(db *sql.DB) *PostgreSQLMarketRepository {
	return &PostgreSQLMarketRepository{
		db: db,
	}
}

// ListChangedSince retrieves markets whose updated_at is strictly greater than
// since, optionally restricted to a set of area codes. A market matches the
// area filter when any of its locality codes is in the set. Rows are ordered
// by updated_at ascending and capped at limit.
func (r *PostgreSQLMarketRepository) ListChangedSince(
	ctx context.Context,
	since *time.Time,
	areas []string,
	limit int,
) ([]*domain.Market, error) {
	querier := database.GetTx(ctx, r.db)

	var conditions []string
	var args []any

	if since != nil {
		args = append(args, *since)
		conditions = append(conditions, fmt.Sprintf("updated_at > $%d", len(args)))
	}

	if len(areas) > 0 {
		args = append(args, pq.Array(areas))
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(province_code = ANY($%d) OR district_code = ANY($%d) OR subdistrict_code = ANY($%d))",
			n, n, n,
		))
	}

	query := `SELECT id, name, province_code, district_code, subdistrict_code, updated_at
			  FROM markets`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY updated_at ASC LIMIT $%d", len(args))

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
