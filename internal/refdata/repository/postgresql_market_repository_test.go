package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db, mock
}

func marketColumns() []string {
	return []string{"id", "name", "province_code", "district_code", "subdistrict_code", "updated_at"}
}

func TestPostgreSQLMarketRepository_ListChangedSince(t *testing.T) {
	ctx := context.Background()

	t.Run("FullSyncWithoutFilters", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMarketRepository(db)

		marketID := uuid.Must(uuid.NewV7())
		updatedAt := time.Now().UTC()

		mock.ExpectQuery("SELECT (.+) FROM markets ORDER BY updated_at ASC LIMIT \\$1").
			WithArgs(2000).
			WillReturnRows(sqlmock.NewRows(marketColumns()).
				AddRow(marketID, "Central Market", "10", "1001", "100101", updatedAt))

		markets, err := repo.ListChangedSince(ctx, nil, nil, 2000)
		require.NoError(t, err)
		require.Len(t, markets, 1)
		assert.Equal(t, marketID, markets[0].ID)
		assert.Equal(t, "Central Market", markets[0].Name)
		assert.Equal(t, updatedAt, markets[0].UpdatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeltaWithSinceAndAreaFilter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMarketRepository(db)

		since := time.Now().UTC().Add(-time.Hour)
		areas := []string{"10", "1001"}

		mock.ExpectQuery("SELECT (.+) FROM markets WHERE updated_at > \\$1 AND \\(province_code = ANY\\(\\$2\\) OR district_code = ANY\\(\\$2\\) OR subdistrict_code = ANY\\(\\$2\\)\\) ORDER BY updated_at ASC LIMIT \\$3").
			WithArgs(since, pq.Array(areas), 100).
			WillReturnRows(sqlmock.NewRows(marketColumns()))

		markets, err := repo.ListChangedSince(ctx, &since, areas, 100)
		require.NoError(t, err)
		assert.Empty(t, markets)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("QueryError", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLMarketRepository(db)

		mock.ExpectQuery("SELECT (.+) FROM markets").
			WillReturnError(assert.AnError)

		markets, err := repo.ListChangedSince(ctx, nil, nil, 10)
		assert.Error(t, err)
		assert.Nil(t, markets)
	})
}
