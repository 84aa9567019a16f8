package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"exchangenorm/src/model"
	"exchangenorm/src/native"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})
	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}
	return gdb, mock
}

func TestSnapshotSave(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepositoryWithDB(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "listing_snapshots"`).
		WithArgs("okx", model.SnapshotMarkets, 2, `[{"instId":"BTC-USDT"},{"instId":"ETH-USDT"}]`, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	s, err := repo.Save(context.Background(), "okx", model.SnapshotMarkets, []native.Object{
		{"instId": "BTC-USDT"},
		{"instId": "ETH-USDT"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), s.ID)
	assert.Equal(t, 2, s.Rows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotSaveEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepositoryWithDB(db)

	_, err := repo.Save(context.Background(), "okx", model.SnapshotCurrencies, nil)
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotLatest(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepositoryWithDB(db)

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`SELECT \* FROM "listing_snapshots" WHERE exchange = \$1 AND kind = \$2 ORDER BY created_at DESC, id DESC LIMIT \$3`).
		WithArgs("okx", model.SnapshotMarkets, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "exchange", "kind", "row_count", "payload", "created_at"}).
			AddRow(9, "okx", "markets", 1, `[{"instId":"BTC-USDT","tickSz":"0.1"}]`, created))

	s, rows, err := repo.Latest(context.Background(), "okx", model.SnapshotMarkets)
	require.NoError(t, err)
	assert.Equal(t, uint(9), s.ID)
	assert.Equal(t, created, s.CreatedAt)
	require.Len(t, rows, 1)
	assert.Equal(t, "0.1", native.String(rows[0], "tickSz"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotLatestMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepositoryWithDB(db)

	mock.ExpectQuery(`SELECT \* FROM "listing_snapshots"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, _, err := repo.Latest(context.Background(), "okx", model.SnapshotCurrencies)
	require.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotPrune(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSnapshotRepositoryWithDB(db)

	mock.ExpectQuery(`SELECT "id" FROM "listing_snapshots" WHERE exchange = \$1 AND kind = \$2 ORDER BY created_at DESC, id DESC LIMIT \$3`).
		WithArgs("okx", model.SnapshotMarkets, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12).AddRow(11))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "listing_snapshots" WHERE \(exchange = \$1 AND kind = \$2\) AND id NOT IN \(\$3,\$4\)`).
		WithArgs("okx", model.SnapshotMarkets, 12, 11).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	deleted, err := repo.Prune(context.Background(), "okx", model.SnapshotMarkets, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
