//go:build !integration

package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ServerTime(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()
	store := NewStore(sqlx.NewDb(db, "sqlmock"))

	serverNow := time.Date(2024, 5, 10, 11, 30, 0, 0, time.FixedZone("BRT", -3*60*60))
	mock.ExpectPing()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT NOW()")).
		WillReturnRows(sqlmock.NewRows([]string{"now"}).AddRow(serverNow))

	require.NoError(t, store.Ping(context.Background()))
	now, err := store.ServerTime(context.Background())
	require.NoError(t, err)
	assert.Equal(t, time.UTC, now.Location())
	assert.True(t, serverNow.Equal(now))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ServerTime_Failure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	store := NewStore(sqlx.NewDb(db, "sqlmock"))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT NOW()")).WillReturnError(errors.New("connection refused"))

	_, err = store.ServerTime(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		code   string
		unique bool
		fk     bool
		check  bool
	}{
		{"23505", true, false, false},
		{"23503", false, true, false},
		{"23514", false, false, true},
		{"22001", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := errors.Join(errors.New("inserting"), &pgconn.PgError{Code: tt.code})
			assert.Equal(t, tt.unique, IsUniqueViolation(err))
			assert.Equal(t, tt.fk, IsForeignKeyViolation(err))
			assert.Equal(t, tt.check, IsCheckViolation(err))
		})
	}
	assert.True(t, IsOutOfRange(&pgconn.PgError{Code: "22003"}))
	assert.False(t, IsOutOfRange(&pgconn.PgError{Code: "23514"}))
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("plain")))
}
