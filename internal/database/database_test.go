package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techblog/internal/config"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return New(sqlx.NewDb(sqlDB, "postgres"), zap.NewNop()), mock
}

func TestDSN(t *testing.T) {
	dsn := DSN(config.DB{
		DbHOST: "db", DbPORT: "5433", DbUSER: "blog", DbPASSWORD: "secret",
		DbNAME: "techblog", DbSSLMODE: "require",
	})

	assert.Equal(t, "host=db port=5433 user=blog password=secret dbname=techblog sslmode=require", dsn)
}

func TestRunMigrations(t *testing.T) {
	db, mock := newMockDB(t)

	path := filepath.Join(t.TempDir(), "001.sql")
	require.NoError(t, os.WriteFile(path, []byte("CREATE TABLE tags (id BIGSERIAL PRIMARY KEY);"), 0o600))

	t.Run("применение файла", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE tags")).
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, db.RunMigrations(path))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ошибка выполнения", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE tags")).
			WillReturnError(errors.New("syntax error"))

		err := db.RunMigrations(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ошибка при выполнении миграций")
	})

	t.Run("файл не найден", func(t *testing.T) {
		err := db.RunMigrations(filepath.Join(t.TempDir(), "missing.sql"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "файл миграций не найден")
	})
}

func TestHealthCheck(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectPing()
	assert.NoError(t, db.HealthCheck(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection reset"))
	assert.Error(t, db.HealthCheck(context.Background()))

	var nilDB *DB
	assert.Error(t, nilDB.HealthCheck(context.Background()))
}
