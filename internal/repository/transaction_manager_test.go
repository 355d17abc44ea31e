package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"formations-backend/internal/config"
	"formations-backend/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO user_quiz_results`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.WithTransaction(context.Background(), func(txCtx context.Context) error {
		executor := GetExecutor(txCtx, db)
		_, execErr := executor.ExecContext(txCtx, `INSERT INTO user_quiz_results (id) VALUES ($1)`, "r1")
		return execErr
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	tm := NewTransactionManagerAdapter(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("write failed")
	err := tm.WithTransaction(context.Background(), func(txCtx context.Context) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor_ReturnsBaseDBWithoutTransaction(t *testing.T) {
	db, _ := setupTestDB(t)
	defer db.Close()

	executor := GetExecutor(context.Background(), db)
	assert.Equal(t, DBTX(db), executor)
}
