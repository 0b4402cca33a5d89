package repository

import (
	"context"
	"testing"

	"github.com/betstack/bet-engine/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletRepository_Debit_Success(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &PostgresWalletRepository{logger: zerolog.Nop()}
	userID := uuid.New()

	mockPool.ExpectBegin()
	tx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	mockPool.ExpectExec("UPDATE users").
		WithArgs(userID, "1000").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Debit(context.Background(), tx, userID, decimal.NewFromInt(1000))
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestWalletRepository_Debit_InsufficientBalance(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &PostgresWalletRepository{logger: zerolog.Nop()}
	userID := uuid.New()

	mockPool.ExpectBegin()
	tx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	// Guard clause blocks the update, the user exists: insufficient funds
	mockPool.ExpectExec("UPDATE users").
		WithArgs(userID, "1000").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectQuery("SELECT EXISTS").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	err = repo.Debit(context.Background(), tx, userID, decimal.NewFromInt(1000))
	assert.ErrorIs(t, err, models.ErrInsufficientFunds)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestWalletRepository_Debit_UserNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &PostgresWalletRepository{logger: zerolog.Nop()}
	userID := uuid.New()

	mockPool.ExpectBegin()
	tx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	mockPool.ExpectExec("UPDATE users").
		WithArgs(userID, "500").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectQuery("SELECT EXISTS").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	err = repo.Debit(context.Background(), tx, userID, decimal.NewFromInt(500))
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestWalletRepository_Credit_Success(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &PostgresWalletRepository{logger: zerolog.Nop()}
	userID := uuid.New()

	mockPool.ExpectBegin()
	tx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	mockPool.ExpectExec("UPDATE users").
		WithArgs(userID, "1800").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = repo.Credit(context.Background(), tx, userID, decimal.NewFromInt(1800))
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestWalletRepository_Credit_UserNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := &PostgresWalletRepository{logger: zerolog.Nop()}
	userID := uuid.New()

	mockPool.ExpectBegin()
	tx, err := mockPool.Begin(context.Background())
	require.NoError(t, err)

	mockPool.ExpectExec("UPDATE users").
		WithArgs(userID, "100").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.Credit(context.Background(), tx, userID, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
