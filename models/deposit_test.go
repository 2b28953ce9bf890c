package models

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trading-platform/database"
)

// newMockPool подменяет пул соединений моком на время теста
func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)

	prev := database.Pool
	database.Pool = mock
	t.Cleanup(func() {
		database.Pool = prev
		mock.Close()
	})
	return mock
}

func depositRow(id, userID string, amount float64, status string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "user_id", "amount", "network", "address", "status", "created_at", "updated_at",
	}).AddRow(id, userID, amount, "TRC20", "TAddr", status, now, now)
}

func TestResolveDepositApproveCreditsBalanceOnce(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(StatusApproved, "dep-1").
		WillReturnRows(depositRow("dep-1", "user-1", 150, StatusApproved))
	mock.ExpectExec(`UPDATE profiles SET balance = balance \+ \$1`).
		WithArgs(150.0, "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	d, err := ResolveDeposit("dep-1", StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, d.Status)
	assert.Equal(t, 150.0, d.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDepositRejectLeavesBalanceUntouched(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(StatusRejected, "dep-2").
		WillReturnRows(depositRow("dep-2", "user-1", 150, StatusRejected))
	mock.ExpectCommit()

	d, err := ResolveDeposit("dep-2", StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, d.Status)
	// Лишнее обращение к profiles сорвало бы порядок ожиданий
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDepositTwiceReturnsAlreadyResolved(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(StatusRejected, "dep-3").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dep-3").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	d, err := ResolveDeposit("dep-3", StatusRejected)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDepositUnknownIDReturnsNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs(StatusApproved, "no-such-id").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("no-such-id").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	d, err := ResolveDeposit("no-such-id", StatusApproved)
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveDepositRejectsInvalidStatus(t *testing.T) {
	newMockPool(t)

	d, err := ResolveDeposit("dep-1", "pending")
	assert.Nil(t, d)
	assert.Error(t, err)
}
