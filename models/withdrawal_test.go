package models

import (
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawalRow(id, userID string, amount float64, status string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "user_id", "amount", "network", "address", "contact_email", "status", "created_at", "updated_at",
	}).AddRow(id, userID, amount, "ERC20", "0xAddr", "user@example.com", status, now, now)
}

func TestResolveWithdrawalApproveDebitsWithZeroFloor(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE withdrawals SET status`).
		WithArgs(StatusApproved, "wd-1").
		WillReturnRows(withdrawalRow("wd-1", "user-1", 80, StatusApproved))
	// Списание идёт через GREATEST и не может увести баланс в минус
	mock.ExpectExec(`SET balance = GREATEST\(balance - \$1, 0\)`).
		WithArgs(80.0, "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	w, err := ResolveWithdrawal("wd-1", StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, w.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWithdrawalRejectLeavesBalanceUntouched(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE withdrawals SET status`).
		WithArgs(StatusRejected, "wd-2").
		WillReturnRows(withdrawalRow("wd-2", "user-1", 80, StatusRejected))
	mock.ExpectCommit()

	w, err := ResolveWithdrawal("wd-2", StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, w.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWithdrawalTwiceReturnsAlreadyResolved(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE withdrawals SET status`).
		WithArgs(StatusApproved, "wd-3").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("wd-3").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	w, err := ResolveWithdrawal("wd-3", StatusApproved)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveWithdrawalUnknownIDReturnsNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE withdrawals SET status`).
		WithArgs(StatusApproved, "no-such-id").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("no-such-id").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	w, err := ResolveWithdrawal("no-such-id", StatusApproved)
	assert.Nil(t, w)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
