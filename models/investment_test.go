package models

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseInvestmentExactBalanceSucceeds(t *testing.T) {
	mock := newMockPool(t)
	plan := &Plan{ID: 3, Name: "Gold"}

	mock.ExpectBegin()
	// Достаточность по включительной границе: balance >= amount
	mock.ExpectExec(`WHERE id = \$3 AND balance >= \$1`).
		WithArgs(500.0, "Gold", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`INSERT INTO investments`).
		WithArgs("user-1", 3, "Gold", 500.0).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "plan_id", "plan_name", "amount", "status", "created_at",
		}).AddRow("inv-1", "user-1", 3, "Gold", 500.0, InvestmentActive, time.Now()))
	mock.ExpectCommit()

	inv, err := PurchaseInvestment("user-1", plan, 500)
	require.NoError(t, err)
	assert.Equal(t, "Gold", inv.PlanName)
	assert.Equal(t, 500.0, inv.Amount)
	assert.Equal(t, InvestmentActive, inv.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPurchaseInvestmentInsufficientBalanceWritesNothing(t *testing.T) {
	mock := newMockPool(t)
	plan := &Plan{ID: 3, Name: "Gold"}

	mock.ExpectBegin()
	mock.ExpectExec(`WHERE id = \$3 AND balance >= \$1`).
		WithArgs(500.0, "Gold", "user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	inv, err := PurchaseInvestment("user-1", plan, 500)
	assert.Nil(t, inv)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	// Ни вставки позиции, ни коммита после неудачного списания
	assert.NoError(t, mock.ExpectationsWereMet())
}
