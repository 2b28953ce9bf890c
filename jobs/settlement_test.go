package jobs

import (
	"fmt"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"trading-platform/database"
)

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

func TestRunSettlementCreditsAndNotifiesOncePerProfile(t *testing.T) {
	mock := newMockPool(t)
	s := &Scheduler{log: zap.NewNop()}

	mock.ExpectQuery(`SELECT id, weekly_profit FROM profiles WHERE weekly_profit > 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "weekly_profit"}).
			AddRow("u1", 40.0).
			AddRow("u2", 15.5).
			AddRow("u3", 7.25))

	// u1: прибыль переносится на баланс и счётчик обнуляется одним UPDATE
	mock.ExpectExec(`weekly_profit >= \$2`).
		WithArgs("u1", 40.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("Еженедельное зачисление",
			fmt.Sprintf("Прибыль за неделю %.2f USD зачислена на ваш баланс.", 40.0), "u1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	// u2: прибыль успела измениться между выборкой и зачислением –
	// профиль пропускается и уведомления не получает
	mock.ExpectExec(`weekly_profit >= \$2`).
		WithArgs("u2", 15.5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	// u3: остальные профили обрабатываются несмотря на пропуск u2
	mock.ExpectExec(`weekly_profit >= \$2`).
		WithArgs("u3", 7.25).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("Еженедельное зачисление",
			fmt.Sprintf("Прибыль за неделю %.2f USD зачислена на ваш баланс.", 7.25), "u3").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.runSettlement()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSettlementSurvivesCreditError(t *testing.T) {
	mock := newMockPool(t)
	s := &Scheduler{log: zap.NewNop()}

	mock.ExpectQuery(`SELECT id, weekly_profit FROM profiles WHERE weekly_profit > 0`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "weekly_profit"}).
			AddRow("u1", 10.0).
			AddRow("u2", 20.0))

	mock.ExpectExec(`weekly_profit >= \$2`).
		WithArgs("u1", 10.0).
		WillReturnError(fmt.Errorf("connection reset"))

	mock.ExpectExec(`weekly_profit >= \$2`).
		WithArgs("u2", 20.0).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO notifications`).
		WithArgs("Еженедельное зачисление",
			fmt.Sprintf("Прибыль за неделю %.2f USD зачислена на ваш баланс.", 20.0), "u2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s.runSettlement()
	assert.NoError(t, mock.ExpectationsWereMet())
}
