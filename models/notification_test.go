package models

import (
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountUnreadDerivedPerRequest(t *testing.T) {
	mock := newMockPool(t)

	// Бейдж считается по формуле (рассылка ИЛИ адресат) И непрочитано
	mock.ExpectQuery(`\(is_broadcast = true OR recipient_id = \$1\) AND is_read = false`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))

	count, err := CountUnread("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllReadFlipsBroadcastAndOwned(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectExec(`\(is_broadcast = true OR recipient_id = \$1\) AND is_read = false`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))

	n, err := MarkAllRead("user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
