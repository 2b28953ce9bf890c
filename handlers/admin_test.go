package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func adminRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/admin/deposits/:id/resolve", AdminResolveDepositHandler)
	r.POST("/api/admin/withdrawals/:id/resolve", AdminResolveWithdrawalHandler)
	return r
}

func TestAdminResolveDepositConflictOnRepeat(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs("approved", "dep-1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("dep-1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/deposits/dep-1/resolve",
		strings.NewReader(`{"status":"approved"}`))
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminResolveDepositUnknownIDNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE deposits SET status`).
		WithArgs("approved", "ghost").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/deposits/ghost/resolve",
		strings.NewReader(`{"status":"approved"}`))
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminResolveWithdrawalUnknownIDNotFound(t *testing.T) {
	mock := newMockPool(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`UPDATE withdrawals SET status`).
		WithArgs("rejected", "ghost").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/withdrawals/ghost/resolve",
		strings.NewReader(`{"status":"rejected"}`))
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminResolveDepositRejectsBadStatus(t *testing.T) {
	newMockPool(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/admin/deposits/dep-1/resolve",
		strings.NewReader(`{"status":"pending"}`))
	adminRouter().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
