package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDailyAccrual(t *testing.T) {
	// 1000 под 7% в неделю = 10 в день
	assert.InDelta(t, 10.0, DailyAccrual(1000, 7), 1e-9)
	// 500 под 3.5% в неделю
	assert.InDelta(t, 2.5, DailyAccrual(500, 3.5), 1e-9)
	assert.Zero(t, DailyAccrual(0, 7))
	assert.Zero(t, DailyAccrual(1000, 0))
}
