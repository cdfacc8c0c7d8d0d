package attendance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClockInRequestValidate(t *testing.T) {
	valid := ClockInRequest{
		ShiftID: "s-1",
		UserID:  "u-1",
		ClockIn: "2024-03-18T09:00:00Z",
	}
	assert.NoError(t, valid.Validate())

	t.Run("clock out before clock in", func(t *testing.T) {
		out := "2024-03-18T08:00:00Z"
		req := valid
		req.ClockOut = &out
		assert.Error(t, req.Validate())
	})

	t.Run("clock out after clock in", func(t *testing.T) {
		out := "2024-03-18T17:00:00Z"
		req := valid
		req.ClockOut = &out
		assert.NoError(t, req.Validate())
	})

	t.Run("negative break", func(t *testing.T) {
		neg := decimal.RequireFromString("-0.5")
		req := valid
		req.BreakDuration = &neg
		assert.Error(t, req.Validate())
	})

	t.Run("missing shift", func(t *testing.T) {
		req := valid
		req.ShiftID = ""
		assert.Error(t, req.Validate())
	})
}

func TestUpdateAttendanceRequestValidate(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		status := "archived"
		req := UpdateAttendanceRequest{ID: "a-1", Status: &status}
		assert.Error(t, req.Validate())
	})

	t.Run("break only edit", func(t *testing.T) {
		br := decimal.RequireFromString("0.75")
		req := UpdateAttendanceRequest{ID: "a-1", BreakDuration: &br}
		assert.NoError(t, req.Validate())
	})
}
