package shift

import (
	"testing"

	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateShiftRequestValidate(t *testing.T) {
	valid := CreateShiftRequest{
		RosterID:  "r-1",
		Title:     "Morning care visit",
		StartTime: "2024-03-18T09:00:00Z",
		EndTime:   "2024-03-18T17:00:00Z",
	}
	assert.NoError(t, valid.Validate())

	t.Run("start must precede end", func(t *testing.T) {
		req := valid
		req.StartTime = "2024-03-18T17:00:00Z"
		req.EndTime = "2024-03-18T09:00:00Z"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_time")
	})

	t.Run("zero length shift rejected", func(t *testing.T) {
		req := valid
		req.EndTime = req.StartTime
		assert.Error(t, req.Validate())
	})

	t.Run("missing roster", func(t *testing.T) {
		req := valid
		req.RosterID = ""
		assert.Error(t, req.Validate())
	})

	t.Run("non ISO8601 timestamps rejected", func(t *testing.T) {
		req := valid
		req.StartTime = "2024-03-18 09:00"
		assert.Error(t, req.Validate())
	})
}

func TestUpdateShiftRequestValidate(t *testing.T) {
	t.Run("unknown status rejected", func(t *testing.T) {
		status := "paused"
		req := UpdateShiftRequest{ID: "s-1", Status: &status}
		assert.Error(t, req.Validate())
	})

	t.Run("known statuses accepted", func(t *testing.T) {
		for _, s := range validStatuses {
			status := s
			req := UpdateShiftRequest{ID: "s-1", Status: &status}
			assert.NoError(t, req.Validate(), "status %s", s)
		}
	})
}
