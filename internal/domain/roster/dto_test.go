package roster

import (
	"testing"

	"github.com/rosterly/rosterly-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRosterRequestValidate(t *testing.T) {
	valid := CreateRosterRequest{
		Title:     "Week 12",
		StartDate: "2024-03-18",
		EndDate:   "2024-03-24",
	}
	assert.NoError(t, valid.Validate())

	t.Run("missing title", func(t *testing.T) {
		req := valid
		req.Title = "  "
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "title")
	})

	t.Run("start must precede end", func(t *testing.T) {
		req := valid
		req.StartDate = "2024-03-24"
		req.EndDate = "2024-03-18"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
	})

	t.Run("equal dates rejected", func(t *testing.T) {
		req := valid
		req.EndDate = req.StartDate
		assert.Error(t, req.Validate())
	})

	t.Run("malformed dates", func(t *testing.T) {
		req := valid
		req.StartDate = "18/03/2024"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Contains(t, errs.ToMap(), "start_date")
	})
}

func TestUpdateRosterRequestValidate(t *testing.T) {
	t.Run("empty request is fine", func(t *testing.T) {
		req := UpdateRosterRequest{ID: "r-1"}
		assert.NoError(t, req.Validate())
	})

	t.Run("blank title rejected", func(t *testing.T) {
		blank := ""
		req := UpdateRosterRequest{ID: "r-1", Title: &blank}
		assert.Error(t, req.Validate())
	})

	t.Run("bad date rejected", func(t *testing.T) {
		bad := "soon"
		req := UpdateRosterRequest{ID: "r-1", EndDate: &bad}
		assert.Error(t, req.Validate())
	})
}
