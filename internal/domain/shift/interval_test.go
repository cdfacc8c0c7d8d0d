package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour int) time.Time {
	return time.Date(2024, 3, 4, hour, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a    Interval
		b    Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    Interval{Start: at(10), End: at(14)},
			b:    Interval{Start: at(13), End: at(16)},
			want: true,
		},
		{
			name: "no overlap",
			a:    Interval{Start: at(10), End: at(14)},
			b:    Interval{Start: at(14), End: at(18)},
			want: false,
		},
		{
			name: "back to back earlier",
			a:    Interval{Start: at(14), End: at(18)},
			b:    Interval{Start: at(10), End: at(14)},
			want: false,
		},
		{
			name: "containment",
			a:    Interval{Start: at(9), End: at(17)},
			b:    Interval{Start: at(11), End: at(12)},
			want: true,
		},
		{
			name: "identical",
			a:    Interval{Start: at(9), End: at(17)},
			b:    Interval{Start: at(9), End: at(17)},
			want: true,
		},
		{
			name: "disjoint",
			a:    Interval{Start: at(8), End: at(9)},
			b:    Interval{Start: at(15), End: at(16)},
			want: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Overlaps(c.a, c.b))
			// Overlap is symmetric
			assert.Equal(t, c.want, Overlaps(c.b, c.a))
		})
	}
}

func TestIntervalIsValid(t *testing.T) {
	assert.True(t, Interval{Start: at(9), End: at(17)}.IsValid())
	assert.False(t, Interval{Start: at(17), End: at(9)}.IsValid())
	assert.False(t, Interval{Start: at(9), End: at(9)}.IsValid())
}

func TestFindConflict(t *testing.T) {
	existing := []Shift{
		{ID: "morning", StartTime: at(8), EndTime: at(12), Status: StatusScheduled},
		{ID: "evening", StartTime: at(18), EndTime: at(22), Status: StatusScheduled},
	}

	t.Run("overlapping candidate finds the shift", func(t *testing.T) {
		conflict := FindConflict(Interval{Start: at(10), End: at(14)}, existing, "")
		require.NotNil(t, conflict)
		assert.Equal(t, "morning", conflict.ID)
	})

	t.Run("back to back candidate is free", func(t *testing.T) {
		conflict := FindConflict(Interval{Start: at(12), End: at(18)}, existing, "")
		assert.Nil(t, conflict)
	})

	t.Run("the shift being updated is excluded", func(t *testing.T) {
		conflict := FindConflict(Interval{Start: at(8), End: at(12)}, existing, "morning")
		assert.Nil(t, conflict)
	})

	t.Run("canceled shifts never conflict", func(t *testing.T) {
		canceled := []Shift{
			{ID: "dropped", StartTime: at(8), EndTime: at(12), Status: StatusCanceled},
		}
		conflict := FindConflict(Interval{Start: at(9), End: at(11)}, canceled, "")
		assert.Nil(t, conflict)
	})
}
