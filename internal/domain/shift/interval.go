package shift

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the interval is well-formed (Start < End).
func (i Interval) IsValid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals share any instant.
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1, so back-to-back
// intervals where one ends exactly when the other starts do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FindConflict returns the first shift whose interval overlaps the
// candidate, skipping canceled shifts and the shift identified by
// excludeID (the shift being updated or reassigned). The caller is
// expected to pass only shifts belonging to the same assignee.
func FindConflict(candidate Interval, existing []Shift, excludeID string) *Shift {
	for i := range existing {
		s := &existing[i]
		if s.ID == excludeID {
			continue
		}
		if s.Status == StatusCanceled {
			continue
		}
		if Overlaps(candidate, Interval{Start: s.StartTime, End: s.EndTime}) {
			return s
		}
	}
	return nil
}
