// Package scheduling implements the clinic's availability and booking
// engine: day slot generation, month capacity summaries and conflict-safe
// appointment creation, cancellation and rescheduling.
package scheduling

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

// The lunch break is a fixed daily interval subtracted from every doctor's
// working hours. Half-open: a slot ending exactly at 12:00 or starting
// exactly at 13:00 does not intersect it.
const (
	LunchStart directory.MinuteOfDay = 12 * 60
	LunchEnd   directory.MinuteOfDay = 13 * 60
)

// Overlaps reports whether the half-open intervals [startA, endA) and
// [startB, endB) intersect. Slot generation and booking validation both go
// through this so they cannot disagree on boundary cases: back-to-back
// appointments sharing an endpoint do not overlap.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// minutesOverlap is the same half-open intersection test on minute-of-day
// values, used for the lunch window.
func minutesOverlap(startA, endA, startB, endB directory.MinuteOfDay) bool {
	return startA < endB && startB < endA
}

// overlapsAny reports whether [start, end) intersects any of the given
// appointments' intervals.
func overlapsAny(start, end time.Time, appts []*Appointment) bool {
	for _, a := range appts {
		if Overlaps(start, end, a.StartTime, a.EndTime()) {
			return true
		}
	}
	return false
}
