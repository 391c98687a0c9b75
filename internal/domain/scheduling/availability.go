package scheduling

import (
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

// BuildDaySlots produces the slot list for one doctor, service duration and
// date. The walk partitions the working window in fixed duration steps from
// workStart; a trailing slot is kept when it ends exactly at workEnd. The
// second return value is true when every slot is unavailable.
//
// Days outside the doctor's weekday set short-circuit to an empty list; the
// caller reports that as fully booked with a doctor_unavailable message.
func BuildDaySlots(sched *directory.DoctorSchedule, durationMinutes int, date time.Time, booked []*Appointment, now time.Time) ([]TimeSlot, bool) {
	if !sched.Weekdays.Has(date.Weekday()) {
		return []TimeSlot{}, true
	}

	step := directory.MinuteOfDay(durationMinutes)
	duration := time.Duration(durationMinutes) * time.Minute

	slots := make([]TimeSlot, 0, int((sched.WorkEnd-sched.WorkStart)/step))
	fullyBooked := true

	for startMin := sched.WorkStart; startMin+step <= sched.WorkEnd; startMin += step {
		endMin := startMin + step
		start := startMin.At(date)
		end := start.Add(duration)

		slot := TimeSlot{
			Start:        start,
			Time:         startMin.String(),
			IsLunchBreak: minutesOverlap(startMin, endMin, LunchStart, LunchEnd),
			IsPast:       start.Before(now),
			IsBooked:     overlapsAny(start, end, booked),
		}

		switch {
		case slot.IsBooked:
			slot.Reason = ReasonBooked
		case slot.IsPast:
			slot.Reason = ReasonPast
		case slot.IsLunchBreak:
			slot.Reason = ReasonLunch
		default:
			slot.Available = true
			fullyBooked = false
		}

		slots = append(slots, slot)
	}

	if len(slots) == 0 {
		fullyBooked = true
	}
	return slots, fullyBooked
}
