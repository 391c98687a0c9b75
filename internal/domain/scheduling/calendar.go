package scheduling

import (
	"fmt"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

// MonthCapacity is the coarse per-day slot capacity used by the month view:
// working minutes minus the fixed lunch hour, divided by the service
// duration. It deliberately skips the exact per-slot walk, so it can differ
// from BuildDaySlots near boundaries when the duration does not evenly
// divide the pre- and post-lunch windows.
func MonthCapacity(sched *directory.DoctorSchedule, durationMinutes int) int {
	working := int(LunchStart-sched.WorkStart) + int(sched.WorkEnd-LunchEnd)
	if working <= 0 || durationMinutes <= 0 {
		return 0
	}
	return working / durationMinutes
}

// BuildMonthDays summarizes every calendar day of the given month.
// bookedPerDay is keyed by "2006-01-02". A day is past when its date is
// strictly before now's date.
func BuildMonthDays(sched *directory.DoctorSchedule, durationMinutes, year int, month time.Month, bookedPerDay map[string]int, now time.Time) []DaySummary {
	capacity := MonthCapacity(sched, durationMinutes)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]DaySummary, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, now.Location())
		dateKey := date.Format("2006-01-02")

		summary := DaySummary{
			Date:              dateKey,
			Day:               d,
			DayName:           date.Weekday().String(),
			IsPast:            date.Before(today),
			IsDoctorAvailable: sched.Weekdays.Has(date.Weekday()),
			TotalSlots:        0,
		}

		if summary.IsDoctorAvailable {
			summary.TotalSlots = capacity
		}

		if summary.IsDoctorAvailable && !summary.IsPast {
			available := capacity - bookedPerDay[dateKey]
			if available < 0 {
				available = 0
			}
			summary.AvailableSlots = available
		}

		summary.FullyBooked = summary.AvailableSlots <= 0 || !summary.IsDoctorAvailable

		days = append(days, summary)
	}
	return days
}

// ParseMonth parses a "2006-01" month string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
