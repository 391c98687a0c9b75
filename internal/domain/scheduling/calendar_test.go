package scheduling

import (
	"testing"
	"time"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

func TestMonthCapacity(t *testing.T) {
	cases := []struct {
		name      string
		workStart int
		workEnd   int
		duration  int
		want      int
	}{
		// 3h morning + 4h afternoon = 420 minutes.
		{"standard 30min", 9 * 60, 17 * 60, 30, 14},
		{"standard 60min", 9 * 60, 17 * 60, 60, 7},
		// 420/45 floors to 9; the exact per-slot walk would give 8 (the
		// 12:00 and 12:45 candidates straddle lunch). The month view is
		// allowed to be coarser.
		{"non-dividing 45min", 9 * 60, 17 * 60, 45, 9},
		{"zero duration", 9 * 60, 17 * 60, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sched := weekdaySchedule(directory.MinuteOfDay(tc.workStart), directory.MinuteOfDay(tc.workEnd))
			if got := MonthCapacity(sched, tc.duration); got != tc.want {
				t.Errorf("MonthCapacity = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestBuildMonthDays(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	booked := map[string]int{
		"2026-03-11": 3,
		"2026-03-13": 14, // at capacity
	}

	days := BuildMonthDays(sched, 30, 2026, time.March, booked, now)

	if len(days) != 31 {
		t.Fatalf("expected 31 days in March, got %d", len(days))
	}

	byDate := make(map[string]DaySummary, len(days))
	for _, d := range days {
		byDate[d.Date] = d
	}

	// 2026-03-01 is a Sunday: not a working day.
	sunday := byDate["2026-03-01"]
	if sunday.IsDoctorAvailable {
		t.Error("expected Sunday unavailable")
	}
	if !sunday.FullyBooked {
		t.Error("unavailable day must read as fully booked")
	}
	if sunday.TotalSlots != 0 || sunday.AvailableSlots != 0 {
		t.Errorf("expected zero capacity on Sunday, got %+v", sunday)
	}

	// 2026-03-09 (Monday) is before now's date: past, no available slots.
	past := byDate["2026-03-09"]
	if !past.IsPast {
		t.Error("expected 03-09 to be past")
	}
	if past.AvailableSlots != 0 || !past.FullyBooked {
		t.Errorf("past day must have no availability, got %+v", past)
	}

	// Today is not past even though the morning has gone.
	today := byDate["2026-03-10"]
	if today.IsPast {
		t.Error("today must not be past")
	}
	if today.AvailableSlots != 14 {
		t.Errorf("expected 14 available today, got %d", today.AvailableSlots)
	}

	// 2026-03-11 (Wednesday) has 3 bookings.
	wed := byDate["2026-03-11"]
	if wed.TotalSlots != 14 || wed.AvailableSlots != 11 {
		t.Errorf("expected 11/14 available, got %+v", wed)
	}
	if wed.FullyBooked {
		t.Error("expected 03-11 not fully booked")
	}
	if wed.DayName != "Wednesday" || wed.Day != 11 {
		t.Errorf("unexpected day metadata: %+v", wed)
	}

	// 2026-03-13 (Friday) is at capacity.
	fri := byDate["2026-03-13"]
	if fri.AvailableSlots != 0 || !fri.FullyBooked {
		t.Errorf("expected 03-13 fully booked, got %+v", fri)
	}
}

func TestBuildMonthDays_OverbookedClampsToZero(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	days := BuildMonthDays(sched, 30, 2026, time.March, map[string]int{"2026-03-10": 99}, now)
	for _, d := range days {
		if d.Date == "2026-03-10" {
			if d.AvailableSlots != 0 {
				t.Errorf("expected clamp to 0, got %d", d.AvailableSlots)
			}
			if !d.FullyBooked {
				t.Error("expected fully booked")
			}
		}
	}
}

func TestParseMonth(t *testing.T) {
	year, month, err := ParseMonth("2026-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2026 || month != time.March {
		t.Errorf("expected 2026 March, got %d %s", year, month)
	}

	if _, _, err := ParseMonth("03-2026"); err == nil {
		t.Error("expected error for bad format")
	}
}
