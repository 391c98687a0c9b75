package scheduling

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

func weekdaySchedule(workStart, workEnd directory.MinuteOfDay) *directory.DoctorSchedule {
	return &directory.DoctorSchedule{
		ID:       uuid.New(),
		DoctorID: uuid.New(),
		Weekdays: directory.NewWeekdaySet(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday),
		WorkStart: workStart,
		WorkEnd:   workEnd,
	}
}

// 2026-03-10 is a Tuesday.
var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

// earlyMorning is before any slot of the day.
var earlyMorning = time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)

func TestBuildDaySlots_StandardDay(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)

	slots, fullyBooked := BuildDaySlots(sched, 30, testDate, nil, earlyMorning)

	// 09:00-17:00 at 30 minutes is 16 candidates; the two over lunch are
	// blocked, leaving 6 before lunch and 8 after.
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots, got %d", len(slots))
	}
	if fullyBooked {
		t.Error("expected day not fully booked")
	}

	available := 0
	for _, s := range slots {
		if s.Available {
			available++
		}
	}
	if available != 14 {
		t.Errorf("expected 14 available slots, got %d", available)
	}

	if slots[0].Time != "09:00" || !slots[0].Available {
		t.Errorf("expected first slot 09:00 available, got %s available=%v", slots[0].Time, slots[0].Available)
	}
	if slots[5].Time != "11:30" || !slots[5].Available {
		t.Errorf("expected 11:30 available, got %s available=%v", slots[5].Time, slots[5].Available)
	}
	if slots[6].Time != "12:00" || slots[6].Available || slots[6].Reason != ReasonLunch {
		t.Errorf("expected 12:00 blocked by lunch, got %+v", slots[6])
	}
	if slots[7].Time != "12:30" || slots[7].Reason != ReasonLunch {
		t.Errorf("expected 12:30 blocked by lunch, got %+v", slots[7])
	}
	if slots[8].Time != "13:00" || !slots[8].Available {
		t.Errorf("expected 13:00 available, got %+v", slots[8])
	}
	if slots[15].Time != "16:30" || !slots[15].Available {
		t.Errorf("expected final slot 16:30 available, got %+v", slots[15])
	}
}

func TestBuildDaySlots_FixedStepOrdering(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	slots, _ := BuildDaySlots(sched, 45, testDate, nil, earlyMorning)

	for i := 1; i < len(slots); i++ {
		diff := slots[i].Start.Sub(slots[i-1].Start)
		if diff != 45*time.Minute {
			t.Errorf("slot %d: expected 45m step, got %s", i, diff)
		}
	}
}

func TestBuildDaySlots_TrailingSlotEndsAtWorkEnd(t *testing.T) {
	// 09:00-10:00 with 30 minute slots: the 09:30 slot ends exactly at
	// workEnd and is included.
	sched := weekdaySchedule(9*60, 10*60)
	slots, _ := BuildDaySlots(sched, 30, testDate, nil, earlyMorning)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[1].Time != "09:30" || !slots[1].Available {
		t.Errorf("expected trailing 09:30 slot available, got %+v", slots[1])
	}
}

func TestBuildDaySlots_TrailingPartialDropped(t *testing.T) {
	// 09:00-10:15 with 30 minute slots: 10:00 would run past workEnd.
	sched := weekdaySchedule(9*60, 10*60+15)
	slots, _ := BuildDaySlots(sched, 30, testDate, nil, earlyMorning)

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[len(slots)-1].Time != "09:30" {
		t.Errorf("expected last slot 09:30, got %s", slots[len(slots)-1].Time)
	}
}

func TestBuildDaySlots_BookedSlot(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	booked := []*Appointment{{
		ID:              uuid.New(),
		StartTime:       time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          StatusScheduled,
	}}

	slots, fullyBooked := BuildDaySlots(sched, 30, testDate, booked, earlyMorning)
	if fullyBooked {
		t.Error("one booking must not fully book the day")
	}

	for _, s := range slots {
		switch s.Time {
		case "10:00":
			if s.Available || !s.IsBooked || s.Reason != ReasonBooked {
				t.Errorf("expected 10:00 booked, got %+v", s)
			}
		case "09:30", "10:30":
			if !s.Available {
				t.Errorf("expected neighbour slot %s unaffected, got %+v", s.Time, s)
			}
		}
	}
}

func TestBuildDaySlots_BookedWinsOverLunch(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	// A scheduled appointment sitting on the lunch hour: booked is the
	// surfaced reason, but both condition flags stay truthful.
	booked := []*Appointment{{
		ID:              uuid.New(),
		StartTime:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          StatusScheduled,
	}}

	slots, _ := BuildDaySlots(sched, 30, testDate, booked, earlyMorning)
	for _, s := range slots {
		if s.Time == "12:00" {
			if s.Reason != ReasonBooked {
				t.Errorf("expected reason booked, got %s", s.Reason)
			}
			if !s.IsBooked || !s.IsLunchBreak {
				t.Errorf("expected both flags set, got %+v", s)
			}
		}
	}
}

func TestBuildDaySlots_PastSlots(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	now := time.Date(2026, 3, 10, 10, 15, 0, 0, time.UTC)

	slots, _ := BuildDaySlots(sched, 30, testDate, nil, now)
	for _, s := range slots {
		switch s.Time {
		case "09:00", "09:30", "10:00":
			if s.Available || s.Reason != ReasonPast {
				t.Errorf("expected %s past, got %+v", s.Time, s)
			}
		case "10:30":
			if !s.Available {
				t.Errorf("expected 10:30 available, got %+v", s)
			}
		}
	}
}

func TestBuildDaySlots_OffDay(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	slots, fullyBooked := BuildDaySlots(sched, 30, sunday, nil, earlyMorning)
	if len(slots) != 0 {
		t.Errorf("expected no slots on off day, got %d", len(slots))
	}
	if !fullyBooked {
		t.Error("off day must be fully booked")
	}
}

func TestBuildDaySlots_EveryDayPastIsFullyBooked(t *testing.T) {
	sched := weekdaySchedule(9*60, 17*60)
	nextDay := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)

	slots, fullyBooked := BuildDaySlots(sched, 30, testDate, nil, nextDay)
	if !fullyBooked {
		t.Error("a day entirely in the past must be fully booked")
	}
	for _, s := range slots {
		if s.Available {
			t.Errorf("expected no available slots, got %+v", s)
		}
	}
}

func TestBuildDaySlots_NoAvailableSlotIntersectsLunch(t *testing.T) {
	// Duration that does not divide the morning evenly: 50 minute slots
	// from 09:00 produce a 11:30-12:20 candidate straddling lunch.
	sched := weekdaySchedule(9*60, 17*60)
	slots, _ := BuildDaySlots(sched, 50, testDate, nil, earlyMorning)

	for _, s := range slots {
		if !s.Available {
			continue
		}
		startMin := directory.MinuteOfDay(s.Start.Hour()*60 + s.Start.Minute())
		if minutesOverlap(startMin, startMin+50, LunchStart, LunchEnd) {
			t.Errorf("available slot %s intersects lunch", s.Time)
		}
	}
}
