// Package directory holds the clinic's reference data: doctors and their
// working hours, the service catalog and patient records.
package directory

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinuteOfDay is a clock time expressed as minutes since midnight, e.g. 540
// for 09:00. Working hours are stored this way so schedules are independent
// of dates and time zones.
type MinuteOfDay int16

// ParseMinuteOfDay parses an "HH:MM" string.
func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: out of range", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// At anchors the minute-of-day on a calendar date in the given location.
func (m MinuteOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(m)/60, int(m)%60, 0, 0, date.Location())
}

func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// WeekdaySet is a bitset of working days. Bit 0 is Sunday, matching
// time.Weekday, so membership checks are a single mask.
type WeekdaySet uint8

func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Weekdays expands the set into a sorted slice, Sunday first.
func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// MarshalJSON renders the set as an array of weekday numbers (0 = Sunday).
func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	days := make([]int, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, int(d))
		}
	}
	return json.Marshal(days)
}

func (s *WeekdaySet) UnmarshalJSON(data []byte) error {
	var days []int
	if err := json.Unmarshal(data, &days); err != nil {
		return err
	}
	var set WeekdaySet
	for _, d := range days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekday %d: must be 0-6", d)
		}
		set |= 1 << uint(d)
	}
	*s = set
	return nil
}

// Doctor is a practitioner patients can book with.
type Doctor struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Specialty string    `json:"specialty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DoctorSchedule is a doctor's recurring weekly working hours. One row per
// doctor; days outside the weekday set are non-working days.
type DoctorSchedule struct {
	ID        uuid.UUID   `json:"id"`
	DoctorID  uuid.UUID   `json:"doctor_id"`
	Weekdays  WeekdaySet  `json:"weekdays"`
	WorkStart MinuteOfDay `json:"work_start"`
	WorkEnd   MinuteOfDay `json:"work_end"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Service is a bookable catalog entry. Appointment length always comes from
// the service's duration.
type Service struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Patient is a clinic patient. Patient principals authenticate with the
// record ID as their subject.
type Patient struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
