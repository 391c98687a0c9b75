package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
)

type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Terminal reports whether the status permits no further transitions from
// the booking path.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Appointment is a booked visit. The interval it occupies on the doctor's
// calendar is [StartTime, StartTime+Duration); only scheduled appointments
// block other bookings.
type Appointment struct {
	ID              uuid.UUID         `json:"id"`
	DoctorID        uuid.UUID         `json:"doctor_id"`
	PatientID       uuid.UUID         `json:"patient_id"`
	ServiceID       uuid.UUID         `json:"service_id"`
	StartTime       time.Time         `json:"start_time"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

type SlotReason string

const (
	ReasonNone              SlotReason = ""
	ReasonBooked            SlotReason = "booked"
	ReasonPast              SlotReason = "past"
	ReasonLunch             SlotReason = "lunch"
	ReasonDoctorUnavailable SlotReason = "doctor_unavailable"
)

// TimeSlot is one candidate booking interval in a day's availability result.
// Slots are computed fresh on every query; they are never cached because the
// booking set can change between calls. The condition flags are each set
// independently; Reason surfaces exactly one of them, booked winning over
// past winning over lunch.
type TimeSlot struct {
	Start        time.Time  `json:"-"`
	Time         string     `json:"time"`
	Available    bool       `json:"available"`
	IsBooked     bool       `json:"is_booked"`
	IsPast       bool       `json:"is_past"`
	IsLunchBreak bool       `json:"is_lunch_break"`
	Reason       SlotReason `json:"reason,omitempty"`
}

// DayAvailability is the slot list for one doctor, service and date.
type DayAvailability struct {
	Date            string               `json:"date"`
	AvailableFrom   string               `json:"available_from"`
	AvailableTo     string               `json:"available_to"`
	AvailableDays   directory.WeekdaySet `json:"available_days"`
	ServiceDuration int                  `json:"service_duration"`
	LunchBreak      string               `json:"lunch_break"`
	TimeSlots       []TimeSlot           `json:"time_slots"`
	FullyBooked     bool                 `json:"fully_booked"`
	Message         string               `json:"message,omitempty"`
}

// DaySummary is one calendar day in a month availability result. Capacity is
// coarse (working minutes minus lunch, divided by duration) and can disagree
// with the exact day slot walk near boundaries; callers needing exact slots
// must query the day endpoint.
type DaySummary struct {
	Date              string `json:"date"`
	Day               int    `json:"day"`
	DayName           string `json:"day_name"`
	FullyBooked       bool   `json:"fully_booked"`
	AvailableSlots    int    `json:"available_slots"`
	TotalSlots        int    `json:"total_slots"`
	IsPast            bool   `json:"is_past"`
	IsDoctorAvailable bool   `json:"is_doctor_available"`
}

// MonthAvailability is the capacity summary for a whole month.
type MonthAvailability struct {
	Month         string               `json:"month"`
	AvailableFrom string               `json:"available_from"`
	AvailableTo   string               `json:"available_to"`
	AvailableDays directory.WeekdaySet `json:"available_days"`
	Days          []DaySummary         `json:"days"`
}
