package scheduling

import "errors"

var (
	// ErrValidation wraps missing or malformed booking input. Nothing is
	// mutated when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrAppointmentNotFound covers both a genuinely missing appointment
	// and a patient asking about someone else's appointment, so record IDs
	// are not probeable.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotConflict is an interval overlap with an existing scheduled
	// appointment for the doctor.
	ErrSlotConflict = errors.New("time slot conflicts with an existing appointment")

	// ErrDuplicateSameDay enforces the one-appointment-per-doctor-per-day
	// rule for a patient.
	ErrDuplicateSameDay = errors.New("patient already has an appointment with this doctor on that day")

	// ErrNotCancellable is returned for cancel/reschedule on an
	// appointment that is no longer scheduled.
	ErrNotCancellable = errors.New("appointment is not in a cancellable state")
)
