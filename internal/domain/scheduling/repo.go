package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// UpdateStatus transitions the appointment from one status to another.
	// Returns false when no row matched, i.e. the appointment is missing
	// or no longer in the expected state.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to AppointmentStatus) (bool, error)

	// UpdateStart moves a scheduled appointment to a new start time.
	UpdateStart(ctx context.Context, id uuid.UUID, start time.Time, notes string) (bool, error)

	// ListScheduledOverlapping returns the doctor's scheduled appointments
	// whose interval [start_time, start_time+duration) intersects
	// [start, end), ordered by start time. The predicate is on the full
	// interval, not the start time, so appointments crossing a day boundary
	// are included.
	ListScheduledOverlapping(ctx context.Context, doctorID uuid.UUID, start, end time.Time) ([]*Appointment, error)

	// ExistsScheduledForPatient reports whether the patient already has a
	// scheduled appointment with the doctor starting in [from, to),
	// excluding excludeID when non-nil.
	ExistsScheduledForPatient(ctx context.Context, doctorID, patientID uuid.UUID, from, to time.Time, excludeID uuid.UUID) (bool, error)

	// CountScheduledByDoctorPerDay returns scheduled appointment counts
	// keyed by "2006-01-02" date string for start times in [from, to).
	CountScheduledByDoctorPerDay(ctx context.Context, doctorID uuid.UUID, from, to time.Time) (map[string]int, error)

	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
}

// InvoiceCanceller is the piece of billing the booking path needs: cancel
// the pending invoice tagged to an appointment when the appointment itself
// is cancelled. Paid invoices are never touched from here.
type InvoiceCanceller interface {
	CancelPendingByAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
}
