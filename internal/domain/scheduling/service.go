package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/domain/directory"
	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
	"github.com/clinicdesk/clinicdesk/internal/platform/lock"
)

type Service struct {
	doctors      directory.DoctorRepository
	schedules    directory.ScheduleRepository
	services     directory.ServiceRepository
	appointments AppointmentRepository
	invoices     InvoiceCanceller
	tx           db.TxRunner
	locker       lock.Locker
	now          func() time.Time
}

func NewService(
	doctors directory.DoctorRepository,
	schedules directory.ScheduleRepository,
	services directory.ServiceRepository,
	appointments AppointmentRepository,
	invoices InvoiceCanceller,
	tx db.TxRunner,
	locker lock.Locker,
) *Service {
	return &Service{
		doctors:      doctors,
		schedules:    schedules,
		services:     services,
		appointments: appointments,
		invoices:     invoices,
		tx:           tx,
		locker:       locker,
		now:          time.Now,
	}
}

// -- Availability --

// DayAvailability returns the slot list for one doctor, service and date.
// "No bookable slots" is a normal fully-booked result, never an error.
func (s *Service) DayAvailability(ctx context.Context, doctorID, serviceID uuid.UUID, date time.Time) (*DayAvailability, error) {
	sched, err := s.schedules.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	svcDef, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	result := &DayAvailability{
		Date:            date.Format("2006-01-02"),
		AvailableFrom:   sched.WorkStart.String(),
		AvailableTo:     sched.WorkEnd.String(),
		AvailableDays:   sched.Weekdays,
		ServiceDuration: svcDef.DurationMinutes,
		LunchBreak:      fmt.Sprintf("%s-%s", LunchStart, LunchEnd),
		TimeSlots:       []TimeSlot{},
	}

	if !sched.Weekdays.Has(date.Weekday()) {
		result.FullyBooked = true
		result.Message = "doctor is not available on this day"
		return result, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	booked, err := s.appointments.ListScheduledOverlapping(ctx, doctorID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	result.TimeSlots, result.FullyBooked = BuildDaySlots(sched, svcDef.DurationMinutes, date, booked, s.now())
	return result, nil
}

// MonthAvailability returns the coarse capacity summary for a whole month.
func (s *Service) MonthAvailability(ctx context.Context, doctorID, serviceID uuid.UUID, year int, month time.Month) (*MonthAvailability, error) {
	sched, err := s.schedules.GetByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	svcDef, err := s.services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	from := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	counts, err := s.appointments.CountScheduledByDoctorPerDay(ctx, doctorID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}

	return &MonthAvailability{
		Month:         fmt.Sprintf("%04d-%02d", year, int(month)),
		AvailableFrom: sched.WorkStart.String(),
		AvailableTo:   sched.WorkEnd.String(),
		AvailableDays: sched.Weekdays,
		Days:          BuildMonthDays(sched, svcDef.DurationMinutes, year, month, counts, now),
	}, nil
}

// -- Booking --

type BookingRequest struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	ServiceID uuid.UUID
	StartTime time.Time
	Notes     string
}

func (r BookingRequest) validate() error {
	switch {
	case r.DoctorID == uuid.Nil:
		return fmt.Errorf("%w: doctor_id is required", ErrValidation)
	case r.PatientID == uuid.Nil:
		return fmt.Errorf("%w: patient_id is required", ErrValidation)
	case r.ServiceID == uuid.Nil:
		return fmt.Errorf("%w: service_id is required", ErrValidation)
	case r.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrValidation)
	}
	return nil
}

// Book creates an appointment. The same-day duplicate check, the overlap
// check and the insert run inside one serializable transaction under the
// doctor's lock, so two racing requests for overlapping intervals end with
// exactly one success and one conflict.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	if _, err := s.doctors.GetByID(ctx, req.DoctorID); err != nil {
		return nil, err
	}
	svcDef, err := s.services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}

	var created *Appointment
	err = s.locker.WithDoctorLock(ctx, req.DoctorID, func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			dayStart := time.Date(req.StartTime.Year(), req.StartTime.Month(), req.StartTime.Day(), 0, 0, 0, 0, req.StartTime.Location())
			dayEnd := dayStart.AddDate(0, 0, 1)

			dup, err := s.appointments.ExistsScheduledForPatient(ctx, req.DoctorID, req.PatientID, dayStart, dayEnd, uuid.Nil)
			if err != nil {
				return err
			}
			if dup {
				return ErrDuplicateSameDay
			}

			// The overlap query is on the requested interval itself, not the
			// calendar day, so appointments crossing midnight are caught.
			end := req.StartTime.Add(time.Duration(svcDef.DurationMinutes) * time.Minute)
			booked, err := s.appointments.ListScheduledOverlapping(ctx, req.DoctorID, req.StartTime, end)
			if err != nil {
				return err
			}
			if len(booked) > 0 {
				return ErrSlotConflict
			}

			a := &Appointment{
				DoctorID:        req.DoctorID,
				PatientID:       req.PatientID,
				ServiceID:       req.ServiceID,
				StartTime:       req.StartTime,
				DurationMinutes: svcDef.DurationMinutes,
				Status:          StatusScheduled,
				Notes:           req.Notes,
			}
			if err := s.appointments.Create(ctx, a); err != nil {
				return err
			}
			created = a
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel sets the appointment to cancelled and cancels its pending invoice,
// if any, in one transaction. Patients can only cancel their own
// appointments; anything else reads as not found.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, requester auth.Principal) (*Appointment, error) {
	var cancelled *Appointment
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := s.appointments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if requester.IsPatient() && a.PatientID != requester.ID {
			return ErrAppointmentNotFound
		}
		if a.Status != StatusScheduled {
			return ErrNotCancellable
		}

		ok, err := s.appointments.UpdateStatus(ctx, id, StatusScheduled, StatusCancelled)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotCancellable
		}

		if _, err := s.invoices.CancelPendingByAppointment(ctx, id); err != nil {
			return err
		}

		a.Status = StatusCancelled
		cancelled = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// Reschedule moves a scheduled appointment to a new start, re-running the
// overlap validation against the doctor's other appointments. The same-day
// duplicate rule is not re-checked: the appointment being moved would always
// flag itself.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newStart time.Time, notes string, requester auth.Principal) (*Appointment, error) {
	if newStart.IsZero() {
		return nil, fmt.Errorf("%w: start_time is required", ErrValidation)
	}

	existing, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester.IsPatient() && existing.PatientID != requester.ID {
		return nil, ErrAppointmentNotFound
	}

	var updated *Appointment
	err = s.locker.WithDoctorLock(ctx, existing.DoctorID, func(ctx context.Context) error {
		return s.tx.InTx(ctx, func(ctx context.Context) error {
			a, err := s.appointments.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if a.Status != StatusScheduled {
				return ErrNotCancellable
			}

			newEnd := newStart.Add(time.Duration(a.DurationMinutes) * time.Minute)
			booked, err := s.appointments.ListScheduledOverlapping(ctx, a.DoctorID, newStart, newEnd)
			if err != nil {
				return err
			}
			for _, other := range booked {
				if other.ID != a.ID {
					return ErrSlotConflict
				}
			}

			ok, err := s.appointments.UpdateStart(ctx, id, newStart, notes)
			if err != nil {
				return err
			}
			if !ok {
				return ErrNotCancellable
			}

			a.StartTime = newStart
			a.Notes = notes
			updated = a
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// -- Reads --

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID, requester auth.Principal) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester.IsPatient() && a.PatientID != requester.ID {
		return nil, ErrAppointmentNotFound
	}
	return a, nil
}

func (s *Service) ListPatientAppointments(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListDoctorAppointments(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByDoctor(ctx, doctorID, limit, offset)
}
