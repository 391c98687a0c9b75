package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type DirectoryService struct {
	doctors   DoctorRepository
	schedules ScheduleRepository
	services  ServiceRepository
	patients  PatientRepository
}

func NewDirectoryService(doctors DoctorRepository, schedules ScheduleRepository, services ServiceRepository, patients PatientRepository) *DirectoryService {
	return &DirectoryService{doctors: doctors, schedules: schedules, services: services, patients: patients}
}

// -- Doctor --

func (s *DirectoryService) CreateDoctor(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	d.Active = true
	return s.doctors.Create(ctx, d)
}

func (s *DirectoryService) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *DirectoryService) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if strings.TrimSpace(d.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.doctors.Update(ctx, d)
}

func (s *DirectoryService) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// -- Doctor schedule --

func (s *DirectoryService) SetDoctorSchedule(ctx context.Context, sched *DoctorSchedule) error {
	if sched.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if sched.Weekdays == 0 {
		return fmt.Errorf("weekdays must include at least one day")
	}
	if sched.WorkStart >= sched.WorkEnd {
		return fmt.Errorf("work_start must be before work_end")
	}
	if _, err := s.doctors.GetByID(ctx, sched.DoctorID); err != nil {
		return err
	}
	return s.schedules.Upsert(ctx, sched)
}

func (s *DirectoryService) GetDoctorSchedule(ctx context.Context, doctorID uuid.UUID) (*DoctorSchedule, error) {
	return s.schedules.GetByDoctor(ctx, doctorID)
}

// -- Service catalog --

func (s *DirectoryService) CreateService(ctx context.Context, svc *Service) error {
	if strings.TrimSpace(svc.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	if svc.PriceCents < 0 {
		return fmt.Errorf("price_cents must not be negative")
	}
	svc.Active = true
	return s.services.Create(ctx, svc)
}

func (s *DirectoryService) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *DirectoryService) UpdateService(ctx context.Context, svc *Service) error {
	if svc.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.services.Update(ctx, svc)
}

func (s *DirectoryService) ListServices(ctx context.Context, limit, offset int) ([]*Service, int, error) {
	return s.services.List(ctx, limit, offset)
}

// -- Patient --

func (s *DirectoryService) CreatePatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return fmt.Errorf("invalid email")
	}
	return s.patients.Create(ctx, p)
}

func (s *DirectoryService) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *DirectoryService) UpdatePatient(ctx context.Context, p *Patient) error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("full_name is required")
	}
	return s.patients.Update(ctx, p)
}

func (s *DirectoryService) ListPatients(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}
