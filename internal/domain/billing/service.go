package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinicdesk/clinicdesk/internal/platform/auth"
	"github.com/clinicdesk/clinicdesk/internal/platform/db"
)

var ErrValidation = errors.New("validation failed")

type Service struct {
	invoices InvoiceRepository
	tx       db.TxRunner
}

func NewService(invoices InvoiceRepository, tx db.TxRunner) *Service {
	return &Service{invoices: invoices, tx: tx}
}

type IssueRequest struct {
	AppointmentID uuid.UUID
	PatientID     uuid.UUID
	AmountCents   int64
}

// Issue creates a pending invoice for an appointment.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*Invoice, error) {
	switch {
	case req.AppointmentID == uuid.Nil:
		return nil, fmt.Errorf("%w: appointment_id is required", ErrValidation)
	case req.PatientID == uuid.Nil:
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	case req.AmountCents < 0:
		return nil, fmt.Errorf("%w: amount_cents must not be negative", ErrValidation)
	}

	inv := &Invoice{
		AppointmentID: req.AppointmentID,
		PatientID:     req.PatientID,
		AmountCents:   req.AmountCents,
		Status:        StatusPending,
	}
	if err := s.invoices.Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Pay settles a pending invoice. Paying twice, or paying a cancelled
// invoice, is rejected.
func (s *Service) Pay(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	var paid *Invoice
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		ok, err := s.invoices.MarkPaid(ctx, id)
		if err != nil {
			return err
		}
		if !ok {
			// Distinguish missing from non-pending for the caller.
			if _, err := s.invoices.GetByID(ctx, id); err != nil {
				return err
			}
			return ErrNotPayable
		}
		paid, err = s.invoices.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// GetInvoice returns one invoice. Patients only see their own; anyone
// else's invoice reads as not found.
func (s *Service) GetInvoice(ctx context.Context, id uuid.UUID, requester auth.Principal) (*Invoice, error) {
	inv, err := s.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester.IsPatient() && inv.PatientID != requester.ID {
		return nil, ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *Service) ListPatientInvoices(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error) {
	return s.invoices.ListByPatient(ctx, patientID, limit, offset)
}
