package billing

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvoiceNotFound = errors.New("invoice not found")
	ErrNotPayable      = errors.New("invoice is not payable")
)

type InvoiceRepository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	// MarkPaid transitions a pending invoice to paid. Returns false when the
	// invoice is missing or not pending.
	MarkPaid(ctx context.Context, id uuid.UUID) (bool, error)
	// CancelPendingByAppointment cancels the pending invoice attached to an
	// appointment, if one exists. Paid invoices are never touched.
	CancelPendingByAppointment(ctx context.Context, appointmentID uuid.UUID) (bool, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Invoice, int, error)
}
