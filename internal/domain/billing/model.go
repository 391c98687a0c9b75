package billing

import (
	"time"

	"github.com/google/uuid"
)

type InvoiceStatus string

const (
	StatusPending   InvoiceStatus = "pending"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

// Invoice bills one appointment. It is created pending when the appointment
// is booked and settles or cancels from there; a paid invoice never moves.
type Invoice struct {
	ID            uuid.UUID     `json:"id"`
	AppointmentID uuid.UUID     `json:"appointment_id"`
	PatientID     uuid.UUID     `json:"patient_id"`
	AmountCents   int64         `json:"amount_cents"`
	Status        InvoiceStatus `json:"status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
