// Package lock provides per-doctor mutual exclusion for booking writes.
// Booking, cancelling and rescheduling serialize on the doctor's calendar so
// two racing requests cannot both pass the overlap check.
package lock

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotAcquired is returned when the lock is already held by another
// request. Callers surface this as a booking conflict.
var ErrNotAcquired = errors.New("doctor calendar lock not acquired")

// Locker guards a critical section keyed by doctor.
type Locker interface {
	WithDoctorLock(ctx context.Context, doctorID uuid.UUID, fn func(ctx context.Context) error) error
}
