package lock

import (
	"context"
	"time"
)

// acquireWithRetry polls try until the lock is acquired, the budget is
// spent, or the context is cancelled. Contention on a doctor's calendar is
// normally one short booking transaction, so a loser waits briefly for the
// holder to finish instead of failing straight away.
func acquireWithRetry(ctx context.Context, budget, interval time.Duration, try func(ctx context.Context) (bool, error)) error {
	deadline := time.NewTimer(budget)
	defer deadline.Stop()

	for {
		ok, err := try(ctx)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrNotAcquired
		case <-time.After(interval):
		}
	}
}
