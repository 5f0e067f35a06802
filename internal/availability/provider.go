package availability

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"lashstudio/pkg/model"
)

// ErrUnavailable marks a transient failure to load slots. Callers surface it
// as a retryable state, never as a hard error.
var ErrUnavailable = errors.New("availability temporarily unavailable")

// Provider returns the bookable start times for a day, in display order.
// An empty result means the day has no availability. Implementations may
// block and must honour ctx.
type Provider interface {
	SlotsFor(ctx context.Context, date model.Date) ([]model.TimeSlot, error)
}

type ProviderFunc func(ctx context.Context, date model.Date) ([]model.TimeSlot, error)

func (f ProviderFunc) SlotsFor(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
	return f(ctx, date)
}

type fetchResult struct {
	slots []model.TimeSlot
	err   error
}

// Fetch calls p with a deadline. Any failure, including a provider that
// ignores cancellation and outlives the deadline, is reported as
// ErrUnavailable with the cause attached.
func Fetch(ctx context.Context, p Provider, date model.Date, timeout time.Duration) ([]model.TimeSlot, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: no provider configured", ErrUnavailable)
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan fetchResult, 1)
	go func() {
		slots, err := p.SlotsFor(ctx, date)
		done <- fetchResult{slots: slots, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if errors.Is(res.err, ErrUnavailable) {
				return nil, res.err
			}
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, res.err)
		}
		if res.slots == nil {
			return []model.TimeSlot{}, nil
		}
		return res.slots, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, ctx.Err())
	}
}

func Contains(slots []model.TimeSlot, t model.TimeSlot) bool {
	return slices.Contains(slots, t)
}
