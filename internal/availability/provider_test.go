package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"lashstudio/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	slots, err := Fetch(context.Background(), DefaultSchedule(), model.NewDate(2025, time.June, 10), time.Second)
	require.NoError(t, err)
	assert.Len(t, slots, 9)
}

func TestFetch_NilSlotsBecomeEmpty(t *testing.T) {
	p := ProviderFunc(func(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
		return nil, nil
	})

	slots, err := Fetch(context.Background(), p, model.NewDate(2025, time.June, 10), time.Second)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFetch_ProviderError(t *testing.T) {
	cause := errors.New("upstream 502")
	p := ProviderFunc(func(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
		return nil, cause
	})

	_, err := Fetch(context.Background(), p, model.NewDate(2025, time.June, 10), time.Second)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	// Ignores ctx on purpose.
	p := ProviderFunc(func(ctx context.Context, date model.Date) ([]model.TimeSlot, error) {
		<-release
		return []model.TimeSlot{"9:00 AM"}, nil
	})

	start := time.Now()
	_, err := Fetch(context.Background(), p, model.NewDate(2025, time.June, 10), 20*time.Millisecond)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestFetch_NilProvider(t *testing.T) {
	_, err := Fetch(context.Background(), nil, model.NewDate(2025, time.June, 10), time.Second)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestContains(t *testing.T) {
	slots := []model.TimeSlot{"9:00 AM", "2:00 PM"}

	assert.True(t, Contains(slots, "2:00 PM"))
	assert.False(t, Contains(slots, "3:00 PM"))
	assert.False(t, Contains(nil, "9:00 AM"))
}
