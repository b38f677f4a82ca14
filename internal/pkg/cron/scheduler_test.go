package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextAfter(t *testing.T) {
	from := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)

	next, err := NextAfter("0 1 25 * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 25, 1, 0, 0, 0, time.UTC), next)

	next, err = NextAfter("0 1 25 * *", next)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.February, 25, 1, 0, 0, 0, time.UTC), next)

	_, err = NextAfter("every day", from)
	assert.Error(t, err)
}

func TestScheduler_AddJob(t *testing.T) {
	s := NewScheduler(time.UTC)

	err := s.AddJob("bad", "61 * * * *", func(context.Context) error { return nil })
	assert.Error(t, err)

	calls := 0
	require.NoError(t, s.AddJob("count", "@hourly", func(context.Context) error {
		calls++
		return nil
	}))
	require.NoError(t, s.AddJob("fail", "@daily", func(context.Context) error {
		return errors.New("boom")
	}))

	s.RunOnce(context.Background())
	assert.Equal(t, 1, calls)
	assert.True(t, s.Next("missing").IsZero())
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.AddJob("noop", "@every 1h", func(context.Context) error { return nil }))

	s.Start()
	s.Stop()
	assert.Len(t, s.jobs, 1)
}
