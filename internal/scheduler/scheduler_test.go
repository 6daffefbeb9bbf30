// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/scholarcms/internal/testutil"
)

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(logger)
	require.NotNil(t, s)
	assert.NotNil(t, s.cron)
	assert.Same(t, logger, s.logger)
	assert.Empty(t, s.List())
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	require.NoError(t, s.Register("noop", "does nothing", "@hourly", Func(func() {})))

	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}

func TestScheduler_Register(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	require.NoError(t, s.Register("b_job", "second", "@every 10m", Func(func() {})))
	require.NoError(t, s.Register("a_job", "first", "0 3 * * *", Func(func() {})))

	err := s.Register("a_job", "again", "@hourly", Func(func() {}))
	assert.ErrorContains(t, err, "already registered")

	err = s.Register("bad", "", "every hour", Func(func() {}))
	assert.ErrorContains(t, err, "invalid cron expression")

	jobs := s.List()
	require.Len(t, jobs, 2)
	assert.Equal(t, "a_job", jobs[0].Name)
	assert.Equal(t, "0 3 * * *", jobs[0].Schedule)
	assert.Equal(t, "b_job", jobs[1].Name)
	assert.Equal(t, "second", jobs[1].Description)
}

func TestScheduler_NextRunAfterStart(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	require.NoError(t, s.Register("audit", "", "@every 1h", Func(func() {})))

	s.Start()
	t.Cleanup(func() { _ = s.Stop(context.Background()) })

	// cron computes Next on start
	require.Eventually(t, func() bool {
		return !s.List()[0].NextRun.IsZero()
	}, time.Second, 10*time.Millisecond)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.List()[0].NextRun, 5*time.Second)
}

func TestScheduler_TriggerNow(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	var runs atomic.Int32
	require.NoError(t, s.Register("count", "", "@hourly", func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context should carry a deadline")
		}
		runs.Add(1)
		return nil
	}))

	require.NoError(t, s.TriggerNow(context.Background(), "count"))
	assert.Equal(t, int32(1), runs.Load())

	err := s.TriggerNow(context.Background(), "missing")
	assert.ErrorContains(t, err, "job not found")
}

func TestScheduler_RecordsLastError(t *testing.T) {
	s := New(testutil.TestLoggerSilent())

	fail := true
	require.NoError(t, s.Register("flaky", "", "@hourly", func(context.Context) error {
		if fail {
			return errors.New("database is locked")
		}
		return nil
	}))

	err := s.TriggerNow(context.Background(), "flaky")
	require.Error(t, err)
	assert.Equal(t, "database is locked", s.List()[0].LastError)

	fail = false
	require.NoError(t, s.TriggerNow(context.Background(), "flaky"))
	assert.Empty(t, s.List()[0].LastError)
}

func TestScheduler_StopTimesOut(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	release := make(chan struct{})
	started := make(chan struct{})

	// a cron-driven run blocks Stop until it returns
	s.cron.Schedule(everyTick{}, funcJob(func() {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
	}))
	s.Start()
	t.Cleanup(func() { close(release) })

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, s.Stop(ctx), context.DeadlineExceeded)
}

// everyTick fires as soon as possible.
type everyTick struct{}

func (everyTick) Next(t time.Time) time.Time { return t.Add(time.Millisecond) }

type funcJob func()

func (f funcJob) Run() { f() }
