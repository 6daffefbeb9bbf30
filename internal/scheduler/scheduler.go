// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs of scholarcms on
// robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/scholarcms/internal/model"
)

// jobTimeout bounds a single run of any job.
const jobTimeout = 5 * time.Minute

// JobFunc is the body of a scheduled job.
type JobFunc func(ctx context.Context) error

// registeredJob holds metadata about a registered cron job.
type registeredJob struct {
	name        string
	description string
	schedule    string
	entryID     cron.EntryID
	fn          JobFunc

	// guarded by Scheduler.mu
	lastErr      error
	lastDuration time.Duration
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name         string
	Description  string
	Schedule     string
	LastRun      time.Time
	NextRun      time.Time
	LastDuration time.Duration
	LastError    string
}

// Scheduler owns a cron instance and the jobs registered on it.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.RWMutex
	jobs map[string]*registeredJob
}

// New creates a scheduler. Panicking jobs are recovered and overlapping
// runs of the same job are skipped.
func New(logger *slog.Logger) *Scheduler {
	cl := cronLogger{logger: logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
			cron.WithLogger(cl),
		),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Register adds a job under a unique name.
func (s *Scheduler) Register(name, description, schedule string, fn JobFunc) error {
	if err := ValidateSchedule(schedule); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[name]; ok {
		return fmt.Errorf("job already registered: %s", name)
	}

	job := &registeredJob{name: name, description: description, schedule: schedule, fn: fn}
	id, err := s.cron.AddFunc(schedule, func() { _ = s.run(context.Background(), job) })
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	job.entryID = id
	s.jobs[name] = job

	s.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// Start begins executing registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop stops scheduling new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for running jobs: %w", ctx.Err())
	}
}

// List returns all registered jobs sorted by name.
func (s *Scheduler) List() []JobInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, job := range s.jobs {
		entry := s.cron.Entry(job.entryID)
		info := JobInfo{
			Name:         job.name,
			Description:  job.description,
			Schedule:     job.schedule,
			LastRun:      entry.Prev,
			NextRun:      entry.Next,
			LastDuration: job.lastDuration,
		}
		if job.lastErr != nil {
			info.LastError = job.lastErr.Error()
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a job immediately on the calling goroutine.
func (s *Scheduler) TriggerNow(ctx context.Context, name string) error {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.run(ctx, job)
}

func (s *Scheduler) run(ctx context.Context, job *registeredJob) error {
	ctx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	start := time.Now()
	err := job.fn(ctx)
	took := time.Since(start)

	s.mu.Lock()
	job.lastErr = err
	job.lastDuration = took
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "category", model.EventCategorySystem,
			"job", job.name, "duration", took, "error", err)
		return err
	}
	s.logger.Debug("scheduled job finished", "job", job.name, "duration", took)
	return nil
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
