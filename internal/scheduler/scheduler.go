// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/caraiagency/salon-cms/internal/service"
)

// Scheduler handles periodic maintenance like event log retention.
type Scheduler struct {
	events    *service.EventService
	cron      *cron.Cron
	logger    *slog.Logger
	retention time.Duration
}

// New creates a new scheduler instance. retention bounds how long event
// log entries are kept.
func New(events *service.EventService, logger *slog.Logger, retention time.Duration) *Scheduler {
	return &Scheduler{
		events:    events,
		cron:      cron.New(),
		logger:    logger,
		retention: retention,
	}
}

// Start begins the scheduler with a nightly event log purge.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("30 3 * * *", func() {
		if err := s.purgeOldEvents(); err != nil {
			s.logger.Error("failed to purge old events", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeOldEvents deletes event log entries past the retention window.
func (s *Scheduler) purgeOldEvents() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.events.DeleteOldEvents(ctx, s.retention); err != nil {
		return err
	}
	s.logger.Info("purged old events", "retention", s.retention.String())
	return nil
}
