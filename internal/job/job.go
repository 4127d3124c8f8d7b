// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Job represents a named task that runs at a fixed interval and never overlaps with
// itself (singleton mode).
type Job struct {
	name     string
	interval time.Duration
	clock    clockwork.Clock
	task     func(context.Context)
}

// New creates a new Job with the given name, interval and task. A nil clock uses the
// real wall clock.
func New(name string, interval time.Duration, clock clockwork.Clock, task func(context.Context)) *Job {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Job{
		name:     name,
		interval: interval,
		clock:    clock,
		task:     task,
	}
}

// Name returns the name of the job.
func (j *Job) Name() string {
	return j.name
}

// Interval returns the time between two runs of the job.
func (j *Job) Interval() time.Duration {
	return j.interval
}

// Start begins executing the job on the given context. It returns when the context is cancelled.
// If a tick fires while a previous run is still executing, that tick is skipped.
func (j *Job) Start(ctx context.Context) {
	if j.task == nil || j.interval <= 0 {
		return
	}

	ticker := j.clock.NewTicker(j.interval)
	defer ticker.Stop()

	// 1-slot semaphore, held while a run is in progress
	sem := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			select {
			case sem <- struct{}{}:
				go func() {
					defer func() { <-sem }()
					runCtx, cancel := context.WithCancel(ctx)
					defer cancel()
					j.task(runCtx)
				}()
			default:
			}
		}
	}
}
