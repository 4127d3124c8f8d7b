// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"sync"
	"time"
)

// RetrySchedule decides the wait before the next poll. After a successful poll the refresh
// interval applies. After the n-th consecutive failure the n-th backoff step applies, and the
// last step is repeated once the steps are exhausted. Like a backoff.BackOff it is driven by
// NextBackOff and Reset, but it never gives up.
type RetrySchedule struct {
	mu       sync.Mutex
	refresh  time.Duration
	steps    []time.Duration
	step     int
	failures int
}

// NewRetrySchedule returns a RetrySchedule with the given refresh interval and backoff steps.
func NewRetrySchedule(refresh time.Duration, steps []time.Duration) *RetrySchedule {
	return &RetrySchedule{
		refresh: refresh,
		steps:   append([]time.Duration(nil), steps...),
	}
}

// Next records the outcome of a poll and returns the wait before the next one.
func (r *RetrySchedule) Next(success bool) time.Duration {
	if success {
		r.Reset()
		return r.refresh
	}
	return r.NextBackOff()
}

// NextBackOff records a failed poll and returns the backoff step for the current streak.
func (r *RetrySchedule) NextBackOff() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failures++
	if len(r.steps) == 0 {
		return r.refresh
	}
	wait := r.steps[r.step]
	// the step index stops at the last step
	r.step = min(r.step+1, len(r.steps)-1)
	return wait
}

// Reset clears the failure streak.
func (r *RetrySchedule) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.step = 0
	r.failures = 0
}

// Failures returns the number of consecutive failed polls.
func (r *RetrySchedule) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}
