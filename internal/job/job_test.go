// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package job

import (
	"context"
	"testing"
	"testing/synctest"
	"time"

	"github.com/jonboulle/clockwork"
)

type testType struct {
	count     int
	completed bool
}

func TestNew(t *testing.T) {
	t.Run("new job with real clock", func(t *testing.T) {
		job := New("status", time.Millisecond*100, nil, func(context.Context) {})
		if job == nil {
			t.Fatal("expected job to be non-nil")
		}
		if job.Name() != "status" {
			t.Errorf("expected job name to be %q, got %q", "status", job.Name())
		}
		if job.Interval() != time.Millisecond*100 {
			t.Errorf("expected job interval to be %s, got %s", time.Millisecond*100, job.Interval())
		}
		if job.clock == nil {
			t.Error("expected job clock to be set")
		}
	})
}

func TestJob_Start(t *testing.T) {
	t.Run("job succeeds", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			tester := &testType{}

			ctx, cancel := context.WithCancel(t.Context())
			context.AfterFunc(ctx, func() {
				tester.completed = true
			})

			testJob := New("test", time.Millisecond*100, nil, tester.testFunc)
			go testJob.Start(ctx)

			synctest.Wait()
			if tester.completed {
				t.Fatal("expected job to not be completed before context was cancelled")
			}

			cancel()
			synctest.Wait()
			if !tester.completed {
				t.Fatal("expected job to be completed after context was cancelled")
			}
		})
	})
	t.Run("job ticker executes", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(t.Context(), time.Millisecond*100)
			tester := &testType{}

			testJob := New("test", time.Millisecond*10, nil, tester.testFunc)
			testJob.Start(ctx)

			synctest.Wait()
			cancel()
			if tester.count != 5 {
				t.Errorf("expected job to execute 5 times, got %d", tester.count)
			}
		})
	})
	t.Run("job runs when the fake clock advances", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()

		clock := clockwork.NewFakeClock()
		ran := make(chan struct{}, 1)
		testJob := New("test", time.Hour, clock, func(context.Context) { ran <- struct{}{} })
		go testJob.Start(ctx)

		if err := clock.BlockUntilContext(ctx, 1); err != nil {
			t.Fatalf("failed to wait for job ticker: %s", err)
		}
		select {
		case <-ran:
			t.Fatal("expected job to not run before the interval passed")
		default:
		}

		clock.Advance(time.Hour)
		select {
		case <-ran:
		case <-time.After(time.Second):
			t.Fatal("expected job to run after the interval passed")
		}
	})
	t.Run("nil job returns", func(t *testing.T) {
		tester := New("test", time.Millisecond*100, nil, nil)
		tester.Start(t.Context())
	})
	t.Run("job without interval returns", func(t *testing.T) {
		tester := New("test", 0, nil, func(context.Context) {})
		tester.Start(t.Context())
	})
}

func (t *testType) testFunc(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	default:
		if t.count >= 5 {
			return
		}
		t.count++
	}
}
