// LoreAtlas - Location-Based Historical Discovery
// Copyright 2026 M. Whitcomb (mwhitcomb)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mwhitcomb/loreatlas

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

// countingService runs until its context is canceled, optionally failing
// its first failUntil starts so restart behavior can be observed.
type countingService struct {
	name      string
	starts    atomic.Int64
	failUntil int64
}

func (s *countingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failUntil {
		return errors.New("transient failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *countingService) String() string { return s.name }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestNewTree_DefaultsAppliedForZeroConfig(t *testing.T) {
	tree := NewTree(testLogger(), TreeConfig{})
	if tree.root == nil || tree.api == nil || tree.jobs == nil {
		t.Fatal("expected all three supervisors to be constructed")
	}
}

func TestTree_StartsAndStopsGracefully(t *testing.T) {
	tree := NewTree(testLogger(), TreeConfig{
		FailureBackoff:  100 * time.Millisecond,
		ShutdownTimeout: time.Second,
	})

	apiSvc := &countingService{name: "api-svc"}
	jobSvc := &countingService{name: "job-svc"}
	tree.AddAPIService(apiSvc)
	tree.AddJobService(jobSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- tree.Serve(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("tree did not shut down in time")
	}

	if apiSvc.starts.Load() < 1 {
		t.Error("api service was not started")
	}
	if jobSvc.starts.Load() < 1 {
		t.Error("job service was not started")
	}
}

func TestTree_ServeBackgroundReturnsChannel(t *testing.T) {
	tree := NewTree(testLogger(), TreeConfig{ShutdownTimeout: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	errCh := tree.ServeBackground(ctx)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("did not receive from error channel")
	}
}

func TestTree_FailingJobIsRestartedWithoutDisturbingAPI(t *testing.T) {
	tree := NewTree(testLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})

	flaky := &countingService{name: "flaky-job", failUntil: 2}
	stable := &countingService{name: "stable-api"}
	tree.AddJobService(flaky)
	tree.AddAPIService(stable)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go tree.Serve(ctx)
	time.Sleep(200 * time.Millisecond)

	if got := flaky.starts.Load(); got < 3 {
		t.Errorf("expected at least 3 starts for flaky service, got %d", got)
	}
	if stable.starts.Load() != 1 {
		t.Errorf("expected exactly 1 start for stable service, got %d", stable.starts.Load())
	}
}

func TestDefaultTreeConfig(t *testing.T) {
	config := DefaultTreeConfig()

	if config.FailureThreshold != 5.0 {
		t.Errorf("expected FailureThreshold 5.0, got %f", config.FailureThreshold)
	}
	if config.FailureDecay != 30.0 {
		t.Errorf("expected FailureDecay 30.0, got %f", config.FailureDecay)
	}
	if config.FailureBackoff != 15*time.Second {
		t.Errorf("expected FailureBackoff 15s, got %v", config.FailureBackoff)
	}
	if config.ShutdownTimeout != 10*time.Second {
		t.Errorf("expected ShutdownTimeout 10s, got %v", config.ShutdownTimeout)
	}
}
