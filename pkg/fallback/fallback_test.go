package fallback

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunPrimarySucceeds(t *testing.T) {
	value, fromPrimary, err := Run(context.Background(), time.Second,
		func(context.Context) (string, error) { return "remote", nil },
		func() (string, error) { return "local", nil },
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !fromPrimary || value != "remote" {
		t.Fatalf("got %q fromPrimary=%v, want remote true", value, fromPrimary)
	}
}

func TestRunPrimaryErrorFallsBack(t *testing.T) {
	value, fromPrimary, err := Run(context.Background(), time.Second,
		func(context.Context) (string, error) { return "", errors.New("backend down") },
		func() (string, error) { return "local", nil },
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fromPrimary || value != "local" {
		t.Fatalf("got %q fromPrimary=%v, want local false", value, fromPrimary)
	}
}

func TestRunTimeoutFallsBack(t *testing.T) {
	started := time.Now()
	value, fromPrimary, err := Run(context.Background(), 20*time.Millisecond,
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			time.Sleep(5 * time.Second)
			return "remote", nil
		},
		func() (string, error) { return "local", nil },
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fromPrimary || value != "local" {
		t.Fatalf("got %q fromPrimary=%v, want local false", value, fromPrimary)
	}
	if elapsed := time.Since(started); elapsed > time.Second {
		t.Fatalf("timeout not honored, took %s", elapsed)
	}
}

func TestRunCancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	value, fromPrimary, err := Run(ctx, time.Second,
		func(ctx context.Context) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
		func() (string, error) { return "local", nil },
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fromPrimary || value != "local" {
		t.Fatalf("got %q fromPrimary=%v, want local false", value, fromPrimary)
	}
}

func TestRunLocalError(t *testing.T) {
	wantErr := errors.New("catalog defect")
	_, fromPrimary, err := Run(context.Background(), time.Second,
		func(context.Context) (int, error) { return 0, errors.New("remote failed") },
		func() (int, error) { return 0, wantErr },
	)
	if fromPrimary {
		t.Fatal("fromPrimary must be false when primary failed")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("got %v, want local error", err)
	}
}
