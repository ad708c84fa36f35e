package probe

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunAll_CollectsEveryResult(t *testing.T) {
	boom := errors.New("boom")
	errs := RunAll(context.Background(),
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
		func(ctx context.Context) error { return nil },
	)

	if len(errs) != 3 {
		t.Fatalf("expected 3 error slots, got %d", len(errs))
	}
	if errs[0] != nil || errs[2] != nil {
		t.Fatalf("sibling tasks should be unaffected: %v %v", errs[0], errs[2])
	}
	if !errors.Is(errs[1], boom) {
		t.Fatalf("expected boom in slot 1, got %v", errs[1])
	}
}

func TestRunAll_RecoversPanics(t *testing.T) {
	var completed atomic.Int32
	errs := RunAll(context.Background(),
		func(ctx context.Context) error { panic("probe exploded") },
		func(ctx context.Context) error {
			completed.Add(1)
			return nil
		},
	)

	if errs[0] == nil {
		t.Fatalf("expected panic to surface as an error")
	}
	if errs[1] != nil {
		t.Fatalf("sibling should survive a panicking task, got %v", errs[1])
	}
	if completed.Load() != 1 {
		t.Fatalf("sibling task did not run to completion")
	}
}

func TestRunAll_NoTasks(t *testing.T) {
	if errs := RunAll(context.Background()); len(errs) != 0 {
		t.Fatalf("expected no error slots, got %d", len(errs))
	}
}
