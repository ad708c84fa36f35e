package probe

import (
	"context"
	"fmt"
	"sync"
)

// RunAll launches every task in its own goroutine, waits for all of them, and
// returns one error slot per task in input order. A panic inside a task is
// recovered and surfaced as that task's error. No task's failure affects any
// sibling, and the call never returns early.
//
// Every probe group and the orchestrator's phases are built on this; it is
// the only join logic in the codebase.
func RunAll(ctx context.Context, tasks ...func(context.Context) error) []error {
	errs := make([]error, len(tasks))
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(i int, task func(context.Context) error) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("probe task panicked: %v", r)
				}
			}()
			errs[i] = task(ctx)
		}(i, task)
	}

	wg.Wait()
	return errs
}
