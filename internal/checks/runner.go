package checks

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dendrascience/toolbelt/registry"
	"github.com/dendrascience/toolbelt/selector"
	"github.com/dendrascience/toolbelt/util"
	"github.com/dendrascience/toolbelt/worker"
	"golang.org/x/sync/errgroup"
)

// Options control a Run.
type Options struct {
	// Timeout bounds each attempt. Zero means no bound.
	Timeout time.Duration
	// Retry decides how often a failing check is attempted.
	Retry util.YesNoOnce
	// MaxAttempts caps attempts when Retry is util.Yes.
	MaxAttempts int
	// Parallel is the number of checks run at once; below 2 runs them in order.
	Parallel int
	// TempDir is the parent of each attempt's scratch directory.
	TempDir  string
	Fixtures *util.FixtureLoader
}

// Result is the outcome of one check.
type Result struct {
	Name     string
	WorkerID string
	Attempts int
	Duration time.Duration
	Err      error
}

func (r Result) Passed() bool {
	return r.Err == nil
}

// Select resolves names to runnable checks, in the order given. With no
// names every runnable check is selected. A grouping kind expands to the
// runnable checks beneath it.
func Select(r *registry.Registry[Check], names []string) ([]registry.Entry[Check], error) {
	if len(names) == 0 {
		return r.Leaves(Root)
	}
	var kinds []registry.Entry[Check]
	for _, e := range r.Entries() {
		if r.IsSubtype(e.Name(), Root) {
			kinds = append(kinds, e)
		}
	}
	var out []registry.Entry[Check]
	for e, err := range selector.ByName(names, kinds) {
		if err != nil {
			return nil, err
		}
		if !e.Value().Abstract() {
			out = append(out, e)
			continue
		}
		leaves, err := r.Leaves(e.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, leaves...)
	}
	return out, nil
}

// Run executes entries and returns one Result per entry, in entry order.
// Every attempt runs on its own worker so a panic or a hang in one check
// is reported against that check alone.
func Run(ctx context.Context, entries []registry.Entry[Check], opts Options) []Result {
	results := make([]Result, len(entries))
	var g errgroup.Group
	g.SetLimit(max(opts.Parallel, 1))
	for i, e := range entries {
		g.Go(func() error {
			results[i] = runOne(ctx, e, opts)
			return nil
		})
	}
	g.Wait()
	return results
}

func runOne(ctx context.Context, e registry.Entry[Check], opts Options) Result {
	res := Result{Name: e.Name()}
	start := time.Now()
	attempts := opts.Retry.Attempts(opts.MaxAttempts)
	for a := 1; a <= attempts; a++ {
		if err := ctx.Err(); err != nil {
			if res.Err == nil {
				res.Err = err
			}
			break
		}
		res.Attempts = a
		res.WorkerID, res.Err = attempt(ctx, e.Value(), opts)
		if res.Err == nil || ctx.Err() != nil {
			break
		}
	}
	res.Duration = time.Since(start)
	return res
}

func attempt(ctx context.Context, c Check, opts Options) (string, error) {
	if c.Abstract() {
		return "", fmt.Errorf("%w: not runnable", ErrCheckFailed)
	}
	dir, err := os.MkdirTemp(opts.TempDir, "check-*")
	if err != nil {
		return "", err
	}

	actx, cancel := ctx, context.CancelFunc(func() {})
	if opts.Timeout > 0 {
		actx, cancel = context.WithTimeout(ctx, opts.Timeout)
	}
	defer cancel()

	w := worker.NewFunc(func() error {
		return c.Run(actx, Env{TempDir: dir, Fixtures: opts.Fixtures})
	})
	w.Start()
	_, err = w.Wait(actx)
	if err != nil && actx.Err() != nil {
		if !finished(w) {
			// the worker may still be writing to dir; leave it for the caller's cleanup
			if ctx.Err() != nil {
				return w.ID(), ctx.Err()
			}
			return w.ID(), fmt.Errorf("after %s: %w", opts.Timeout, worker.ErrJoinTimeout)
		}
		// finished while the context ended; report what the check returned
		_, err = w.Join(0)
	}
	os.RemoveAll(dir)
	return w.ID(), err
}

func finished[T any](w *worker.Worker[T]) bool {
	select {
	case <-w.Done():
		return true
	default:
		return false
	}
}
