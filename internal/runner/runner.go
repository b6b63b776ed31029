// Package runner executes the catalog batch one step at a time and stops at
// the first failure.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Reporter receives every step result before the next step starts.
type Reporter interface {
	Report(title string, result any) error
}

// StepError is returned by Run for the step that stopped the batch.
type StepError struct {
	Index int
	Step  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d %q: %v", e.Index+1, e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

type Runner struct {
	catalog Catalog
	sink    Reporter
	log     zerolog.Logger
	steps   []Step
}

func New(catalog Catalog, sink Reporter, log zerolog.Logger, steps []Step) *Runner {
	return &Runner{catalog: catalog, sink: sink, log: log, steps: steps}
}

// Run executes the steps in order. Each step waits for the previous one.
func (r *Runner) Run(ctx context.Context) error {
	for i, st := range r.steps {
		if err := ctx.Err(); err != nil {
			return &StepError{Index: i, Step: st.Name, Err: err}
		}

		start := time.Now()
		result, err := st.Do(ctx, r.catalog)
		if err != nil {
			return &StepError{Index: i, Step: st.Name, Err: err}
		}
		if err := r.sink.Report(st.Title, result); err != nil {
			return &StepError{Index: i, Step: st.Name, Err: fmt.Errorf("report: %w", err)}
		}

		r.log.Debug().
			Str("step", st.Name).
			Dur("took", time.Since(start)).
			Msg("step done")
	}

	r.log.Info().Int("steps", len(r.steps)).Msg("batch complete")
	return nil
}
