package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/petfriends-client/internal/logger"
)

// Status is the result class of one scenario run.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusNoData  Status = "no_data"
	StatusSkipped Status = "skipped"
)

// Outcome records one scenario run.
type Outcome struct {
	ID      string
	Kind    Kind
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Report collects outcomes in run order.
type Report struct {
	Outcomes []Outcome
}

// Passed reports whether every scenario passed.
func (r Report) Passed() bool {
	for _, o := range r.Outcomes {
		if o.Status != StatusPassed {
			return false
		}
	}
	return true
}

// Count returns how many outcomes have status s.
func (r Report) Count(s Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Err joins the errors of every scenario that did not pass.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Status != StatusPassed && o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.ID, o.Err))
		}
	}
	return errors.Join(errs...)
}

// Runner executes scenarios sequentially against one Env.
type Runner struct {
	env *Env
	log logger.Logger
}

// NewRunner wires a runner; a nil log discards outcome logs.
func NewRunner(env *Env, log logger.Logger) *Runner {
	return &Runner{env: env, log: logger.Ensure(log)}
}

// Run executes scenarios in order. Once ctx is done the remaining ones are skipped.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) Report {
	report := Report{Outcomes: make([]Outcome, 0, len(scenarios))}
	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			report.Outcomes = append(report.Outcomes, Outcome{ID: s.ID, Kind: s.Kind, Status: StatusSkipped, Err: err})
			continue
		}
		report.Outcomes = append(report.Outcomes, r.RunOne(ctx, s))
	}

	r.log.InfoObj("scenario run completed", "summary", map[string]any{
		"total":   len(report.Outcomes),
		"passed":  report.Count(StatusPassed),
		"failed":  report.Count(StatusFailed),
		"no_data": report.Count(StatusNoData),
		"skipped": report.Count(StatusSkipped),
	})
	return report
}

// RunOne executes a single scenario and classifies its error.
func (r *Runner) RunOne(ctx context.Context, s Scenario) Outcome {
	start := time.Now()
	err := s.Run(ctx, r.env)
	out := Outcome{ID: s.ID, Kind: s.Kind, Err: err, Elapsed: time.Since(start)}

	fields := map[string]any{
		"id":         s.ID,
		"kind":       s.Kind,
		"elapsed_ms": out.Elapsed.Milliseconds(),
	}
	switch {
	case err == nil:
		out.Status = StatusPassed
		r.log.InfoObj("scenario passed", "scenario", fields)
	case errors.Is(err, ErrNoData):
		out.Status = StatusNoData
		fields["error"] = err.Error()
		r.log.WarnObj("scenario had no data", "scenario", fields)
	default:
		out.Status = StatusFailed
		fields["error"] = err.Error()
		r.log.ErrorObj("scenario failed", "scenario", fields)
	}
	return out
}
