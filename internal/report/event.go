package report

import (
	"time"

	"github.com/samvad-hq/petfriends-client/internal/scenario"
)

// ScenarioResult is the published form of one scenario outcome.
type ScenarioResult struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Event represents the run summary published downstream.
type Event struct {
	App        string           `json:"app"`
	Env        string           `json:"env"`
	BaseURL    string           `json:"base_url"`
	Passed     bool             `json:"passed"`
	Totals     map[string]int   `json:"totals"`
	Scenarios  []ScenarioResult `json:"scenarios"`
	FinishedAt time.Time        `json:"finished_at"`
}

// NewEvent constructs an Event for a finished run.
func NewEvent(app, env, baseURL string, r scenario.Report) Event {
	evt := Event{
		App:     app,
		Env:     env,
		BaseURL: baseURL,
		Passed:  r.Passed(),
		Totals: map[string]int{
			"total":   len(r.Outcomes),
			"passed":  r.Count(scenario.StatusPassed),
			"failed":  r.Count(scenario.StatusFailed),
			"no_data": r.Count(scenario.StatusNoData),
			"skipped": r.Count(scenario.StatusSkipped),
		},
		Scenarios:  make([]ScenarioResult, 0, len(r.Outcomes)),
		FinishedAt: time.Now().UTC(),
	}
	for _, o := range r.Outcomes {
		res := ScenarioResult{
			ID:        o.ID,
			Kind:      string(o.Kind),
			Status:    string(o.Status),
			ElapsedMs: o.Elapsed.Milliseconds(),
		}
		if o.Err != nil {
			res.Error = o.Err.Error()
		}
		evt.Scenarios = append(evt.Scenarios, res)
	}
	return evt
}
