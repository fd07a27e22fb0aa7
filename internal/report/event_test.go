package report

import (
	"errors"
	"testing"
	"time"

	"github.com/samvad-hq/petfriends-client/internal/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() scenario.Report {
	return scenario.Report{Outcomes: []scenario.Outcome{
		{ID: "auth-valid-key", Kind: scenario.Positive, Status: scenario.StatusPassed, Elapsed: 120 * time.Millisecond},
		{ID: "delete-foreign-pet", Kind: scenario.Negative, Status: scenario.StatusNoData, Err: scenario.ErrNoData},
		{ID: "list-my-pets", Kind: scenario.Positive, Status: scenario.StatusFailed, Err: errors.New("status 500")},
	}}
}

func sampleEvent() Event {
	return NewEvent("petfriends-client", "test", "http://stub/", sampleReport())
}

func TestNewEventSummarisesReport(t *testing.T) {
	evt := sampleEvent()

	assert.False(t, evt.Passed)
	assert.Equal(t, 3, evt.Totals["total"])
	assert.Equal(t, 1, evt.Totals["passed"])
	assert.Equal(t, 1, evt.Totals["failed"])
	assert.Equal(t, 1, evt.Totals["no_data"])
	assert.Equal(t, 0, evt.Totals["skipped"])

	require.Len(t, evt.Scenarios, 3)
	assert.Equal(t, "auth-valid-key", evt.Scenarios[0].ID)
	assert.Equal(t, int64(120), evt.Scenarios[0].ElapsedMs)
	assert.Empty(t, evt.Scenarios[0].Error)
	assert.Equal(t, "no_data", evt.Scenarios[1].Status)
	assert.Equal(t, "status 500", evt.Scenarios[2].Error)
	assert.False(t, evt.FinishedAt.IsZero())
}

func TestAttributesSkipEmptyValues(t *testing.T) {
	assert.Equal(t, map[string]string{"app": "petfriends-client", "env": "test", "passed": "false"}, attributes(sampleEvent()))
	assert.Equal(t, map[string]string{"passed": "true"}, attributes(Event{Passed: true}))
}
