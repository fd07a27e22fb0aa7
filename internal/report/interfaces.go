// Package report publishes scenario run summaries to downstream sinks: HTTP webhooks,
// AWS SQS queues, AWS SNS topics and Google Cloud Pub/Sub topics.
package report

import (
	"context"
	"strconv"
)

// Publisher sends run summaries to a downstream sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// attributes are attached to broker messages so subscribers can filter without
// decoding the payload. Empty values are left out.
func attributes(evt Event) map[string]string {
	attrs := map[string]string{"passed": strconv.FormatBool(evt.Passed)}
	if evt.App != "" {
		attrs["app"] = evt.App
	}
	if evt.Env != "" {
		attrs["env"] = evt.Env
	}
	return attrs
}
