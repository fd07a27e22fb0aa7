package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPPublisherPostsJSON(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotToken  string
		got       Event
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		gotToken = r.Header.Get("X-Token")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	cfg := sanitizePublisherConfig(PublisherConfig{
		ID:   "ops",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: srv.URL, Headers: map[string]string{"X-Token": " abc "}},
	})
	pub, err := newHTTPPublisher(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "ops", pub.ID())
	assert.Equal(t, TypeHTTP, pub.Type())

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, gotType, "application/json")
	assert.Equal(t, "abc", gotToken)
	assert.Equal(t, "petfriends-client", got.App)
	assert.Len(t, got.Scenarios, 3)
}

func TestHTTPPublisherReportsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "sink unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	pub, err := newHTTPPublisher(context.Background(), WebhookConfig(srv.URL, 0), nil)
	require.NoError(t, err)

	err = pub.Publish(context.Background(), Event{App: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "sink unavailable")
}

func TestHTTPPublisherRequiresConfig(t *testing.T) {
	_, err := newHTTPPublisher(context.Background(), PublisherConfig{ID: "x", Type: TypeHTTP}, nil)
	assert.Error(t, err)
}

func TestWebhookConfigDefaults(t *testing.T) {
	cfg := WebhookConfig(" https://hooks.example.com/run ", 0)
	assert.Equal(t, WebhookID, cfg.ID)
	assert.Equal(t, TypeHTTP, cfg.Type)
	require.NotNil(t, cfg.HTTP)
	assert.Equal(t, "https://hooks.example.com/run", cfg.HTTP.URL)
	assert.Equal(t, http.MethodPost, cfg.HTTP.Method)
	assert.Equal(t, httpDefaultTimeoutSeconds, cfg.HTTP.TimeoutSeconds)
	assert.True(t, cfg.EnabledValue())
}
