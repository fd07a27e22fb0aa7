// Package petfriends is a client for the PetFriends pet-management REST service.
//
// Every operation issues exactly one request and returns the status code together with
// the body, which is JSON when it parses and raw text otherwise. Non-2xx statuses are
// ordinary results; only transport and local file failures are returned as errors.
package petfriends

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/samvad-hq/petfriends-client/pkg/httpclient"
)

const (
	DefaultBaseURL = "https://petfriends1.herokuapp.com/"

	// FilterAll lists the first page of every user's pets.
	FilterAll = ""
	// FilterMyPets lists only the caller's pets.
	FilterMyPets = "my_pets"

	headerAuthKey  = "auth_key"
	headerEmail    = "email"
	headerPassword = "password"
)

// Client issues PetFriends API calls against a fixed base URL.
type Client struct {
	baseURL *url.URL
	http    httpclient.Client
	log     Logger
}

// New builds a client. A nil client uses resty with transport defaults; a nil log
// discards request logs.
func New(baseURL string, client httpclient.Client, log Logger) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = httpclient.NewRestyClient(0, nil)
	}
	return &Client{
		baseURL: base,
		http:    client,
		log:     ensureLogger(log),
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}

// BaseURL returns the normalized base URL, always ending in a slash.
func (c *Client) BaseURL() string { return c.baseURL.String() }

// endpoint joins escaped path segments onto the base URL.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.String() + strings.Join(escaped, "/")
}

func authHeaders(key AuthKey) map[string]string {
	return map[string]string{headerAuthKey: key.Key}
}

// send performs one request and logs its outcome without headers or form values.
func (c *Client) send(ctx context.Context, op string, req httpclient.Request) (httpclient.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		c.log.DebugObj("petfriends request failed", "request", map[string]any{
			"operation": op,
			"method":    req.Method,
			"url":       req.URL,
			"error":     err.Error(),
		})
		return nil, err
	}
	c.log.DebugObj("petfriends request completed", "request", map[string]any{
		"operation":  op,
		"method":     req.Method,
		"url":        req.URL,
		"status":     resp.StatusCode(),
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return resp, nil
}

func (c *Client) call(ctx context.Context, op string, req httpclient.Request) (Result, error) {
	resp, err := c.send(ctx, op, req)
	if err != nil {
		return Result{}, err
	}
	return Result{Status: resp.StatusCode(), Body: NewBody(resp.Body())}, nil
}
