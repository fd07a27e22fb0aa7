// Package scenario holds the end-to-end checks run against a PetFriends server. Each
// scenario authenticates on its own, performs one or two client calls and asserts on the
// returned status codes and fields.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/samvad-hq/petfriends-client/pkg/petfriends"
)

// Kind separates scenarios expecting success from those expecting rejection.
type Kind string

const (
	Positive Kind = "positive"
	Negative Kind = "negative"
)

// Scenario is one independent check.
type Scenario struct {
	ID          string
	Kind        Kind
	Description string
	Run         func(ctx context.Context, env *Env) error
}

// ErrNoData means the server holds no pet the scenario could work on. It is reported
// apart from assertion failures.
var ErrNoData = errors.New("no pets available")

// AssertionError is a failed expectation about a server response.
type AssertionError struct {
	Msg string
}

func (e *AssertionError) Error() string { return e.Msg }

func failf(format string, args ...any) error {
	return &AssertionError{Msg: fmt.Sprintf(format, args...)}
}

func expectStatus(op string, got, want int) error {
	if got != want {
		return failf("%s: expected status %d, got %d", op, want, got)
	}
	return nil
}

// expectResult is expectStatus with the start of the body attached for context.
func expectResult(op string, res petfriends.Result, want int) error {
	if res.Status != want {
		return failf("%s: expected status %d, got %d: %s", op, want, res.Status, bodySnippet(res.Body))
	}
	return nil
}

func expectRejected(op string, got int) error {
	if got == http.StatusOK {
		return failf("%s: expected a non-200 status, got 200", op)
	}
	return nil
}

// bodySnippet shortens a body for failure messages. HTML error pages are reduced to
// their visible text.
func bodySnippet(b petfriends.Body) string {
	text := strings.TrimSpace(b.Text())
	if !b.IsJSON() && strings.Contains(text, "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(text)); err == nil {
			if visible := strings.Join(strings.Fields(doc.Text()), " "); visible != "" {
				text = visible
			}
		}
	}
	if len(text) > 160 {
		text = text[:160] + "..."
	}
	return text
}

// uniqueName suffixes base so repeated runs against a shared account stay distinguishable.
func uniqueName(base string) string {
	return base + " " + uuid.NewString()[:8]
}
