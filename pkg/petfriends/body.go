package petfriends

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrTextBody is returned by typed accessors when the server answered with a non-JSON body.
var ErrTextBody = errors.New("response body is not JSON")

// ErrUnexpectedShape is returned when a JSON body lacks the field a typed accessor needs.
var ErrUnexpectedShape = errors.New("unexpected response body shape")

// BodyKind discriminates the two shapes a response body can take.
type BodyKind int

const (
	BodyText BodyKind = iota
	BodyJSON
)

func (k BodyKind) String() string {
	if k == BodyJSON {
		return "json"
	}
	return "text"
}

// Body is either a parsed JSON document or the raw response text. Callers must branch
// on Kind before assuming a schema; the server answers errors with plain text or HTML.
type Body struct {
	kind BodyKind
	raw  []byte
}

// NewBody classifies a raw payload: valid JSON becomes a JSON body, anything else
// (including an empty payload) is kept verbatim as text.
func NewBody(raw []byte) Body {
	if len(bytes.TrimSpace(raw)) > 0 && json.Valid(raw) {
		return Body{kind: BodyJSON, raw: raw}
	}
	return Body{kind: BodyText, raw: raw}
}

// TextBody builds a text body regardless of content.
func TextBody(s string) Body { return Body{kind: BodyText, raw: []byte(s)} }

func (b Body) Kind() BodyKind { return b.kind }
func (b Body) IsJSON() bool   { return b.kind == BodyJSON }

// Text returns the body verbatim, whatever its kind.
func (b Body) Text() string { return string(b.raw) }

func (b Body) String() string { return b.Text() }

// JSON returns the raw JSON document and true, or nil and false for a text body.
func (b Body) JSON() (json.RawMessage, bool) {
	if !b.IsJSON() {
		return nil, false
	}
	return json.RawMessage(b.raw), true
}

// Value decodes a JSON body into generic Go values (maps, slices, strings, float64).
func (b Body) Value() (any, error) {
	var v any
	if err := b.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode unmarshals a JSON body into v.
func (b Body) Decode(v any) error {
	if !b.IsJSON() {
		return fmt.Errorf("%w: %s", ErrTextBody, snippet(b.raw))
	}
	if err := json.Unmarshal(b.raw, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

func snippet(body []byte) string {
	if len(body) > 200 {
		body = body[:200]
	}
	return strings.TrimSpace(string(body))
}
