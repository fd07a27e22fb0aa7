package httpclient

import (
	"context"
	"io"
	"net/http"
)

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Part is a file part of a multipart request body.
type Part struct {
	Param       string
	FileName    string
	ContentType string
	Reader      io.Reader
}

// Request describes a single outbound call. Form is sent url-encoded unless
// Parts is non-empty, in which case Form and Parts share one multipart body.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   map[string]string
	Form    map[string]string
	Parts   []Part
}

// IsMultipart reports whether the request carries file parts.
func (r Request) IsMultipart() bool { return len(r.Parts) > 0 }

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}
