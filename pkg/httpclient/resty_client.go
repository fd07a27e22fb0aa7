package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout keeps the transport default
// (no deadline); log may be nil to keep resty's own logger.
func NewRestyClient(timeout time.Duration, log resty.Logger) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout, log)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing JSON bodies.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout, nil)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration, log resty.Logger) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if log != nil {
		c.SetLogger(log)
	}
	return c
}

// Do performs the described request. Statuses are never turned into errors.
func (r *RestyClient) Do(ctx context.Context, in Request) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(in.Headers) > 0 {
		req.SetHeaders(in.Headers)
	}
	if len(in.Query) > 0 {
		req.SetQueryParams(in.Query)
	}

	switch {
	case in.IsMultipart():
		if len(in.Form) > 0 {
			req.SetMultipartFormData(in.Form)
		}
		for _, p := range in.Parts {
			req.SetMultipartField(p.Param, p.FileName, p.ContentType, p.Reader)
		}
	case len(in.Form) > 0:
		req.SetFormData(in.Form)
	}

	resp, err := req.Execute(in.Method, in.URL)
	if err != nil {
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
