package httpclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient. A zero timeout keeps the
// transport's own default.
func NewRestyClient(timeout time.Duration) *RestyClient {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &RestyClient{client: c}
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// GetJSON performs an HTTP GET request and decodes the body as a generic
// JSON object tree. Whatever arrived is decoded, status regardless; a body
// that is not a JSON object fails with *DecodeError.
func (r *RestyClient) GetJSON(ctx context.Context, url string) (map[string]any, error) {
	resp, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var out map[string]any
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, &DecodeError{URL: url, Err: err}
	}
	return out, nil
}

// GetStream performs an HTTP GET request and hands back the body unread.
// The response is never inspected beyond status and Content-Type, so the
// bytes reach the caller exactly as the peer sent them.
func (r *RestyClient) GetStream(ctx context.Context, url string, headers map[string]string) (*StreamResponse, error) {
	req := r.client.R().SetContext(ctx).SetDoNotParseResponse(true)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	resp, err := req.Get(url)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	return &StreamResponse{
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.RawBody(),
	}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte              { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int           { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header(name string) string { return r.resp.Header().Get(name) }
