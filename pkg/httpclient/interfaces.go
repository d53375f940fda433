package httpclient

import (
	"context"
	"io"
)

// Response is a minimal buffered HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header(name string) string
}

// StreamResponse carries an unparsed response body as a single-consumption
// stream. The caller owns Body and must drain or close it.
type StreamResponse struct {
	Status      int
	ContentType string
	Body        io.ReadCloser
}

// Close releases the underlying connection without consuming the body.
func (s *StreamResponse) Close() error {
	if s == nil || s.Body == nil {
		return nil
	}
	return s.Body.Close()
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	// Get performs a buffered GET request.
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)

	// GetJSON performs a GET request and decodes the body into a generic
	// JSON object tree. The decode failure mode is a *DecodeError.
	GetJSON(ctx context.Context, url string) (map[string]any, error)

	// GetStream performs a GET request and returns the body unread. Non-2xx
	// statuses are not errors; status and bytes are forwarded as received.
	GetStream(ctx context.Context, url string, headers map[string]string) (*StreamResponse, error)
}
