package httpclient

import "fmt"

// TransportError wraps a connection-level failure (refused, timeout, DNS).
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps a body that did not decode as a JSON object tree.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode error for %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
