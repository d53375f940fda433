package fetch

import (
	"context"
	"fmt"

	"github.com/tries-io/jsonrelay/internal/storage"
	"github.com/tries-io/jsonrelay/pkg/httpclient"
)

// Service performs one upstream call per operation against a fixed HTTP
// target or a fixed key in the key-value store. It holds no per-request
// state; the injected transport handles are shared and long-lived.
type Service struct {
	client      httpclient.Client
	store       storage.Store
	upstreamURL string
	key         string
}

// NewService wires a fetch service with its transport clients and targets.
func NewService(client httpclient.Client, store storage.Store, upstreamURL, key string) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("http client must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("store must not be nil")
	}
	if upstreamURL == "" {
		return nil, fmt.Errorf("upstream url must not be empty")
	}
	if key == "" {
		return nil, fmt.Errorf("key must not be empty")
	}

	return &Service{
		client:      client,
		store:       store,
		upstreamURL: upstreamURL,
		key:         key,
	}, nil
}

// FetchParsed fetches the upstream body and decodes it into a generic JSON
// object tree. Transport and decode failures propagate unchanged.
func (s *Service) FetchParsed(ctx context.Context) (map[string]any, error) {
	return s.client.GetJSON(ctx, s.upstreamURL)
}

// FetchRawHTTP fetches the upstream body as an unread stream. No decoding
// happens on this path; bytes are handed through as they arrived.
func (s *Service) FetchRawHTTP(ctx context.Context) (*httpclient.StreamResponse, error) {
	return s.client.GetStream(ctx, s.upstreamURL, nil)
}

// FetchRawKV reads the configured key from the store and returns the stored
// bytes unmodified. Absent keys surface as storage.ErrNotFound.
func (s *Service) FetchRawKV(ctx context.Context) ([]byte, error) {
	return s.store.Get(ctx, s.key)
}
