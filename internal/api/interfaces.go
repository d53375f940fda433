package api

import (
	"context"

	"github.com/tries-io/jsonrelay/pkg/httpclient"
)

// Fetcher is the fetch surface the HTTP handlers delegate to.
type Fetcher interface {
	FetchParsed(ctx context.Context) (map[string]any, error)
	FetchRawHTTP(ctx context.Context) (*httpclient.StreamResponse, error)
	FetchRawKV(ctx context.Context) ([]byte, error)
}
