package app

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tries-io/jsonrelay/internal/config"
)

func TestServerEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"a":1}`))
	}))
	defer upstream.Close()

	dir := t.TempDir()
	seedPath := filepath.Join(dir, "seed.yaml")
	if err := os.WriteFile(seedPath, []byte("documents:\n  sample-json: '{\"b\":2}'\n"), 0o644); err != nil {
		t.Fatalf("write seed file: %v", err)
	}

	cfg := &config.Config{
		ListenAddr:  "127.0.0.1:0",
		UpstreamURL: upstream.URL,
		StorageType: "memory",
		KVBucket:    "test",
		KVKey:       "sample-json",
		SeedFile:    seedPath,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := NewServer(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	// Wait for the listener to come up.
	var addr string
	for i := 0; i < 100; i++ {
		if a := server.echo.ListenerAddr(); a != nil && a.String() != "" {
			addr = a.String()
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if addr == "" {
		t.Fatalf("listener never came up")
	}

	get := func(path string) (int, string) {
		resp, err := http.Get("http://" + addr + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		return resp.StatusCode, string(body)
	}

	if status, body := get("/json-no-parse"); status != http.StatusOK || body != `{"a":1}` {
		t.Fatalf("/json-no-parse: status %d body %q", status, body)
	}
	if status, body := get("/cb-no-parse"); status != http.StatusOK || body != `{"b":2}` {
		t.Fatalf("/cb-no-parse: status %d body %q", status, body)
	}
	if status, _ := get("/jackson"); status != http.StatusOK {
		t.Fatalf("/jackson: status %d", status)
	}
	if status, _ := get("/healthz"); status != http.StatusOK {
		t.Fatalf("/healthz: status %d", status)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not shut down")
	}
}

func TestNewServerFailsOnBadSeedFile(t *testing.T) {
	cfg := &config.Config{
		ListenAddr:  "127.0.0.1:0",
		UpstreamURL: "http://localhost:1080/hello",
		StorageType: "memory",
		KVKey:       "sample-json",
		SeedFile:    "/does/not/exist.yaml",
	}

	if _, err := NewServer(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for missing seed file")
	}
}
