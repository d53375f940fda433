package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UpstreamURL != "http://localhost:1080/hello" {
		t.Fatalf("unexpected upstream_url default: %s", cfg.UpstreamURL)
	}
	if cfg.ListenAddr != ":2000" {
		t.Fatalf("unexpected listen_addr default: %s", cfg.ListenAddr)
	}
	if cfg.KVKey != "sample-json" {
		t.Fatalf("unexpected kv_key default: %s", cfg.KVKey)
	}
	if cfg.UpstreamTimeout != 0 {
		t.Fatalf("expected no upstream timeout by default, got %v", cfg.UpstreamTimeout)
	}
}

func TestLoadRejectsBadUpstreamURL(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "ftp://example.com/hello")

	_, err := Load()
	if err == nil {
		t.Fatalf("expected error for non-http upstream_url")
	}
	if !strings.Contains(err.Error(), "upstream_url") {
		t.Fatalf("error should name upstream_url, got: %v", err)
	}
}

func TestLoadRejectsHostlessUpstreamURL(t *testing.T) {
	t.Setenv("UPSTREAM_URL", "http://")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for upstream_url without host")
	}
}

func TestLoadRejectsEmptyKey(t *testing.T) {
	t.Setenv("KV_KEY", "   ")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for blank kv_key")
	}
}
