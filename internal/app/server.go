package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tries-io/jsonrelay/internal/api"
	"github.com/tries-io/jsonrelay/internal/config"
	"github.com/tries-io/jsonrelay/internal/fetch"
	"github.com/tries-io/jsonrelay/internal/logger"
	"github.com/tries-io/jsonrelay/internal/storage"
	"github.com/tries-io/jsonrelay/pkg/httpclient"
)

const shutdownTimeout = 10 * time.Second

// Server wires together the transport clients, the fetch service, and the
// HTTP endpoint layer, and runs the listener.
type Server struct {
	cfg   *config.Config
	echo  *echo.Echo
	store storage.Store
	log   logger.Logger
}

// NewServer builds the server runtime from config. All transport handles are
// created here, once, so a bad target fails process start instead of the
// first request.
func NewServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	client := httpclient.NewRestyClient(cfg.UpstreamTimeout)

	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storage.Options{Bucket: cfg.KVBucket})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if cfg.SeedFile != "" {
		if err := storage.Seed(ctx, store, cfg.SeedFile); err != nil {
			store.Close()
			return nil, fmt.Errorf("seed store: %w", err)
		}
		log.InfoObj("store seeded", "seed_file", cfg.SeedFile)
	}

	svc, err := fetch.NewService(client, store, cfg.UpstreamURL, cfg.KVKey)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build fetch service: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api.NewHandler(svc, log).Register(e)

	return &Server{
		cfg:   cfg,
		echo:  e,
		store: store,
		log:   log,
	}, nil
}

// Run serves until the context is cancelled, then shuts down gracefully and
// releases the store handle.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.echo == nil {
		return fmt.Errorf("server is not initialized")
	}
	defer s.store.Close()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.echo.Start(s.cfg.ListenAddr)
	}()

	s.log.InfoObj("server listening", "server_state", map[string]any{
		"listen_addr":  s.cfg.ListenAddr,
		"upstream_url": s.cfg.UpstreamURL,
		"storage_type": s.cfg.StorageType,
	})

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.log.InfoObj("server shutting down", "reason", ctx.Err().Error())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-serveErr
		return nil
	}
}
