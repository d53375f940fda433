package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tries-io/jsonrelay/internal/logger"
	"github.com/tries-io/jsonrelay/internal/storage"
	"github.com/tries-io/jsonrelay/pkg/httpclient"
)

// Handler maps the three fetch operations onto HTTP routes. It carries no
// business logic: each route is one fetch call plus status/content-type
// selection and error translation.
type Handler struct {
	svc Fetcher
	log logger.Logger
}

// NewHandler builds a Handler around a fetch service.
func NewHandler(svc Fetcher, log logger.Logger) *Handler {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Handler{svc: svc, log: log}
}

// Register binds all routes on the given echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/jackson", h.fetchParsed)
	e.GET("/json-no-parse", h.fetchRawHTTP)
	e.GET("/cb-no-parse", h.fetchRawKV)
	e.GET("/healthz", h.health)
}

func (h *Handler) fetchParsed(c echo.Context) error {
	obj, err := h.svc.FetchParsed(c.Request().Context())
	if err != nil {
		return h.fail(c, "fetch parsed", err)
	}
	return c.JSON(http.StatusOK, obj)
}

func (h *Handler) fetchRawHTTP(c echo.Context) error {
	resp, err := h.svc.FetchRawHTTP(c.Request().Context())
	if err != nil {
		return h.fail(c, "fetch raw http", err)
	}
	defer resp.Close()

	// Declare the body's original media type; never derive it by parsing.
	contentType := resp.ContentType
	if contentType == "" {
		contentType = echo.MIMEApplicationJSON
	}
	return c.Stream(resp.Status, contentType, resp.Body)
}

func (h *Handler) fetchRawKV(c echo.Context) error {
	value, err := h.svc.FetchRawKV(c.Request().Context())
	if err != nil {
		return h.fail(c, "fetch raw kv", err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, value)
}

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// fail translates internal error kinds to external status codes.
func (h *Handler) fail(c echo.Context, op string, err error) error {
	status := statusFor(err)
	h.log.ErrorObj("request failed", "request_error", map[string]any{
		"op":     op,
		"path":   c.Path(),
		"status": status,
		"error":  err.Error(),
	})
	return c.JSON(status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}

	var transportErr *httpclient.TransportError
	var decodeErr *httpclient.DecodeError
	if errors.As(err, &transportErr) || errors.As(err, &decodeErr) {
		// The upstream leg failed, not this process.
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
