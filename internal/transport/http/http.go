// Package http implements the HTTP transport for ordertaker.
//
// This transport exposes a REST API for order parsing and re-matching. It
// is best suited for kiosks, web clients and point-of-sale services that
// prefer HTTP-based communication.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/transport"
)

// Headers carrying request metadata for raw audio uploads.
const (
	HeaderTenant      = "X-Ordertaker-Tenant"
	HeaderLanguage    = "X-Ordertaker-Language"
	HeaderSource      = "X-Ordertaker-Source"
	HeaderInstruction = "X-Ordertaker-Instruction"
)

const defaultMaxBody = 25 << 20

// Option configures the HTTP transport.
type Option func(*Transport)

// WithCatalogInvalidator enables DELETE /v1/catalogs/{tenant}, which drops
// the tenant's cached catalog snapshot.
func WithCatalogInvalidator(invalidate func(tenant string)) Option {
	return func(t *Transport) { t.invalidate = invalidate }
}

// WithClient sets the client used by Send.
func WithClient(c *http.Client) Option {
	return func(t *Transport) { t.client = c }
}

// WithLogger sets the transport logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port       int
	maxBody    int64
	invalidate func(tenant string)
	client     *http.Client
	logger     *slog.Logger
	server     *http.Server
}

// New creates a new HTTP transport from config.
func New(cfg config.HTTPConfig, opts ...Option) *Transport {
	t := &Transport{
		port:    cfg.Port,
		maxBody: cfg.MaxBodyBytes,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  slog.Default(),
	}
	if t.maxBody <= 0 {
		t.maxBody = defaultMaxBody
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("transport", "http")
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	t.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.routes(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	t.logger.Info("http transport listening", "port", t.port)

	go func() {
		<-ctx.Done()
		t.logger.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

func (t *Transport) routes(handler transport.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/orders", func(w http.ResponseWriter, r *http.Request) {
		t.handleOrder(w, r, handler)
	})
	mux.HandleFunc("POST /v1/orders/match", func(w http.ResponseWriter, r *http.Request) {
		t.handleRematch(w, r, handler)
	})
	if t.invalidate != nil {
		mux.HandleFunc("DELETE /v1/catalogs/{tenant}", t.handleInvalidate)
	}

	// Swagger UI serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	return mux
}

// handleOrder processes a POST /v1/orders request.
//
// @Summary     Parse a spoken order
// @Description Accepts a JSON order request (with a transcript or base64 audio) or raw audio bytes.
// @Description The transcript is parsed into items, modifications and special requests, items are
// @Description matched against the tenant's spoken menu and the result is routed to the requested targets.
// @Tags        orders
// @Accept      json
// @Accept      audio/wav
// @Accept      audio/ogg
// @Produce     json
// @Param       order  body      message.OrderRequest  true  "Order request (JSON). For raw audio, POST the bytes directly with the appropriate Content-Type."
// @Param       X-Ordertaker-Tenant       header  string  false  "Tenant id (used with raw audio uploads)"
// @Param       X-Ordertaker-Language     header  string  false  "Language tag, e.g. gsw or de-CH (used with raw audio uploads)"
// @Param       X-Ordertaker-Source       header  string  false  "Sender identifier (used with raw audio uploads)"
// @Param       X-Ordertaker-Instruction  header  string  false  "JSON-encoded Instruction (used with raw audio uploads)"
// @Success     200  {object}  message.OrderResult  "Parsed order; pipeline failures are reported in the error field"
// @Failure     400  {string}  string  "Invalid request body or headers"
// @Failure     413  {string}  string  "Request body too large"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /v1/orders [post]
func (t *Transport) handleOrder(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var req message.OrderRequest
	body := http.MaxBytesReader(w, r.Body, t.maxBody)

	contentType := r.Header.Get("Content-Type")
	if isJSON(contentType) {
		if err := json.NewDecoder(body).Decode(&req); err != nil {
			writeBodyError(w, "invalid json", err)
			return
		}
	} else {
		// Treat body as raw audio; read metadata from headers.
		audio, err := io.ReadAll(body)
		if err != nil {
			writeBodyError(w, "reading audio", err)
			return
		}
		req.Audio = audio
		req.ContentType = contentType
		req.Tenant = r.Header.Get(HeaderTenant)
		req.Language = r.Header.Get(HeaderLanguage)
		req.Source = r.Header.Get(HeaderSource)

		if instr := r.Header.Get(HeaderInstruction); instr != "" {
			if err := json.Unmarshal([]byte(instr), &req.Instruction); err != nil {
				http.Error(w, "invalid instruction header: "+err.Error(), http.StatusBadRequest)
				return
			}
		}
	}

	result, err := handler.HandleOrder(r.Context(), &req)
	if err != nil {
		t.logger.Error("order dispatch failed", "error", err)
		http.Error(w, "dispatch error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// handleRematch processes a POST /v1/orders/match request.
//
// @Summary     Re-match parsed items
// @Description Matches already parsed items against the tenant's current spoken menu without parsing again.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Param       request  body      message.RematchRequest  true  "Items to match"
// @Success     200  {object}  message.RematchResult
// @Failure     400  {string}  string  "Invalid request body"
// @Failure     500  {string}  string  "Internal processing error"
// @Router      /v1/orders/match [post]
func (t *Transport) handleRematch(w http.ResponseWriter, r *http.Request, handler transport.Handler) {
	var req message.RematchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, t.maxBody)).Decode(&req); err != nil {
		writeBodyError(w, "invalid json", err)
		return
	}

	result, err := handler.HandleRematch(r.Context(), &req)
	if err != nil {
		t.logger.Error("rematch failed", "error", err)
		http.Error(w, "dispatch error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// handleInvalidate processes a DELETE /v1/catalogs/{tenant} request.
//
// @Summary     Drop a cached catalog
// @Description The next order for the tenant reloads its spoken menu from the catalog source.
// @Tags        catalogs
// @Param       tenant  path  string  true  "Tenant id"
// @Success     204
// @Router      /v1/catalogs/{tenant} [delete]
func (t *Transport) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")
	t.invalidate(tenant)
	t.logger.Info("catalog invalidated", "tenant", tenant)
	w.WriteHeader(http.StatusNoContent)
}

// Send delivers a payload to an HTTP target via POST.
func (t *Transport) Send(ctx context.Context, target message.Target, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if target.Token != "" {
		req.Header.Set("Authorization", "Bearer "+target.Token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("http send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("http send: status %d: %s", resp.StatusCode, body)
	}

	t.logger.Debug("http send success", "target", target.Endpoint, "status", resp.StatusCode)
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

func isJSON(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

func writeBodyError(w http.ResponseWriter, msg string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
		return
	}
	http.Error(w, msg+": "+err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
