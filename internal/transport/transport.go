// Package transport defines the interface for pluggable order transports.
//
// Each transport (gRPC, HTTP, MQTT) implements this interface and is driven
// by the dispatcher. The dispatcher doesn't care how orders arrive; it only
// works with the Transport contract.
package transport

import (
	"context"

	"github.com/nadzzz/ordertaker/internal/message"
)

// Handler processes incoming requests. The dispatcher implements it.
// Pipeline failures are reported in the result's Error field; a non-nil
// error means no result could be produced at all.
type Handler interface {
	HandleOrder(ctx context.Context, req *message.OrderRequest) (*message.OrderResult, error)
	HandleRematch(ctx context.Context, req *message.RematchRequest) (*message.RematchResult, error)
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http", "mqtt").
	Name() string

	// Listen starts accepting incoming requests and dispatches them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Send delivers a payload to a target address using this transport's protocol.
	Send(ctx context.Context, target message.Target, payload []byte) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
