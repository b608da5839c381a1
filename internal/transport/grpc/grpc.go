// Package grpc implements the gRPC transport for ordertaker.
//
// The server exposes ordertaker.v1.OrderService with unary Parse and
// Rematch methods. Messages are the JSON forms of the message package
// types, carried by a JSON codec. It is the preferred transport for
// low-latency communication with point-of-sale backends.
package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/message"
	"github.com/nadzzz/ordertaker/internal/transport"
)

const (
	// ServiceName is the full name of the order service.
	ServiceName = "ordertaker.v1.OrderService"

	// DeliverMethod is invoked on targets when a result is routed to them.
	DeliverMethod = "/ordertaker.v1.OrderSink/Deliver"
)

// OrderServiceServer is the server API of ordertaker.v1.OrderService.
type OrderServiceServer interface {
	Parse(context.Context, *message.OrderRequest) (*message.OrderResult, error)
	Rematch(context.Context, *message.RematchRequest) (*message.RematchResult, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Parse", Handler: parseHandler},
		{MethodName: "Rematch", Handler: rematchHandler},
	},
	Streams: []grpc.StreamDesc{},
}

func parseHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.OrderRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).Parse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Parse"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).Parse(ctx, req.(*message.OrderRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func rematchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.RematchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).Rematch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/Rematch"}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(OrderServiceServer).Rematch(ctx, req.(*message.RematchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// orderServer adapts a transport.Handler to OrderServiceServer.
type orderServer struct {
	handler transport.Handler
	logger  *slog.Logger
}

func (s *orderServer) Parse(ctx context.Context, req *message.OrderRequest) (*message.OrderResult, error) {
	res, err := s.handler.HandleOrder(ctx, req)
	if err != nil {
		s.logger.Error("order dispatch failed", "error", err)
		return nil, status.Errorf(codes.Internal, "dispatch error: %v", err)
	}
	return res, nil
}

func (s *orderServer) Rematch(ctx context.Context, req *message.RematchRequest) (*message.RematchResult, error) {
	res, err := s.handler.HandleRematch(ctx, req)
	if err != nil {
		s.logger.Error("rematch failed", "error", err)
		return nil, status.Errorf(codes.Internal, "dispatch error: %v", err)
	}
	return res, nil
}

// Option configures the gRPC transport.
type Option func(*Transport)

// WithDialOptions appends options used when connecting to targets.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(t *Transport) { t.dialOpts = append(t.dialOpts, opts...) }
}

// WithLogger sets the transport logger.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) { t.logger = l }
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port     int
	dialOpts []grpc.DialOption
	logger   *slog.Logger
	server   *grpc.Server

	mu    sync.Mutex
	conns map[string]*grpc.ClientConn
}

// New creates a new gRPC transport from config.
func New(cfg config.GRPCConfig, opts ...Option) *Transport {
	t := &Transport{
		port:     cfg.Port,
		dialOpts: []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())},
		logger:   slog.Default(),
		conns:    make(map[string]*grpc.ClientConn),
		server:   grpc.NewServer(grpc.ForceServerCodec(jsonCodec{})),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.logger = t.logger.With("transport", "grpc")
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	t.logger.Info("grpc transport listening", "port", t.port)
	return t.serve(ctx, lis, handler)
}

func (t *Transport) serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	t.server.RegisterService(&serviceDesc, &orderServer{handler: handler, logger: t.logger})

	go func() {
		<-ctx.Done()
		t.logger.Info("grpc transport shutting down")
		t.server.GracefulStop()
	}()

	if err := t.server.Serve(lis); err != nil && err != grpc.ErrServerStopped {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Send invokes ordertaker.v1.OrderSink/Deliver on the target with the
// result as a JSON message. The target token travels as bearer metadata.
func (t *Transport) Send(ctx context.Context, target message.Target, payload []byte) error {
	conn, err := t.conn(target.Endpoint)
	if err != nil {
		return err
	}
	if target.Token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+target.Token)
	}

	in := json.RawMessage(payload)
	var ack json.RawMessage
	if err := conn.Invoke(ctx, DeliverMethod, &in, &ack, grpc.ForceCodec(jsonCodec{})); err != nil {
		return fmt.Errorf("grpc send to %s: %w", target.Endpoint, err)
	}
	t.logger.Debug("grpc send success", "target", target.Endpoint, "bytes", len(payload))
	return nil
}

// conn returns a cached client connection to endpoint.
func (t *Transport) conn(endpoint string) (*grpc.ClientConn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.conns[endpoint]; ok {
		return c, nil
	}
	c, err := grpc.NewClient(endpoint, t.dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", endpoint, err)
	}
	t.conns[endpoint] = c
	return c, nil
}

// Close gracefully stops the gRPC server and closes target connections.
func (t *Transport) Close() error {
	t.server.GracefulStop()
	t.mu.Lock()
	defer t.mu.Unlock()
	for endpoint, c := range t.conns {
		if err := c.Close(); err != nil {
			t.logger.Warn("closing target connection", "target", endpoint, "error", err)
		}
		delete(t.conns, endpoint)
	}
	return nil
}
